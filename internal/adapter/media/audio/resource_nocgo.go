//go:build !((linux && cgo) || windows || darwin)

package audio

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/hariomify/hariomify/internal/ports"
)

// Available reports whether this build can produce sound.
const Available = false

// Resource reports every load as failed with ErrUnavailable.
type Resource struct {
	logger   *slog.Logger
	mu       sync.Mutex
	listener ports.MediaListener
}

// New creates a resource without audio output. The client is unused.
func New(logger *slog.Logger, _ *http.Client) *Resource {
	return &Resource{logger: logger.With(slog.String("adapter", "audio"))}
}

// SetListener installs the signal callback.
func (r *Resource) SetListener(listener ports.MediaListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Load fails immediately.
func (r *Resource) Load(generation uint64, url string) {
	r.logger.Warn("audio unavailable", slog.String("url", url))

	r.mu.Lock()
	listener := r.listener
	r.mu.Unlock()
	if listener == nil {
		return
	}
	listener(ports.MediaSignal{Kind: ports.SignalLoadStart, Generation: generation})
	listener(ports.MediaSignal{Kind: ports.SignalError, Generation: generation, Err: ErrUnavailable})
}

// Play always fails.
func (r *Resource) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrNotReady
}

func (r *Resource) Pause()            {}
func (r *Resource) Seek(float64)      {}
func (r *Resource) SetVolume(float64) {}
func (r *Resource) Unload()           {}
func (r *Resource) Close() error      { return nil }

// Verify interface implementation
var _ ports.MediaResource = (*Resource)(nil)
