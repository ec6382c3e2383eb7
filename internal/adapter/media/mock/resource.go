// Package mock provides an in-memory implementation of ports.MediaResource.
// It simulates loading and playback without touching an audio device; tests
// drive it step by step, the --mock-audio mode lets it tick on its own.
package mock

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hariomify/hariomify/internal/ports"
)

// DefaultDuration is the duration reported for sources without a configured one.
const DefaultDuration = 180.0

var (
	// ErrLoadFailed is the error carried by the SignalError of a failing load.
	ErrLoadFailed = errors.New("mock load failed")

	// ErrPlayRejected is returned by Play when playback is configured to fail.
	ErrPlayRejected = errors.New("mock play rejected")

	// ErrNotReady is returned by Play before the loaded source is ready.
	ErrNotReady = errors.New("mock source not ready")
)

// Resource is a mock implementation of the MediaResource interface.
//
// Thread-safety: This implementation is thread-safe. Signals are delivered
// without the internal lock held.
type Resource struct {
	logger *slog.Logger

	mu       sync.Mutex
	listener ports.MediaListener

	// Current source
	generation uint64
	url        string
	ready      bool
	duration   float64
	position   float64
	volume     float64
	playing    bool

	// Behavior configuration (for testing error scenarios)
	manualLoad bool
	failLoad   bool
	failPlay   bool
	playGate   chan struct{}
	durations  map[string]float64

	// Observations
	loads  []string
	plays  int
	closed bool

	// Ticker for Run
	stopTicker chan struct{}
	tickerWG   sync.WaitGroup
}

// NewResource creates a mock resource that completes every load synchronously.
func NewResource(logger *slog.Logger) *Resource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resource{
		logger:    logger.With(slog.String("adapter", "mock-media")),
		volume:    1.0,
		durations: make(map[string]float64),
	}
}

// SetManualLoad makes Load stop after SignalLoadStart; the test then calls
// CompleteLoad or FailLoad.
func (r *Resource) SetManualLoad(manual bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manualLoad = manual
}

// SetFailLoad configures the mock to fail loading sources.
func (r *Resource) SetFailLoad(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failLoad = fail
}

// SetFailPlay configures the mock to reject playback.
func (r *Resource) SetFailPlay(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failPlay = fail
}

// HoldPlay makes subsequent Play calls block until the returned function is called.
func (r *Resource) HoldPlay() (release func()) {
	gate := make(chan struct{})
	r.mu.Lock()
	r.playGate = gate
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			if r.playGate == gate {
				r.playGate = nil
			}
			r.mu.Unlock()
			close(gate)
		})
	}
}

// SetDuration configures the duration reported for url.
func (r *Resource) SetDuration(url string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[url] = seconds
}

// SetListener installs the signal receiver.
func (r *Resource) SetListener(listener ports.MediaListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Load replaces the current source.
func (r *Resource) Load(generation uint64, url string) {
	r.mu.Lock()
	r.generation = generation
	r.url = url
	r.ready = false
	r.playing = false
	r.position = 0
	r.duration = r.durationFor(url)
	r.loads = append(r.loads, url)
	manual, fail := r.manualLoad, r.failLoad
	r.mu.Unlock()

	r.logger.Debug("load", slog.String("url", url), slog.Uint64("generation", generation))

	r.emit(ports.MediaSignal{Kind: ports.SignalLoadStart, Generation: generation})
	if manual {
		return
	}
	if fail {
		r.FailLoad(ErrLoadFailed)
		return
	}
	r.CompleteLoad()
}

func (r *Resource) durationFor(url string) float64 {
	if d, ok := r.durations[url]; ok {
		return d
	}
	return DefaultDuration
}

// CompleteLoad finishes the pending load: SignalDurationChange then SignalCanPlay.
func (r *Resource) CompleteLoad() {
	r.mu.Lock()
	if r.url == "" {
		r.mu.Unlock()
		return
	}
	r.ready = true
	gen, duration := r.generation, r.duration
	r.mu.Unlock()

	r.emit(ports.MediaSignal{Kind: ports.SignalDurationChange, Generation: gen, Value: duration})
	r.emit(ports.MediaSignal{Kind: ports.SignalCanPlay, Generation: gen})
}

// FailLoad fails the pending load with err.
func (r *Resource) FailLoad(err error) {
	r.mu.Lock()
	r.ready = false
	gen := r.generation
	r.mu.Unlock()

	r.emit(ports.MediaSignal{Kind: ports.SignalError, Generation: gen, Err: err})
}

// Emit delivers a signal tagged with an explicit generation, stale or not.
func (r *Resource) Emit(signal ports.MediaSignal) {
	r.emit(signal)
}

// Play starts playback of the ready source.
func (r *Resource) Play(ctx context.Context) error {
	r.mu.Lock()
	gate := r.playGate
	r.plays++
	r.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failPlay {
		return ErrPlayRejected
	}
	if !r.ready {
		return ErrNotReady
	}
	r.playing = true
	return nil
}

// Pause halts playback.
func (r *Resource) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playing = false
}

// Seek moves the position.
func (r *Resource) Seek(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.position = seconds
}

// SetVolume stores the output gain.
func (r *Resource) SetVolume(volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = volume
}

// Unload releases the current source.
func (r *Resource) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.url = ""
	r.ready = false
	r.playing = false
	r.position = 0
}

// Advance moves a playing source forward, emitting SignalTimeUpdate, and
// SignalEnded once the end is reached.
func (r *Resource) Advance(seconds float64) {
	r.mu.Lock()
	if !r.playing {
		r.mu.Unlock()
		return
	}
	r.position += seconds
	ended := r.position >= r.duration
	if ended {
		r.position = r.duration
		r.playing = false
	}
	gen, pos := r.generation, r.position
	r.mu.Unlock()

	r.emit(ports.MediaSignal{Kind: ports.SignalTimeUpdate, Generation: gen, Value: pos})
	if ended {
		r.emit(ports.MediaSignal{Kind: ports.SignalEnded, Generation: gen})
	}
}

// Finish jumps to the end of the current source.
func (r *Resource) Finish() {
	r.mu.Lock()
	remaining := r.duration - r.position
	r.mu.Unlock()
	r.Advance(remaining)
}

// Run advances playing sources in real time until Close is called.
func (r *Resource) Run(interval time.Duration) {
	r.mu.Lock()
	if r.stopTicker != nil || r.closed {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.stopTicker = stop
	r.mu.Unlock()

	r.tickerWG.Add(1)
	go func() {
		defer r.tickerWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Advance(interval.Seconds())
			case <-stop:
				return
			}
		}
	}()
}

// Close stops the ticker and releases the source.
func (r *Resource) Close() error {
	r.mu.Lock()
	r.closed = true
	stop := r.stopTicker
	r.stopTicker = nil
	r.mu.Unlock()

	if stop != nil {
		close(stop)
		r.tickerWG.Wait()
	}
	r.Unload()
	return nil
}

func (r *Resource) emit(signal ports.MediaSignal) {
	r.mu.Lock()
	listener := r.listener
	r.mu.Unlock()

	if listener != nil {
		listener(signal)
	}
}

// Inspection helpers for tests.

// URL returns the current source url.
func (r *Resource) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.url
}

// Volume returns the last gain set.
func (r *Resource) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volume
}

// Position returns the playback position in seconds.
func (r *Resource) Position() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

// IsPlaying reports whether the mock is playing.
func (r *Resource) IsPlaying() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// Generation returns the generation of the current source.
func (r *Resource) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Loads returns every url passed to Load, in order.
func (r *Resource) Loads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.loads...)
}

// PlayCalls returns how many times Play was entered.
func (r *Resource) PlayCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plays
}

// Verify that Resource implements the MediaResource interface
var _ ports.MediaResource = (*Resource)(nil)
