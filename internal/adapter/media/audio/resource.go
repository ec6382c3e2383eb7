//go:build (linux && cgo) || windows || darwin

package audio

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/hariomify/hariomify/internal/ports"
)

// Available reports whether this build can produce sound.
const Available = true

const (
	sampleRate      = beep.SampleRate(44100)
	resampleQuality = 4
	tickInterval    = 250 * time.Millisecond
)

// track is a decoded source mixed into the speaker.
type track struct {
	generation uint64
	stream     beep.StreamSeekCloser
	format     beep.Format
	ctrl       *beep.Ctrl
	volume     *effects.Volume

	// released is closed when the source is unloaded.
	released chan struct{}
}

func (t *track) duration() float64 {
	return t.format.SampleRate.D(t.stream.Len()).Seconds()
}

// Resource plays one source at a time through the beep speaker.
//
// Thread-safety: r.mu guards the resource state; speaker.Lock guards the
// streamers while the speaker goroutine reads them. r.mu is always taken
// first.
type Resource struct {
	logger *slog.Logger
	client *http.Client

	mu         sync.Mutex
	listener   ports.MediaListener
	generation uint64
	cancelLoad context.CancelFunc
	current    *track
	gain       float64
	speakerOn  bool
	stopTick   chan struct{}
	closed     bool

	wg sync.WaitGroup
}

// New creates a resource. A nil client selects http.DefaultClient.
func New(logger *slog.Logger, client *http.Client) *Resource {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resource{
		logger: logger.With(slog.String("adapter", "audio")),
		client: client,
		gain:   1,
	}
}

// SetListener installs the signal callback.
func (r *Resource) SetListener(listener ports.MediaListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Load releases the current source and starts fetching url in the background.
func (r *Resource) Load(generation uint64, url string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.releaseLocked()
	r.generation = generation
	ctx, cancel := context.WithCancel(context.Background())
	r.cancelLoad = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go r.load(ctx, generation, url)
}

func (r *Resource) load(ctx context.Context, gen uint64, url string) {
	defer r.wg.Done()

	r.emit(ports.MediaSignal{Kind: ports.SignalLoadStart, Generation: gen})

	stream, format, err := r.open(ctx, url)
	if ctx.Err() != nil {
		if stream != nil {
			_ = stream.Close()
		}
		return
	}
	if err != nil {
		r.logger.Warn("load failed", slog.String("url", url), slog.Any("error", err))
		r.emit(ports.MediaSignal{Kind: ports.SignalError, Generation: gen, Err: err})
		return
	}

	r.mu.Lock()
	if gen != r.generation || r.closed || ctx.Err() != nil {
		r.mu.Unlock()
		_ = stream.Close()
		return
	}
	if err := r.initSpeakerLocked(); err != nil {
		r.mu.Unlock()
		_ = stream.Close()
		r.logger.Error("speaker init failed", slog.Any("error", err))
		r.emit(ports.MediaSignal{Kind: ports.SignalError, Generation: gen, Err: err})
		return
	}

	t := &track{generation: gen, stream: stream, format: format, released: make(chan struct{})}
	r.current = t
	r.mixLocked(t)
	duration := t.duration()
	r.mu.Unlock()

	r.logger.Debug("source ready",
		slog.String("url", url),
		slog.String("format", detectFormat(url, "").String()),
		slog.Float64("duration", duration))
	r.emit(ports.MediaSignal{Kind: ports.SignalDurationChange, Generation: gen, Value: duration})
	r.emit(ports.MediaSignal{Kind: ports.SignalCanPlay, Generation: gen})
}

func (r *Resource) open(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	data, contentType, err := fetch(ctx, r.client, url)
	if err != nil {
		return nil, beep.Format{}, err
	}
	return decode(data, detectFormat(url, contentType))
}

func (r *Resource) initSpeakerLocked() error {
	if r.speakerOn {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	r.speakerOn = true
	return nil
}

// mixLocked builds a paused chain over t's stream and hands it to the
// speaker. The end callback runs on the speaker goroutine with the speaker
// locked, so it only signals a watcher counted in r.wg.
func (r *Resource) mixLocked(t *track) {
	t.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(resampleQuality, t.format.SampleRate, sampleRate, t.stream),
		Paused:   true,
	}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 2}
	t.volume.Volume, t.volume.Silent = gainToVolume(r.gain)

	end := make(chan struct{}, 1)
	speaker.Play(beep.Seq(t.volume, beep.Callback(func() {
		select {
		case end <- struct{}{}:
		default:
		}
	})))

	r.wg.Add(1)
	go r.watchEnd(t, end)
}

// watchEnd waits for one end of t's chain, or for t to be released.
func (r *Resource) watchEnd(t *track, end <-chan struct{}) {
	defer r.wg.Done()

	select {
	case <-end:
		r.ended(t.generation)
	case <-t.released:
	}
}

// ended rewinds a finished source so it can be played again, then reports the end.
func (r *Resource) ended(gen uint64) {
	r.mu.Lock()
	t := r.current
	if t == nil || t.generation != gen {
		r.mu.Unlock()
		return
	}
	r.stopTickerLocked()
	speaker.Lock()
	err := t.stream.Seek(0)
	speaker.Unlock()
	if err != nil {
		r.logger.Warn("rewind failed", slog.Any("error", err))
	}
	r.mixLocked(t)
	duration := t.duration()
	r.mu.Unlock()

	r.emit(ports.MediaSignal{Kind: ports.SignalTimeUpdate, Generation: gen, Value: duration})
	r.emit(ports.MediaSignal{Kind: ports.SignalEnded, Generation: gen})
}

// Play unpauses the loaded source.
func (r *Resource) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return ErrNotReady
	}
	speaker.Lock()
	r.current.ctrl.Paused = false
	speaker.Unlock()
	r.startTickerLocked()
	return nil
}

// Pause pauses the loaded source.
func (r *Resource) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return
	}
	speaker.Lock()
	r.current.ctrl.Paused = true
	speaker.Unlock()
	r.stopTickerLocked()
}

// Seek moves the read position, clamped to the source length.
func (r *Resource) Seek(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.current
	if t == nil {
		return
	}

	speaker.Lock()
	n := t.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	n = max(0, min(n, t.stream.Len()))
	err := t.stream.Seek(n)
	speaker.Unlock()

	if err != nil {
		r.logger.Warn("seek failed", slog.Float64("seconds", seconds), slog.Any("error", err))
	}
}

// SetVolume sets the output gain (0 to 1).
func (r *Resource) SetVolume(gain float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gain = gain
	if r.current == nil {
		return
	}
	speaker.Lock()
	r.current.volume.Volume, r.current.volume.Silent = gainToVolume(gain)
	speaker.Unlock()
}

// Unload cancels any pending load and releases the current source.
func (r *Resource) Unload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseLocked()
}

func (r *Resource) releaseLocked() {
	if r.cancelLoad != nil {
		r.cancelLoad()
		r.cancelLoad = nil
	}
	r.stopTickerLocked()
	if r.current == nil {
		return
	}
	speaker.Clear()
	close(r.current.released)
	if err := r.current.stream.Close(); err != nil {
		r.logger.Warn("closing source failed", slog.Any("error", err))
	}
	r.current = nil
}

func (r *Resource) startTickerLocked() {
	if r.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	r.stopTick = stop
	r.wg.Add(1)
	go r.tick(r.current.generation, stop)
}

func (r *Resource) stopTickerLocked() {
	if r.stopTick == nil {
		return
	}
	close(r.stopTick)
	r.stopTick = nil
}

// tick reports the position while the source plays.
func (r *Resource) tick(gen uint64, stop <-chan struct{}) {
	defer r.wg.Done()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			position, ok := r.position(gen)
			if !ok {
				return
			}
			r.emit(ports.MediaSignal{Kind: ports.SignalTimeUpdate, Generation: gen, Value: position})
		}
	}
}

func (r *Resource) position(gen uint64) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.current
	if t == nil || t.generation != gen {
		return 0, false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.format.SampleRate.D(t.stream.Position()).Seconds(), true
}

func (r *Resource) emit(signal ports.MediaSignal) {
	r.mu.Lock()
	listener := r.listener
	r.mu.Unlock()

	if listener != nil {
		listener(signal)
	}
}

// Close releases the source, waits for background work and shuts the speaker down.
func (r *Resource) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.releaseLocked()
	speakerOn := r.speakerOn
	r.mu.Unlock()

	r.wg.Wait()
	if speakerOn {
		speaker.Close()
	}
	r.logger.Debug("audio resource closed")
	return nil
}

// Verify interface implementation
var _ ports.MediaResource = (*Resource)(nil)
