// Package service provides business logic for the Hariomify application.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// DefaultVolume is the volume percent a new session starts with.
const DefaultVolume = 75

// MediaSession is the sole owner of the MediaResource. It turns resource
// signals into PlaybackState changes and bus events.
//
// Every Load increments the generation; resource signals and play results
// carrying an older generation are dropped. Play and Pause requests carry
// their own sequence, so a Pause cancels a Play still waiting on the resource.
//
// Thread-safety: All operations are thread-safe via sync.RWMutex. Events are
// published after the lock is released.
type MediaSession struct {
	// Dependencies (injected)
	logger   *slog.Logger
	resource ports.MediaResource
	bus      ports.EventBus

	// loadMu keeps resource Load and Unload calls in generation order.
	loadMu sync.Mutex

	// State
	mu         sync.RWMutex
	state      domain.PlaybackState
	url        string
	generation uint64
	pending    *loadWaiter

	// playSeq counts Play and Pause requests; wantPlaying is the last one.
	playSeq     uint64
	wantPlaying bool
}

// loadWaiter resolves once per generation: ready, failed or superseded.
type loadWaiter struct {
	generation uint64
	done       chan struct{}
	err        error
	resolved   bool
}

func newLoadWaiter(generation uint64) *loadWaiter {
	return &loadWaiter{generation: generation, done: make(chan struct{})}
}

// resolve must be called with the session lock held.
func (w *loadWaiter) resolve(err error) {
	if w.resolved {
		return
	}
	w.resolved = true
	w.err = err
	close(w.done)
}

// NewMediaSession creates a session and installs itself as the resource listener.
func NewMediaSession(logger *slog.Logger, resource ports.MediaResource, bus ports.EventBus) *MediaSession {
	s := &MediaSession{
		logger:   logger.With(slog.String("service", "media_session")),
		resource: resource,
		bus:      bus,
		state:    domain.PlaybackState{Volume: DefaultVolume},
	}

	resource.SetVolume(float64(DefaultVolume) / 100)
	resource.SetListener(s.handleSignal)

	s.logger.Debug("media session initialized")
	return s
}

// Load starts loading url and returns without waiting for it.
// An empty url leaves the session in the error state and returns domain.ErrNoSource.
func (s *MediaSession) Load(url string) error {
	_, err := s.load(url)
	return err
}

// load returns the generation assigned to url.
func (s *MediaSession) load(url string) (uint64, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.pending != nil {
		s.pending.resolve(domain.ErrSuperseded)
	}
	s.state.CurrentTime = 0
	s.state.Duration = 0
	s.state.IsPlaying = false
	s.url = url

	if url == "" {
		s.state.IsLoading = false
		s.state.LastError = domain.MessageNoSource
		s.pending = nil
		s.mu.Unlock()

		s.logger.Warn("load without source", slog.Uint64("generation", gen))
		s.resource.Unload()
		s.bus.Publish(domain.NewMediaErrorEvent(domain.MessageNoSource, domain.ErrNoSource))
		return gen, domain.ErrNoSource
	}

	s.state.IsLoading = true
	s.state.LastError = ""
	s.pending = newLoadWaiter(gen)
	volume := s.state.Volume
	s.mu.Unlock()

	s.logger.Debug("loading source", slog.String("url", url), slog.Uint64("generation", gen))
	s.bus.Publish(domain.NewLoadStartedEvent(url, gen))

	s.resource.SetVolume(float64(volume) / 100)
	s.resource.Load(gen, url)
	return gen, nil
}

// AwaitReady blocks until the current load is ready to play.
//
// It returns nil once ready, a *domain.MediaError of kind LoadFailure if the
// load failed, domain.ErrSuperseded if a newer Load replaced it,
// domain.ErrNoSource when nothing was loaded, or the context error.
func (s *MediaSession) AwaitReady(ctx context.Context) error {
	return s.awaitReady(ctx, s.Generation())
}

func (s *MediaSession) awaitReady(ctx context.Context, gen uint64) error {
	s.mu.RLock()
	current, waiter := s.generation, s.pending
	s.mu.RUnlock()

	if current != gen {
		return domain.ErrSuperseded
	}
	if waiter == nil {
		return domain.ErrNoSource
	}

	select {
	case <-waiter.done:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return waiter.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Play asks the resource to start playback and waits for its answer. While
// the source is still loading it first waits for it to become ready.
//
// A rejection sets LastError and returns a *domain.MediaError of kind
// PlaybackRejected. If a newer Load, Pause or Play happened meanwhile the
// answer is discarded and domain.ErrSuperseded is returned.
func (s *MediaSession) Play(ctx context.Context) error {
	return s.play(ctx, s.Generation())
}

func (s *MediaSession) play(ctx context.Context, gen uint64) error {
	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return domain.ErrSuperseded
	}
	if s.url == "" {
		s.mu.Unlock()
		return domain.ErrNoSource
	}
	url := s.url
	s.playSeq++
	seq := s.playSeq
	s.wantPlaying = true
	loading := s.pending != nil && s.pending.generation == gen && !s.pending.resolved
	s.mu.Unlock()

	if loading {
		if err := s.awaitReady(ctx, gen); err != nil {
			return err
		}
		s.mu.RLock()
		stale := seq != s.playSeq || gen != s.generation
		s.mu.RUnlock()
		if stale {
			return domain.ErrSuperseded
		}
	}

	err := s.resource.Play(ctx)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("discarding stale play result", slog.Uint64("generation", gen))
		return domain.ErrSuperseded
	}
	if seq != s.playSeq {
		repause := err == nil && !s.wantPlaying
		s.mu.Unlock()
		if repause {
			s.resource.Pause()
		}
		s.logger.Debug("discarding overtaken play result", slog.Uint64("generation", gen))
		return domain.ErrSuperseded
	}

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.mu.Unlock()
			return err
		}
		s.state.IsPlaying = false
		s.state.LastError = domain.MessagePlayFailed
		s.mu.Unlock()

		mediaErr := domain.NewPlaybackError(url, err)
		s.logger.Error("playback rejected", slog.String("url", url), slog.Any("error", err))
		s.bus.Publish(domain.NewMediaErrorEvent(domain.MessagePlayFailed, mediaErr))
		return mediaErr
	}

	s.state.IsPlaying = true
	s.state.LastError = ""
	s.mu.Unlock()

	s.logger.Debug("playing", slog.String("url", url))
	s.bus.Publish(domain.NewPlayingEvent(url))
	return nil
}

// Pause pauses playback and cancels a Play still in flight. It is a no-op
// without a source.
func (s *MediaSession) Pause() {
	s.mu.Lock()
	if s.url == "" {
		s.mu.Unlock()
		return
	}
	s.playSeq++
	s.wantPlaying = false
	s.state.IsPlaying = false
	position := s.state.CurrentTime
	s.mu.Unlock()

	s.resource.Pause()
	s.bus.Publish(domain.NewPausedEvent(position))
}

// Seek moves playback to seconds, clamped to [0, Duration].
func (s *MediaSession) Seek(seconds float64) error {
	s.mu.Lock()
	if s.url == "" {
		s.mu.Unlock()
		return domain.ErrNoSource
	}
	if s.state.Duration <= 0 {
		s.mu.Unlock()
		return domain.ErrInvalidPosition
	}
	position := math.Max(0, math.Min(seconds, s.state.Duration))
	s.state.CurrentTime = position
	duration := s.state.Duration
	s.mu.Unlock()

	s.resource.Seek(position)
	s.bus.Publish(domain.NewProgressEvent(position, duration))
	return nil
}

// ChangeVolume sets the volume in percent (0 to 100).
func (s *MediaSession) ChangeVolume(percent int) error {
	if percent < 0 || percent > 100 {
		return domain.ErrInvalidVolume
	}

	s.mu.Lock()
	s.state.Volume = percent
	s.mu.Unlock()

	s.resource.SetVolume(float64(percent) / 100)
	s.bus.Publish(domain.NewVolumeChangedEvent(percent))
	return nil
}

// Stop releases the source and returns to the idle state. Volume is kept.
func (s *MediaSession) Stop() {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.generation++
	if s.pending != nil {
		s.pending.resolve(domain.ErrSuperseded)
		s.pending = nil
	}
	s.url = ""
	s.state = domain.PlaybackState{Volume: s.state.Volume}
	s.mu.Unlock()

	s.resource.Unload()
	s.bus.Publish(domain.NewStoppedEvent())
}

// Close stops the session and releases the resource.
func (s *MediaSession) Close() error {
	s.Stop()
	return s.resource.Close()
}

// State returns a snapshot of the playback state. CurrentTrack is always nil;
// the coordinator owns it.
func (s *MediaSession) State() domain.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// URL returns the current source url ("" if none).
func (s *MediaSession) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.url
}

// Generation returns the generation of the current load.
func (s *MediaSession) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// handleSignal applies a resource signal of the current generation.
func (s *MediaSession) handleSignal(signal ports.MediaSignal) {
	s.mu.Lock()
	if signal.Generation != s.generation || s.url == "" {
		s.mu.Unlock()
		s.logger.Debug("dropping stale signal",
			slog.String("signal", signal.Kind.String()),
			slog.Uint64("generation", signal.Generation))
		return
	}

	var event domain.Event
	switch signal.Kind {
	case ports.SignalLoadStart:
		s.state.IsLoading = true
		s.state.LastError = ""

	case ports.SignalDurationChange:
		s.state.Duration = math.Floor(math.Max(0, signal.Value))
		if s.state.CurrentTime > s.state.Duration {
			s.state.CurrentTime = s.state.Duration
		}
		event = domain.NewDurationChangedEvent(s.state.Duration)

	case ports.SignalCanPlay:
		s.state.IsLoading = false
		if s.pending != nil && s.pending.generation == signal.Generation {
			s.pending.resolve(nil)
		}
		event = domain.NewMediaReadyEvent(s.url)

	case ports.SignalTimeUpdate:
		position := math.Floor(math.Max(0, signal.Value))
		if s.state.Duration > 0 {
			position = math.Min(position, s.state.Duration)
		}
		s.state.CurrentTime = position
		event = domain.NewProgressEvent(position, s.state.Duration)

	case ports.SignalEnded:
		s.state.IsPlaying = false
		s.state.CurrentTime = 0
		event = domain.NewTrackEndedEvent(s.url, signal.Generation)

	case ports.SignalError:
		s.state.IsLoading = false
		s.state.IsPlaying = false
		s.state.LastError = domain.MessageLoadFailed
		mediaErr := domain.NewLoadError(s.url, signal.Err)
		if s.pending != nil && s.pending.generation == signal.Generation {
			s.pending.resolve(mediaErr)
		}
		s.logger.Error("load failed", slog.String("url", s.url), slog.Any("error", signal.Err))
		event = domain.NewMediaErrorEvent(domain.MessageLoadFailed, mediaErr)
	}
	s.mu.Unlock()

	if event != nil {
		s.bus.Publish(event)
	}
}
