package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// DefaultAdvanceTimeout bounds the load and play of an automatic advance.
const DefaultAdvanceTimeout = 30 * time.Second

// PlaybackCoordinator owns the current track and the fixed playlist order.
// It drives the MediaSession for selection, next/previous and the automatic
// advance when a track ends.
//
// Thread-safety: All operations are thread-safe via sync.RWMutex. The lock is
// never held while calling into the session.
type PlaybackCoordinator struct {
	// Dependencies (injected)
	logger  *slog.Logger
	session *MediaSession
	bus     ports.EventBus

	// Configuration
	playlist       []domain.Track
	advanceTimeout time.Duration

	// State
	mu      sync.RWMutex
	current *domain.Track

	// Lifecycle
	ctx           context.Context
	cancel        context.CancelFunc
	subscriptions []domain.SubscriptionID
	shutdownOnce  sync.Once
}

// NewPlaybackCoordinator creates a coordinator over a fixed playlist.
// The playlist is copied; later changes to the argument have no effect.
func NewPlaybackCoordinator(
	logger *slog.Logger,
	session *MediaSession,
	bus ports.EventBus,
	playlist []domain.Track,
) *PlaybackCoordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &PlaybackCoordinator{
		logger:         logger.With(slog.String("service", "playback_coordinator")),
		session:        session,
		bus:            bus,
		playlist:       append([]domain.Track(nil), playlist...),
		advanceTimeout: DefaultAdvanceTimeout,
		ctx:            ctx,
		cancel:         cancel,
	}

	c.subscriptions = append(c.subscriptions,
		bus.Subscribe(domain.EventTrackEnded, c.onTrackEnded))

	c.logger.Debug("playback coordinator initialized", slog.Int("tracks", len(c.playlist)))
	return c
}

// SetAdvanceTimeout changes the bound used for automatic advances.
func (c *PlaybackCoordinator) SetAdvanceTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advanceTimeout = timeout
}

// SelectTrack makes track current and plays it.
//
// Selecting the current track toggles play/pause, or reloads it when the
// session is in an error state. A track without an audio url stays current
// with the error state set, and domain.ErrNoSource is returned.
func (c *PlaybackCoordinator) SelectTrack(ctx context.Context, track domain.Track) error {
	c.mu.RLock()
	same := c.current != nil && c.current.ID == track.ID
	c.mu.RUnlock()

	if same {
		if !c.session.State().HasError() {
			return c.TogglePlayPause(ctx)
		}
		c.logger.Debug("retrying track", slog.String("track_id", track.ID))
		return c.loadAndPlay(ctx, track)
	}

	return c.switchTo(ctx, track)
}

// TogglePlayPause pauses a playing track or plays a paused one.
// Without a current track, or while loading, it does nothing.
func (c *PlaybackCoordinator) TogglePlayPause(ctx context.Context) error {
	if c.CurrentTrack() == nil {
		return nil
	}

	state := c.session.State()
	switch {
	case state.IsPlaying:
		c.session.Pause()
		return nil
	case state.IsLoading:
		return nil
	default:
		return c.session.Play(ctx)
	}
}

// Next selects the following playlist entry, wrapping to the first.
// Without a current track or with an empty playlist it does nothing.
func (c *PlaybackCoordinator) Next(ctx context.Context) error {
	return c.step(ctx, func(i, n int) int {
		return (i + 1) % n
	})
}

// Previous selects the preceding playlist entry, wrapping to the last.
// Without a current track or with an empty playlist it does nothing.
func (c *PlaybackCoordinator) Previous(ctx context.Context) error {
	return c.step(ctx, func(i, n int) int {
		if i <= 0 {
			return n - 1
		}
		return i - 1
	})
}

func (c *PlaybackCoordinator) step(ctx context.Context, pick func(i, n int) int) error {
	c.mu.RLock()
	n := len(c.playlist)
	if c.current == nil || n == 0 {
		c.mu.RUnlock()
		return nil
	}
	next := c.playlist[pick(c.indexOfLocked(c.current.ID), n)]
	c.mu.RUnlock()

	return c.switchTo(ctx, next)
}

// switchTo always loads track, even when it is already current.
func (c *PlaybackCoordinator) switchTo(ctx context.Context, track domain.Track) error {
	c.mu.Lock()
	selected := track
	c.current = &selected
	index := c.indexOfLocked(track.ID)
	c.mu.Unlock()

	c.logger.Info("track selected",
		slog.String("track_id", track.ID),
		slog.String("title", track.Title),
		slog.Int("index", index))
	c.bus.Publish(domain.NewTrackSelectedEvent(track, index))

	return c.loadAndPlay(ctx, track)
}

// loadAndPlay ties the wait and the play to the generation of its own load,
// so a concurrent selection makes it return domain.ErrSuperseded.
func (c *PlaybackCoordinator) loadAndPlay(ctx context.Context, track domain.Track) error {
	gen, err := c.session.load(track.AudioURL)
	if err != nil {
		return err
	}
	if err := c.session.awaitReady(ctx, gen); err != nil {
		return err
	}
	return c.session.play(ctx, gen)
}

// onTrackEnded advances when the current source finishes.
func (c *PlaybackCoordinator) onTrackEnded(event domain.Event) {
	e, ok := event.(domain.TrackEndedEvent)
	if !ok {
		return
	}
	if e.Generation != c.session.Generation() {
		return
	}

	c.mu.RLock()
	timeout := c.advanceTimeout
	c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	if err := c.Next(ctx); err != nil && !errors.Is(err, domain.ErrSuperseded) {
		c.logger.Warn("automatic advance failed", slog.Any("error", err))
	}
}

func (c *PlaybackCoordinator) indexOfLocked(id string) int {
	for i, t := range c.playlist {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CurrentTrack returns a copy of the current track, or nil.
func (c *PlaybackCoordinator) CurrentTrack() *domain.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	t := *c.current
	return &t
}

// CurrentIndex returns the playlist index of the current track (-1 if none).
func (c *PlaybackCoordinator) CurrentIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return -1
	}
	return c.indexOfLocked(c.current.ID)
}

// Playlist returns a copy of the playlist.
func (c *PlaybackCoordinator) Playlist() []domain.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Track(nil), c.playlist...)
}

// Snapshot returns the playback state with CurrentTrack filled in.
// Without a current track the state is forced idle.
func (c *PlaybackCoordinator) Snapshot() domain.PlaybackState {
	state := c.session.State()
	state.CurrentTrack = c.CurrentTrack()
	if state.CurrentTrack == nil {
		state.IsPlaying = false
		state.CurrentTime = 0
	}
	return state
}

// Shutdown unsubscribes from the bus, cancels pending advances and stops the session.
// It's safe to call multiple times.
func (c *PlaybackCoordinator) Shutdown() {
	c.shutdownOnce.Do(func() {
		for _, id := range c.subscriptions {
			c.bus.Unsubscribe(id)
		}
		c.cancel()
		c.session.Stop()

		c.mu.Lock()
		c.current = nil
		c.mu.Unlock()

		c.logger.Debug("playback coordinator shut down")
	})
}
