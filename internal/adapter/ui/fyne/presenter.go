// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"github.com/samber/lo"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
	"github.com/hariomify/hariomify/internal/service"
)

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
// All methods are called on the UI goroutine.
type UIView interface {
	// Player surfaces
	RenderPlayer(vm PlayerViewModel)
	SetOverlayVisible(visible bool)

	// Pages
	RenderCards(state CardState)
	RenderFavorites(tracks []domain.Track)
	RenderProfile(vm ProfileViewModel)

	// Shell
	ShowView(view domain.View)
	ApplyTheme(theme domain.Theme)
}

// Presenter implements the Presenter pattern (MVP architecture).
// It turns bus events into view updates and user intents into service calls.
//
// Blocking intents (select, play, next, previous) run on their own
// goroutine so the UI never waits on media loading.
//
// Thread-safety: All operations are thread-safe via sync.RWMutex.
type Presenter struct {
	// Dependencies
	logger *slog.Logger

	// Services (injected)
	coordinator *service.PlaybackCoordinator
	session     *service.MediaSession
	favorites   *service.FavoritesService
	catalog     *service.CatalogService
	stats       *service.StatsService
	bus         ports.EventBus

	// dispatch runs view updates on the UI goroutine.
	dispatch func(func())
	view     UIView

	// Presentation state
	mu          sync.RWMutex
	overlay     OverlayState
	currentView domain.View
	theme       domain.Theme

	// Lifecycle; closed and the wg.Add in async are guarded by mu
	closed        bool
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	subscriptions []domain.SubscriptionID
	shutdownOnce  sync.Once
}

// NewPresenter creates a new presenter. Call AttachView before showing the window.
func NewPresenter(
	logger *slog.Logger,
	coordinator *service.PlaybackCoordinator,
	session *service.MediaSession,
	favorites *service.FavoritesService,
	catalog *service.CatalogService,
	stats *service.StatsService,
	bus ports.EventBus,
) *Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Presenter{
		logger:      logger.With(slog.String("component", "presenter")),
		coordinator: coordinator,
		session:     session,
		favorites:   favorites,
		catalog:     catalog,
		stats:       stats,
		bus:         bus,
		dispatch:    fyneapp.Do,
		currentView: domain.ViewHome,
		theme:       domain.ThemeDark,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// AttachView connects the view, subscribes to events and renders the
// current state.
func (p *Presenter) AttachView(view UIView) {
	p.view = view
	p.subscribeToEvents()
	p.syncInitialState()
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		// Selection and load
		domain.EventTrackSelected:   p.onPlaybackChanged,
		domain.EventLoadStarted:     p.onPlayerChanged,
		domain.EventMediaReady:      p.onPlayerChanged,
		domain.EventDurationChanged: p.onPlayerChanged,
		domain.EventMediaError:      p.onPlaybackChanged,

		// Transport
		domain.EventProgress:      p.onProgress,
		domain.EventPlaying:       p.onPlaying,
		domain.EventPaused:        p.onPlaybackChanged,
		domain.EventTrackEnded:    p.onPlaybackChanged,
		domain.EventStopped:       p.onPlaybackChanged,
		domain.EventVolumeChanged: p.onPlayerChanged,

		// Library
		domain.EventFavoriteToggled: p.onFavoriteToggled,

		// Shell
		domain.EventViewChanged:  p.onViewChanged,
		domain.EventThemeToggled: p.onThemeToggled,
	}

	for eventType, handler := range subscriptions {
		p.subscriptions = append(p.subscriptions, p.bus.Subscribe(eventType, handler))
	}
}

// syncInitialState renders everything once so the window starts consistent.
func (p *Presenter) syncInitialState() {
	p.mu.RLock()
	view, theme := p.currentView, p.theme
	p.mu.RUnlock()

	p.update(func(v UIView) {
		v.ApplyTheme(theme)
		v.ShowView(view)
	})
	p.renderPlayer()
	p.renderFavorites()
	p.renderCards()
	p.renderProfile()
}

// Event handlers

func (p *Presenter) onPlayerChanged(domain.Event) {
	p.renderPlayer()
}

func (p *Presenter) onPlaybackChanged(domain.Event) {
	p.renderPlayer()
	p.renderCards()
}

func (p *Presenter) onPlaying(domain.Event) {
	p.renderPlayer()
	p.renderCards()
	p.renderProfile()
}

func (p *Presenter) onProgress(domain.Event) {
	p.renderPlayer()

	p.mu.RLock()
	onProfile := p.currentView == domain.ViewProfile
	p.mu.RUnlock()
	if onProfile {
		p.renderProfile()
	}
}

func (p *Presenter) onFavoriteToggled(domain.Event) {
	p.renderPlayer()
	p.renderFavorites()
	p.renderCards()
	p.renderProfile()
}

func (p *Presenter) onViewChanged(event domain.Event) {
	e, ok := event.(domain.ViewChangedEvent)
	if !ok {
		return
	}
	p.update(func(v UIView) { v.ShowView(e.View) })
	if e.View == domain.ViewProfile {
		p.renderProfile()
	}
}

func (p *Presenter) onThemeToggled(event domain.Event) {
	e, ok := event.(domain.ThemeToggledEvent)
	if !ok {
		return
	}
	p.update(func(v UIView) { v.ApplyTheme(e.Theme) })
}

// Rendering

// update runs fn on the UI goroutine. Before AttachView it does nothing.
func (p *Presenter) update(fn func(UIView)) {
	view := p.view
	if view == nil {
		return
	}
	p.dispatch(func() { fn(view) })
}

func (p *Presenter) renderPlayer() {
	state := p.coordinator.Snapshot()
	vm := BuildPlayerViewModel(state, p.favorites)

	p.mu.RLock()
	overlay := p.overlay.Visible(state.CurrentTrack != nil)
	p.mu.RUnlock()

	p.update(func(v UIView) {
		v.RenderPlayer(vm)
		v.SetOverlayVisible(overlay)
	})
}

func (p *Presenter) renderCards() {
	state := p.cardState()
	p.update(func(v UIView) { v.RenderCards(state) })
}

func (p *Presenter) cardState() CardState {
	snapshot := p.coordinator.Snapshot()
	state := CardState{
		IsPlaying: snapshot.IsPlaying,
		Favorites: make(map[string]bool),
	}
	if snapshot.CurrentTrack != nil {
		state.CurrentTrackID = snapshot.CurrentTrack.ID
	}
	for _, id := range p.favorites.List() {
		state.Favorites[id] = true
	}
	return state
}

func (p *Presenter) renderFavorites() {
	tracks := p.favorites.Tracks(p.catalog.Tracks())
	p.update(func(v UIView) { v.RenderFavorites(tracks) })
}

func (p *Presenter) renderProfile() {
	vm := BuildProfileViewModel(p.stats.Stats(), p.stats.RecentActivity(recentActivityRows))
	p.update(func(v UIView) { v.RenderProfile(vm) })
}

// recentActivityRows is how many activity entries the profile lists.
const recentActivityRows = 8

// async runs a blocking intent in the background and logs its failure.
func (p *Presenter) async(name string, fn func(ctx context.Context) error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if err := fn(p.ctx); err != nil {
			p.logError(name, err)
		}
	}()
}

func (p *Presenter) logError(name string, err error) {
	switch {
	case errors.Is(err, domain.ErrSuperseded), errors.Is(err, context.Canceled):
		p.logger.Debug(name+" abandoned", slog.Any("error", err))
	case errors.Is(err, domain.ErrNoSource):
		p.logger.Warn(name+" without audio source", slog.Any("error", err))
	default:
		p.logger.Error(name+" failed", slog.Any("error", err))
	}
}

// wait blocks until background intents have finished.
func (p *Presenter) wait() {
	p.wg.Wait()
}

// Player intents

// PlayPause toggles playback of the current track.
func (p *Presenter) PlayPause() {
	p.async("play/pause", p.coordinator.TogglePlayPause)
}

// Next plays the following track.
func (p *Presenter) Next() {
	p.async("next track", p.coordinator.Next)
}

// Previous plays the preceding track.
func (p *Presenter) Previous() {
	p.async("previous track", p.coordinator.Previous)
}

// Seek moves playback to seconds.
func (p *Presenter) Seek(seconds float64) {
	if err := p.session.Seek(seconds); err != nil {
		p.logError("seek", err)
	}
}

// ChangeVolume sets the volume from a 0 to 100 slider value.
func (p *Presenter) ChangeVolume(percent float64) {
	if err := p.session.ChangeVolume(int(math.Round(percent))); err != nil {
		p.logError("volume change", err)
	}
}

// ToggleFavorite flips the favorite flag of trackID.
func (p *Presenter) ToggleFavorite(trackID string) {
	p.favorites.Toggle(trackID)
}

// OpenFull requests the full-screen player.
func (p *Presenter) OpenFull() {
	p.mu.Lock()
	p.overlay.Open()
	p.mu.Unlock()
	p.renderPlayer()
}

// CloseFull dismisses the full-screen player.
func (p *Presenter) CloseFull() {
	p.mu.Lock()
	p.overlay.Close()
	p.mu.Unlock()
	p.renderPlayer()
}

// Library intents

// SelectTrack plays track, or toggles it when it is already current.
func (p *Presenter) SelectTrack(track domain.Track) {
	p.async("select track", func(ctx context.Context) error {
		return p.coordinator.SelectTrack(ctx, track)
	})
}

// PlayRandom plays a random catalog entry.
func (p *Presenter) PlayRandom() {
	tracks := p.catalog.Tracks()
	if len(tracks) == 0 {
		return
	}
	p.SelectTrack(lo.Sample(tracks))
}

// Navigate switches the visible page.
func (p *Presenter) Navigate(view domain.View) {
	p.mu.Lock()
	p.currentView = view
	p.mu.Unlock()
	p.bus.Publish(domain.NewViewChangedEvent(view))
}

// ToggleTheme switches between dark and light.
func (p *Presenter) ToggleTheme() {
	p.mu.Lock()
	p.theme = p.theme.Toggle()
	theme := p.theme
	p.mu.Unlock()
	p.bus.Publish(domain.NewThemeToggledEvent(theme))
}

// Search returns the browse page for query.
func (p *Presenter) Search(query string) BrowseViewModel {
	return BuildBrowseViewModel(query, p.catalog.Search(query))
}

// BrowseGenre returns the browse page filtered to genre.
func (p *Presenter) BrowseGenre(genre string) BrowseViewModel {
	return BuildGenreViewModel(genre, p.catalog.ByGenre(genre))
}

// Resize records the window width, which decides whether the overlay fits.
func (p *Presenter) Resize(width float32) {
	p.mu.Lock()
	p.overlay.Resize(width)
	p.mu.Unlock()
	p.renderPlayer()
}

// CurrentView returns the visible page.
func (p *Presenter) CurrentView() domain.View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentView
}

// Theme returns the active theme.
func (p *Presenter) Theme() domain.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Shutdown unsubscribes and waits for running intents.
// It's safe to call multiple times (idempotent).
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, id := range p.subscriptions {
			p.bus.Unsubscribe(id)
		}

		p.mu.Lock()
		p.closed = true
		p.cancel()
		p.mu.Unlock()

		p.wg.Wait()
	})
}

// Verify the presenter serves every intent the surfaces send
var _ Intents = (*Presenter)(nil)
