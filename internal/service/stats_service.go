package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// maxListenStep is the largest position jump counted as listening time.
// Larger jumps are seeks.
const maxListenStep = 2.0

// TrackLookup resolves a track id to its catalog entry.
type TrackLookup interface {
	TrackByID(id string) (domain.Track, error)
}

// StatsService derives the profile statistics from bus events.
// Nothing is persisted; the numbers cover the running process only.
type StatsService struct {
	logger    *slog.Logger
	bus       ports.EventBus
	activity  ports.ActivityRepository
	tracks    TrackLookup
	favorites *FavoritesService
	now       func() time.Time

	mu           sync.Mutex
	selected     *domain.Track
	counted      bool
	listening    bool
	lastPosition float64
	songsPlayed  int
	seconds      float64

	subscriptions []domain.SubscriptionID
	shutdownOnce  sync.Once
}

// NewStatsService creates a stats service and subscribes it to the bus.
func NewStatsService(
	logger *slog.Logger,
	bus ports.EventBus,
	activity ports.ActivityRepository,
	tracks TrackLookup,
	favorites *FavoritesService,
) *StatsService {
	s := &StatsService{
		logger:    logger.With(slog.String("service", "stats")),
		bus:       bus,
		activity:  activity,
		tracks:    tracks,
		favorites: favorites,
		now:       time.Now,
	}

	handlers := map[domain.EventType]domain.EventHandler{
		domain.EventTrackSelected:   s.onTrackSelected,
		domain.EventPlaying:         s.onPlaying,
		domain.EventProgress:        s.onProgress,
		domain.EventPaused:          s.onStopListening,
		domain.EventTrackEnded:      s.onStopListening,
		domain.EventStopped:         s.onStopListening,
		domain.EventMediaError:      s.onStopListening,
		domain.EventFavoriteToggled: s.onFavoriteToggled,
	}
	for eventType, handler := range handlers {
		s.subscriptions = append(s.subscriptions, bus.Subscribe(eventType, handler))
	}

	return s
}

// Stats returns the current totals.
func (s *StatsService) Stats() domain.ListeningStats {
	s.mu.Lock()
	stats := domain.ListeningStats{
		SongsPlayed:     s.songsPlayed,
		SecondsListened: s.seconds,
	}
	s.mu.Unlock()

	stats.Favorites = s.favorites.Count()
	return stats
}

// RecentActivity returns up to n entries, newest first.
func (s *StatsService) RecentActivity(n int) []domain.Activity {
	return s.activity.Recent(n)
}

func (s *StatsService) onTrackSelected(event domain.Event) {
	e, ok := event.(domain.TrackSelectedEvent)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	track := e.Track
	s.selected = &track
	s.counted = false
	s.listening = false
	s.lastPosition = 0
}

// onPlaying counts a song once per selection, however often it is resumed.
func (s *StatsService) onPlaying(domain.Event) {
	s.mu.Lock()
	s.listening = true
	if s.selected == nil || s.counted {
		s.mu.Unlock()
		return
	}
	s.counted = true
	s.songsPlayed++
	track := *s.selected
	s.mu.Unlock()

	s.record(domain.ActivityPlayed, track)
}

func (s *StatsService) onProgress(event domain.Event) {
	e, ok := event.(domain.ProgressEvent)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	step := e.Position - s.lastPosition
	if s.listening && step > 0 && step <= maxListenStep {
		s.seconds += step
	}
	s.lastPosition = e.Position
}

func (s *StatsService) onStopListening(domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listening = false
}

func (s *StatsService) onFavoriteToggled(event domain.Event) {
	e, ok := event.(domain.FavoriteToggledEvent)
	if !ok {
		return
	}

	track, err := s.tracks.TrackByID(e.TrackID)
	if err != nil {
		s.logger.Debug("favorite outside catalog", slog.String("track_id", e.TrackID))
		track = domain.Track{ID: e.TrackID}
	}

	kind := domain.ActivityUnliked
	if e.IsFavorite {
		kind = domain.ActivityLiked
	}
	s.record(kind, track)
}

func (s *StatsService) record(kind domain.ActivityKind, track domain.Track) {
	s.activity.Append(domain.Activity{
		Kind:    kind,
		TrackID: track.ID,
		Title:   track.Title,
		Artist:  track.Artist,
		At:      s.now(),
	})
}

// Shutdown unsubscribes from the bus. It's safe to call multiple times.
func (s *StatsService) Shutdown() {
	s.shutdownOnce.Do(func() {
		for _, id := range s.subscriptions {
			s.bus.Unsubscribe(id)
		}
	})
}
