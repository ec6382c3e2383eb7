package service

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// FavoritesService manages the in-memory set of favorite tracks.
//
// Thread-safety: Toggle is serialized, including its FavoriteToggled event, so
// subscribers see toggles of one id in the order they happened. Handlers of
// that event must not call Toggle.
type FavoritesService struct {
	logger *slog.Logger
	repo   ports.FavoritesRepository
	bus    ports.EventBus

	mu sync.Mutex
}

// NewFavoritesService creates a new favorites service.
func NewFavoritesService(logger *slog.Logger, repo ports.FavoritesRepository, bus ports.EventBus) *FavoritesService {
	return &FavoritesService{
		logger: logger.With(slog.String("service", "favorites")),
		repo:   repo,
		bus:    bus,
	}
}

// Toggle adds id if absent and removes it if present. It returns the new membership.
func (s *FavoritesService) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	isFavorite := !s.repo.Contains(id)
	if isFavorite {
		s.repo.Add(id)
	} else {
		s.repo.Remove(id)
	}

	s.logger.Debug("favorite toggled", slog.String("track_id", id), slog.Bool("favorite", isFavorite))
	s.bus.Publish(domain.NewFavoriteToggledEvent(id, isFavorite))
	return isFavorite
}

// IsFavorite reports whether id is a favorite.
func (s *FavoritesService) IsFavorite(id string) bool {
	return s.repo.Contains(id)
}

// List returns the favorite ids in the order they were added.
func (s *FavoritesService) List() []string {
	return s.repo.List()
}

// Count returns the number of favorites.
func (s *FavoritesService) Count() int {
	return s.repo.Count()
}

// Tracks returns the favorited entries of playlist, in playlist order.
func (s *FavoritesService) Tracks(playlist []domain.Track) []domain.Track {
	return lo.Filter(playlist, func(t domain.Track, _ int) bool {
		return s.repo.Contains(t.ID)
	})
}
