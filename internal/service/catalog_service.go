package service

import (
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

// CatalogService exposes the read-only playlist and browse data.
// The catalog is fixed at construction, so no locking is needed.
type CatalogService struct {
	logger *slog.Logger
	tracks []domain.Track
	genres []domain.Genre
	byID   map[string]domain.Track
}

// NewCatalogService snapshots source into a new catalog service.
func NewCatalogService(logger *slog.Logger, source ports.CatalogSource) *CatalogService {
	tracks := source.Tracks()
	s := &CatalogService{
		logger: logger.With(slog.String("service", "catalog")),
		tracks: tracks,
		genres: source.Genres(),
		byID:   lo.KeyBy(tracks, func(t domain.Track) string { return t.ID }),
	}

	s.logger.Debug("catalog loaded",
		slog.Int("tracks", len(s.tracks)),
		slog.Int("genres", len(s.genres)))
	return s
}

// Tracks returns the playlist in display order.
func (s *CatalogService) Tracks() []domain.Track {
	return append([]domain.Track(nil), s.tracks...)
}

// Genres returns the browse tiles.
func (s *CatalogService) Genres() []domain.Genre {
	return append([]domain.Genre(nil), s.genres...)
}

// TrackByID looks up a track.
func (s *CatalogService) TrackByID(id string) (domain.Track, error) {
	t, ok := s.byID[id]
	if !ok {
		return domain.Track{}, domain.ErrTrackNotFound
	}
	return t, nil
}

// Search returns the tracks whose title or artist contains query,
// ignoring case. An empty query matches every track.
func (s *CatalogService) Search(query string) []domain.Track {
	q := strings.ToLower(strings.TrimSpace(query))
	return lo.Filter(s.tracks, func(t domain.Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Artist), q)
	})
}

// ByGenre returns the tracks of a genre, ignoring case.
func (s *CatalogService) ByGenre(genre string) []domain.Track {
	return lo.Filter(s.tracks, func(t domain.Track, _ int) bool {
		return strings.EqualFold(t.Genre, genre)
	})
}
