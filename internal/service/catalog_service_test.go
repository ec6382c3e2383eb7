package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/adapter/catalog"
	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/logger"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	log := logger.NewTestLogger()
	source, err := catalog.Default(log)
	require.NoError(t, err)
	return NewCatalogService(log, source)
}

func titles(tracks []domain.Track) []string {
	return lo.Map(tracks, func(t domain.Track, _ int) string { return t.Title })
}

func TestCatalogService_Search(t *testing.T) {
	service := newTestCatalogService(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match ignores case", "ocean", []string{"Ocean Breeze"}},
		{"artist match", "NEON", []string{"Electric Pulse"}},
		{"substring across entries", "dream", []string{"Midnight Dreams", "Starlight Serenade"}},
		{"no match", "zzz", []string{}},
		{"surrounding space ignored", "  cosmic ", []string{"Cosmic Dance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(service.Search(tt.query)))
		})
	}
}

func TestCatalogService_EmptySearchReturnsAll(t *testing.T) {
	service := newTestCatalogService(t)

	assert.Len(t, service.Search(""), 10)
}

func TestCatalogService_TrackByID(t *testing.T) {
	service := newTestCatalogService(t)

	track, err := service.TrackByID("4")
	require.NoError(t, err)
	assert.Equal(t, "Digital Love", track.Title)

	_, err = service.TrackByID("404")
	assert.ErrorIs(t, err, domain.ErrTrackNotFound)
}

func TestCatalogService_Genres(t *testing.T) {
	service := newTestCatalogService(t)

	genres := service.Genres()
	assert.Equal(t,
		[]string{"Electronic", "Ambient", "Pop", "Rock", "Jazz", "Classical"},
		lo.Map(genres, func(g domain.Genre, _ int) string { return g.Name }))
	assert.Equal(t, 32, genres[2].Count)
}

func TestCatalogService_ByGenre(t *testing.T) {
	service := newTestCatalogService(t)

	assert.Equal(t,
		[]string{"Midnight Dreams", "Ocean Breeze", "Forest Whispers"},
		titles(service.ByGenre("ambient")))
	assert.Empty(t, service.ByGenre("Metal"))
}
