package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/adapter/eventbus"
	"github.com/hariomify/hariomify/internal/adapter/repository/memory"
	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/logger"
)

func newTestFavoritesService(t *testing.T) (*FavoritesService, *eventbus.SyncEventBus) {
	t.Helper()
	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })
	return NewFavoritesService(log, memory.NewFavoritesRepository(), bus), bus
}

func TestFavoritesService_ToggleTwiceRestores(t *testing.T) {
	service, _ := newTestFavoritesService(t)

	assert.True(t, service.Toggle("3"))
	assert.True(t, service.IsFavorite("3"))

	assert.False(t, service.Toggle("3"))
	assert.False(t, service.IsFavorite("3"))
	assert.Zero(t, service.Count())
}

func TestFavoritesService_TogglePublishes(t *testing.T) {
	service, bus := newTestFavoritesService(t)

	var got []domain.FavoriteToggledEvent
	bus.Subscribe(domain.EventFavoriteToggled, func(e domain.Event) {
		got = append(got, e.(domain.FavoriteToggledEvent))
	})

	service.Toggle("1")
	service.Toggle("1")

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].TrackID)
	assert.True(t, got[0].IsFavorite)
	assert.False(t, got[1].IsFavorite)
}

func TestFavoritesService_ListAndCount(t *testing.T) {
	service, _ := newTestFavoritesService(t)

	service.Toggle("5")
	service.Toggle("2")
	service.Toggle("9")
	service.Toggle("2")

	assert.Equal(t, []string{"5", "9"}, service.List())
	assert.Equal(t, 2, service.Count())
}

func TestFavoritesService_Tracks(t *testing.T) {
	service, _ := newTestFavoritesService(t)
	playlist := createTestPlaylist(4)

	service.Toggle("4")
	service.Toggle("2")
	service.Toggle("unknown")

	tracks := service.Tracks(playlist)

	require.Len(t, tracks, 2)
	assert.Equal(t, "2", tracks[0].ID, "tracks follow playlist order")
	assert.Equal(t, "4", tracks[1].ID)
}

func TestFavoritesService_ConcurrentToggle(t *testing.T) {
	service, _ := newTestFavoritesService(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.Toggle("7")
		}()
	}
	wg.Wait()

	assert.False(t, service.IsFavorite("7"), "an even number of toggles leaves the id out")
}

func TestFavoritesService_EventsFollowToggleOrder(t *testing.T) {
	service, bus := newTestFavoritesService(t)

	var mu sync.Mutex
	var flags []bool
	bus.Subscribe(domain.EventFavoriteToggled, func(e domain.Event) {
		mu.Lock()
		defer mu.Unlock()
		flags = append(flags, e.(domain.FavoriteToggledEvent).IsFavorite)
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			service.Toggle("7")
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, flags, 100)
	for i, isFavorite := range flags {
		assert.Equal(t, i%2 == 0, isFavorite, "event %d", i)
	}
}
