package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/adapter/eventbus"
	"github.com/hariomify/hariomify/internal/adapter/media/mock"
	"github.com/hariomify/hariomify/internal/adapter/repository/memory"
	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/logger"
)

// playlistLookup resolves ids against a fixed playlist.
type playlistLookup []domain.Track

func (p playlistLookup) TrackByID(id string) (domain.Track, error) {
	for _, t := range p {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Track{}, domain.ErrTrackNotFound
}

type statsFixture struct {
	stats       *StatsService
	coordinator *PlaybackCoordinator
	session     *MediaSession
	resource    *mock.Resource
	favorites   *FavoritesService
}

var statsClock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStats(t *testing.T) statsFixture {
	t.Helper()
	log := logger.NewTestLogger()
	bus := eventbus.NewSyncEventBus(log)
	playlist := createTestPlaylist(3)

	resource := mock.NewResource(log)
	session := NewMediaSession(log, resource, bus)
	coordinator := NewPlaybackCoordinator(log, session, bus, playlist)
	favorites := NewFavoritesService(log, memory.NewFavoritesRepository(), bus)
	stats := NewStatsService(log, bus, memory.NewActivityRepository(10), playlistLookup(playlist), favorites)
	stats.now = func() time.Time { return statsClock }

	t.Cleanup(func() {
		stats.Shutdown()
		coordinator.Shutdown()
		_ = bus.Close()
	})

	return statsFixture{
		stats:       stats,
		coordinator: coordinator,
		session:     session,
		resource:    resource,
		favorites:   favorites,
	}
}

func TestStatsService_Initial(t *testing.T) {
	f := newTestStats(t)

	assert.Equal(t, domain.ListeningStats{}, f.stats.Stats())
	assert.Empty(t, f.stats.RecentActivity(5))
}

func TestStatsService_CountsSongOncePerSelection(t *testing.T) {
	f := newTestStats(t)
	ctx := context.Background()
	track := createTestTrack(1)

	require.NoError(t, f.coordinator.SelectTrack(ctx, track))
	require.NoError(t, f.coordinator.TogglePlayPause(ctx)) // pause
	require.NoError(t, f.coordinator.TogglePlayPause(ctx)) // resume

	assert.Equal(t, 1, f.stats.Stats().SongsPlayed)

	require.NoError(t, f.coordinator.Next(ctx))
	assert.Equal(t, 2, f.stats.Stats().SongsPlayed)

	activity := f.stats.RecentActivity(0)
	require.Len(t, activity, 2)
	assert.Equal(t, domain.ActivityPlayed, activity[0].Kind)
	assert.Equal(t, "Song 2", activity[0].Title)
	assert.Equal(t, "Song 1", activity[1].Title)
	assert.Equal(t, statsClock, activity[1].At)
}

func TestStatsService_FailedPlayIsNotCounted(t *testing.T) {
	f := newTestStats(t)
	f.resource.SetFailPlay(true)

	err := f.coordinator.SelectTrack(context.Background(), createTestTrack(1))
	require.Error(t, err)

	assert.Zero(t, f.stats.Stats().SongsPlayed)
}

func TestStatsService_AccumulatesListeningTime(t *testing.T) {
	f := newTestStats(t)
	ctx := context.Background()

	require.NoError(t, f.coordinator.SelectTrack(ctx, createTestTrack(1)))
	for i := 0; i < 3; i++ {
		f.resource.Advance(1)
	}
	assert.InDelta(t, 3.0, f.stats.Stats().SecondsListened, 0.001)

	// Paused time and seeks do not count.
	f.session.Pause()
	require.NoError(t, f.session.Seek(100))
	require.NoError(t, f.coordinator.TogglePlayPause(ctx))
	f.resource.Advance(1)

	stats := f.stats.Stats()
	assert.InDelta(t, 4.0, stats.SecondsListened, 0.001)
	assert.InDelta(t, 4.0/3600, stats.HoursListened(), 1e-9)
}

func TestStatsService_SeekWhilePlayingIsNotListening(t *testing.T) {
	f := newTestStats(t)

	require.NoError(t, f.coordinator.SelectTrack(context.Background(), createTestTrack(1)))
	require.NoError(t, f.session.Seek(60))

	assert.Zero(t, f.stats.Stats().SecondsListened)
}

func TestStatsService_FavoriteActivity(t *testing.T) {
	f := newTestStats(t)

	f.favorites.Toggle("2")
	f.favorites.Toggle("3")
	f.favorites.Toggle("2")
	f.favorites.Toggle("unknown")

	assert.Equal(t, 2, f.stats.Stats().Favorites)

	activity := f.stats.RecentActivity(0)
	require.Len(t, activity, 4)
	assert.Equal(t, domain.ActivityLiked, activity[0].Kind)
	assert.Equal(t, "unknown", activity[0].TrackID)
	assert.Empty(t, activity[0].Title)
	assert.Equal(t, domain.ActivityUnliked, activity[1].Kind)
	assert.Equal(t, "Song 2", activity[1].Title)
	assert.Equal(t, domain.ActivityLiked, activity[2].Kind)
	assert.Equal(t, "Song 3", activity[2].Title)
}

func TestStatsService_ShutdownStopsCounting(t *testing.T) {
	f := newTestStats(t)

	f.stats.Shutdown()
	f.stats.Shutdown()
	f.favorites.Toggle("1")

	assert.Empty(t, f.stats.RecentActivity(0))
}

func TestActivityKind_String(t *testing.T) {
	assert.Equal(t, "Played", domain.ActivityPlayed.String())
	assert.Equal(t, "Liked", domain.ActivityLiked.String())
	assert.Equal(t, "Removed from favorites", domain.ActivityUnliked.String())
	assert.Equal(t, "Unknown", domain.ActivityKind(9).String())
}
