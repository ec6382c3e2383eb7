package fyne

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hariomify/hariomify/internal/domain"
)

type favoriteSet map[string]bool

func (f favoriteSet) IsFavorite(id string) bool { return f[id] }

func testTrack() *domain.Track {
	return &domain.Track{
		ID:              "3",
		Title:           "Ocean Breeze",
		Artist:          "Coastal Vibes",
		ThumbnailURL:    "https://example.com/3.jpg",
		DurationSeconds: 195,
		AudioURL:        "https://example.com/3.mp3",
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59.9, "0:59"},
		{60, "1:00"},
		{195, "3:15"},
		{3600, "60:00"},
		{-3, "0:00"},
		{math.NaN(), "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.seconds))
		})
	}
}

func TestBuildPlayerViewModel_NoTrack(t *testing.T) {
	vm := BuildPlayerViewModel(domain.PlaybackState{Volume: 75}, favoriteSet{})

	assert.False(t, vm.Visible)
	assert.True(t, vm.ControlsDisabled)
	assert.True(t, vm.SeekDisabled)
	assert.Equal(t, 75.0, vm.Volume)
	assert.Equal(t, "0:00", vm.Elapsed)
	assert.Equal(t, 1.0, vm.ProgressMax)
}

func TestBuildPlayerViewModel_Playing(t *testing.T) {
	state := domain.PlaybackState{
		CurrentTrack: testTrack(),
		IsPlaying:    true,
		CurrentTime:  65,
		Duration:     200,
		Volume:       40,
	}

	vm := BuildPlayerViewModel(state, favoriteSet{"3": true})

	assert.True(t, vm.Visible)
	assert.Equal(t, "Ocean Breeze", vm.Title)
	assert.Equal(t, "Coastal Vibes", vm.Artist)
	assert.Equal(t, "https://example.com/3.jpg", vm.ThumbnailURL)
	assert.True(t, vm.IsFavorite)
	assert.Equal(t, "1:05", vm.Elapsed)
	assert.Equal(t, "3:20", vm.Total)
	assert.Equal(t, 65.0, vm.Position)
	assert.Equal(t, 200.0, vm.ProgressMax)
	assert.Equal(t, IconPause, vm.Icon)
	assert.False(t, vm.ControlsDisabled)
	assert.False(t, vm.SeekDisabled)
	assert.Empty(t, vm.ErrorText)
}

func TestBuildPlayerViewModel_UnknownDurationUsesCatalog(t *testing.T) {
	vm := BuildPlayerViewModel(domain.PlaybackState{CurrentTrack: testTrack()}, nil)

	assert.Equal(t, "3:15", vm.Total)
	assert.Equal(t, 195.0, vm.ProgressMax)
	assert.False(t, vm.IsFavorite)
	assert.Equal(t, IconPlay, vm.Icon)
}

func TestBuildPlayerViewModel_LoadingDisablesControls(t *testing.T) {
	vm := BuildPlayerViewModel(domain.PlaybackState{CurrentTrack: testTrack(), IsLoading: true}, nil)

	assert.Equal(t, IconLoading, vm.Icon)
	assert.True(t, vm.ControlsDisabled)
}

func TestBuildPlayerViewModel_ErrorDisablesControls(t *testing.T) {
	state := domain.PlaybackState{CurrentTrack: testTrack(), LastError: domain.MessageLoadFailed}

	vm := BuildPlayerViewModel(state, nil)

	assert.True(t, vm.ControlsDisabled)
	assert.Equal(t, "Failed to load audio file", vm.ErrorText)
}

func TestBuildPlayerViewModel_NoAudioDisablesSeek(t *testing.T) {
	track := testTrack()
	track.AudioURL = ""

	vm := BuildPlayerViewModel(domain.PlaybackState{CurrentTrack: track}, nil)

	assert.True(t, vm.SeekDisabled)
}

func TestCardState(t *testing.T) {
	state := CardState{CurrentTrackID: "2", IsPlaying: true}

	assert.True(t, state.IsCurrent("2"))
	assert.True(t, state.ShowsPause("2"))
	assert.False(t, state.ShowsPause("3"))

	state.IsPlaying = false
	assert.False(t, state.ShowsPause("2"))

	assert.False(t, CardState{}.IsCurrent(""))
}

func TestBuildBrowseViewModel(t *testing.T) {
	tracks := []domain.Track{*testTrack()}

	all := BuildBrowseViewModel("", tracks)
	assert.Equal(t, "All Songs", all.Heading)
	assert.True(t, all.ShowGenres)
	assert.False(t, all.Empty)

	found := BuildBrowseViewModel("ocean", tracks)
	assert.Equal(t, "Search Results (1)", found.Heading)
	assert.False(t, found.ShowGenres)

	none := BuildBrowseViewModel("zzz", nil)
	assert.Equal(t, "Search Results (0)", none.Heading)
	assert.True(t, none.Empty)
}

func TestBuildGenreViewModel(t *testing.T) {
	vm := BuildGenreViewModel("Jazz", []domain.Track{*testTrack()})

	assert.Equal(t, "Jazz (1)", vm.Heading)
	assert.False(t, vm.ShowGenres)
}

func TestFavoritesSubtitle(t *testing.T) {
	assert.Equal(t, "0 songs you love", FavoritesSubtitle(0))
	assert.Equal(t, "1 song you love", FavoritesSubtitle(1))
	assert.Equal(t, "4 songs you love", FavoritesSubtitle(4))
}

func TestBuildProfileViewModel(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	stats := domain.ListeningStats{SongsPlayed: 3, Favorites: 2, SecondsListened: 5400}
	activity := []domain.Activity{
		{Kind: domain.ActivityLiked, TrackID: "3", Title: "Ocean Breeze", Artist: "Coastal Vibes", At: at},
		{Kind: domain.ActivityPlayed, TrackID: "x", At: at},
	}

	vm := BuildProfileViewModel(stats, activity)

	assert.Equal(t, "3", vm.SongsPlayed)
	assert.Equal(t, "2", vm.Favorites)
	assert.Equal(t, "1.5", vm.HoursListened)
	assert.Equal(t, []ActivityItem{
		{Action: "Liked", Detail: "Ocean Breeze by Coastal Vibes", When: "09:30"},
		{Action: "Played", Detail: "x", When: "09:30"},
	}, vm.Activity)
}
