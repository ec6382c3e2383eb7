package fyne

import (
	"fmt"
	"math"
	"strconv"

	"github.com/hariomify/hariomify/internal/domain"
)

// PlayIcon selects the glyph of the play/pause button.
type PlayIcon int

const (
	IconPlay PlayIcon = iota
	IconPause
	IconLoading
)

// FavoriteChecker reports favorite membership.
type FavoriteChecker interface {
	IsFavorite(id string) bool
}

// PlayerViewModel is everything a player surface renders. Surfaces never
// derive these values themselves.
type PlayerViewModel struct {
	Visible bool

	TrackID      string
	Title        string
	Artist       string
	ThumbnailURL string
	IsFavorite   bool

	Elapsed     string
	Total       string
	Position    float64
	ProgressMax float64
	Volume      float64

	Icon             PlayIcon
	ControlsDisabled bool
	SeekDisabled     bool
	ErrorText        string
}

// BuildPlayerViewModel derives the surface state from a playback snapshot.
func BuildPlayerViewModel(state domain.PlaybackState, favorites FavoriteChecker) PlayerViewModel {
	vm := PlayerViewModel{
		Volume:      float64(state.Volume),
		Elapsed:     FormatTime(0),
		Total:       FormatTime(0),
		ProgressMax: 1,
		Icon:        IconPlay,
	}

	track := state.CurrentTrack
	if track == nil {
		vm.ControlsDisabled = true
		vm.SeekDisabled = true
		return vm
	}

	total := state.Duration
	if total <= 0 {
		total = float64(track.DurationSeconds)
	}

	vm.Visible = true
	vm.TrackID = track.ID
	vm.Title = track.Title
	vm.Artist = track.Artist
	vm.ThumbnailURL = track.ThumbnailURL
	vm.IsFavorite = favorites != nil && favorites.IsFavorite(track.ID)
	vm.Elapsed = FormatTime(state.CurrentTime)
	vm.Total = FormatTime(total)
	vm.Position = state.CurrentTime
	if total > 0 {
		vm.ProgressMax = total
		vm.Position = math.Min(state.CurrentTime, total)
	}
	vm.ErrorText = state.LastError
	vm.ControlsDisabled = state.IsLoading || state.HasError()
	vm.SeekDisabled = !track.HasAudio()

	switch {
	case state.IsLoading:
		vm.Icon = IconLoading
	case state.IsPlaying:
		vm.Icon = IconPause
	}
	return vm
}

// FormatTime renders seconds as m:ss. Negative and NaN values show 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// CardState is what every song card needs besides its own track.
type CardState struct {
	CurrentTrackID string
	IsPlaying      bool
	Favorites      map[string]bool
}

// IsCurrent reports whether id is the current track.
func (s CardState) IsCurrent(id string) bool {
	return s.CurrentTrackID != "" && s.CurrentTrackID == id
}

// ShowsPause reports whether the card of id shows a pause button.
func (s CardState) ShowsPause(id string) bool {
	return s.IsCurrent(id) && s.IsPlaying
}

// BrowseViewModel is the result list of the browse page.
type BrowseViewModel struct {
	Query      string
	Heading    string
	Tracks     []domain.Track
	ShowGenres bool
	Empty      bool
}

// BuildBrowseViewModel describes the browse page for query and its results.
// Genre tiles are hidden while a query is set.
func BuildBrowseViewModel(query string, results []domain.Track) BrowseViewModel {
	vm := BrowseViewModel{
		Query:      query,
		Tracks:     results,
		ShowGenres: query == "",
		Heading:    "All Songs",
		Empty:      len(results) == 0,
	}
	if query != "" {
		vm.Heading = fmt.Sprintf("Search Results (%d)", len(results))
	}
	return vm
}

// BuildGenreViewModel describes the browse page filtered to one genre.
func BuildGenreViewModel(genre string, results []domain.Track) BrowseViewModel {
	return BrowseViewModel{
		Heading: fmt.Sprintf("%s (%d)", genre, len(results)),
		Tracks:  results,
		Empty:   len(results) == 0,
	}
}

// FavoritesSubtitle reads "1 song you love" or "N songs you love".
func FavoritesSubtitle(count int) string {
	if count == 1 {
		return "1 song you love"
	}
	return strconv.Itoa(count) + " songs you love"
}

// ActivityItem is one row of the profile's recent activity.
type ActivityItem struct {
	Action string
	Detail string
	When   string
}

// ProfileViewModel holds the profile page statistics.
type ProfileViewModel struct {
	SongsPlayed   string
	Favorites     string
	HoursListened string
	Activity      []ActivityItem
}

// BuildProfileViewModel formats stats and activity for display.
func BuildProfileViewModel(stats domain.ListeningStats, activity []domain.Activity) ProfileViewModel {
	vm := ProfileViewModel{
		SongsPlayed:   strconv.Itoa(stats.SongsPlayed),
		Favorites:     strconv.Itoa(stats.Favorites),
		HoursListened: strconv.FormatFloat(stats.HoursListened(), 'f', 1, 64),
		Activity:      make([]ActivityItem, 0, len(activity)),
	}
	for _, a := range activity {
		detail := a.Title
		if a.Artist != "" {
			detail = fmt.Sprintf("%s by %s", a.Title, a.Artist)
		}
		if detail == "" {
			detail = a.TrackID
		}
		vm.Activity = append(vm.Activity, ActivityItem{
			Action: a.Kind.String(),
			Detail: detail,
			When:   a.At.Format("15:04"),
		})
	}
	return vm
}
