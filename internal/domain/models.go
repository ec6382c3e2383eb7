// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the Hariomify music player.
package domain

import (
	"fmt"
	"time"
)

// Track represents a single playable catalog entry.
// Tracks are immutable once they are part of the playlist.
type Track struct {
	// ID is a unique identifier for the track
	ID string `yaml:"id" json:"id"`

	// Title is the song title
	Title string `yaml:"title" json:"title"`

	// Artist is the performing artist name
	Artist string `yaml:"artist" json:"artist"`

	// ThumbnailURL points at the artwork shown on cards and players
	ThumbnailURL string `yaml:"thumbnail" json:"thumbnail"`

	// DurationSeconds is the catalog duration of the track
	DurationSeconds int `yaml:"duration" json:"duration"`

	// AudioURL is the playable source (http(s) url or local path). Optional.
	AudioURL string `yaml:"audio_url,omitempty" json:"audio_url,omitempty"`

	// Genre is used by the browse view. Optional.
	Genre string `yaml:"genre,omitempty" json:"genre,omitempty"`
}

// HasAudio reports whether the track carries a playable source.
func (t Track) HasAudio() bool {
	return t.AudioURL != ""
}

// Genre is a static browse tile.
type Genre struct {
	Name     string `yaml:"name" json:"name"`
	Count    int    `yaml:"count" json:"count"`
	ImageURL string `yaml:"image" json:"image"`
}

// PlaybackState represents the current state of the music player.
// Exactly one exists per application; it is mutated only through
// MediaSession operations and the coordinator's track selection.
type PlaybackState struct {
	// CurrentTrack is the selected track (nil if none)
	CurrentTrack *Track

	// IsPlaying is true while the media resource is confirmed playing
	IsPlaying bool

	// CurrentTime is the playback position in seconds
	CurrentTime float64

	// Duration is the media duration in seconds (0 until metadata is known)
	Duration float64

	// Volume is the volume level in percent (0 to 100)
	Volume int

	// IsLoading is true between a load start and ready/error
	IsLoading bool

	// LastError is the user-visible message of the last failure ("" if none)
	LastError string
}

// HasError reports whether an error is currently active.
func (s PlaybackState) HasError() bool {
	return s.LastError != ""
}

// Validate checks the playback state invariants.
func (s PlaybackState) Validate() error {
	if s.CurrentTrack == nil {
		if s.IsPlaying {
			return NewValidationError("IsPlaying", s.IsPlaying, "must be false without a current track")
		}
		if s.CurrentTime != 0 {
			return NewValidationError("CurrentTime", s.CurrentTime, "must be 0 without a current track")
		}
	}
	if s.CurrentTime < 0 {
		return NewValidationError("CurrentTime", s.CurrentTime, "must not be negative")
	}
	if s.Duration > 0 && s.CurrentTime > s.Duration {
		return NewValidationError("CurrentTime", s.CurrentTime, fmt.Sprintf("must not exceed duration %.0f", s.Duration))
	}
	if s.Volume < 0 || s.Volume > 100 {
		return NewValidationError("Volume", s.Volume, "must be between 0 and 100")
	}
	return nil
}

// View identifies one of the application's routed pages.
type View int

const (
	// ViewHome is the landing page with the full playlist
	ViewHome View = iota

	// ViewBrowse is the search and genre page
	ViewBrowse

	// ViewFavorites lists favorited tracks
	ViewFavorites

	// ViewProfile shows listening stats
	ViewProfile
)

// Views lists every view in navigation order.
var Views = []View{ViewHome, ViewBrowse, ViewFavorites, ViewProfile}

// String returns a human-readable representation of the view.
func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewBrowse:
		return "browse"
	case ViewFavorites:
		return "favorites"
	case ViewProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// Title returns the navigation label of the view.
func (v View) Title() string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewBrowse:
		return "Browse"
	case ViewFavorites:
		return "Favorites"
	case ViewProfile:
		return "Profile"
	default:
		return ""
	}
}

// Theme is the UI color variant.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

// String returns a human-readable representation of the theme.
func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ActivityKind classifies a recent-activity entry on the profile page.
type ActivityKind int

const (
	ActivityPlayed ActivityKind = iota
	ActivityLiked
	ActivityUnliked
)

// String returns the label shown in the activity list.
func (k ActivityKind) String() string {
	switch k {
	case ActivityPlayed:
		return "Played"
	case ActivityLiked:
		return "Liked"
	case ActivityUnliked:
		return "Removed from favorites"
	default:
		return "Unknown"
	}
}

// Activity is one entry of the in-memory listening history.
type Activity struct {
	Kind    ActivityKind
	TrackID string
	Title   string
	Artist  string
	At      time.Time
}

// ListeningStats summarizes the session for the profile page.
type ListeningStats struct {
	SongsPlayed     int
	Favorites       int
	SecondsListened float64
}

// HoursListened returns SecondsListened in hours.
func (s ListeningStats) HoursListened() float64 {
	return s.SecondsListened / 3600
}
