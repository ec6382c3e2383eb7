package fyne

import "github.com/hariomify/hariomify/internal/domain"

// PlayerIntents is what the player surfaces may ask for.
type PlayerIntents interface {
	PlayPause()
	Next()
	Previous()
	Seek(seconds float64)
	ChangeVolume(percent float64)
	ToggleFavorite(trackID string)
	OpenFull()
	CloseFull()
}

// LibraryIntents is what the pages and the navigation may ask for.
type LibraryIntents interface {
	SelectTrack(track domain.Track)
	ToggleFavorite(trackID string)
	PlayRandom()
	Navigate(view domain.View)
	ToggleTheme()
	Search(query string) BrowseViewModel
	BrowseGenre(genre string) BrowseViewModel
	Resize(width float32)
}

// Intents is the full set the presenter implements.
type Intents interface {
	PlayerIntents
	LibraryIntents
}
