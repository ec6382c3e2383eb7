package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/res"
)

// cardSize is the grid cell of a song card.
var cardSize = fyneapp.NewSize(180, 270)

// songCard shows one track with play and favorite buttons.
type songCard struct {
	track domain.Track

	cover    *canvas.Image
	title    *widget.Label
	artist   *widget.Label
	play     *widget.Button
	favorite *widget.Button
	root     fyneapp.CanvasObject
}

func newSongCard(track domain.Track, intents LibraryIntents, thumbs *ThumbnailLoader) *songCard {
	c := &songCard{track: track, cover: newCover(150)}
	thumbs.Apply(c.cover, track.ThumbnailURL)

	c.title = widget.NewLabel(track.Title)
	c.title.TextStyle = fyneapp.TextStyle{Bold: true}
	c.title.Truncation = fyneapp.TextTruncateEllipsis
	c.artist = widget.NewLabel(track.Artist)
	c.artist.Truncation = fyneapp.TextTruncateEllipsis

	c.play = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		intents.SelectTrack(c.track)
	})
	c.favorite = widget.NewButtonWithIcon("", res.HeartIcon, func() {
		intents.ToggleFavorite(c.track.ID)
	})
	c.favorite.Importance = widget.LowImportance

	duration := widget.NewLabel(FormatTime(float64(track.DurationSeconds)))
	c.root = container.NewVBox(
		c.cover,
		c.title,
		c.artist,
		container.NewHBox(c.play, layout.NewSpacer(), duration, c.favorite),
	)
	return c
}

func (c *songCard) render(state CardState) {
	if state.ShowsPause(c.track.ID) {
		c.play.SetIcon(theme.MediaPauseIcon())
	} else {
		c.play.SetIcon(theme.MediaPlayIcon())
	}
	if state.IsCurrent(c.track.ID) {
		c.play.Importance = widget.HighImportance
	} else {
		c.play.Importance = widget.MediumImportance
	}
	c.play.Refresh()

	if state.Favorites[c.track.ID] {
		c.favorite.SetIcon(res.HeartFilledIcon)
	} else {
		c.favorite.SetIcon(res.HeartIcon)
	}
}

// cardGrid is a wrapping grid of song cards that can be refilled.
type cardGrid struct {
	intents LibraryIntents
	thumbs  *ThumbnailLoader
	cards   []*songCard
	grid    *fyneapp.Container
}

func newCardGrid(intents LibraryIntents, thumbs *ThumbnailLoader, tracks []domain.Track) *cardGrid {
	g := &cardGrid{
		intents: intents,
		thumbs:  thumbs,
		grid:    container.NewGridWrap(cardSize),
	}
	g.set(tracks)
	return g
}

func (g *cardGrid) set(tracks []domain.Track) {
	g.cards = make([]*songCard, len(tracks))
	objects := make([]fyneapp.CanvasObject, len(tracks))
	for i, t := range tracks {
		g.cards[i] = newSongCard(t, g.intents, g.thumbs)
		objects[i] = g.cards[i].root
	}
	g.grid.Objects = objects
	g.grid.Refresh()
}

func (g *cardGrid) render(state CardState) {
	for _, c := range g.cards {
		c.render(state)
	}
}
