package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hariomify/hariomify/internal/adapter/ui/fyne/widgets"
)

// PlayerBar is the desktop player docked at the bottom of the window.
// It is hidden while no track is current.
type PlayerBar struct {
	*playerControls

	expand *widget.Button
	root   *fyneapp.Container
}

// NewPlayerBar creates the desktop player surface.
func NewPlayerBar(intents PlayerIntents, thumbs *ThumbnailLoader) *PlayerBar {
	b := &PlayerBar{playerControls: newPlayerControls(intents, thumbs, 56)}

	b.expand = widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), intents.OpenFull)
	b.expand.Importance = widget.LowImportance

	info := widgets.NewTappable(
		container.NewBorder(nil, nil, b.cover, b.favorite,
			container.NewVBox(b.title, b.artist, b.errorText)),
		intents.OpenFull,
	)
	buttons := container.NewHBox(b.prev, b.play, b.next)
	progress := container.NewBorder(nil, nil, b.elapsed, b.total, b.seek)
	center := container.NewVBox(container.NewCenter(buttons), progress)
	volume := container.NewBorder(nil, nil, widget.NewIcon(theme.VolumeUpIcon()), b.expand, b.volume)

	b.root = container.NewPadded(container.NewGridWithColumns(3, info, center, volume))
	b.root.Hide()
	return b
}

// CanvasObject returns the bar's root object.
func (b *PlayerBar) CanvasObject() fyneapp.CanvasObject {
	return b.root
}

// Render shows vm.
func (b *PlayerBar) Render(vm PlayerViewModel) {
	if !vm.Visible {
		b.syncVolume(vm.Volume)
		b.root.Hide()
		return
	}
	b.render(vm)
	b.root.Show()
}
