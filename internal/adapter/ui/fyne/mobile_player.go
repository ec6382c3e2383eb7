package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MobilePlayer is the full-screen player shown over narrow windows.
// Its visibility is decided by the presenter's OverlayState.
type MobilePlayer struct {
	*playerControls

	close      *widget.Button
	background *canvas.Rectangle
	root       *fyneapp.Container
}

// NewMobilePlayer creates the overlay player surface.
func NewMobilePlayer(intents PlayerIntents, thumbs *ThumbnailLoader) *MobilePlayer {
	m := &MobilePlayer{playerControls: newPlayerControls(intents, thumbs, 280)}

	m.close = widget.NewButtonWithIcon("", theme.MoveDownIcon(), intents.CloseFull)
	m.close.Importance = widget.LowImportance
	m.title.Alignment = fyneapp.TextAlignCenter
	m.artist.Alignment = fyneapp.TextAlignCenter

	from := widget.NewLabel("PLAYING FROM PLAYLIST")
	from.Alignment = fyneapp.TextAlignCenter
	from.TextStyle = fyneapp.TextStyle{Italic: true}

	header := container.NewBorder(nil, nil, m.close, nil, from)
	progress := container.NewBorder(nil, nil, m.elapsed, m.total, m.seek)
	buttons := container.NewCenter(container.NewHBox(m.prev, m.play, m.next))
	volume := container.NewBorder(nil, nil, widget.NewIcon(theme.VolumeDownIcon()), widget.NewIcon(theme.VolumeUpIcon()), m.volume)

	body := container.NewVBox(
		header,
		layout.NewSpacer(),
		container.NewCenter(m.cover),
		container.NewBorder(nil, nil, nil, m.favorite, container.NewVBox(m.title, m.artist)),
		m.errorText,
		progress,
		buttons,
		volume,
		layout.NewSpacer(),
	)

	m.background = canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
	m.root = container.NewStack(m.background, container.NewPadded(body))
	m.root.Hide()
	return m
}

// CanvasObject returns the overlay's root object.
func (m *MobilePlayer) CanvasObject() fyneapp.CanvasObject {
	return m.root
}

// Render shows vm without changing visibility.
func (m *MobilePlayer) Render(vm PlayerViewModel) {
	if vm.Visible {
		m.render(vm)
	}
}

// SetVisible shows or hides the overlay.
func (m *MobilePlayer) SetVisible(visible bool) {
	if visible {
		m.background.FillColor = theme.Color(theme.ColorNameBackground)
		m.background.Refresh()
		m.root.Show()
	} else {
		m.root.Hide()
	}
}
