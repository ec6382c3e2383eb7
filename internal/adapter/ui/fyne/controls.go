package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hariomify/hariomify/res"
)

// playerControls is the widget set both player surfaces lay out.
// render only copies view model fields onto widgets.
type playerControls struct {
	intents PlayerIntents
	thumbs  *ThumbnailLoader

	cover     *canvas.Image
	title     *widget.Label
	artist    *widget.Label
	errorText *widget.Label
	favorite  *widget.Button
	prev      *widget.Button
	play      *widget.Button
	next      *widget.Button
	elapsed   *widget.Label
	total     *widget.Label
	seek      *widget.Slider
	volume    *widget.Slider

	trackID  string
	coverURL string
}

func newPlayerControls(intents PlayerIntents, thumbs *ThumbnailLoader, coverSize float32) *playerControls {
	c := &playerControls{
		intents: intents,
		thumbs:  thumbs,
		cover:   newCover(coverSize),
	}

	c.title = widget.NewLabel("")
	c.title.TextStyle = fyneapp.TextStyle{Bold: true}
	c.title.Truncation = fyneapp.TextTruncateEllipsis
	c.artist = widget.NewLabel("")
	c.artist.Truncation = fyneapp.TextTruncateEllipsis
	c.errorText = widget.NewLabel("")
	c.errorText.Importance = widget.DangerImportance
	c.errorText.Hide()

	c.favorite = widget.NewButtonWithIcon("", res.HeartIcon, func() {
		if c.trackID != "" {
			c.intents.ToggleFavorite(c.trackID)
		}
	})
	c.favorite.Importance = widget.LowImportance
	c.prev = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), intents.Previous)
	c.play = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), intents.PlayPause)
	c.play.Importance = widget.HighImportance
	c.next = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), intents.Next)

	c.elapsed = widget.NewLabel(FormatTime(0))
	c.total = widget.NewLabel(FormatTime(0))
	c.seek = widget.NewSlider(0, 1)
	c.seek.OnChangeEnded = intents.Seek

	c.volume = widget.NewSlider(0, 100)
	c.volume.OnChanged = intents.ChangeVolume

	return c
}

func (c *playerControls) render(vm PlayerViewModel) {
	c.trackID = vm.TrackID
	c.title.SetText(vm.Title)
	c.artist.SetText(vm.Artist)

	if vm.ThumbnailURL != c.coverURL {
		c.coverURL = vm.ThumbnailURL
		c.thumbs.Apply(c.cover, vm.ThumbnailURL)
	}

	if vm.IsFavorite {
		c.favorite.SetIcon(res.HeartFilledIcon)
	} else {
		c.favorite.SetIcon(res.HeartIcon)
	}

	switch vm.Icon {
	case IconLoading:
		c.play.SetIcon(theme.ViewRefreshIcon())
	case IconPause:
		c.play.SetIcon(theme.MediaPauseIcon())
	default:
		c.play.SetIcon(theme.MediaPlayIcon())
	}
	setEnabled(c.play, !vm.ControlsDisabled)

	c.elapsed.SetText(vm.Elapsed)
	c.total.SetText(vm.Total)
	c.seek.Max = vm.ProgressMax
	c.seek.Value = vm.Position
	setEnabled(c.seek, !vm.SeekDisabled)
	c.seek.Refresh()

	c.syncVolume(vm.Volume)

	c.errorText.SetText(vm.ErrorText)
	if vm.ErrorText == "" {
		c.errorText.Hide()
	} else {
		c.errorText.Show()
	}
}

// syncVolume moves the volume slider without firing OnChanged.
func (c *playerControls) syncVolume(volume float64) {
	if c.volume.Value == volume {
		return
	}
	c.volume.Value = volume
	c.volume.Refresh()
}

func setEnabled(w fyneapp.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}
