package fyne

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/hariomify/hariomify/res"
)

// AboutDialog shows the application description and version.
type AboutDialog struct {
	window  fyne.Window
	version string
}

// NewAboutDialog creates a new about dialog.
func NewAboutDialog(window fyne.Window, version string) *AboutDialog {
	return &AboutDialog{
		window:  window,
		version: version,
	}
}

// Content returns the dialog body.
func (d *AboutDialog) Content() fyne.CanvasObject {
	title := widget.NewLabel(AppName + " " + d.version)
	title.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewVBox(
		container.NewHBox(widget.NewIcon(res.AppIcon), title),
		widget.NewRichTextFromMarkdown(res.AboutContent),
	)
}

// Show displays the dialog.
func (d *AboutDialog) Show() {
	dialog.ShowCustom("About "+AppName, "Close", d.Content(), d.window)
}
