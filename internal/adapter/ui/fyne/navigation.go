package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/res"
)

// Navigation is the top bar: app name, one button per view and the theme toggle.
type Navigation struct {
	tabs  map[domain.View]*widget.Button
	theme *widget.Button
	root  fyneapp.CanvasObject
}

func viewIcon(v domain.View) fyneapp.Resource {
	switch v {
	case domain.ViewBrowse:
		return theme.SearchIcon()
	case domain.ViewFavorites:
		return res.HeartIcon
	case domain.ViewProfile:
		return theme.AccountIcon()
	default:
		return theme.HomeIcon()
	}
}

// NewNavigation creates the navigation bar.
func NewNavigation(intents LibraryIntents) *Navigation {
	n := &Navigation{tabs: make(map[domain.View]*widget.Button, len(domain.Views))}

	buttons := make([]fyneapp.CanvasObject, 0, len(domain.Views))
	for _, v := range domain.Views {
		b := widget.NewButtonWithIcon(v.Title(), viewIcon(v), func() {
			intents.Navigate(v)
		})
		n.tabs[v] = b
		buttons = append(buttons, b)
	}

	n.theme = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), intents.ToggleTheme)
	n.theme.Importance = widget.LowImportance

	name := widget.NewLabel(AppName)
	name.TextStyle = fyneapp.TextStyle{Bold: true}

	n.root = container.NewPadded(container.NewHBox(
		widget.NewIcon(res.AppIcon),
		name,
		layout.NewSpacer(),
		container.NewHBox(buttons...),
		n.theme,
	))
	n.SetActive(domain.ViewHome)
	return n
}

// SetActive highlights the button of v.
func (n *Navigation) SetActive(v domain.View) {
	for view, b := range n.tabs {
		if view == v {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.LowImportance
		}
		b.Refresh()
	}
}

// SetTheme labels the toggle with the theme it switches to.
func (n *Navigation) SetTheme(t domain.Theme) {
	if t == domain.ThemeDark {
		n.theme.SetText("Light")
	} else {
		n.theme.SetText("Dark")
	}
}
