package fyne

import (
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/res"
)

const (
	// AppName is the window title and brand.
	AppName = "Hariomify"

	defaultWidth  = 1100
	defaultHeight = 760
	volumeStep    = 5
)

// WindowConfig carries the static data the window is built from.
type WindowConfig struct {
	Tracks  []domain.Track
	Genres  []domain.Genre
	Version string
}

// MainWindow is the main UI window implementing the UIView interface.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter as intents
type MainWindow struct {
	app     fyneapp.App
	window  fyneapp.Window
	intents Intents
	version string

	// UI components
	nav       *Navigation
	home      *HomeView
	browse    *BrowseView
	favorites *FavoritesView
	profile   *ProfileView
	pages     map[domain.View]fyneapp.CanvasObject
	playerBar *PlayerBar
	mobile    *MobilePlayer

	// Lifecycle management
	closeOnce sync.Once
}

// NewMainWindow creates the main window. intents receives every user action.
func NewMainWindow(app fyneapp.App, cfg WindowConfig, intents Intents, thumbs *ThumbnailLoader) *MainWindow {
	w := &MainWindow{
		app:     app,
		intents: intents,
		version: cfg.Version,
	}

	w.window = app.NewWindow(AppName)
	w.buildUI(cfg, thumbs)

	w.window.Resize(fyneapp.NewSize(defaultWidth, defaultHeight))
	w.app.SetIcon(res.AppIcon)
	w.addShortcuts()

	return w
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI(cfg WindowConfig, thumbs *ThumbnailLoader) {
	w.nav = NewNavigation(w.intents)
	w.home = NewHomeView(cfg.Tracks, w.intents, thumbs)
	w.browse = NewBrowseView(cfg.Genres, w.intents, thumbs)
	w.favorites = NewFavoritesView(w.intents, thumbs)
	w.profile = NewProfileView()
	w.playerBar = NewPlayerBar(w.intents, thumbs)
	w.mobile = NewMobilePlayer(w.intents, thumbs)

	w.pages = map[domain.View]fyneapp.CanvasObject{
		domain.ViewHome:      w.home.root,
		domain.ViewBrowse:    w.browse.root,
		domain.ViewFavorites: w.favorites.root,
		domain.ViewProfile:   w.profile.root,
	}
	pages := container.NewStack(
		w.home.root, w.browse.root, w.favorites.root, w.profile.root,
	)

	shell := container.NewBorder(w.nav.root, w.playerBar.CanvasObject(), nil, nil, pages)
	w.window.SetContent(container.New(
		newWidthWatcher(w.intents.Resize),
		shell,
		w.mobile.CanvasObject(),
	))

	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	views := make([]*fyneapp.MenuItem, 0, len(domain.Views))
	for _, v := range domain.Views {
		views = append(views, fyneapp.NewMenuItem(v.Title(), func() {
			w.intents.Navigate(v)
		}))
	}
	views = append(views,
		fyneapp.NewMenuItemSeparator(),
		fyneapp.NewMenuItem("Toggle Theme", w.intents.ToggleTheme),
	)

	playback := fyneapp.NewMenu("Playback",
		fyneapp.NewMenuItem("Play/Pause", w.intents.PlayPause),
		fyneapp.NewMenuItem("Next", w.intents.Next),
		fyneapp.NewMenuItem("Previous", w.intents.Previous),
		fyneapp.NewMenuItemSeparator(),
		fyneapp.NewMenuItem("Play Random", w.intents.PlayRandom),
	)

	help := fyneapp.NewMenu("Help",
		fyneapp.NewMenuItem("About "+AppName, func() {
			NewAboutDialog(w.window, w.version).Show()
		}),
	)

	return []*fyneapp.Menu{fyneapp.NewMenu("View", views...), playback, help}
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	shortcuts := map[fyneapp.KeyName]func(){
		fyneapp.KeyUp:    func() { w.stepVolume(volumeStep) },
		fyneapp.KeyDown:  func() { w.stepVolume(-volumeStep) },
		fyneapp.KeyRight: w.intents.Next,
		fyneapp.KeyLeft:  w.intents.Previous,
		fyneapp.KeyP:     w.intents.PlayPause,
	}
	for key, action := range shortcuts {
		w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
			KeyName:  key,
			Modifier: fyneapp.KeyModifierAlt,
		}, func(fyneapp.Shortcut) {
			action()
		})
	}
}

func (w *MainWindow) stepVolume(delta float64) {
	value := min(100, max(0, w.playerBar.volume.Value+delta))
	w.intents.ChangeVolume(value)
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// RenderPlayer updates both player surfaces.
func (w *MainWindow) RenderPlayer(vm PlayerViewModel) {
	w.playerBar.Render(vm)
	w.mobile.Render(vm)
}

// SetOverlayVisible shows or hides the full-screen player.
func (w *MainWindow) SetOverlayVisible(visible bool) {
	w.mobile.SetVisible(visible)
}

// RenderCards updates the play and favorite state of every song card.
func (w *MainWindow) RenderCards(state CardState) {
	w.home.Render(state)
	w.browse.Render(state)
	w.favorites.Render(state)
}

// RenderFavorites replaces the favorites page content.
func (w *MainWindow) RenderFavorites(tracks []domain.Track) {
	w.favorites.Show(tracks)
}

// RenderProfile replaces the profile statistics.
func (w *MainWindow) RenderProfile(vm ProfileViewModel) {
	w.profile.Show(vm)
}

// ShowView makes view the visible page.
func (w *MainWindow) ShowView(view domain.View) {
	for v, page := range w.pages {
		if v == view {
			page.Show()
		} else {
			page.Hide()
		}
	}
	w.nav.SetActive(view)
}

// ApplyTheme switches the color variant.
func (w *MainWindow) ApplyTheme(t domain.Theme) {
	w.app.Settings().SetTheme(newVariantTheme(t))
	w.nav.SetTheme(t)
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
