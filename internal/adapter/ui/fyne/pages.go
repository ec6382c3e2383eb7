package fyne

import (
	"image/color"
	"strconv"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/hariomify/hariomify/internal/adapter/ui/fyne/widgets"
	"github.com/hariomify/hariomify/internal/domain"
)

// trendingCount is how many catalog entries the home page lists as trending.
const trendingCount = 6

func heading(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.TextStyle = fyneapp.TextStyle{Bold: true}
	return l
}

// HomeView is the landing page: a hero with a random-play button and the
// catalog split into two card sections.
type HomeView struct {
	trending *cardGrid
	releases *cardGrid
	root     fyneapp.CanvasObject
}

// NewHomeView creates the home page for tracks.
func NewHomeView(tracks []domain.Track, intents LibraryIntents, thumbs *ThumbnailLoader) *HomeView {
	split := min(trendingCount, len(tracks))
	v := &HomeView{
		trending: newCardGrid(intents, thumbs, tracks[:split]),
		releases: newCardGrid(intents, thumbs, tracks[split:]),
	}

	title := canvas.NewText(AppName, theme.Color(theme.ColorNamePrimary))
	title.TextSize = 42
	title.TextStyle = fyneapp.TextStyle{Bold: true}
	playNow := widget.NewButtonWithIcon("Play Now", theme.MediaPlayIcon(), intents.PlayRandom)
	playNow.Importance = widget.HighImportance
	hero := container.NewVBox(
		title,
		widget.NewLabel("Your music, one tap away."),
		container.NewHBox(playNow),
	)

	v.root = container.NewVScroll(container.NewPadded(container.NewVBox(
		hero,
		heading("Trending Now"),
		v.trending.grid,
		heading("New Releases"),
		v.releases.grid,
	)))
	return v
}

// Render updates the cards.
func (v *HomeView) Render(state CardState) {
	v.trending.render(state)
	v.releases.render(state)
}

// BrowseView holds the search entry, the result cards and the genre tiles.
type BrowseView struct {
	intents LibraryIntents
	state   CardState

	search  *widget.Entry
	heading *widget.Label
	results *cardGrid
	empty   *fyneapp.Container
	genres  *fyneapp.Container
	root    fyneapp.CanvasObject
}

// NewBrowseView creates the browse page.
func NewBrowseView(genres []domain.Genre, intents LibraryIntents, thumbs *ThumbnailLoader) *BrowseView {
	v := &BrowseView{
		intents: intents,
		heading: heading(""),
		results: newCardGrid(intents, thumbs, nil),
	}

	v.search = widget.NewEntry()
	v.search.SetPlaceHolder("Search for songs, artists, or albums...")
	v.search.OnChanged = func(query string) {
		v.Show(v.intents.Search(query))
	}

	tiles := make([]fyneapp.CanvasObject, 0, len(genres))
	for _, g := range genres {
		tiles = append(tiles, newGenreTile(g, thumbs, func() {
			v.Show(v.intents.BrowseGenre(g.Name))
		}))
	}
	v.genres = container.NewVBox(
		heading("Browse by Genre"),
		container.NewGridWrap(fyneapp.NewSize(160, 190), tiles...),
	)

	v.empty = container.NewVBox(
		heading("No songs found"),
		widget.NewLabel("Try searching with different keywords"),
	)
	v.empty.Hide()

	v.root = container.NewBorder(
		container.NewPadded(v.search), nil, nil, nil,
		container.NewVScroll(container.NewPadded(container.NewVBox(
			v.genres,
			v.heading,
			v.results.grid,
			v.empty,
		))),
	)
	v.Show(intents.Search(""))
	return v
}

func newGenreTile(g domain.Genre, thumbs *ThumbnailLoader, onTap func()) fyneapp.CanvasObject {
	cover := newCover(140)
	thumbs.Apply(cover, g.ImageURL)

	name := widget.NewLabel(g.Name)
	name.TextStyle = fyneapp.TextStyle{Bold: true}
	count := canvas.NewText(pluralSongs(g.Count), color.Gray{Y: 0x99})

	return widgets.NewTappable(container.NewVBox(cover, name, count), onTap)
}

func pluralSongs(n int) string {
	if n == 1 {
		return "1 song"
	}
	return strconv.Itoa(n) + " songs"
}

// Show replaces the result list.
func (v *BrowseView) Show(vm BrowseViewModel) {
	v.heading.SetText(vm.Heading)
	v.results.set(vm.Tracks)
	v.results.render(v.state)

	if vm.ShowGenres {
		v.genres.Show()
	} else {
		v.genres.Hide()
	}
	if vm.Empty {
		v.empty.Show()
	} else {
		v.empty.Hide()
	}
}

// Render updates the cards.
func (v *BrowseView) Render(state CardState) {
	v.state = state
	v.results.render(state)
}

// FavoritesView lists the favorite tracks.
type FavoritesView struct {
	state    CardState
	subtitle *widget.Label
	cards    *cardGrid
	empty    *fyneapp.Container
	root     fyneapp.CanvasObject
}

// NewFavoritesView creates the favorites page.
func NewFavoritesView(intents LibraryIntents, thumbs *ThumbnailLoader) *FavoritesView {
	v := &FavoritesView{
		subtitle: widget.NewLabel(FavoritesSubtitle(0)),
		cards:    newCardGrid(intents, thumbs, nil),
	}

	discover := widget.NewButton("Discover Music", func() {
		intents.Navigate(domain.ViewHome)
	})
	discover.Importance = widget.HighImportance
	v.empty = container.NewVBox(
		heading("No favorites yet"),
		widget.NewLabel("Start exploring music and tap the heart icon to add songs to your favorites."),
		container.NewHBox(discover),
	)

	v.root = container.NewVScroll(container.NewPadded(container.NewVBox(
		heading("Your Favorites"),
		v.subtitle,
		v.empty,
		v.cards.grid,
	)))
	return v
}

// Show replaces the favorite list.
func (v *FavoritesView) Show(tracks []domain.Track) {
	v.subtitle.SetText(FavoritesSubtitle(len(tracks)))
	v.cards.set(tracks)
	v.cards.render(v.state)
	if len(tracks) == 0 {
		v.empty.Show()
	} else {
		v.empty.Hide()
	}
}

// Render updates the cards.
func (v *FavoritesView) Render(state CardState) {
	v.state = state
	v.cards.render(state)
}

// ProfileView shows the listening statistics of the session.
type ProfileView struct {
	songsPlayed *widget.Label
	favorites   *widget.Label
	hours       *widget.Label
	activity    *fyneapp.Container
	root        fyneapp.CanvasObject
}

// NewProfileView creates the profile page.
func NewProfileView() *ProfileView {
	v := &ProfileView{
		songsPlayed: statValue(),
		favorites:   statValue(),
		hours:       statValue(),
		activity:    container.NewVBox(),
	}

	stats := container.NewGridWithColumns(3,
		container.NewVBox(v.songsPlayed, widget.NewLabel("Songs Played")),
		container.NewVBox(v.favorites, widget.NewLabel("Favorites")),
		container.NewVBox(v.hours, widget.NewLabel("Hours Listened")),
	)

	v.root = container.NewVScroll(container.NewPadded(container.NewVBox(
		container.NewBorder(nil, nil, widget.NewIcon(theme.AccountIcon()), nil,
			container.NewVBox(heading("Music Lover"), widget.NewLabel("Listening on "+AppName))),
		widget.NewCard("", "", stats),
		heading("Recent Activity"),
		v.activity,
	)))
	v.Show(BuildProfileViewModel(domain.ListeningStats{}, nil))
	return v
}

func statValue() *widget.Label {
	l := widget.NewLabel("0")
	l.TextStyle = fyneapp.TextStyle{Bold: true}
	return l
}

// Show replaces the statistics.
func (v *ProfileView) Show(vm ProfileViewModel) {
	v.songsPlayed.SetText(vm.SongsPlayed)
	v.favorites.SetText(vm.Favorites)
	v.hours.SetText(vm.HoursListened)

	rows := make([]fyneapp.CanvasObject, 0, len(vm.Activity))
	for _, a := range vm.Activity {
		action := widget.NewLabel(a.Action)
		action.TextStyle = fyneapp.TextStyle{Bold: true}
		rows = append(rows, container.NewBorder(nil, nil, action, widget.NewLabel(a.When), widget.NewLabel(a.Detail)))
	}
	if len(rows) == 0 {
		rows = append(rows, widget.NewLabel("No activity yet"))
	}
	v.activity.Objects = rows
	v.activity.Refresh()
}
