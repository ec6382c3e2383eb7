// Package widgets provides custom Fyne widgets for the Hariomify application.
package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Tappable wraps content and reports primary and secondary taps.
// It makes genre tiles and the player bar's track info clickable.
type Tappable struct {
	widget.BaseWidget

	content        fyne.CanvasObject
	onTap          func()
	onSecondaryTap func(*fyne.PointEvent)
}

// NewTappable creates a tappable wrapper around content.
func NewTappable(content fyne.CanvasObject, onTap func()) *Tappable {
	t := &Tappable{
		content: content,
		onTap:   onTap,
	}
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer implements fyne.Widget.
func (t *Tappable) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.content)
}

// Tapped implements fyne.Tappable.
func (t *Tappable) Tapped(*fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

// TappedSecondary implements fyne.SecondaryTappable (right-click).
func (t *Tappable) TappedSecondary(pe *fyne.PointEvent) {
	if t.onSecondaryTap != nil {
		t.onSecondaryTap(pe)
	}
}

// SetOnSecondaryTap sets the right-click handler.
func (t *Tappable) SetOnSecondaryTap(f func(*fyne.PointEvent)) {
	t.onSecondaryTap = f
}

// Cursor implements desktop.Cursorable.
func (t *Tappable) Cursor() desktop.Cursor {
	if t.onTap == nil {
		return desktop.DefaultCursor
	}
	return desktop.PointerCursor
}

// MouseIn implements desktop.Hoverable.
func (t *Tappable) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (t *Tappable) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable.
func (t *Tappable) MouseOut() {}

// Ensure Tappable implements the required interfaces
var _ fyne.Tappable = (*Tappable)(nil)
var _ fyne.SecondaryTappable = (*Tappable)(nil)
var _ desktop.Hoverable = (*Tappable)(nil)
var _ desktop.Cursorable = (*Tappable)(nil)
