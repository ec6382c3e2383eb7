package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func TestTappable_Tap(t *testing.T) {
	test.NewTempApp(t)

	taps := 0
	tappable := NewTappable(widget.NewLabel("Jazz"), func() { taps++ })

	test.Tap(tappable)
	test.Tap(tappable)

	assert.Equal(t, 2, taps)
	assert.Equal(t, desktop.PointerCursor, tappable.Cursor())
}

func TestTappable_SecondaryTap(t *testing.T) {
	test.NewTempApp(t)

	var got *fyne.PointEvent
	tappable := NewTappable(widget.NewLabel("Jazz"), nil)
	tappable.SetOnSecondaryTap(func(pe *fyne.PointEvent) { got = pe })

	test.Tap(tappable) // no primary handler
	test.TapSecondary(tappable)

	assert.NotNil(t, got)
	assert.Equal(t, desktop.DefaultCursor, tappable.Cursor())
}
