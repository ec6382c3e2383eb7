package fyne

// MobileBreakpoint is the window width below which the full-screen player
// may cover the window.
const MobileBreakpoint = 768

// OverlayState tracks whether the full-screen player is requested and how
// wide the window is. It is not safe for concurrent use; the presenter
// guards it.
type OverlayState struct {
	open  bool
	width float32
}

// Open requests the full-screen player.
func (o *OverlayState) Open() { o.open = true }

// Close dismisses the full-screen player.
func (o *OverlayState) Close() { o.open = false }

// Resize records the window width.
func (o *OverlayState) Resize(width float32) { o.width = width }

// IsOpen reports whether the full-screen player was requested.
func (o *OverlayState) IsOpen() bool { return o.open }

// Visible reports whether the overlay is shown: requested, a track is
// current, and the window is narrower than MobileBreakpoint.
func (o *OverlayState) Visible(hasTrack bool) bool {
	return o.open && hasTrack && o.width < MobileBreakpoint
}
