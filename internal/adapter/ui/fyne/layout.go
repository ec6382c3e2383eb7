package fyne

import fyneapp "fyne.io/fyne/v2"

// widthWatcher stacks its objects like container.NewStack and reports
// every change of the available width.
type widthWatcher struct {
	onWidth func(float32)
	last    float32
}

func newWidthWatcher(onWidth func(float32)) *widthWatcher {
	return &widthWatcher{onWidth: onWidth, last: -1}
}

func (l *widthWatcher) Layout(objects []fyneapp.CanvasObject, size fyneapp.Size) {
	for _, o := range objects {
		o.Move(fyneapp.NewPos(0, 0))
		o.Resize(size)
	}
	if size.Width != l.last {
		l.last = size.Width
		if l.onWidth != nil {
			l.onWidth(size.Width)
		}
	}
}

func (l *widthWatcher) MinSize(objects []fyneapp.CanvasObject) fyneapp.Size {
	var size fyneapp.Size
	for _, o := range objects {
		if !o.Visible() {
			continue
		}
		size = size.Max(o.MinSize())
	}
	return size
}
