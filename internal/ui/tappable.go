package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// tappableImage is a cover image that reacts to double taps and secondary
// taps.
type tappableImage struct {
	widget.BaseWidget
	image          *canvas.Image
	onDoubleTap    func()
	onRightContext func(*fyne.PointEvent)
}

func newTappableImage(img *canvas.Image, onDoubleTap func(), onRight func(*fyne.PointEvent)) *tappableImage {
	t := &tappableImage{image: img, onDoubleTap: onDoubleTap, onRightContext: onRight}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

func (t *tappableImage) MinSize() fyne.Size {
	return t.image.MinSize()
}

func (t *tappableImage) Tapped(_ *fyne.PointEvent) {}

func (t *tappableImage) TappedSecondary(pe *fyne.PointEvent) {
	if t.onRightContext != nil {
		t.onRightContext(pe)
	}
}

func (t *tappableImage) DoubleTapped(_ *fyne.PointEvent) {
	if t.onDoubleTap != nil {
		t.onDoubleTap()
	}
}
