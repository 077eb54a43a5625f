package ui

import (
	"context"
	"image"
	"time"

	"PixelFlood/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// CanvasView is a read-only widget that displays a live canvas, scaled to
// whatever size the window gives it.
type CanvasView struct {
	widget.BaseWidget
	src    *state.Canvas
	raster *canvas.Raster
}

var _ fyne.Widget = (*CanvasView)(nil)

func NewCanvasView(c *state.Canvas) *CanvasView {
	v := &CanvasView{src: c}
	v.raster = canvas.NewRaster(v.draw)
	v.raster.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *CanvasView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// draw ignores the requested size; the raster scales the snapshot itself.
func (v *CanvasView) draw(_, _ int) image.Image {
	return v.src.Image()
}

// Follow redraws the view whenever the canvas has been painted on, checking
// once per interval until ctx is done.
func (v *CanvasView) Follow(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := v.src.Generation()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if gen := v.src.Generation(); gen != last {
				last = gen
				fyne.Do(v.raster.Refresh)
			}
		}
	}
}
