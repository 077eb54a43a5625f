package ui

import (
	"context"
	"log"
	"time"

	"PixelFlood/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// RunWindow shows the canvas in a desktop window and blocks until the window
// is closed or ctx is done. It must be called from the main goroutine.
func RunWindow(ctx context.Context, c *state.Canvas, title string, refresh time.Duration) {
	myApp := app.New()
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(float32(c.Width()), float32(c.Height())))

	view := NewCanvasView(c)
	myWindow.SetContent(view)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go view.Follow(watchCtx, refresh)
	go func() {
		<-watchCtx.Done()
		if ctx.Err() != nil {
			fyne.Do(myApp.Quit)
		}
	}()

	log.Printf("[UI] Showing %dx%d canvas", c.Width(), c.Height())
	myWindow.ShowAndRun()
}
