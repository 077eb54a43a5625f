package net

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"PixelFlood/internal/export"
	"PixelFlood/internal/state"

	"github.com/gorilla/websocket"
)

// Feed serves the canvas to viewers over HTTP: a one-off PNG at
// /snapshot.png and a websocket at /ws that pushes a PNG frame whenever the
// canvas has changed.
type Feed struct {
	canvas   *state.Canvas
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewFeed creates a feed polling the canvas every interval.
func NewFeed(canvas *state.Canvas, interval time.Duration) *Feed {
	return &Feed{
		canvas:   canvas,
		interval: interval,
		upgrader: websocket.Upgrader{
			// Viewers are read-only, any page may embed the stream.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the feed's HTTP routes.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot.png", f.serveSnapshot)
	mux.HandleFunc("/ws", f.serveStream)
	return mux
}

// ListenAndServe serves the feed on addr until ctx is done.
func (f *Feed) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: f.Handler()}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	})
	defer stop()

	log.Printf("[FEED] Viewer feed on http://%s/ws", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("feed server: %w", err)
	}
	return nil
}

func (f *Feed) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, f.canvas); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (f *Feed) serveStream(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[FEED] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()
	log.Printf("[FEED] Viewer connected from %s", r.RemoteAddr)

	// Viewers send nothing; reading only notices when they go away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	var (
		buf     bytes.Buffer
		lastGen uint64
		sent    bool
	)
	for {
		if gen := f.canvas.Generation(); !sent || gen != lastGen {
			buf.Reset()
			if err := export.WritePNG(&buf, f.canvas); err != nil {
				log.Printf("[FEED] %v", err)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
				log.Printf("[FEED] Viewer %s dropped: %v", r.RemoteAddr, err)
				return
			}
			lastGen, sent = gen, true
		}

		select {
		case <-gone:
			log.Printf("[FEED] Viewer %s disconnected", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
