package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"PixelFlood/internal/state"
)

// acceptBackoff spaces out retries after a failed Accept.
const acceptBackoff = 10 * time.Millisecond

// Listener accepts pixel flood clients and runs one Session per connection,
// all painting on the same canvas.
type Listener struct {
	canvas *state.Canvas
	config *Config

	sessions map[string]*Session
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

// NewListener creates a listener for the given canvas. A nil config means
// DefaultConfig.
func NewListener(canvas *state.Canvas, cfg *Config) *Listener {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Listener{
		canvas:   canvas,
		config:   cfg,
		sessions: make(map[string]*Session),
	}
}

// ListenAndServe binds the configured address and serves until ctx is done.
func (l *Listener) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.config.Address)
	if err != nil {
		return fmt.Errorf("failed to start server on %s: %w", l.config.Address, err)
	}
	log.Printf("[LISTENER] Listening on %s (%dx%d canvas)", ln.Addr(), l.canvas.Width(), l.canvas.Height())
	return l.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or ln is closed.
// A failed Accept is logged and the loop carries on. On return every open
// session has been closed and its goroutine has finished.
func (l *Listener) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer l.shutdown()
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			log.Printf("[LISTENER] Failed to accept connection: %v", err)
			time.Sleep(acceptBackoff)
			continue
		}

		s := newSession(conn, l.canvas, l.config)
		l.add(s)
		l.wg.Add(1)
		go l.run(s)
	}
}

func (l *Listener) run(s *Session) {
	defer l.wg.Done()
	defer l.remove(s)

	if err := s.Serve(); err != nil {
		log.Printf("[SESSION %s] Connection error: %v", s.ID, err)
	}
	log.Printf("[SESSION %s] Connection ended (%d commands, %d pixels painted)", s.ID, s.commands, s.painted)
}

func (l *Listener) add(s *Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[s.ID] = s
	log.Printf("[SESSION %s] Got connection from %s", s.ID, s.Addr)
}

func (l *Listener) remove(s *Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, s.ID)
}

func (l *Listener) shutdown() {
	l.mu.RLock()
	for _, s := range l.sessions {
		s.Close()
	}
	l.mu.RUnlock()
	l.wg.Wait()
}

// Sessions returns the number of connected clients.
func (l *Listener) Sessions() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// Canvas returns the shared canvas.
func (l *Listener) Canvas() *state.Canvas {
	return l.canvas
}
