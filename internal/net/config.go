package net

import "time"

// Config holds the server's fixed settings.
type Config struct {
	// Address to bind
	Address string

	// Canvas dimensions in pixels
	Width  int
	Height int

	// IdleTimeout bounds each wait for the next input line. A client that
	// stays silent longer is disconnected.
	IdleTimeout time.Duration

	// WriteTimeout bounds flushing one response.
	WriteTimeout time.Duration

	// ReadBufferSize is also the longest accepted input line.
	ReadBufferSize int
}

const (
	DefaultAddress     = "127.0.0.1:5545"
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultIdleTimeout = time.Second
)

// DefaultConfig returns the protocol's standard settings.
func DefaultConfig() *Config {
	return &Config{
		Address:        DefaultAddress,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		IdleTimeout:    DefaultIdleTimeout,
		WriteTimeout:   5 * time.Second,
		ReadBufferSize: 4096,
	}
}
