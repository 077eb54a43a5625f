// Package protocol converts between the line-oriented pixel flood text
// protocol and typed commands and responses. It does no I/O.
package protocol

import "PixelFlood/internal/state"

// Command is one decoded client request.
type Command interface {
	command()
}

// Help asks for the usage text.
type Help struct{}

// Size asks for the canvas dimensions.
type Size struct{}

// GetPx asks for the color of one pixel.
type GetPx struct {
	X, Y int
}

// SetPx paints one pixel. Color carries the blend alpha in its top byte.
type SetPx struct {
	X, Y  int
	Color state.Color
}

func (Help) command()  {}
func (Size) command()  {}
func (GetPx) command() {}
func (SetPx) command() {}

// Response is one reply to send back to a client.
type Response interface {
	response()
}

// HelpResponse carries the usage text.
type HelpResponse struct{}

// SizeResponse carries the canvas dimensions.
type SizeResponse struct {
	Width, Height int
}

// PxResponse carries a pixel's visible color.
type PxResponse struct {
	X, Y  int
	Color state.Color
}

func (HelpResponse) response() {}
func (SizeResponse) response() {}
func (PxResponse) response()   {}
