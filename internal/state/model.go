package state

import "fmt"

// Color is a packed [alpha, red, green, blue] value. The alpha byte is only
// meaningful as a blend instruction on the way in; stored cells always carry 0.
type Color uint32

const rgbMask = 0x00ffffff

// NewColor packs the four channels.
func NewColor(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) Alpha() uint8 { return uint8(c >> 24) }
func (c Color) Red() uint8   { return uint8(c >> 16) }
func (c Color) Green() uint8 { return uint8(c >> 8) }
func (c Color) Blue() uint8  { return uint8(c) }

// RGB drops the alpha byte.
func (c Color) RGB() Color { return c & rgbMask }

// WithAlpha returns the same RGB with a different blend alpha.
func (c Color) WithAlpha(a uint8) Color {
	return c.RGB() | Color(a)<<24
}

// String renders the visible part of the color as six lowercase hex digits.
func (c Color) String() string {
	return fmt.Sprintf("%06x", uint32(c.RGB()))
}

// Point is a cell coordinate.
type Point struct{ X, Y int }

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
