package state

import (
	"fmt"
	"image"
	"sync/atomic"
)

// Canvas is the shared framebuffer every connection paints on. Each cell is
// its own atomic word, so writers to different cells never wait on each other.
type Canvas struct {
	width  int
	height int
	cells  []atomic.Uint32
	gen    Generation
}

// NewCanvas allocates a width x height canvas pre-filled with a coordinate
// pattern so that an untouched canvas is visibly not blank.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("state: invalid canvas size %dx%d", width, height))
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]atomic.Uint32, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.cells[y*width+x].Store(uint32(x^(y<<6)) & rgbMask)
		}
	}
	return c
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Contains reports whether (x, y) addresses a cell.
func (c *Canvas) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) cell(x, y int) *atomic.Uint32 {
	if !c.Contains(x, y) {
		panic(fmt.Sprintf("state: pixel %v outside %dx%d canvas", Point{x, y}, c.width, c.height))
	}
	return &c.cells[y*c.width+x]
}

// Get returns the visible color of a cell. Coordinates must be in range.
func (c *Canvas) Get(x, y int) Color {
	return Color(c.cell(x, y).Load()).RGB()
}

// BlendSet paints src onto the cell, using src's alpha as the interpolation
// factor. The cell's read-modify-write is retried until it lands on an
// unchanged prior value, so concurrent painters of one cell never tear.
func (c *Canvas) BlendSet(x, y int, src Color) {
	cell := c.cell(x, y)
	for {
		old := cell.Load()
		mixed := uint32(Blend(Color(old), src))
		if cell.CompareAndSwap(old, mixed) {
			break
		}
	}
	c.gen.tick()
}

// Generation returns the number of writes applied so far.
func (c *Canvas) Generation() uint64 {
	return c.gen.Load()
}

// Snapshot copies every cell into dst, growing it if needed, and returns it.
// Cells are read one by one while writers keep going, so the copy may mix
// old and new pixels.
func (c *Canvas) Snapshot(dst []uint32) []uint32 {
	n := len(c.cells)
	if cap(dst) < n {
		dst = make([]uint32, n)
	}
	dst = dst[:n]
	for i := range c.cells {
		dst[i] = c.cells[i].Load() & rgbMask
	}
	return dst
}

// Image renders a snapshot as an opaque RGBA image.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for i := range c.cells {
		px := Color(c.cells[i].Load())
		o := i * 4
		img.Pix[o] = px.Red()
		img.Pix[o+1] = px.Green()
		img.Pix[o+2] = px.Blue()
		img.Pix[o+3] = 0xff
	}
	return img
}

// Blend mixes src over dst channel by channel and clears the alpha byte.
func Blend(dst, src Color) Color {
	a := src.Alpha()
	return NewColor(
		mix(dst.Red(), src.Red(), a),
		mix(dst.Green(), src.Green(), a),
		mix(dst.Blue(), src.Blue(), a),
		0,
	)
}

// mix interpolates dst toward src by alpha/255. Integer arithmetic keeps the
// endpoints exact and the result inside [min(dst,src), max(dst,src)].
func mix(dst, src, alpha uint8) uint8 {
	a := uint32(alpha)
	return uint8((uint32(dst)*(255-a) + uint32(src)*a) / 255)
}
