package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanvasFill(t *testing.T) {
	c := NewCanvas(640, 480)
	require.Equal(t, 640, c.Width())
	require.Equal(t, 480, c.Height())

	assert.Equal(t, Color(0), c.Get(0, 0))
	assert.Equal(t, Color(5), c.Get(5, 0))
	assert.Equal(t, Color(3^(2<<6)), c.Get(3, 2))
	assert.Equal(t, Color(639^(479<<6)), c.Get(639, 479))
	assert.Zero(t, c.Generation())
}

func TestNewCanvasRejectsEmpty(t *testing.T) {
	assert.Panics(t, func() { NewCanvas(0, 10) })
	assert.Panics(t, func() { NewCanvas(10, -1) })
}

func TestContains(t *testing.T) {
	c := NewCanvas(4, 3)
	assert.True(t, c.Contains(0, 0))
	assert.True(t, c.Contains(3, 2))
	assert.False(t, c.Contains(4, 0))
	assert.False(t, c.Contains(0, 3))
	assert.False(t, c.Contains(-1, 0))
}

func TestGetOutOfRangePanics(t *testing.T) {
	c := NewCanvas(4, 3)
	assert.Panics(t, func() { c.Get(4, 0) })
	assert.Panics(t, func() { c.BlendSet(0, 3, NewColor(1, 2, 3, 255)) })
}

func TestBlendSetOpaqueOverwrites(t *testing.T) {
	c := NewCanvas(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src := NewColor(uint8(x*16), uint8(y*16), uint8(x+y), 255)
			c.BlendSet(x, y, src)
			assert.Equal(t, src.RGB(), c.Get(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, uint64(256), c.Generation())
}

func TestBlendSetTransparentIsNoop(t *testing.T) {
	c := NewCanvas(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			before := c.Get(x, y)
			c.BlendSet(x, y, NewColor(0xff, 0xff, 0xff, 0))
			assert.Equal(t, before, c.Get(x, y))
		}
	}
}

func TestBlendSetStoresNoAlpha(t *testing.T) {
	c := NewCanvas(2, 2)
	c.BlendSet(1, 1, NewColor(0x11, 0x22, 0x33, 0x80))
	assert.Zero(t, c.Snapshot(nil)[3]>>24)
	assert.Zero(t, c.cells[3].Load()>>24)
}

func TestBlendIsMonotonic(t *testing.T) {
	endpoints := []uint8{0, 1, 17, 128, 200, 254, 255}
	for _, d := range endpoints {
		for _, s := range endpoints {
			for a := 1; a < 255; a++ {
				got := mix(d, s, uint8(a))
				lo, hi := d, s
				if lo > hi {
					lo, hi = hi, lo
				}
				if got < lo || got > hi {
					t.Fatalf("mix(%d, %d, %d) = %d, outside [%d, %d]", d, s, a, got, lo, hi)
				}
			}
		}
	}
}

func TestBlendHalf(t *testing.T) {
	got := Blend(NewColor(0, 0, 0, 0), NewColor(200, 100, 50, 128))
	assert.Equal(t, NewColor(100, 50, 25, 0), got)
}

func TestConcurrentPaintersSameCell(t *testing.T) {
	c := NewCanvas(8, 8)
	colors := []Color{
		NewColor(0xff, 0, 0, 255),
		NewColor(0, 0xff, 0, 255),
		NewColor(0, 0, 0xff, 255),
	}

	var wg sync.WaitGroup
	for _, col := range colors {
		wg.Add(1)
		go func(col Color) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				c.BlendSet(3, 3, col)
			}
		}(col)
	}
	wg.Wait()

	assert.Contains(t, []Color{colors[0].RGB(), colors[1].RGB(), colors[2].RGB()}, c.Get(3, 3))
	assert.Equal(t, uint64(3000), c.Generation())
}

func TestConcurrentPaintersDistinctCells(t *testing.T) {
	c := NewCanvas(32, 32)
	var wg sync.WaitGroup
	for y := 0; y < 32; y++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			for x := 0; x < 32; x++ {
				c.BlendSet(x, y, NewColor(uint8(x), uint8(y), 7, 255))
			}
		}(y)
	}
	wg.Wait()

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			require.Equal(t, NewColor(uint8(x), uint8(y), 7, 0), c.Get(x, y))
		}
	}
}

func TestSnapshotAndImage(t *testing.T) {
	c := NewCanvas(3, 2)
	c.BlendSet(2, 1, NewColor(0xaa, 0xbb, 0xcc, 255))

	buf := make([]uint32, 0, 1)
	snap := c.Snapshot(buf)
	require.Len(t, snap, 6)
	assert.Equal(t, uint32(0xaabbcc), snap[5])
	assert.Equal(t, uint32(1), snap[1])

	img := c.Image()
	require.Equal(t, 3, img.Bounds().Dx())
	r, g, b, a := img.At(2, 1).RGBA()
	assert.Equal(t, []uint32{0xaa, 0xbb, 0xcc, 0xff}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestColorAccessors(t *testing.T) {
	col := NewColor(0x11, 0x22, 0x33, 0x44)
	assert.Equal(t, Color(0x44112233), col)
	assert.Equal(t, uint8(0x44), col.Alpha())
	assert.Equal(t, Color(0x112233), col.RGB())
	assert.Equal(t, Color(0xff112233), col.WithAlpha(0xff))
	assert.Equal(t, "112233", col.String())
	assert.Equal(t, "(1, 2)", Point{1, 2}.String())
}
