// Package export writes canvas snapshots to files for consumers that cannot
// read the live canvas.
package export

import (
	"fmt"
	"image/png"
	"io"

	"PixelFlood/internal/state"
)

// WritePNG encodes a snapshot of the canvas.
func WritePNG(w io.Writer, c *state.Canvas) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
