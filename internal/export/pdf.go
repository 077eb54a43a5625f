package export

import (
	"bytes"
	"fmt"
	"io"

	"PixelFlood/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes a single-page PDF whose page is exactly the canvas, one
// point per pixel.
func WritePDF(w io.Writer, c *state.Canvas) error {
	var img bytes.Buffer
	if err := WritePNG(&img, c); err != nil {
		return err
	}

	wd, ht := float64(c.Width()), float64(c.Height())
	// Portrait keeps the custom size as given; landscape would swap it.
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("canvas", opts, &img)
	p.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
