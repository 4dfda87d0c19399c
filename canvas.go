package asciienc

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Canvas is the scaled pixel buffer that blocks are sampled from. Pix
// holds Width*Height pixels, row-major, four bytes (R, G, B, A) each,
// with color not premultiplied by alpha.
type Canvas struct {
	Pix    []byte
	Width  int
	Height int
}

// NewCanvas allocates a zeroed (transparent black) canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// CanvasFromImage builds a canvas from img with non-premultiplied pixels,
// so the color of a translucent pixel is kept intact. An *image.NRGBA
// anchored at the origin is shared, anything else is copied.
func CanvasFromImage(img image.Image) *Canvas {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) &&
		n.Stride == 4*n.Rect.Dx() {
		return &Canvas{Pix: n.Pix, Width: n.Rect.Dx(), Height: n.Rect.Dy()}
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return &Canvas{Pix: n.Pix, Width: b.Dx(), Height: b.Dy()}
}

// check reports a canvas that cannot be walked safely.
func (c *Canvas) check() error {
	switch {
	case c == nil:
		return errors.New("sampler returned no canvas")
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("canvas has no pixels (%dx%d)", c.Width, c.Height)
	case len(c.Pix) != c.Width*c.Height*4:
		return fmt.Errorf("canvas buffer holds %d bytes, want %d for %dx%d",
			len(c.Pix), c.Width*c.Height*4, c.Width, c.Height)
	}
	return nil
}

// Columns returns the number of blocks per row for the given block size.
func (c *Canvas) Columns(blockSize int) int {
	return (c.Width + blockSize - 1) / blockSize
}

// Rows returns the number of block rows for the given block size.
func (c *Canvas) Rows(blockSize int) int {
	return (c.Height + blockSize - 1) / blockSize
}

// AverageBrightness returns the mean brightness, (R+G+B)/3 per pixel with
// alpha ignored, of the w x h block whose top-left corner is (x, y). The
// block is clipped to the canvas, so blocks hanging over the right or
// bottom edge only average the pixels that exist. A block with no pixels
// inside the canvas has brightness 0.
func (c *Canvas) AverageBrightness(x, y, w, h int) float64 {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.Width), min(y+h, c.Height)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}

	var total uint64
	for py := y0; py < y1; py++ {
		row := c.Pix[(py*c.Width+x0)*4 : (py*c.Width+x1)*4]
		for i := 0; i < len(row); i += 4 {
			total += uint64(row[i]) + uint64(row[i+1]) + uint64(row[i+2])
		}
	}

	count := uint64(x1-x0) * uint64(y1-y0)
	return float64(total) / float64(3*count)
}
