package asciienc

import (
	"image"
	"testing"

	"github.com/aelune/asciienc/imageutil"
)

func solidCanvas(width, height int, v uint8) *Canvas {
	return CanvasFromImage(imageutil.CreateSolidImage(width, height, imageutil.Gray(v)))
}

func TestAverageBrightnessUniform(t *testing.T) {
	t.Parallel()

	for _, v := range []uint8{0, 51, 102, 200, 255} {
		c := solidCanvas(16, 16, v)
		if got := c.AverageBrightness(0, 0, 8, 8); got != float64(v) {
			t.Errorf("gray %d: AverageBrightness = %v", v, got)
		}
	}
}

func TestAverageBrightnessIgnoresAlpha(t *testing.T) {
	t.Parallel()

	c := NewCanvas(2, 1)
	copy(c.Pix, []byte{
		30, 60, 90, 0,
		30, 60, 90, 255,
	})
	if got := c.AverageBrightness(0, 0, 2, 1); got != 60 {
		t.Errorf("AverageBrightness = %v, want 60", got)
	}
}

func TestAverageBrightnessUnweightedChannels(t *testing.T) {
	t.Parallel()

	img := imageutil.NewRGBAImage(3, 1)
	img.SetRGB(0, 0, imageutil.RGB{R: 255})
	img.SetRGB(1, 0, imageutil.RGB{G: 255})
	img.SetRGB(2, 0, imageutil.RGB{B: 255})
	c := CanvasFromImage(img)

	for x := 0; x < 3; x++ {
		if got := c.AverageBrightness(x, 0, 1, 1); got != 85 {
			t.Errorf("pixel %d: brightness %v, want 85", x, got)
		}
	}
}

func TestAverageBrightnessClipsToCanvas(t *testing.T) {
	t.Parallel()

	// 10x10: the left 8 columns are white, the last 2 black.
	img := imageutil.CreateSolidImage(10, 10, imageutil.Gray(255))
	for y := 0; y < 10; y++ {
		img.SetRGB(8, y, imageutil.Gray(0))
		img.SetRGB(9, y, imageutil.Gray(0))
	}
	c := CanvasFromImage(img)

	// Right edge block covers only x=8..9; reading a full 8-wide window
	// would wrap into the white start of the following rows.
	if got := c.AverageBrightness(8, 0, 8, 8); got != 0 {
		t.Errorf("right edge block = %v, want 0", got)
	}
	if got := c.AverageBrightness(8, 8, 8, 8); got != 0 {
		t.Errorf("corner block = %v, want 0", got)
	}
	// Bottom edge block covers only y=8..9, all white.
	if got := c.AverageBrightness(0, 8, 8, 8); got != 255 {
		t.Errorf("bottom edge block = %v, want 255", got)
	}
}

func TestAverageBrightnessPartialMix(t *testing.T) {
	t.Parallel()

	// Rows alternate 0 and 255; a 3-row window clipped at the bottom of
	// a 4-row canvas sees rows 2 and 3 only.
	img := imageutil.NewRGBAImage(4, 4)
	for y := 0; y < 4; y++ {
		v := uint8(0)
		if y%2 == 1 {
			v = 255
		}
		for x := 0; x < 4; x++ {
			img.SetRGB(x, y, imageutil.Gray(v))
		}
	}
	c := CanvasFromImage(img)
	if got := c.AverageBrightness(0, 2, 4, 3); got != 127.5 {
		t.Errorf("AverageBrightness = %v, want 127.5", got)
	}
}

func TestAverageBrightnessEmptyWindow(t *testing.T) {
	t.Parallel()

	c := solidCanvas(4, 4, 200)
	for _, w := range [][4]int{
		{4, 0, 2, 2},  // starts past the right edge
		{0, 4, 2, 2},  // starts past the bottom edge
		{0, 0, 0, 2},  // zero width
		{-5, 0, 2, 2}, // entirely left of the canvas
	} {
		if got := c.AverageBrightness(w[0], w[1], w[2], w[3]); got != 0 {
			t.Errorf("window %v: brightness %v, want 0", w, got)
		}
	}
}

func TestCanvasGrid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h, size, cols, rows int
	}{
		{8, 8, 8, 1, 1},
		{9, 8, 8, 2, 1},
		{16, 17, 8, 2, 3},
		{1, 1, 8, 1, 1},
		{700, 700, 8, 88, 88},
		{1244, 700, 8, 156, 88},
	}
	for _, tt := range tests {
		c := &Canvas{Width: tt.w, Height: tt.h}
		if got := c.Columns(tt.size); got != tt.cols {
			t.Errorf("%dx%d/%d: Columns = %d, want %d", tt.w, tt.h, tt.size, got, tt.cols)
		}
		if got := c.Rows(tt.size); got != tt.rows {
			t.Errorf("%dx%d/%d: Rows = %d, want %d", tt.w, tt.h, tt.size, got, tt.rows)
		}
	}
}

func TestCanvasFromImageUnpremultiplies(t *testing.T) {
	t.Parallel()

	// Half transparent white, stored premultiplied.
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []byte{128, 128, 128, 128})
	}
	c := CanvasFromImage(src)
	if got := c.AverageBrightness(0, 0, 2, 2); got != 255 {
		t.Errorf("AverageBrightness = %v, want 255", got)
	}
	if c.Pix[3] != 128 {
		t.Errorf("alpha = %d, want 128", c.Pix[3])
	}
}

func TestCanvasFromImageSharesNRGBA(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	c := CanvasFromImage(src)
	src.Pix[0] = 42
	if c.Pix[0] != 42 || c.Width != 3 || c.Height != 2 {
		t.Errorf("canvas does not share the NRGBA buffer: %+v", c)
	}

	// A sub-image is copied and rebased.
	sub := src.SubImage(image.Rect(1, 1, 3, 2)).(*image.NRGBA)
	sub.Pix[0] = 7
	c = CanvasFromImage(sub)
	if c.Width != 2 || c.Height != 1 || len(c.Pix) != 8 || c.Pix[0] != 7 {
		t.Errorf("sub-image canvas = %dx%d %v", c.Width, c.Height, c.Pix)
	}
}

func TestCanvasCheck(t *testing.T) {
	t.Parallel()

	var nilCanvas *Canvas
	if nilCanvas.check() == nil {
		t.Error("nil canvas accepted")
	}
	for _, c := range []*Canvas{
		{Width: 0, Height: 1},
		{Width: 1, Height: 0},
		{Pix: make([]byte, 4), Width: 2, Height: 1},
	} {
		if c.check() == nil {
			t.Errorf("canvas %dx%d with %d bytes accepted", c.Width, c.Height, len(c.Pix))
		}
	}
	if err := NewCanvas(3, 2).check(); err != nil {
		t.Errorf("valid canvas rejected: %v", err)
	}
}
