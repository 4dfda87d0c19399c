package asciienc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrEmptyArt is returned when asked to render text art with no rows.
var ErrEmptyArt = errors.New("nothing to render")

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

// goMono returns the embedded Go Mono font, parsed once.
func goMono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = freetype.ParseFont(gomono.TTF)
	})
	return monoFont, monoErr
}

// LoadFont loads a TrueType font from file.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// RenderOptions controls how text art is drawn to an image.
type RenderOptions struct {
	// FontSize is the glyph size and line height in pixels.
	FontSize int
	// CharSpacing is added to FontSize to get the horizontal advance
	// between glyphs. Negative values pack glyphs tighter; the advance
	// never drops below one pixel.
	CharSpacing int
	Foreground  color.Color
	Background  color.Color
	// Font defaults to Go Mono.
	Font *truetype.Font
}

// RenderOptionsFromConfig draws glyphs the way the encoder sampled them:
// one FontSize cell per block, advanced by FontSize+CharSpacing. White on
// black, so dense characters read as bright.
func RenderOptionsFromConfig(cfg Config) RenderOptions {
	return RenderOptions{
		FontSize:    cfg.FontSize,
		CharSpacing: cfg.CharSpacing,
		Foreground:  color.White,
		Background:  color.Black,
	}
}

// Advance returns the horizontal distance between glyph origins.
func (o RenderOptions) Advance() int {
	return max(o.FontSize+o.CharSpacing, 1)
}

// RenderImage rasterizes art, one line per row, into a new image of
// columns*Advance() x rows*FontSize pixels.
func RenderImage(art string, opts RenderOptions) (*image.RGBA, error) {
	if opts.FontSize <= 0 {
		return nil, fmt.Errorf("%w: font size must be positive, got %d",
			ErrInvalidConfig, opts.FontSize)
	}
	if opts.Foreground == nil {
		opts.Foreground = color.White
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	ttf := opts.Font
	if ttf == nil {
		var err error
		if ttf, err = goMono(); err != nil {
			return nil, fmt.Errorf("failed to load builtin font: %w", err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, utf8.RuneCountInString(line))
	}
	if cols == 0 {
		return nil, ErrEmptyArt
	}

	advance := opts.Advance()
	img := image.NewRGBA(image.Rect(0, 0, cols*advance, len(lines)*opts.FontSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(opts.FontSize),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	metrics := face.Metrics()
	face.Close()
	// Center the ascent/descent span in the cell.
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baseline := (opts.FontSize + ascent - descent) / 2

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(float64(opts.FontSize))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(opts.Foreground))
	ctx.SetHinting(font.HintingFull)

	for row, line := range lines {
		col := 0
		for _, r := range line {
			if r != ' ' {
				pt := freetype.Pt(col*advance, row*opts.FontSize+baseline)
				if _, err := ctx.DrawString(string(r), pt); err != nil {
					return nil, fmt.Errorf("failed to draw %q: %w", r, err)
				}
			}
			col++
		}
	}
	return img, nil
}

// RenderPNG rasterizes art and writes it to w as PNG.
func RenderPNG(w io.Writer, art string, opts RenderOptions) error {
	img, err := RenderImage(art, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
