// Package asciienc turns raster images into monochrome text art.
//
// The image is scaled to a canvas of a fixed pixel height, cut into square
// blocks of FontSize pixels, and every block becomes the palette character
// matching its average brightness. Rows are terminated by '\n'.
package asciienc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aelune/asciienc/logx"
)

// Config holds the encoder settings.
type Config struct {
	// FontSize is the width and height of a block in canvas pixels.
	FontSize int `toml:"font_size"`
	// CharSpacing is the horizontal adjustment between rendered glyphs.
	// It is only used by RenderPNG and never changes the text output.
	CharSpacing int `toml:"char_spacing"`
	// OutputHeight is the canvas height in pixels; the width follows the
	// source aspect ratio.
	OutputHeight int `toml:"output_height"`
}

// DefaultConfig is used by NewEncoder unless options override it.
var DefaultConfig = Config{
	FontSize:     8,
	CharSpacing:  -5,
	OutputHeight: 700,
}

// Validate reports whether the configuration can drive an encode.
func (c Config) Validate() error {
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %d",
			ErrInvalidConfig, c.FontSize)
	}
	if c.OutputHeight <= 0 {
		return fmt.Errorf("%w: output height must be positive, got %d",
			ErrInvalidConfig, c.OutputHeight)
	}
	return nil
}

// Encoder converts images to text art. It keeps no per-call state, so a
// single Encoder may be used from many goroutines at once.
type Encoder struct {
	cfg     Config
	palette *Palette
	sampler Sampler
	log     logx.Logger
}

// NewEncoder creates an Encoder with DefaultConfig, DefaultPalette and an
// ImageSampler using area interpolation, then applies opts.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		cfg:     DefaultConfig,
		palette: DefaultPalette,
		sampler: ImageSampler{},
		log:     logx.NopLogger{},
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.palette == nil {
		return nil, fmt.Errorf("%w: nil palette", ErrInvalidConfig)
	}
	if e.sampler == nil {
		return nil, fmt.Errorf("%w: nil sampler", ErrInvalidConfig)
	}
	if e.log == nil {
		e.log = logx.NopLogger{}
	}
	return e, nil
}

// Config returns the encoder's configuration.
func (e *Encoder) Config() Config { return e.cfg }

// Palette returns the encoder's palette.
func (e *Encoder) Palette() *Palette { return e.palette }

// Encode loads src, scales it and returns the text art. The only error
// is *ImageLoadError; on error no partial output is returned.
func (e *Encoder) Encode(ctx context.Context, src Source) (string, error) {
	start := time.Now()

	rc, err := src.Open(ctx)
	if err != nil {
		e.log.LogPrintf(logx.DEBUG, "open %s: %v", src, err)
		return "", loadError(src.String(), err)
	}
	defer rc.Close()

	canvas, err := e.sampler.DecodeAndScale(ctx, rc, e.cfg.OutputHeight)
	if err != nil {
		e.log.LogPrintf(logx.DEBUG, "decode %s: %v", src, err)
		return "", loadError(src.String(), err)
	}
	if err := canvas.check(); err != nil {
		e.log.LogPrintf(logx.DEBUG, "decode %s: %v", src, err)
		return "", loadError(src.String(), err)
	}
	decoded := time.Now()

	art := e.EncodeCanvas(canvas)
	e.log.LogPrintf(logx.DEBUG,
		"encoded %s: canvas %dx%d, grid %dx%d, decode %v, quantize %v",
		src, canvas.Width, canvas.Height,
		canvas.Columns(e.cfg.FontSize), canvas.Rows(e.cfg.FontSize),
		decoded.Sub(start), time.Since(decoded))
	return art, nil
}

// EncodeCanvas walks canvas in FontSize x FontSize blocks, left to right
// and top to bottom, and emits one character per block and '\n' after
// every row. Blocks on the right and bottom edges may be partial; they
// are averaged over the pixels they actually cover.
func (e *Encoder) EncodeCanvas(canvas *Canvas) string {
	size := e.cfg.FontSize
	cols, rows := canvas.Columns(size), canvas.Rows(size)

	var sb strings.Builder
	sb.Grow(rows * (cols + 1))
	for y := 0; y < canvas.Height; y += size {
		for x := 0; x < canvas.Width; x += size {
			brightness := canvas.AverageBrightness(x, y, size, size)
			sb.WriteRune(e.palette.BrightnessToChar(brightness))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Encode is a convenience wrapper building a one-off Encoder from opts.
// Invalid options are reported before any image is loaded.
func Encode(ctx context.Context, src Source, opts ...Option) (string, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return "", err
	}
	return e.Encode(ctx, src)
}
