package asciienc

import (
	"github.com/aelune/asciienc/imageutil"
	"github.com/aelune/asciienc/logx"
)

// Option is a functional option for configuring an Encoder.
type Option func(*Encoder)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(e *Encoder) {
		e.cfg = cfg
	}
}

// WithFontSize sets the block edge length in canvas pixels.
func WithFontSize(size int) Option {
	return func(e *Encoder) {
		e.cfg.FontSize = size
	}
}

// WithCharSpacing sets the glyph spacing carried to renderers. It has
// no effect on the text produced by Encode.
func WithCharSpacing(spacing int) Option {
	return func(e *Encoder) {
		e.cfg.CharSpacing = spacing
	}
}

// WithOutputHeight sets the canvas height in pixels.
func WithOutputHeight(height int) Option {
	return func(e *Encoder) {
		e.cfg.OutputHeight = height
	}
}

// WithPalette sets the character palette.
func WithPalette(p *Palette) Option {
	return func(e *Encoder) {
		e.palette = p
	}
}

// WithSampler replaces the image decoder and scaler.
func WithSampler(s Sampler) Option {
	return func(e *Encoder) {
		e.sampler = s
	}
}

// WithInterpolation selects the resampling kernel of the default
// ImageSampler. It is ignored when WithSampler supplies another sampler.
func WithInterpolation(interp imageutil.Interpolation) Option {
	return func(e *Encoder) {
		if s, ok := e.sampler.(ImageSampler); ok {
			s.Interpolation = interp
			e.sampler = s
		}
	}
}

// WithMaxPixels rejects sources larger than n pixels in the default
// ImageSampler.
func WithMaxPixels(n int) Option {
	return func(e *Encoder) {
		if s, ok := e.sampler.(ImageSampler); ok {
			s.MaxPixels = n
			e.sampler = s
		}
	}
}

// WithMaxBytes caps the encoded size the default ImageSampler reads.
func WithMaxBytes(n int64) Option {
	return func(e *Encoder) {
		if s, ok := e.sampler.(ImageSampler); ok {
			s.MaxBytes = n
			e.sampler = s
		}
	}
}

// WithLogger sets where the encoder reports progress.
func WithLogger(l logx.Logger) Option {
	return func(e *Encoder) {
		e.log = l
	}
}
