package asciienc

import (
	"context"
	"io"

	"github.com/aelune/asciienc/imageutil"
)

// Sampler decodes an image and scales it to a canvas targetHeight pixels
// tall whose width preserves the image's aspect ratio. Failures to decode
// must be reported as *ImageLoadError.
type Sampler interface {
	DecodeAndScale(ctx context.Context, r io.Reader, targetHeight int) (*Canvas, error)
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(ctx context.Context, r io.Reader, targetHeight int) (*Canvas, error)

// DecodeAndScale calls f(ctx, r, targetHeight).
func (f SamplerFunc) DecodeAndScale(ctx context.Context, r io.Reader, targetHeight int) (*Canvas, error) {
	return f(ctx, r, targetHeight)
}

// ImageSampler is the pure Go Sampler. It decodes PNG, JPEG, GIF, TIFF,
// BMP and WebP, honours EXIF orientation and resamples with x/image/draw
// into non-premultiplied pixels, so alpha never darkens a block.
type ImageSampler struct {
	Interpolation imageutil.Interpolation
	// MaxPixels rejects larger sources before decoding. Zero means no
	// limit.
	MaxPixels int
	// MaxBytes caps the encoded size read from the source. Zero means
	// imageutil.DefaultMaxBytes, negative means no limit.
	MaxBytes int64
}

// DecodeAndScale implements Sampler.
func (s ImageSampler) DecodeAndScale(ctx context.Context, r io.Reader, targetHeight int) (*Canvas, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ImageLoadError{Err: err}
	}

	img, _, err := imageutil.Decode(r, imageutil.DecodeOptions{
		MaxPixels: s.MaxPixels,
		MaxBytes:  s.MaxBytes,
	})
	if err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ImageLoadError{Err: err}
	}

	return CanvasFromImage(imageutil.ResizeToHeight(img, targetHeight, s.Interpolation)), nil
}
