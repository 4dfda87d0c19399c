//go:build gocv

package asciienc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"

	"github.com/aelune/asciienc/imageutil"
)

// GocvSampler decodes and scales through OpenCV. It is only built with
// the gocv build tag, since it needs OpenCV installed.
type GocvSampler struct {
	Interpolation gocv.InterpolationFlags
	// MaxPixels rejects larger sources. Zero means no limit.
	MaxPixels int
	// MaxBytes caps the encoded size read from the source. Zero means
	// imageutil.DefaultMaxBytes, negative means no limit.
	MaxBytes int64
}

// NewGocvSampler returns a GocvSampler using area interpolation.
func NewGocvSampler() GocvSampler {
	return GocvSampler{Interpolation: gocv.InterpolationArea}
}

// DecodeAndScale implements Sampler.
func (s GocvSampler) DecodeAndScale(ctx context.Context, r io.Reader, targetHeight int) (*Canvas, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ImageLoadError{Err: err}
	}

	maxBytes := s.MaxBytes
	if maxBytes == 0 {
		maxBytes = imageutil.DefaultMaxBytes
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ImageLoadError{Err: fmt.Errorf("failed to read image: %w", err)}
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, &ImageLoadError{Err: fmt.Errorf("%w: more than %d bytes",
			imageutil.ErrTooLarge, maxBytes)}
	}

	// OpenCV knows formats image.DecodeConfig does not; those are only
	// checked after decoding.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if err := s.checkSize(cfg.Width, cfg.Height); err != nil {
			return nil, &ImageLoadError{Err: err}
		}
	}

	img, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, &ImageLoadError{Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	defer img.Close()
	if img.Empty() {
		return nil, &ImageLoadError{Err: errors.New("failed to decode image")}
	}
	if err := s.checkSize(img.Cols(), img.Rows()); err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ImageLoadError{Err: err}
	}

	width := imageutil.WidthForHeight(img.Cols(), img.Rows(), targetHeight)

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(img, &resized, image.Pt(width, targetHeight), 0, 0, s.Interpolation)

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(resized, &rgba, gocv.ColorBGRToRGBA)

	canvas := NewCanvas(width, targetHeight)
	copy(canvas.Pix, rgba.ToBytes())
	return canvas, nil
}

func (s GocvSampler) checkSize(width, height int) error {
	if s.MaxPixels > 0 && width*height > s.MaxPixels {
		return fmt.Errorf("%w: %dx%d > %d pixels",
			imageutil.ErrTooLarge, width, height, s.MaxPixels)
	}
	return nil
}
