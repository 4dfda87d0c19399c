package imageutil

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP decoder
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for images with a zero width or height.
var ErrEmptyImage = errors.New("image has no pixels")

// ErrTooLarge is returned when an image header announces more pixels
// than the caller allows, or the encoded image is longer than allowed.
var ErrTooLarge = errors.New("image exceeds size limit")

// DefaultMaxBytes caps how much of an encoded image is read when the
// caller sets no limit of its own.
const DefaultMaxBytes = 256 << 20

// DecodeOptions constrains Decode.
type DecodeOptions struct {
	// MaxPixels rejects images whose width*height exceeds it, before the
	// pixel data is read. Zero disables the check.
	MaxPixels int
	// MaxBytes rejects encoded images longer than this many bytes. Zero
	// means DefaultMaxBytes; a negative value disables the check.
	MaxBytes int64
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, TIFF,
// BMP, WebP), applies its EXIF orientation and returns it together with
// the detected format name. The header is checked against opts before the
// rest of r is read.
func Decode(r io.Reader, opts DecodeOptions) (image.Image, string, error) {
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}

	// Everything the header parse pulls through br lands in buf as well.
	var buf bytes.Buffer
	br := bufio.NewReader(io.TeeReader(r, &buf))
	cfg, format, err := image.DecodeConfig(br)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, ErrEmptyImage
	}
	if opts.MaxPixels > 0 && cfg.Width*cfg.Height > opts.MaxPixels {
		return nil, format, fmt.Errorf("%w: %dx%d > %d pixels",
			ErrTooLarge, cfg.Width, cfg.Height, opts.MaxPixels)
	}

	if _, err := io.Copy(&buf, r); err != nil {
		return nil, format, fmt.Errorf("failed to read image: %w", err)
	}
	if maxBytes > 0 && int64(buf.Len()) > maxBytes {
		return nil, format, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}

	img, err := imaging.Decode(bytes.NewReader(buf.Bytes()), imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}

// LoadImage loads an image from the specified path.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := Decode(f, DecodeOptions{})
	if err != nil {
		return nil, err
	}
	return RGBAImageFromImage(img), nil
}

// EncodePNG returns img encoded as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
