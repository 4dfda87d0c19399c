//go:build gocv

package asciienc

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aelune/asciienc/imageutil"
)

func TestGocvSamplerMatchesImageSampler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		img  *imageutil.RGBAImage
		want string
	}{
		{"white", imageutil.CreateSolidImage(255, 255, imageutil.Gray(255)), "$\n"},
		{"black", imageutil.CreateSolidImage(255, 255, imageutil.Gray(0)), " \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := pngSource(t, tt.img)
			for _, s := range []Sampler{NewGocvSampler(), ImageSampler{}} {
				art, err := Encode(context.Background(), src,
					WithSampler(s), WithFontSize(8), WithOutputHeight(8))
				if err != nil {
					t.Fatalf("%T: Encode: %v", s, err)
				}
				if art != tt.want {
					t.Errorf("%T: art = %q, want %q", s, art, tt.want)
				}
			}
		})
	}
}

func TestGocvSamplerDimensions(t *testing.T) {
	t.Parallel()

	src := pngSource(t, imageutil.CreateGradientImage(300, 200))
	want, err := ImageSampler{}.DecodeAndScale(context.Background(), bytes.NewReader(src), 50)
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewGocvSampler().DecodeAndScale(context.Background(), bytes.NewReader(src), 50)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != want.Width || got.Height != want.Height {
		t.Errorf("gocv canvas %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	if err := got.check(); err != nil {
		t.Error(err)
	}
}

func TestGocvSamplerErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := Encode(ctx, BytesSource("not an image"), WithSampler(NewGocvSampler())); !IsImageLoadError(err) {
		t.Errorf("garbage: expected load error, got %v", err)
	}

	s := NewGocvSampler()
	s.MaxPixels = 100
	src := pngSource(t, imageutil.CreateSolidImage(11, 10, imageutil.Gray(0)))
	if _, err := Encode(ctx, src, WithSampler(s)); !errors.Is(err, imageutil.ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
