package imageutil

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, which widens its support when
	// downscaling and so averages over the covered source area.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationApproxLinear uses x/image's fast approximate bilinear
	// kernel.
	InterpolationApproxLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

var interpolationNames = map[Interpolation]string{
	InterpolationArea:         "area",
	InterpolationLinear:       "linear",
	InterpolationApproxLinear: "approx",
	InterpolationNearest:      "nearest",
}

func (i Interpolation) String() string {
	if s, ok := interpolationNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation maps a name such as "area" or "nearest" to its
// Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for interp, s := range interpolationNames {
		if s == name {
			return interp, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationApproxLinear:
		return draw.ApproxBiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize scales the whole of src into a new width x height image using
// the given interpolation method. Every destination pixel is written.
// The result is not premultiplied, so a translucent pixel keeps its full
// color values and only its alpha records the transparency.
func Resize(src image.Image, width, height int, interp Interpolation) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	interp.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WidthForHeight returns the width that preserves the aspect ratio of a
// srcWidth x srcHeight image scaled to height, rounded to the nearest
// pixel. The result is never less than one.
func WidthForHeight(srcWidth, srcHeight, height int) int {
	if srcHeight <= 0 {
		return 0
	}
	aspectRatio := float64(srcWidth) / float64(srcHeight)
	width := int(math.Round(float64(height) * aspectRatio))
	if width < 1 {
		width = 1
	}
	return width
}

// ResizeToHeight resizes an image to the specified height while
// maintaining aspect ratio.
func ResizeToHeight(src image.Image, height int, interp Interpolation) *image.NRGBA {
	b := src.Bounds()
	width := WidthForHeight(b.Dx(), b.Dy(), height)
	return Resize(src, width, height, interp)
}
