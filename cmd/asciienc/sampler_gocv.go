//go:build gocv

package main

import (
	"gocv.io/x/gocv"

	"github.com/aelune/asciienc"
	"github.com/aelune/asciienc/imageutil"
	"github.com/aelune/asciienc/internal/config"
)

var gocvInterpolation = map[imageutil.Interpolation]gocv.InterpolationFlags{
	imageutil.InterpolationArea:         gocv.InterpolationArea,
	imageutil.InterpolationLinear:       gocv.InterpolationLinear,
	imageutil.InterpolationApproxLinear: gocv.InterpolationLinear,
	imageutil.InterpolationNearest:      gocv.InterpolationNearestNeighbor,
}

func init() {
	samplers["gocv"] = func(f config.File) (asciienc.Sampler, error) {
		interp, err := imageutil.ParseInterpolation(f.Interpolation)
		if err != nil {
			return nil, err
		}
		s := asciienc.NewGocvSampler()
		s.Interpolation = gocvInterpolation[interp]
		s.MaxPixels = f.MaxPixels
		return s, nil
	}
}
