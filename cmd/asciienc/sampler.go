package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aelune/asciienc"
	"github.com/aelune/asciienc/imageutil"
	"github.com/aelune/asciienc/internal/config"
)

// samplers maps -sampler names to constructors. Build-tagged files add
// backends that need extra libraries.
var samplers = map[string]func(config.File) (asciienc.Sampler, error){
	"image": func(f config.File) (asciienc.Sampler, error) {
		interp, err := imageutil.ParseInterpolation(f.Interpolation)
		if err != nil {
			return nil, err
		}
		return asciienc.ImageSampler{Interpolation: interp, MaxPixels: f.MaxPixels}, nil
	},
}

func samplerNames() []string {
	names := make([]string, 0, len(samplers))
	for name := range samplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newSampler(f config.File) (asciienc.Sampler, error) {
	ctor, ok := samplers[f.Sampler]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sampler %q (available: %s)",
			asciienc.ErrInvalidConfig, f.Sampler, strings.Join(samplerNames(), ", "))
	}
	return ctor(f)
}
