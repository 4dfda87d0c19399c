// Package config loads asciienc settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aelune/asciienc"
	"github.com/aelune/asciienc/imageutil"
	"github.com/aelune/asciienc/logx"
)

// File is the on-disk configuration.
//
//	palette = "classic"
//	interpolation = "linear"
//	sampler = "image"
//	log_level = "debug"
//
//	[encoder]
//	font_size = 6
//	output_height = 480
type File struct {
	Encoder       asciienc.Config `toml:"encoder"`
	Palette       string          `toml:"palette"`
	Interpolation string          `toml:"interpolation"`
	// Sampler names the decoding backend. It is resolved by the command,
	// not by Options.
	Sampler       string          `toml:"sampler"`
	// MaxPixels of zero disables the source size limit.
	MaxPixels     int             `toml:"max_pixels"`
	LogLevel      string          `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Encoder:       asciienc.DefaultConfig,
		Palette:       asciienc.DefaultPalette.Name(),
		Interpolation: imageutil.InterpolationArea.String(),
		Sampler:       "image",
		LogLevel:      logx.INFO.String(),
	}
}

// Load reads path over Default. Keys absent from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes TOML text over Default.
func Parse(text string) (File, error) {
	f := Default()
	md, err := toml.Decode(text, &f)
	if err != nil {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return f, nil
}

// Level returns the parsed log level.
func (f File) Level() (logx.Level, error) {
	return logx.ParseLevel(f.LogLevel)
}

// Options turns the file into encoder options. The palette is looked up
// by name among the embedded palettes and then as a JSON file path.
func (f File) Options() ([]asciienc.Option, error) {
	palette, err := asciienc.LoadPalette(f.Palette)
	if err != nil {
		return nil, err
	}
	interp, err := imageutil.ParseInterpolation(f.Interpolation)
	if err != nil {
		return nil, err
	}
	if f.MaxPixels < 0 {
		return nil, fmt.Errorf("%w: max_pixels must not be negative, got %d",
			asciienc.ErrInvalidConfig, f.MaxPixels)
	}
	return []asciienc.Option{
		asciienc.WithConfig(f.Encoder),
		asciienc.WithPalette(palette),
		asciienc.WithInterpolation(interp),
		asciienc.WithMaxPixels(f.MaxPixels),
	}, nil
}
