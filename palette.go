package asciienc

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"
)

//go:embed palettedata/*.json
var paletteFS embed.FS

var (
	// DefaultChars are the characters of the default palette, from the
	// sparsest (space) to the densest.
	DefaultChars = []rune{' ', '\'', ':', 'i', 'I', 'J', '$'}

	// DefaultThresholds are the brightness cut-points aligned with
	// DefaultChars. The last one is a sentinel: anything at or above 210
	// maps to '$'.
	DefaultThresholds = []float64{51, 102, 140, 170, 200, 210, 255}

	// DefaultPalette pairs DefaultChars with DefaultThresholds.
	DefaultPalette = MustPalette("default", DefaultChars, DefaultThresholds)
)

// Palette maps a brightness in [0, 255] to a character. Characters are
// ordered from sparsest to densest and each one is paired with the
// threshold at the same index. A Palette is immutable once built and safe
// to share between goroutines.
type Palette struct {
	name       string
	chars      []rune
	thresholds []float64
}

// NewPalette validates chars and thresholds and builds a Palette. There
// must be one threshold per character, thresholds must be strictly
// ascending and lie within [0, 255].
func NewPalette(name string, chars []rune, thresholds []float64) (*Palette, error) {
	if len(chars) == 0 {
		return nil, fmt.Errorf("%w: no characters", ErrInvalidPalette)
	}
	if len(chars) != len(thresholds) {
		return nil, fmt.Errorf("%w: %d characters but %d thresholds",
			ErrInvalidPalette, len(chars), len(thresholds))
	}
	for i, t := range thresholds {
		if math.IsNaN(t) || t < 0 || t > 255 {
			return nil, fmt.Errorf("%w: threshold %d (%v) outside [0, 255]",
				ErrInvalidPalette, i, t)
		}
		if i > 0 && t <= thresholds[i-1] {
			return nil, fmt.Errorf("%w: thresholds not strictly ascending at %d (%v <= %v)",
				ErrInvalidPalette, i, t, thresholds[i-1])
		}
	}

	return &Palette{
		name:       name,
		chars:      append([]rune(nil), chars...),
		thresholds: append([]float64(nil), thresholds...),
	}, nil
}

// MustPalette is like NewPalette but panics on invalid input. It is meant
// for package-level palette definitions.
func MustPalette(name string, chars []rune, thresholds []float64) *Palette {
	p, err := NewPalette(name, chars, thresholds)
	if err != nil {
		panic(err)
	}
	return p
}

// EvenThresholds returns n cut-points splitting [0, 255] into n buckets
// of equal width. The last cut-point is 255.
func EvenThresholds(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 255 * float64(i+1) / float64(n)
	}
	return out
}

// Name returns the palette's name.
func (p *Palette) Name() string { return p.name }

// Len returns the number of characters in the palette.
func (p *Palette) Len() int { return len(p.chars) }

// Chars returns a copy of the palette's characters.
func (p *Palette) Chars() []rune { return append([]rune(nil), p.chars...) }

// Thresholds returns a copy of the palette's thresholds.
func (p *Palette) Thresholds() []float64 {
	return append([]float64(nil), p.thresholds...)
}

// Index returns the bucket for brightness: the first i with
// brightness < Thresholds[i], or the last index when no threshold is
// larger. The mapping is total and non-decreasing in brightness.
func (p *Palette) Index(brightness float64) int {
	for i, t := range p.thresholds {
		if brightness < t {
			return i
		}
	}
	return len(p.chars) - 1
}

// BrightnessToChar returns the character for brightness.
func (p *Palette) BrightnessToChar(brightness float64) rune {
	return p.chars[p.Index(brightness)]
}

func (p *Palette) String() string {
	return fmt.Sprintf("%s(%q)", p.name, string(p.chars))
}

// paletteFile is the JSON layout of a palette definition.
type paletteFile struct {
	Name       string    `json:"name"`
	Chars      string    `json:"chars"`
	Thresholds []float64 `json:"thresholds"`
}

// ParsePalette builds a Palette from its JSON definition. When the
// definition omits thresholds, evenly spaced ones are used.
func ParsePalette(data []byte) (*Palette, error) {
	var pf paletteFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("error unmarshalling palette: %w", err)
	}
	chars := []rune(pf.Chars)
	thresholds := pf.Thresholds
	if len(thresholds) == 0 {
		thresholds = EvenThresholds(len(chars))
	}
	return NewPalette(pf.Name, chars, thresholds)
}

// LoadPalette loads a palette by name from the embedded set (see
// PaletteNames), falling back to reading name as a JSON file path.
func LoadPalette(name string) (*Palette, error) {
	data, vfsErr := paletteFS.ReadFile(fmt.Sprintf("palettedata/%s.json", name))
	if vfsErr != nil {
		var fsErr error
		data, fsErr = os.ReadFile(name)
		if fsErr != nil {
			return nil, fmt.Errorf("error reading palette %q: %w", name, fsErr)
		}
	}

	p, err := ParsePalette(data)
	if err != nil {
		return nil, fmt.Errorf("palette %q: %w", name, err)
	}
	if p.name == "" {
		p.name = strings.TrimSuffix(name, ".json")
	}
	return p, nil
}

// PaletteNames lists the embedded palettes.
func PaletteNames() []string {
	entries, err := fs.ReadDir(paletteFS, "palettedata")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
