package asciienc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by NewEncoder when an option sets a
	// value the encoder cannot work with.
	ErrInvalidConfig = errors.New("invalid encoder configuration")

	// ErrInvalidPalette is returned when a palette's characters and
	// thresholds do not line up.
	ErrInvalidPalette = errors.New("invalid palette")
)

// ImageLoadError reports that the source image could not be obtained or
// decoded: an unreachable resource, corrupt bytes or an unsupported
// format. It is the only error Encode produces.
type ImageLoadError struct {
	Source string
	Err    error
}

func (e *ImageLoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to load image: %v", e.Err)
	}
	return fmt.Sprintf("failed to load image %s: %v", e.Source, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// IsImageLoadError reports whether err is, or wraps, an *ImageLoadError.
func IsImageLoadError(err error) bool {
	var le *ImageLoadError
	return errors.As(err, &le)
}

// loadError wraps err as an *ImageLoadError for source, keeping an
// existing one intact apart from filling in a missing source name.
func loadError(source string, err error) *ImageLoadError {
	var le *ImageLoadError
	if errors.As(err, &le) {
		if le.Source == "" {
			le.Source = source
		}
		return le
	}
	return &ImageLoadError{Source: source, Err: err}
}
