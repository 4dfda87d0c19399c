package asciienc

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Source is where an image comes from.
type Source interface {
	// Open returns a reader over the encoded image bytes.
	Open(ctx context.Context) (io.ReadCloser, error)
	// String names the source in errors and logs.
	String() string
}

// BytesSource is an in-memory encoded image.
type BytesSource []byte

// Open implements Source.
func (b BytesSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (b BytesSource) String() string {
	return fmt.Sprintf("<%d bytes>", len(b))
}

// FileSource is an image file on disk.
type FileSource string

// Open implements Source.
func (f FileSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f FileSource) String() string { return string(f) }

// ReaderSource reads the image from an arbitrary reader, such as stdin.
// It can only be opened once.
type ReaderSource struct {
	Name   string
	Reader io.Reader
}

// Open implements Source.
func (r ReaderSource) Open(context.Context) (io.ReadCloser, error) {
	if r.Reader == nil {
		return nil, errors.New("no reader")
	}
	if rc, ok := r.Reader.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(r.Reader), nil
}

func (r ReaderSource) String() string { return r.Name }

// URLSource fetches the image over HTTP(S).
type URLSource struct {
	URL string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Open implements Source. Any non-2xx response is an error.
func (u URLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}
	return resp.Body, nil
}

func (u URLSource) String() string { return u.URL }

// DataURLSource is an RFC 2397 "data:" URL carrying the image inline.
type DataURLSource string

// Open implements Source.
func (d DataURLSource) Open(context.Context) (io.ReadCloser, error) {
	rest, ok := strings.CutPrefix(string(d), "data:")
	if !ok {
		return nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("malformed data URL")
	}

	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		var err error
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URL payload: %w", err)
		}
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed data URL payload: %w", err)
		}
		data = []byte(s)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d DataURLSource) String() string {
	meta, _, _ := strings.Cut(string(d), ",")
	return meta + ",..."
}

// ParseSource interprets s as stdin ("-"), a data URL, an HTTP(S) URL or
// a file path, in that order.
func ParseSource(s string) Source {
	switch {
	case s == "-":
		return ReaderSource{Name: "<stdin>", Reader: io.NopCloser(os.Stdin)}
	case strings.HasPrefix(s, "data:"):
		return DataURLSource(s)
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return URLSource{URL: s}
	default:
		return FileSource(s)
	}
}
