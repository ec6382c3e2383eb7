// Package audio implements ports.MediaResource on top of gopxl/beep.
//
// A source is fetched whole (from an http(s) url or a local file), decoded
// with beep's mp3 or wav decoder, and mixed through the beep speaker. Speaker
// output needs cgo on Linux; other builds report every load as failed.
package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"

	"github.com/hariomify/hariomify/internal/domain"
)

// MaxSourceBytes caps the size of a fetched source.
const MaxSourceBytes = 64 << 20

var (
	// ErrNotReady is returned by Play before a source has finished loading.
	ErrNotReady = errors.New("source not ready")

	// ErrUnavailable is reported for every load in builds without audio output.
	ErrUnavailable = errors.New("audio output is not available in this build")
)

type format int

const (
	formatUnknown format = iota
	formatMP3
	formatWAV
)

func (f format) String() string {
	switch f {
	case formatMP3:
		return "mp3"
	case formatWAV:
		return "wav"
	default:
		return "unknown"
	}
}

// detectFormat picks a decoder from the url's extension, falling back to
// the response content type.
func detectFormat(rawURL, contentType string) format {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" && u.Path != "" {
		path = u.Path
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return formatMP3
	case ".wav", ".wave":
		return formatWAV
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return formatUnknown
	}
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return formatMP3
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return formatWAV
	default:
		return formatUnknown
	}
}

func isRemote(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// fetch reads a whole source into memory and returns it with its content type.
func fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, string, error) {
	if !isRemote(rawURL) {
		data, err := os.ReadFile(rawURL)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", rawURL, err)
		}
		return data, "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSourceBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxSourceBytes {
		return nil, "", fmt.Errorf("fetch %s: source larger than %d bytes", rawURL, MaxSourceBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// nopCloser lets an in-memory reader stand in for a file.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// decode turns an in-memory source into a seekable stream.
func decode(data []byte, f format) (beep.StreamSeekCloser, beep.Format, error) {
	r := nopCloser{bytes.NewReader(data)}
	switch f {
	case formatMP3:
		return mp3.Decode(r)
	case formatWAV:
		return wav.Decode(r)
	default:
		return nil, beep.Format{}, domain.ErrUnsupportedFormat
	}
}

// gainToVolume maps a linear gain in [0, 1] onto effects.Volume's base-2
// exponent.
func gainToVolume(gain float64) (volume float64, silent bool) {
	if gain <= 0 {
		return 0, true
	}
	return math.Log2(math.Min(gain, 1)), false
}
