// Package catalog loads the read-only playlist and browse genres from YAML.
// The demo catalog is embedded in the binary; a file on disk can replace it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/ports"
)

//go:embed catalog.yaml
var embedded []byte

// UnknownArtist is used when a local file has no artist tag.
const UnknownArtist = "Unknown Artist"

// Catalog is an immutable playlist plus genre list.
type Catalog struct {
	tracks []domain.Track
	genres []domain.Genre
}

type document struct {
	Tracks []domain.Track `yaml:"tracks"`
	Genres []domain.Genre `yaml:"genres"`
}

// Default returns the embedded demo catalog.
func Default(logger *slog.Logger) (*Catalog, error) {
	return Parse(logger, bytes.NewReader(embedded), "")
}

// LoadFile reads a catalog from path. Relative local audio paths are
// resolved against the directory of path.
func LoadFile(logger *slog.Logger, path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Parse(logger, f, filepath.Dir(path))
}

// Parse decodes a catalog document.
//
// Entries without an id get a random UUID. Entries whose audio is a local
// file may omit title and artist; those are read from the file's tags.
func Parse(logger *slog.Logger, r io.Reader, baseDir string) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, domain.NewServiceError("Catalog", "Parse", "decode catalog", err)
	}

	if len(doc.Tracks) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(doc.Tracks))
	for i := range doc.Tracks {
		t := &doc.Tracks[i]

		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, dup := seen[t.ID]; dup {
			return nil, domain.NewValidationError("tracks.id", t.ID, "duplicate track id")
		}
		seen[t.ID] = struct{}{}

		if t.AudioURL != "" && IsLocal(t.AudioURL) {
			if !filepath.IsAbs(t.AudioURL) && baseDir != "" {
				t.AudioURL = filepath.Join(baseDir, t.AudioURL)
			}
			if t.Title == "" || t.Artist == "" {
				if err := enrichFromTags(t); err != nil && logger != nil {
					logger.Warn("reading tags failed",
						slog.String("path", t.AudioURL),
						slog.Any("error", err))
				}
			}
		}

		if t.Title == "" {
			return nil, domain.NewValidationError("tracks.title", t.ID, "title is required")
		}
		if t.DurationSeconds < 0 {
			return nil, domain.NewValidationError("tracks.duration", t.DurationSeconds, "must not be negative")
		}
	}

	return &Catalog{tracks: doc.Tracks, genres: doc.Genres}, nil
}

// enrichFromTags fills a missing title, artist and genre from the audio
// file. Without tags the file name stands in for the title.
func enrichFromTags(t *domain.Track) error {
	needTitle, needArtist := t.Title == "", t.Artist == ""
	if needTitle {
		base := filepath.Base(t.AudioURL)
		t.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if needArtist {
		t.Artist = UnknownArtist
	}

	f, err := os.Open(t.AudioURL)
	if err != nil {
		return err
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return err
	}

	if needTitle && meta.Title() != "" {
		t.Title = meta.Title()
	}
	if needArtist && meta.Artist() != "" {
		t.Artist = meta.Artist()
	}
	if t.Genre == "" {
		t.Genre = meta.Genre()
	}
	return nil
}

// IsLocal reports whether url names a file rather than an http(s) resource.
func IsLocal(url string) bool {
	lower := strings.ToLower(url)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}

// Tracks returns a copy of the playlist.
func (c *Catalog) Tracks() []domain.Track {
	return append([]domain.Track(nil), c.tracks...)
}

// Genres returns a copy of the genre tiles.
func (c *Catalog) Genres() []domain.Genre {
	return append([]domain.Genre(nil), c.genres...)
}

// Verify that Catalog implements the CatalogSource interface
var _ ports.CatalogSource = (*Catalog)(nil)
