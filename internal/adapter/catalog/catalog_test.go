package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/logger"
)

func TestDefault(t *testing.T) {
	c, err := Default(logger.NewTestLogger())
	require.NoError(t, err)

	tracks := c.Tracks()
	require.Len(t, tracks, 10)
	assert.Equal(t, "1", tracks[0].ID)
	assert.Equal(t, "Midnight Dreams", tracks[0].Title)
	assert.Equal(t, "Luna Eclipse", tracks[0].Artist)
	assert.Equal(t, 180, tracks[0].DurationSeconds)
	assert.Equal(t, "Cosmic Dance", tracks[9].Title)
	for _, tr := range tracks {
		assert.True(t, tr.HasAudio(), "demo track %s should be playable", tr.ID)
	}

	genres := c.Genres()
	require.Len(t, genres, 6)
	assert.Equal(t, domain.Genre{
		Name:     "Electronic",
		Count:    25,
		ImageURL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=300&h=300&fit=crop",
	}, genres[0])
}

func TestParseAssignsMissingIDs(t *testing.T) {
	doc := `
tracks:
  - title: First
    artist: A
    duration: 60
  - id: fixed
    title: Second
    artist: B
`
	c, err := Parse(nil, strings.NewReader(doc), "")
	require.NoError(t, err)

	tracks := c.Tracks()
	require.Len(t, tracks, 2)
	_, err = uuid.Parse(tracks[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "fixed", tracks[1].ID)
	assert.False(t, tracks[0].HasAudio())
	assert.Empty(t, c.Genres())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty document", "", domain.ErrEmptyCatalog},
		{"no tracks", "genres:\n  - name: Pop\n", domain.ErrEmptyCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(nil, strings.NewReader(tt.doc), "")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		doc := "tracks:\n  - {id: a, title: x}\n  - {id: a, title: y}\n"
		_, err := Parse(nil, strings.NewReader(doc), "")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "tracks.id", verr.Field)
	})

	t.Run("missing title", func(t *testing.T) {
		doc := "tracks:\n  - {id: a, artist: x, audio_url: https://example.com/a.mp3}\n"
		_, err := Parse(nil, strings.NewReader(doc), "")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "tracks.title", verr.Field)
	})

	t.Run("unknown field", func(t *testing.T) {
		doc := "tracks:\n  - {id: a, title: x, album: y}\n"
		_, err := Parse(nil, strings.NewReader(doc), "")
		var serr *domain.ServiceError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "Parse", serr.Op)
	})
}

// writeID3v1 writes a minimal file carrying an ID3v1 tag.
func writeID3v1(t *testing.T, path, title, artist string, genre byte) {
	t.Helper()
	field := func(s string, n int) []byte {
		b := make([]byte, n)
		copy(b, s)
		return b
	}

	data := make([]byte, 0, 256)
	data = append(data, make([]byte, 64)...) // audio payload stand-in
	data = append(data, "TAG"...)
	data = append(data, field(title, 30)...)
	data = append(data, field(artist, 30)...)
	data = append(data, field("", 30)...) // album
	data = append(data, field("2024", 4)...)
	data = append(data, field("", 30)...) // comment
	data = append(data, genre)

	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestLoadFileEnrichesLocalTracks(t *testing.T) {
	dir := t.TempDir()
	writeID3v1(t, filepath.Join(dir, "tagged.mp3"), "Tagged Title", "Tagged Artist", 8)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bare.wav"), make([]byte, 32), 0o600))

	doc := `
tracks:
  - id: tagged
    audio_url: tagged.mp3
  - id: bare
    audio_url: bare.wav
  - id: keep
    title: Explicit
    audio_url: tagged.mp3
`
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(logger.NewTestLogger(), path)
	require.NoError(t, err)

	tracks := c.Tracks()
	require.Len(t, tracks, 3)

	assert.Equal(t, "Tagged Title", tracks[0].Title)
	assert.Equal(t, "Tagged Artist", tracks[0].Artist)
	assert.Equal(t, "Jazz", tracks[0].Genre)
	assert.Equal(t, filepath.Join(dir, "tagged.mp3"), tracks[0].AudioURL)

	assert.Equal(t, "bare", tracks[1].Title, "file name stands in for a missing title")
	assert.Equal(t, UnknownArtist, tracks[1].Artist)

	assert.Equal(t, "Explicit", tracks[2].Title)
	assert.Equal(t, "Tagged Artist", tracks[2].Artist)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsLocal(t *testing.T) {
	assert.True(t, IsLocal("/music/a.mp3"))
	assert.True(t, IsLocal("songs/a.wav"))
	assert.False(t, IsLocal("https://example.com/a.mp3"))
	assert.False(t, IsLocal("HTTP://example.com/a.mp3"))
}

func TestTracksIsCopy(t *testing.T) {
	c, err := Default(nil)
	require.NoError(t, err)

	tracks := c.Tracks()
	tracks[0].Title = "changed"

	assert.Equal(t, "Midnight Dreams", c.Tracks()[0].Title)
}
