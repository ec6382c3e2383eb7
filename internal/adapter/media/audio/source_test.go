package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/logger"
	"github.com/hariomify/hariomify/internal/ports"
	"github.com/hariomify/hariomify/internal/testutil"
)

// silentWAV returns a 16-bit mono PCM file of the given length.
func silentWAV(t *testing.T, rate, samples int) []byte {
	t.Helper()
	var buf bytes.Buffer
	dataSize := samples * 2
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, le, uint32(36+dataSize)))
	buf.WriteString("WAVEfmt ")
	require.NoError(t, binary.Write(&buf, le, uint32(16)))
	require.NoError(t, binary.Write(&buf, le, uint16(1))) // PCM
	require.NoError(t, binary.Write(&buf, le, uint16(1))) // mono
	require.NoError(t, binary.Write(&buf, le, uint32(rate)))
	require.NoError(t, binary.Write(&buf, le, uint32(rate*2)))
	require.NoError(t, binary.Write(&buf, le, uint16(2)))
	require.NoError(t, binary.Write(&buf, le, uint16(16)))
	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, le, uint32(dataSize)))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        format
	}{
		{"mp3 extension", "https://example.com/a/song.mp3", "", formatMP3},
		{"extension ignores query", "https://example.com/song.MP3?sig=abc", "", formatMP3},
		{"wav file", "/music/take.wav", "", formatWAV},
		{"wave extension", "take.WAVE", "", formatWAV},
		{"content type fallback", "https://example.com/stream", "audio/mpeg", formatMP3},
		{"content type with params", "https://example.com/stream", "audio/x-wav; charset=binary", formatWAV},
		{"unknown", "https://example.com/song.ogg", "audio/ogg", formatUnknown},
		{"bad content type", "https://example.com/x", ";;", formatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.url, tt.contentType))
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "mp3", formatMP3.String())
	assert.Equal(t, "wav", formatWAV.String())
	assert.Equal(t, "unknown", formatUnknown.String())
}

func TestIsRemote(t *testing.T) {
	assert.True(t, isRemote("https://example.com/a.mp3"))
	assert.True(t, isRemote("HTTP://example.com/a.mp3"))
	assert.False(t, isRemote("/tmp/a.mp3"))
	assert.False(t, isRemote("file.wav"))
}

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	data, contentType, err := fetch(context.Background(), http.DefaultClient, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
	assert.Empty(t, contentType)

	_, _, err = fetch(context.Background(), http.DefaultClient, filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/song" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	data, contentType, err := fetch(context.Background(), server.Client(), server.URL+"/song")
	require.NoError(t, err)
	assert.Equal(t, "mp3-bytes", string(data))
	assert.Equal(t, "audio/mpeg", contentType)

	_, _, err = fetch(context.Background(), server.Client(), server.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_HTTPCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := fetch(ctx, server.Client(), server.URL+"/slow.mp3")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDecode_WAV(t *testing.T) {
	stream, f, err := decode(silentWAV(t, 8000, 8000), formatWAV)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, 8000, int(f.SampleRate))
	assert.Equal(t, 1, f.NumChannels)
	assert.Equal(t, time.Second, f.SampleRate.D(stream.Len()))

	require.NoError(t, stream.Seek(4000))
	assert.Equal(t, 4000, stream.Position())
}

func TestDecode_Errors(t *testing.T) {
	_, _, err := decode([]byte("whatever"), formatUnknown)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, _, err = decode([]byte("not a wav file"), formatWAV)
	assert.Error(t, err)
}

func TestGainToVolume(t *testing.T) {
	volume, silent := gainToVolume(0)
	assert.True(t, silent)
	assert.Zero(t, volume)

	volume, silent = gainToVolume(1)
	assert.False(t, silent)
	assert.Zero(t, volume)

	volume, silent = gainToVolume(0.5)
	assert.False(t, silent)
	assert.InDelta(t, -1.0, volume, 1e-9)

	volume, _ = gainToVolume(3)
	assert.Zero(t, volume)
}

// signalRecorder collects signals on a channel.
func signalRecorder(r *Resource) <-chan ports.MediaSignal {
	ch := make(chan ports.MediaSignal, 16)
	r.SetListener(func(s ports.MediaSignal) { ch <- s })
	return ch
}

func TestResource_LoadMissingFileReportsError(t *testing.T) {
	defer testutil.VerifyNoLeaks(t, testutil.IgnoreSpeakerGoroutines()...)
	r := New(logger.NewTestLogger(), nil)
	defer func() { assert.NoError(t, r.Close()) }()
	signals := signalRecorder(r)

	r.Load(7, filepath.Join(t.TempDir(), "missing.mp3"))

	var got []ports.MediaSignal
	require.Eventually(t, func() bool {
		for {
			select {
			case s := <-signals:
				got = append(got, s)
			default:
				return len(got) == 2
			}
		}
	}, time.Second, time.Millisecond)

	assert.Equal(t, ports.SignalLoadStart, got[0].Kind)
	assert.Equal(t, ports.SignalError, got[1].Kind)
	assert.Equal(t, uint64(7), got[1].Generation)
	assert.Error(t, got[1].Err)
}

func TestResource_PlayBeforeLoad(t *testing.T) {
	r := New(logger.NewTestLogger(), nil)
	defer func() { assert.NoError(t, r.Close()) }()

	assert.ErrorIs(t, r.Play(context.Background()), ErrNotReady)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Play(ctx), context.Canceled)

	// Controls without a source are no-ops.
	r.Pause()
	r.Seek(10)
	r.SetVolume(0.3)
	r.Unload()
}
