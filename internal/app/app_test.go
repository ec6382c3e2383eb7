package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/service"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	config := DefaultConfig()
	config.UseMockAudio = true
	config.MockTickInterval = 0
	config.Thumbnails = false
	config.TestFyneApp = test.NewTempApp(t)
	return config
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "com.hariomify.app", config.AppID)
	assert.False(t, config.UseMockAudio)
	assert.True(t, config.Thumbnails)
	assert.Empty(t, config.CatalogPath)
	assert.Equal(t, service.DefaultAdvanceTimeout, config.AdvanceTimeout)
	assert.Equal(t, 250*time.Millisecond, config.MockTickInterval)
	assert.Equal(t, "text", config.LogFormat)
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.NotNil(t, app.FyneApp())
	assert.NotNil(t, app.EventBus())
	assert.NotNil(t, app.Presenter())
	assert.NotNil(t, app.MainWindow())
	assert.Len(t, app.Catalog().Tracks(), 10)
	assert.Len(t, app.Coordinator().Playlist(), 10)
	assert.Equal(t, domain.ViewHome, app.Presenter().CurrentView())

	assert.NoError(t, app.Shutdown())
}

func TestApplicationShutdownIsIdempotent(t *testing.T) {
	app, err := NewApplication(testConfig(t))
	require.NoError(t, err)

	assert.NoError(t, app.Shutdown())
	assert.NoError(t, app.Shutdown())
}

func TestApplicationPlaysThroughMockAudio(t *testing.T) {
	app, err := NewApplication(testConfig(t))
	require.NoError(t, err)
	defer app.Shutdown()

	track, err := app.Catalog().TrackByID("2")
	require.NoError(t, err)

	require.NoError(t, app.Coordinator().SelectTrack(t.Context(), track))

	state := app.Coordinator().Snapshot()
	assert.True(t, state.IsPlaying)
	assert.Equal(t, "Electric Pulse", state.CurrentTrack.Title)
	assert.Equal(t, 210.0, state.Duration, "mock reports the catalog duration")
}

func TestApplicationCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tracks:
  - id: a
    title: First Light
    artist: Dawn
    duration: 60
    audio_url: https://example.com/a.mp3
  - id: b
    title: No Audio
    artist: Silence
    duration: 30
genres:
  - name: Ambient
    count: 1
`), 0o600))

	config := testConfig(t)
	config.CatalogPath = path

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Len(t, app.Catalog().Tracks(), 2)
	assert.Len(t, app.Catalog().Genres(), 1)
}

func TestApplicationMissingCatalog(t *testing.T) {
	config := testConfig(t)
	config.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	app, err := NewApplication(config)
	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestVersionInfo(t *testing.T) {
	info := VersionInfo{Version: "1.0.0", GitCommit: "abc123", BuildTime: "today"}
	assert.Equal(t, "1.0.0", info.DisplayVersion())
	assert.Equal(t, "Hariomify 1.0.0 (commit: abc123, built: today)", info.FullString())

	info.GitTag = "v1.0.1"
	assert.Equal(t, "v1.0.1", info.DisplayVersion())
}
