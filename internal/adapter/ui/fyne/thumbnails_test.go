package fyne

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hariomify/hariomify/internal/logger"
)

func newTestThumbnails(t *testing.T, client *http.Client) *ThumbnailLoader {
	t.Helper()
	l := NewThumbnailLoader(logger.NewTestLogger(), client)
	l.dispatch = func(fn func()) { fn() }
	return l
}

func TestThumbnailLoader_FetchesOnce(t *testing.T) {
	test.NewTempApp(t)

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write(theme.MediaMusicIcon().Content())
	}))
	defer server.Close()

	l := newTestThumbnails(t, server.Client())
	first, second := newCover(50), newCover(50)

	l.Apply(first, server.URL+"/cover.svg")
	l.Wait()
	l.Apply(second, server.URL+"/cover.svg")
	l.Wait()

	assert.Equal(t, int32(1), hits.Load())
	require.NotNil(t, first.Resource)
	assert.Equal(t, "cover.svg", first.Resource.Name())
	assert.Equal(t, first.Resource, second.Resource)
}

func TestThumbnailLoader_KeepsPlaceholderOnError(t *testing.T) {
	test.NewTempApp(t)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	l := newTestThumbnails(t, server.Client())
	img := newCover(50)
	placeholder := img.Resource

	l.Apply(img, server.URL+"/missing.jpg")
	l.Wait()

	assert.Equal(t, placeholder, img.Resource)
}

func TestThumbnailLoader_NilClientDisablesFetching(t *testing.T) {
	test.NewTempApp(t)

	l := newTestThumbnails(t, nil)
	img := newCover(50)
	placeholder := img.Resource

	l.Apply(img, "https://example.com/a.jpg")
	l.Wait()

	assert.Equal(t, placeholder, img.Resource)
}
