package fyne

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

const (
	maxThumbnailBytes = 4 << 20
	thumbnailTimeout  = 15 * time.Second
)

// ThumbnailLoader fetches cover images once per url and hands them to
// every image waiting for them. A nil client disables fetching, leaving
// the placeholder in place.
type ThumbnailLoader struct {
	logger   *slog.Logger
	client   *http.Client
	dispatch func(func())

	mu       sync.Mutex
	cache    map[string]fyneapp.Resource
	inflight map[string][]*canvas.Image
	wg       sync.WaitGroup
}

// NewThumbnailLoader creates a loader. Results are applied on the UI
// goroutine through fyne.Do.
func NewThumbnailLoader(logger *slog.Logger, client *http.Client) *ThumbnailLoader {
	return &ThumbnailLoader{
		logger:   logger.With(slog.String("component", "thumbnails")),
		client:   client,
		dispatch: fyneapp.Do,
		cache:    make(map[string]fyneapp.Resource),
		inflight: make(map[string][]*canvas.Image),
	}
}

// newCover returns a placeholder image of the given edge length.
func newCover(size float32) *canvas.Image {
	img := canvas.NewImageFromResource(theme.MediaMusicIcon())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyneapp.NewSquareSize(size))
	return img
}

// Apply shows the image at url in img, fetching it if needed.
// It must be called on the UI goroutine.
func (l *ThumbnailLoader) Apply(img *canvas.Image, url string) {
	if url == "" {
		setCover(img, theme.MediaMusicIcon())
		return
	}

	l.mu.Lock()
	if res, ok := l.cache[url]; ok {
		l.mu.Unlock()
		setCover(img, res)
		return
	}
	if l.client == nil {
		l.mu.Unlock()
		return
	}
	waiting, started := l.inflight[url]
	l.inflight[url] = append(waiting, img)
	if !started {
		l.wg.Add(1)
		go l.fetch(url)
	}
	l.mu.Unlock()
}

func (l *ThumbnailLoader) fetch(url string) {
	defer l.wg.Done()

	res, err := l.download(url)

	l.mu.Lock()
	waiting := l.inflight[url]
	delete(l.inflight, url)
	if err == nil {
		l.cache[url] = res
	}
	l.mu.Unlock()

	if err != nil {
		l.logger.Debug("thumbnail unavailable", slog.String("url", url), slog.Any("error", err))
		return
	}
	l.dispatch(func() {
		for _, img := range waiting {
			setCover(img, res)
		}
	})
}

func (l *ThumbnailLoader) download(url string) (fyneapp.Resource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), thumbnailTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
	if err != nil {
		return nil, err
	}
	return fyneapp.NewStaticResource(path.Base(req.URL.Path), data), nil
}

// Wait blocks until every started fetch has finished.
func (l *ThumbnailLoader) Wait() {
	l.wg.Wait()
}

func setCover(img *canvas.Image, res fyneapp.Resource) {
	img.Resource = res
	img.Image = nil
	img.File = ""
	img.Refresh()
}
