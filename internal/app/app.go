// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/hariomify/hariomify/internal/adapter/catalog"
	"github.com/hariomify/hariomify/internal/adapter/eventbus"
	"github.com/hariomify/hariomify/internal/adapter/media/audio"
	"github.com/hariomify/hariomify/internal/adapter/media/mock"
	"github.com/hariomify/hariomify/internal/adapter/repository/memory"
	fyneui "github.com/hariomify/hariomify/internal/adapter/ui/fyne"
	"github.com/hariomify/hariomify/internal/domain"
	"github.com/hariomify/hariomify/internal/logger"
	"github.com/hariomify/hariomify/internal/ports"
	"github.com/hariomify/hariomify/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for the CLI
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus ports.EventBus
	resource ports.MediaResource

	// Services
	session     *service.MediaSession
	coordinator *service.PlaybackCoordinator
	favorites   *service.FavoritesService
	catalog     *service.CatalogService
	stats       *service.StatsService

	// UI
	thumbnails *fyneui.ThumbnailLoader
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
	shutdownErr  error
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// UseMockAudio replaces the audio device with a simulated resource
	UseMockAudio bool

	// MockTickInterval is how often the simulated resource advances
	MockTickInterval time.Duration

	// CatalogPath is a YAML catalog replacing the embedded demo catalog ("" for the demo)
	CatalogPath string

	// AdvanceTimeout bounds the load and play of an automatic advance
	AdvanceTimeout time.Duration

	// HTTPTimeout bounds every audio and thumbnail download
	HTTPTimeout time.Duration

	// Thumbnails enables downloading cover images
	Thumbnails bool

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:            "com.hariomify.app",
		MockTickInterval: 250 * time.Millisecond,
		AdvanceTimeout:   service.DefaultAdvanceTimeout,
		HTTPTimeout:      time.Minute,
		Thumbnails:       true,
		LogLevel:         loggerCfg.Level,
		LogFormat:        loggerCfg.Format,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Load the catalog
	source, err := loadCatalog(app.logger, config.CatalogPath)
	if err != nil {
		return nil, err
	}
	app.catalog = service.NewCatalogService(app.logger, source)
	tracks := app.catalog.Tracks()

	// Step 3: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 4: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus(app.logger)

	// Step 5: Create the media resource
	client := &http.Client{Timeout: config.HTTPTimeout}
	app.resource = app.newResource(config, client, tracks)

	// Step 6: Create services (with dependency injection)
	app.session = service.NewMediaSession(app.logger, app.resource, app.eventBus)
	app.coordinator = service.NewPlaybackCoordinator(app.logger, app.session, app.eventBus, tracks)
	if config.AdvanceTimeout > 0 {
		app.coordinator.SetAdvanceTimeout(config.AdvanceTimeout)
	}
	app.favorites = service.NewFavoritesService(app.logger, memory.NewFavoritesRepository(), app.eventBus)
	app.stats = service.NewStatsService(
		app.logger,
		app.eventBus,
		memory.NewActivityRepository(memory.DefaultActivityCapacity),
		app.catalog,
		app.favorites,
	)

	// Step 7: Create Presenter and UI
	var thumbClient *http.Client
	if config.Thumbnails {
		thumbClient = client
	}
	app.thumbnails = fyneui.NewThumbnailLoader(app.logger, thumbClient)

	app.presenter = fyneui.NewPresenter(
		app.logger,
		app.coordinator,
		app.session,
		app.favorites,
		app.catalog,
		app.stats,
		app.eventBus,
	)
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, fyneui.WindowConfig{
		Tracks:  tracks,
		Genres:  app.catalog.Genres(),
		Version: GetVersionInfo().DisplayVersion(),
	}, app.presenter, app.thumbnails)

	// Connect presenter to the main window
	app.presenter.AttachView(app.mainWindow)

	return app, nil
}

func loadCatalog(log *slog.Logger, path string) (*catalog.Catalog, error) {
	if path == "" {
		c, err := catalog.Default(log)
		if err != nil {
			return nil, fmt.Errorf("load embedded catalog: %w", err)
		}
		return c, nil
	}

	c, err := catalog.LoadFile(log, path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	log.Info("catalog loaded", slog.String("path", path))
	return c, nil
}

// newResource picks the simulated or the real media resource.
func (a *Application) newResource(config Config, client *http.Client, tracks []domain.Track) ports.MediaResource {
	if !config.UseMockAudio && !audio.Available {
		a.logger.Warn("audio output not available in this build, using simulated audio")
		config.UseMockAudio = true
	}

	if !config.UseMockAudio {
		return audio.New(a.logger, client)
	}

	resource := mock.NewResource(a.logger)
	for _, t := range tracks {
		if t.DurationSeconds > 0 {
			resource.SetDuration(t.AudioURL, float64(t.DurationSeconds))
		}
	}
	if config.MockTickInterval > 0 {
		resource.Run(config.MockTickInterval)
	}
	return resource
}

// Run starts the application.
// This is called from the CLI after the application is created.
func (a *Application) Run() {
	a.logger.Info("Hariomify started", slog.Int("tracks", len(a.catalog.Tracks())))

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times; later calls return the first result.
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		// UI first so no intent reaches a stopped service
		a.presenter.Shutdown()
		a.thumbnails.Wait()

		// Services in reverse order of creation
		a.stats.Shutdown()
		a.coordinator.Shutdown()

		var errs []error
		if err := a.session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close media session: %w", err))
		}
		if err := a.eventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
		a.shutdownErr = errors.Join(errs...)

		if a.shutdownErr != nil {
			a.logger.Warn("shutdown finished with errors", slog.Any("error", a.shutdownErr))
			return
		}
		a.logger.Info("application shutdown complete")
	})
	return a.shutdownErr
}

// Accessors used by the CLI and tests.

// FyneApp returns the Fyne application.
func (a *Application) FyneApp() fyne.App { return a.fyneApp }

// EventBus returns the event bus.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Presenter returns the presenter.
func (a *Application) Presenter() *fyneui.Presenter { return a.presenter }

// Coordinator returns the playback coordinator.
func (a *Application) Coordinator() *service.PlaybackCoordinator { return a.coordinator }

// Catalog returns the catalog service.
func (a *Application) Catalog() *service.CatalogService { return a.catalog }

// MainWindow returns the main window.
func (a *Application) MainWindow() *fyneui.MainWindow { return a.mainWindow }
