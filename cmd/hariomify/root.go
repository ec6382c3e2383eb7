package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hariomify/hariomify/internal/app"
	"github.com/hariomify/hariomify/internal/logger"
)

type params struct {
	MockAudio      bool
	Catalog        string
	LogLevel       string
	LogFormat      string
	NoThumbnails   bool
	AdvanceTimeout time.Duration
	HTTPTimeout    time.Duration
}

// config turns the flags into an application configuration.
func (p params) config() (app.Config, error) {
	config := app.DefaultConfig()
	config.UseMockAudio = p.MockAudio
	config.CatalogPath = p.Catalog
	config.Thumbnails = !p.NoThumbnails

	if p.LogLevel != "" {
		level, err := logger.ParseLevel(p.LogLevel)
		if err != nil {
			return app.Config{}, err
		}
		config.LogLevel = level
	}
	switch p.LogFormat {
	case "text", "json":
		config.LogFormat = p.LogFormat
	default:
		return app.Config{}, fmt.Errorf("unknown log format %q (want text or json)", p.LogFormat)
	}
	if p.AdvanceTimeout > 0 {
		config.AdvanceTimeout = p.AdvanceTimeout
	}
	if p.HTTPTimeout > 0 {
		config.HTTPTimeout = p.HTTPTimeout
	}
	return config, nil
}

// rootCmd builds the command tree. run receives the final configuration.
func rootCmd(run func(app.Config) error) *cobra.Command {
	var p params

	cmd := &cobra.Command{
		Use:   "hariomify",
		Short: "A small desktop music player",
		Long: `Hariomify plays a fixed catalog of tracks: browse, search, favorite and
listen, with a desktop player bar and a full-screen player on narrow windows.

The demo catalog is built in. Use --catalog to play your own YAML catalog;
local audio files without a title or artist get them from their tags.

Examples:
  hariomify
  hariomify --mock-audio
  hariomify --catalog ~/music/catalog.yaml --log-level debug`,
		Version:       app.GetVersionInfo().DisplayVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := p.config()
			if err != nil {
				return err
			}
			return run(config)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&p.MockAudio, "mock-audio", false, "Simulate playback instead of using the audio device")
	flags.StringVarP(&p.Catalog, "catalog", "c", "", "YAML catalog to play instead of the built-in demo")
	flags.StringVar(&p.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default from "+logger.EnvLogLevel+")")
	flags.StringVar(&p.LogFormat, "log-format", "text", "Log format: text or json")
	flags.BoolVar(&p.NoThumbnails, "no-thumbnails", false, "Do not download cover images")
	flags.DurationVar(&p.AdvanceTimeout, "advance-timeout", 0, "Bound on loading the next track after one ends")
	flags.DurationVar(&p.HTTPTimeout, "http-timeout", 0, "Bound on each audio or cover download")

	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(app.GetVersionInfo().FullString())
		},
	}
}

func runApplication(config app.Config) error {
	application, err := app.NewApplication(config)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	// Run blocks until the window is closed
	application.Run()
	return application.Shutdown()
}
