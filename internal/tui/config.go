package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/tui/themes"
	"github.com/atotto/clipboard"
)

// SecondaryLoader loads the item, punch and hold feeds in the background.
// feed.Loader satisfies it.
type SecondaryLoader interface {
	LoadSecondary(ctx context.Context, apply func(feed.Secondary))
}

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Secondary SecondaryLoader
	Exporter  export.Writer
	Clipboard func(string) error
	Now       func() time.Time
	Logger    *slog.Logger
	// Failed lists secondary feeds already known to be unavailable.
	Failed []model.Dataset
	Width  int
	Height int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Clipboard: clipboard.WriteAll,
		Now:       time.Now,
		Logger:    slog.Default(),
		Width:     120,
		Height:    40,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSecondaryLoader loads the secondary feeds in the background once the
// dashboard starts.
func WithSecondaryLoader(loader SecondaryLoader) Option {
	return func(c *Config) {
		c.Secondary = loader
	}
}

// WithFailedFeeds marks secondary feeds that could not be loaded up front.
func WithFailedFeeds(failed []model.Dataset) Option {
	return func(c *Config) {
		c.Failed = failed
	}
}

// WithExporter sets where the export key writes sheets.
func WithExporter(w export.Writer) Option {
	return func(c *Config) {
		c.Exporter = w
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(c *Config) {
		c.Clipboard = write
	}
}

// WithClock sets the clock used to date exports.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
