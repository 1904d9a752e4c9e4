package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/internal/ctxlog"
	"github.com/specialistvlad/componentcatalog/internal/settings"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	config  *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and catalog. Log
// output goes to logW. When no modules are given the core modules are used.
func NewApp(logW io.Writer, cfg *Config, modules ...catalog.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	opts := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithArgumentParser(settings.NewParser()),
	}
	if cfg.Strict {
		opts = append(opts, catalog.WithStrictRegistration())
	}
	cat := catalog.New(opts...)

	if len(modules) == 0 {
		modules = coreModules
	}
	if err := cat.RegisterModule(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	return &App{
		logger:  logger,
		catalog: cat,
		config:  cfg,
	}, nil
}

// Catalog returns the application's catalog. This is primarily for testing.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Context returns ctx carrying the application logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
