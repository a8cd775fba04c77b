package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/provreplay/internal/config"
	"github.com/vk/provreplay/internal/ctxlog"
	"github.com/vk/provreplay/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *AppConfig
}

// NewApp constructs the application: it builds an isolated logger, loads
// plugin manifests through the given loader, and populates and validates
// the live action registry. Startup failures are programmer or environment
// errors, so they panic; the entrypoint recovers and reports them.
func NewApp(outW, logW io.Writer, appConfig *AppConfig, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.With(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if appConfig.PluginsPath != "" {
		model, err := loader.Load(ctx, appConfig.PluginsPath)
		if err != nil {
			panic(fmt.Errorf("failed to load plugin manifests: %w", err))
		}
		reg.PopulateFromModel(model)
		logger.Debug("Registry populated from manifests.", "actions", reg.Len())

		if err := reg.Validate(ctx); err != nil {
			panic(err)
		}
		logger.Debug("Registry validation passed.")
	} else {
		logger.Warn("No plugins path configured; every rendered call will fall back to its recorded signature.")
	}

	return &App{
		outW:     outW,
		logW:     logW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
	}
}

// Registry exposes the populated action registry.
func (a *App) Registry() *registry.Registry { return a.registry }
