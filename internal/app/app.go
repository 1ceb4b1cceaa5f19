package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vk/aplab/internal/config"
	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/dispatch"
	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/live"
	"github.com/vk/aplab/internal/metrics"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/server"
	"github.com/vk/aplab/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *config.Config
	registry   *registry.Registry
	bundle     *i18n.Bundle
	sessions   *session.Manager
	metrics    *metrics.Metrics
	dispatcher *dispatch.Dispatcher
	live       *live.Server
	server     *server.Server
}

// NewApp builds a fully wired App with its own logger, registry and metrics
// registry. With no modules, the built-in lessons are registered.
func NewApp(outW io.Writer, cfg *config.Config, modules ...registry.Module) (*App, error) {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg, err := registry.Load(ctx, modules...)
	if err != nil {
		return nil, err
	}
	logger.Debug("All lesson modules registered.", "count", len(modules), "pages", len(reg.Pages()))

	if err := reg.Validate(ctx); err != nil {
		if cfg.StrictCatalog {
			return nil, err
		}
		logger.Warn("Registry validation failed; continuing because strict_catalog is off.", "error", err)
	} else {
		logger.Debug("Registry validation passed.")
	}

	bundle, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	sessions := session.NewManager(cfg.SessionTTL)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promReg)
	metrics.RegisterSessionGauge(promReg, sessions.Len)

	d := dispatch.New(reg, dispatch.WithMetrics(m))

	a := &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		registry:   reg,
		bundle:     bundle,
		sessions:   sessions,
		metrics:    m,
		dispatcher: d,
	}

	var liveHandler http.Handler
	if cfg.Live {
		a.live = live.NewServer(live.NewHandler(d, sessions, bundle, m), m, logger)
		liveHandler = a.live
	}

	a.server, err = server.New(server.Options{
		Title:  cfg.Title,
		Icon:   cfg.Icon,
		Layout: cfg.Layout,
		Live:   cfg.Live,
	}, server.Deps{
		Dispatcher: d,
		Sessions:   sessions,
		Bundle:     bundle,
		Gatherer:   promReg,
		Live:       liveHandler,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return a, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Dispatcher returns the page dispatcher.
func (a *App) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Sessions returns the session store.
func (a *App) Sessions() *session.Manager { return a.sessions }

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.server.Handler() }
