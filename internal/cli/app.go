// Package cli wires configuration, content and adapters for the qtwizard commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cardio-onc/qtwizard"
	"github.com/cardio-onc/qtwizard/internal/config"
	"github.com/cardio-onc/qtwizard/internal/content"
	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the values the command line may override.
type Options struct {
	ConfigPath  string
	LogLevel    string
	ContentPath string
	Plain       bool
}

// App holds everything a command needs.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Document *content.Document
	Metrics  *observability.Metrics
	Gatherer *prometheus.Registry
}

// Setup loads configuration and content. Flags win over the config file and
// the environment.
func Setup(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.ContentPath != "" {
		cfg.ContentPath = opts.ContentPath
	}
	if opts.Plain {
		cfg.Renderer.Plain = true
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(os.Stderr, level, cfg.LogJSON)

	doc, err := LoadDocument(cfg.ContentPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	return &App{
		Config:   cfg,
		Logger:   logger,
		Document: doc,
		Metrics:  observability.NewMetrics(reg),
		Gatherer: reg,
	}, nil
}

// LoadDocument reads content from path, or returns the built-in QTcF content
// when path is empty.
func LoadDocument(path string) (*content.Document, error) {
	if path == "" {
		return content.QTcF()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open content: %w", err)
	}
	defer f.Close()

	doc, err := content.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load content %s: %w", path, err)
	}
	return doc, nil
}

// Hooks returns the metric hooks, plus audit logging at debug level.
func (a *App) Hooks() domain.LifecycleHooks {
	hooks := a.Metrics.Hooks()
	if a.Logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = observability.Combine(hooks, observability.LoggingHooks(a.Logger))
	}
	return hooks
}

// NewWizard builds a wizard over the loaded content.
func (a *App) NewWizard() (*qtwizard.Wizard, error) {
	return qtwizard.New(
		qtwizard.WithRegistry(a.Document.Registry),
		qtwizard.WithTitle(a.Document.Title),
		qtwizard.WithLogger(a.Logger),
		qtwizard.WithLifecycleHooks(a.Hooks()),
		qtwizard.WithAnimationDelay(a.Config.AnimationDelay),
	)
}
