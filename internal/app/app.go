package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/rigup/internal/config"
	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/handlers"
	"github.com/specialistvlad/rigup/internal/metrics"
	"github.com/specialistvlad/rigup/internal/state"
	"github.com/specialistvlad/rigup/internal/task"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     config.Loader
	handlers   *handlers.Handlers
	dispatcher *task.Dispatcher
	runner     task.Runner
	openStore  func(path, fingerprint string) (state.Store, error)
	metrics    *metrics.Recorder
	httpServer *http.Server
}

// Option customizes an App, mostly for tests.
type Option func(*App)

// WithRunner replaces the task runner. Scripts are still parsed and handler
// references still checked against the registered modules.
func WithRunner(r task.Runner) Option {
	return func(a *App) { a.runner = r }
}

// WithModules registers these handler modules instead of the built-in ones.
func WithModules(modules ...handlers.Module) Option {
	return func(a *App) { a.handlers = handlers.New(modules...) }
}

// WithStoreOpener replaces how the state store is opened.
func WithStoreOpener(open func(path, fingerprint string) (state.Store, error)) Option {
	return func(a *App) { a.openStore = open }
}

// NewApp is the constructor for the main application. outW receives progress,
// summaries and graph output; logW receives logs and task stderr.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:    outW,
		logger:  newLogger(cfg.LogLevel, cfg.LogFormat, logW),
		config:  cfg,
		loader:  loader,
		metrics: metrics.NewRecorder(),
		openStore: func(path, fingerprint string) (state.Store, error) {
			return state.OpenFile(path, fingerprint)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.handlers == nil {
		a.handlers = handlers.New(coreModules...)
	}

	a.dispatcher = &task.Dispatcher{
		Exec:     task.NewExecRunner(outW, logW),
		Handlers: a.handlers,
		Stdout:   outW,
	}
	if a.runner == nil {
		a.runner = a.dispatcher
	}

	if cfg.SettingsFile != "" {
		a.logger.Debug("Settings file loaded.", "path", cfg.SettingsFile)
	}
	a.logger.Debug("Application created.", "handlers", a.handlers.Names())
	return a
}

// Metrics returns the application's metrics recorder. This is primarily for
// testing.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
