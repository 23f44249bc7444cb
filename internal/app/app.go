// Package app implements the application layer for cadence.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/cadence/internal/adapters/telemetry"
	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
	"go.trai.ch/cadence/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	payloadLoader ports.PayloadLoader
	watcher       ports.Watcher
	logger        ports.Logger
	stdin         io.Reader
	stdout        io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	payloads ports.PayloadLoader,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		payloadLoader: payloads,
		watcher:       watcher,
		logger:        log,
		stdin:         os.Stdin,
		stdout:        os.Stdout,
	}
}

// WithIO replaces the standard input and output streams.
// This is primarily used for testing.
func (a *App) WithIO(stdin io.Reader, stdout io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	return a
}

// Options are command line settings that take precedence over the config file.
type Options struct {
	// ConfigPath is an explicit config file. Empty looks for cadence.yaml in the working directory.
	ConfigPath string
	JSONLogs   bool
	Verbose    bool
	// Trace enables span logging and implies Verbose.
	Trace bool
}

// logConfigurer is implemented by loggers whose output can be switched at runtime.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Configure loads the configuration, applies opts and configures the logger.
func (a *App) Configure(opts Options) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.JSONLogs {
		cfg.Log.Format = domain.LogFormatJSON
	}
	if opts.Verbose {
		cfg.Log.Verbose = true
	}
	if opts.Trace {
		cfg.Tracing.Enabled = true
		cfg.Log.Verbose = true
	}

	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetJSON(cfg.Log.Format == domain.LogFormatJSON)
		lc.SetVerbose(cfg.Log.Verbose)
	}

	return cfg, nil
}

// newScheduler builds a scheduler for cfg. The returned function releases the
// tracer and must be called once scheduling is done.
func (a *App) newScheduler(cfg *domain.Config) (*scheduler.Scheduler, func()) {
	var tracer ports.Tracer = telemetry.NewNoOpTracer()
	shutdown := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		tracer, shutdown = telemetry.Setup(a.logger)
	}

	sched := scheduler.NewScheduler(tracer, a.logger,
		scheduler.WithMaxTasks(cfg.Scheduler.MaxTasks),
		scheduler.WithStrictDependencies(cfg.Scheduler.StrictDependencies),
	)

	return sched, func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("failed to flush traces: " + err.Error())
		}
	}
}
