// Package app implements the application layer for monrun.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/monrun/internal/adapters/detector"
	"go.trai.ch/monrun/internal/adapters/logger"
	"go.trai.ch/monrun/internal/adapters/telemetry"
	"go.trai.ch/monrun/internal/core/domain"
	"go.trai.ch/monrun/internal/core/ports"
	"go.trai.ch/monrun/internal/engine/poller"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	hasher   ports.Hasher
	executor ports.Executor
	logger   ports.Logger
	clock    clockwork.Clock
	stdout   io.Writer
	stderr   io.Writer
}

// New creates a new App instance.
func New(hasher ports.Hasher, executor ports.Executor, log ports.Logger) *App {
	return &App{
		hasher:   hasher,
		executor: executor,
		logger:   log,
		clock:    clockwork.NewRealClock(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithClock overrides the poll clock. This is primarily used for testing.
func (a *App) WithClock(clock clockwork.Clock) *App {
	a.clock = clock
	return a
}

// WithStreams overrides the streams handed to the watch command.
// This is primarily used for testing.
func (a *App) WithStreams(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Command       string
	Before        bool
	Interval      time.Duration
	OnlyTime      bool
	ChangeWorkdir bool
	LogFormat     string
}

// Watch validates the arguments, assembles the detection engine, and runs
// the watch loop until ctx is canceled.
func (a *App) Watch(ctx context.Context, files []string, opts WatchOptions) error {
	a.applyLogFormat(opts.LogFormat)

	if opts.Command == "" {
		return domain.ErrNoCommandSpecified
	}

	// Absolute paths keep the watch targets stable across the optional
	// working-directory change below.
	files, err := absolutePaths(files)
	if err != nil {
		return err
	}

	watch, err := domain.NewWatchSet(files)
	if err != nil {
		return err
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return domain.AccessError(err, path)
		}
		if !info.Mode().IsRegular() {
			return errors.Join(domain.ErrNotAFile, zerr.With(zerr.New("cannot watch"), "path", path))
		}
	}

	cmd := domain.Command{Raw: opts.Command, RunBefore: opts.Before}.WithFileVar(files[0])

	if opts.ChangeWorkdir {
		if err := os.Chdir(filepath.Dir(files[0])); err != nil {
			return zerr.Wrap(err, "failed to change working directory")
		}
		if wd, err := os.Getwd(); err == nil {
			a.logger.Info(fmt.Sprintf("using %s as working dir", wd))
		}
	}

	if !opts.OnlyTime {
		a.logger.Info("calculating checksums for the first time")
	}

	// Route finished spans (one per command run) through the logger.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(a.logger)),
	)
	otel.SetTracerProvider(tp)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	engine := poller.New(
		detector.New(a.hasher, opts.OnlyTime),
		a.executor,
		a.logger,
		telemetry.NewOTelTracer("monrun"),
		a.clock,
		opts.Interval,
		a.stdout,
		a.stderr,
	)

	return engine.Run(ctx, watch, cmd)
}

// applyLogFormat resolves the requested log format against the environment
// and applies it when the logger supports switching.
func (a *App) applyLogFormat(userFlag string) {
	format := logger.ResolveFormat(logger.DetectFormat(), userFlag)
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(format == logger.FormatJSON)
	}
}

func absolutePaths(files []string) ([]string, error) {
	abs := make([]string, len(files))
	for i, path := range files {
		resolved, err := filepath.Abs(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path)
		}
		abs[i] = resolved
	}
	return abs, nil
}
