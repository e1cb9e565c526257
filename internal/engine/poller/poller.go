// Package poller implements the fixed-interval watch loop.
package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/monrun/internal/core/domain"
	"go.trai.ch/monrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = time.Second

// Poller drives the watch loop: one logical thread of control that takes
// snapshots, runs the command, and sleeps, strictly in that order. Files
// are checked sequentially in watch-set order; the command runs at most
// once per cycle and the loop blocks on it, so overlapping executions are
// impossible by construction.
type Poller struct {
	detector ports.Detector
	executor ports.Executor
	logger   ports.Logger
	tracer   ports.Tracer
	clock    clockwork.Clock
	interval time.Duration
	stdout   io.Writer
	stderr   io.Writer
}

// New creates a Poller with the given collaborators.
func New(
	detector ports.Detector,
	executor ports.Executor,
	logger ports.Logger,
	tracer ports.Tracer,
	clock clockwork.Clock,
	interval time.Duration,
	stdout, stderr io.Writer,
) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		detector: detector,
		executor: executor,
		logger:   logger,
		tracer:   tracer,
		clock:    clock,
		interval: interval,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Run watches every file in watch until ctx is canceled. It takes the
// initial snapshots (establishing the baseline never triggers the command),
// honors the before-run, then polls every interval. Run returns nil on
// cancellation; the only error paths are the initial snapshots.
func (p *Poller) Run(ctx context.Context, watch *domain.WatchSet, cmd domain.Command) error {
	for i := 0; i < watch.Len(); i++ {
		entry := watch.At(i)
		snap, err := p.detector.Snapshot(entry.Path)
		if err != nil {
			return errors.Join(domain.ErrWatchFailed, zerr.Wrap(err, "failed to take initial snapshot"))
		}
		watch.Update(i, snap)
	}

	p.logger.Info(fmt.Sprintf("watching %d file(s) for modifications", watch.Len()))

	if cmd.RunBefore {
		p.execute(ctx, cmd, watch.Paths())
	}

	timer := p.clock.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.Chan():
		}

		p.cycle(ctx, watch, cmd)

		// The command ran synchronously above, so a slow command stretches
		// this cycle's effective period rather than piling up ticks.
		timer.Reset(p.interval)
	}
}

// cycle checks every file in order and runs the command once if any of
// them changed.
func (p *Poller) cycle(ctx context.Context, watch *domain.WatchSet, cmd domain.Command) {
	var changed []string

	for i := 0; i < watch.Len(); i++ {
		entry := watch.At(i)

		hit, next, err := p.detector.Detect(entry.Path, entry.Snapshot)
		if err != nil {
			// Skip this file for the rest of the cycle. The old snapshot
			// stays in place and the file is retried next cycle; it may
			// have been transiently unavailable, e.g. mid-rewrite.
			p.logger.Warn(fmt.Sprintf("skipping %s: %v", entry.Path, err))
			continue
		}

		watch.Update(i, next)
		if hit {
			changed = append(changed, entry.Path)
		}
	}

	if len(changed) > 0 {
		p.execute(ctx, cmd, changed)
	}
}

// execute runs the command once, observing but never escalating failures.
func (p *Poller) execute(ctx context.Context, cmd domain.Command, paths []string) {
	ctx, span := p.tracer.Start(ctx, "command.run")
	defer span.End()
	span.SetAttribute("command", cmd.Raw)
	span.SetAttribute("files", strings.Join(paths, ","))

	err := p.executor.Execute(ctx, cmd.Raw, p.stdout, p.stderr)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCommandStartFailed):
		span.RecordError(err)
		p.logger.Error(err)
	default:
		// A non-zero exit from a started command is observed, not fatal.
		span.RecordError(err)
		p.logger.Warn(fmt.Sprintf("command exited with error: %v", err))
	}
}
