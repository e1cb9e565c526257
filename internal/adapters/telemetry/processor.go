package telemetry

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/monrun/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogProcessor)(nil)

// LogProcessor is a SpanProcessor that reports finished spans through the
// logger, so each command run shows up with its duration on the terminal.
type LogProcessor struct {
	logger ports.Logger
}

// NewLogProcessor creates a new LogProcessor.
func NewLogProcessor(logger ports.Logger) *LogProcessor {
	return &LogProcessor{logger: logger}
}

// OnStart does nothing; only finished spans are reported.
func (p *LogProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name and duration.
func (p *LogProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	duration := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf("%s finished in %s", s.Name(), duration))
}

// Shutdown implements sdktrace.SpanProcessor.
func (p *LogProcessor) Shutdown(_ context.Context) error {
	return nil
}

// ForceFlush implements sdktrace.SpanProcessor.
func (p *LogProcessor) ForceFlush(_ context.Context) error {
	return nil
}
