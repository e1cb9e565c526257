package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/monrun/internal/adapters/telemetry"
	"go.trai.ch/monrun/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLogProcessor_ReportsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var logged []string
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		logged = append(logged, msg)
	}).Times(1)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(telemetry.NewLogProcessor(logger)),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	otel.SetTracerProvider(tp)

	tracer := telemetry.NewOTelTracer("monrun-test")
	_, span := tracer.Start(context.Background(), "command.run")
	span.SetAttribute("command", "echo hit")
	span.SetAttribute("exit_code", 0)
	span.RecordError(errors.New("observed"))
	span.End()

	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "command.run finished in")
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "anything")
	require.NotNil(t, ctx)

	// All span operations are safe no-ops.
	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
