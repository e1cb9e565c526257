package shell_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/monrun/internal/adapters/shell"
	"go.trai.ch/monrun/internal/core/domain"
)

func TestExecutor_Execute(t *testing.T) {
	executor := shell.NewExecutor()

	t.Run("runs the command through the shell", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := executor.Execute(context.Background(), "echo hit", &stdout, &stderr)
		require.NoError(t, err)

		assert.Equal(t, "hit\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("supports shell syntax in the command string", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := executor.Execute(context.Background(), "printf a; printf b 1>&2", &stdout, &stderr)
		require.NoError(t, err)

		assert.Equal(t, "a", stdout.String())
		assert.Equal(t, "b", stderr.String())
	})

	t.Run("non-zero exit carries the exit code", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := executor.Execute(context.Background(), "exit 3", &stdout, &stderr)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrCommandStartFailed)

		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 3, exitErr.ExitCode())
	})

	t.Run("start failure wraps ErrCommandStartFailed", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var stdout, stderr bytes.Buffer
		err := executor.Execute(ctx, "echo hit", &stdout, &stderr)
		require.ErrorIs(t, err, domain.ErrCommandStartFailed)
	})
}
