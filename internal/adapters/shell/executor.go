// Package shell provides a shell-based executor for the watch command.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/monrun/internal/core/domain"
	"go.trai.ch/monrun/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// shellPath is the shell used to interpret the command string. The command
// is passed verbatim; no structure is parsed out of it.
const shellPath = "/bin/sh"

// Executor implements ports.Executor by handing the command string to the
// system shell. The command shares the process's stdin and writes to the
// streams the caller supplies, so its output lands on the controlling
// terminal untouched.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs command and waits for it to finish. A command that cannot be
// started wraps domain.ErrCommandStartFailed; one that starts but exits
// non-zero returns an error carrying the exit code so the caller can
// observe it without treating it as fatal.
func (e *Executor) Execute(ctx context.Context, command string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, shellPath, "-c", command) //nolint:gosec // user provided command
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return errors.Join(
			domain.ErrCommandStartFailed,
			zerr.With(zerr.Wrap(err, "failed to start shell"), "command", command),
		)
	}

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}
