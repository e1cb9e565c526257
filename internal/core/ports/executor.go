package ports

import (
	"context"
	"io"
)

// Executor runs the user's watch command through a shell.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs command and waits for it to finish. The command writes to
	// the given streams and reads the process's stdin.
	//
	// A command that starts but exits non-zero returns an error carrying the
	// exit code; callers decide whether that is fatal.
	Execute(ctx context.Context, command string, stdout, stderr io.Writer) error
}
