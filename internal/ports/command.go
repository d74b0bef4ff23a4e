package ports

import (
	"context"
	"io"
)

type CommandRunnerPort interface {
	// Run executes argv and returns its exit code. An error is returned
	// only when the process could not be started.
	Run(ctx context.Context, argv []string, stdout io.Writer, stderr io.Writer) (int, error)
}
