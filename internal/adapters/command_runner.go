package adapters

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"eol-check/internal/ports"
)

// ExecCommandRunner runs a child process with the given streams attached.
type ExecCommandRunner struct {
	Dir string
}

func NewExecCommandRunner() ExecCommandRunner {
	return ExecCommandRunner{}
}

func (r ExecCommandRunner) Run(ctx context.Context, argv []string, stdout io.Writer, stderr io.Writer) (int, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command is required")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	log.Ctx(ctx).Debug().Strs("argv", argv).Msg("running command")
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// terminated by a signal
			code = 1
		}
		return code, nil
	}
	return 0, errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("failed to start command").
		WithCause(err)
}

var _ ports.CommandRunnerPort = ExecCommandRunner{}
