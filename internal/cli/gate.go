package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"eol-check/internal/app"
)

const gateFailedMessage = "checker exited with a non-zero status"

func newGateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate [-- command [args...]]",
		Short: "Run a checker and fail the job when it exits non-zero",
		Long: "Gate runs the given command (default: this binary's check command) and\n" +
			"marks the job failed with a fixed message when the command exits non-zero.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGate(cmd.Context(), cmd, args)
		},
	}
	return cmd
}

func runGate(ctx context.Context, cmd *cobra.Command, args []string) error {
	command := args
	if len(command) == 0 {
		self, err := os.Executable()
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to locate eol-check executable").
				WithCause(err)
		}
		command = []string{self, "check"}
	}
	service := newAppService()
	service.Stdout = cmd.OutOrStdout()
	service.Stderr = cmd.ErrOrStderr()
	result, err := service.Gate(ctx, app.GateRequest{Command: command})
	if err != nil {
		return err
	}
	if !result.Passed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(gateFailedMessage).
			WithCause(fmt.Errorf("exit code %d", result.ExitCode))
	}
	return nil
}
