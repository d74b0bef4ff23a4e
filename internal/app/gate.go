package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"eol-check/internal/core"
)

// Gate runs the wrapped checker and converts its exit status into a
// pass/fail verdict. A failed verdict is returned as a result, not an
// error; errors mean the command could not run at all.
func (s Service) Gate(ctx context.Context, req GateRequest) (GateResult, error) {
	if len(req.Command) == 0 {
		return GateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("gate requires a command to run")
	}
	code, err := s.Runner.Run(ctx, req.Command, s.stdout(), s.stderr())
	if err != nil {
		return GateResult{}, err
	}
	verdict := core.EvaluateExit(code)
	log.Ctx(ctx).Debug().Int("exit_code", code).Bool("passed", verdict.Passed).Msg("gate evaluated")
	if !verdict.Passed {
		fmt.Fprintln(s.stderr(), verdict.Message)
	}
	return GateResult{ExitCode: verdict.ExitCode, Passed: verdict.Passed, Message: verdict.Message}, nil
}
