package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"eol-check/internal/core"
)

// Schedule runs Check once per day at the requested UTC time until ctx is
// cancelled or MaxRuns is reached. A failing check is logged and does not
// stop the loop.
func (s Service) Schedule(ctx context.Context, req ScheduleRequest) (ScheduleResult, error) {
	logger := log.Ctx(ctx)
	offset, err := core.ParseDailyOffset(req.At)
	if err != nil {
		return ScheduleResult{}, err
	}
	if _, err := resolveTargets(req.Check.Root, req.Check.Targets); err != nil {
		return ScheduleResult{}, err
	}

	result := ScheduleResult{}
	runOnce := func() {
		checked, err := s.Check(ctx, req.Check)
		result.Runs++
		if err != nil {
			result.Failures++
			logger.Error().Err(err).Int("run", result.Runs).Int("eol", checked.EOLCount).Msg("scheduled check failed")
			return
		}
		logger.Info().Int("run", result.Runs).Int("waived", checked.WaivedCount).Msg("scheduled check passed")
	}
	done := func() bool {
		return req.MaxRuns > 0 && result.Runs >= req.MaxRuns
	}

	if req.RunNow {
		runOnce()
		if done() {
			return result, nil
		}
	}
	for {
		now := s.now()
		next := core.NextDailyRun(now, offset)
		logger.Info().Time("next_run", next).Msg("waiting for next scheduled check")
		if err := s.wait(ctx, next.Sub(now)); err != nil {
			logger.Info().Int("runs", result.Runs).Msg("schedule stopped")
			return result, nil
		}
		runOnce()
		if done() {
			return result, nil
		}
	}
}
