package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"eol-check/internal/app"
	"eol-check/internal/core"
)

type scheduleOptions struct {
	Check   checkOptions
	At      string
	RunNow  bool
	MaxRuns int
}

func newScheduleCommand() *cobra.Command {
	opts := scheduleOptions{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the check every day at a fixed UTC time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd.Context(), cmd, opts)
		},
	}
	addCheckFlags(cmd, &opts.Check)
	cmd.Flags().StringVar(&opts.At, "at", core.DefaultDailyOffset, "Daily run time in UTC (HH:MM)")
	cmd.Flags().BoolVar(&opts.RunNow, "run-now", false, "Run once immediately before waiting")
	cmd.Flags().IntVar(&opts.MaxRuns, "max-runs", 0, "Stop after this many runs (0 = run until interrupted)")
	_ = viper.BindPFlag("schedule_at", cmd.Flags().Lookup("at"))
	return cmd
}

func runSchedule(ctx context.Context, cmd *cobra.Command, opts scheduleOptions) error {
	checkReq, err := resolveCheckRequest(cmd, opts.Check)
	if err != nil {
		return err
	}
	service := newAppService()
	service.Stdout = cmd.OutOrStdout()
	service.Stderr = cmd.ErrOrStderr()
	result, err := service.Schedule(ctx, app.ScheduleRequest{
		Check:   checkReq,
		At:      resolveString(cmd, opts.At, "schedule_at", "at"),
		RunNow:  opts.RunNow,
		MaxRuns: opts.MaxRuns,
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().Int("runs", result.Runs).Int("failures", result.Failures).Msg("schedule finished")
	return nil
}
