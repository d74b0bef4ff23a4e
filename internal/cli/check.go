package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check dependency manifests against endoflife.json",
		Long: "Check loads EOL data, parses the configured manifests and prints a report.\n" +
			"It exits 3 when an un-waived end-of-life dependency is found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	addCheckFlags(cmd, &opts)
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	req, err := resolveCheckRequest(cmd, opts)
	if err != nil {
		return err
	}
	service := newAppService()
	service.Stdout = cmd.OutOrStdout()
	service.Stderr = cmd.ErrOrStderr()
	result, err := service.Check(ctx, req)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Int("targets", len(result.Report.Targets)).
		Int("waived", result.WaivedCount).
		Msg("no end-of-life dependencies found")
	return nil
}
