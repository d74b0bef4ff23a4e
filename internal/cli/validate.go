package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eol-check/internal/app"
)

func newValidateCommand() *cobra.Command {
	opts := targetOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configured manifests and waivers without fetching EOL data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addTargetFlags(cmd, &opts)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts targetOptions) error {
	targets, err := resolveTargets(cmd, opts)
	if err != nil {
		return err
	}
	waivers, err := resolveWaivers(opts.Waivers)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		Root:       resolveString(cmd, opts.Root, "root", "root"),
		Targets:    targets,
		IncludeDev: resolveBool(cmd, opts.IncludeDev, "dev_dependencies", "dev"),
		Waivers:    waivers,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, summary := range result.Targets {
		if summary.Skipped {
			fmt.Fprintf(out, "skipped: %s (%s not found)\n", summary.Target.Name, summary.Target.Path)
			continue
		}
		fmt.Fprintf(out, "validated: %s (%s, %d dependencies)\n", summary.Target.Name, summary.Target.Ecosystem, summary.Dependencies)
	}
	return nil
}
