package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"eol-check/internal/app"
	"eol-check/internal/core"
)

type workflowOptions struct {
	Name        string
	At          string
	GoVersion   string
	InstallPath string
	CheckArgs   []string
	Output      string
}

func newWorkflowCommand() *cobra.Command {
	opts := workflowOptions{}
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Render a GitHub Actions workflow that runs the check daily and on demand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkflow(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "Workflow name")
	cmd.Flags().StringVar(&opts.At, "at", core.DefaultDailyOffset, "Daily run time in UTC (HH:MM)")
	cmd.Flags().StringVar(&opts.GoVersion, "go-version", "", "Go version for setup-go (default: read go.mod)")
	cmd.Flags().StringVar(&opts.InstallPath, "install-path", app.DefaultInstallPath, "Package path passed to go install")
	cmd.Flags().StringSliceVar(&opts.CheckArgs, "check-arg", nil, "Extra argument for the check step (repeatable)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write the workflow to this path instead of stdout")
	return cmd
}

func runWorkflow(ctx context.Context, cmd *cobra.Command, opts workflowOptions) error {
	at := opts.At
	if !flagChanged(cmd, "at") && viper.IsSet("schedule_at") {
		at = viper.GetString("schedule_at")
	}
	service := newAppService()
	result, err := service.Workflow(ctx, app.WorkflowRequest{
		Name:        opts.Name,
		At:          at,
		GoVersion:   opts.GoVersion,
		InstallPath: opts.InstallPath,
		CheckArgs:   resolveStrings(cmd, opts.CheckArgs, "workflow.check_args", "check-arg"),
		OutputPath:  opts.Output,
	})
	if err != nil {
		return err
	}
	if result.OutputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote workflow: %s\n", result.OutputPath)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(result.Content)
	return err
}
