package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"eol-check/internal/core"
)

const DefaultInstallPath = "./cmd/eol-check"

// Workflow renders the CI descriptor and writes it when OutputPath is set.
func (s Service) Workflow(ctx context.Context, req WorkflowRequest) (WorkflowResult, error) {
	installPath := strings.TrimSpace(req.InstallPath)
	if installPath == "" {
		installPath = DefaultInstallPath
	}
	workflow, err := core.BuildWorkflow(core.WorkflowOptions{
		Name:        req.Name,
		Offset:      req.At,
		GoVersion:   req.GoVersion,
		InstallPath: installPath,
		CheckArgs:   req.CheckArgs,
	})
	if err != nil {
		return WorkflowResult{}, err
	}
	content, err := s.Workflows.Render(workflow)
	if err != nil {
		return WorkflowResult{}, err
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath != "" {
		if err := s.Workflows.Write(outputPath, workflow); err != nil {
			return WorkflowResult{}, err
		}
		log.Ctx(ctx).Info().Str("path", outputPath).Msg("workflow written")
	}
	return WorkflowResult{Content: content, OutputPath: outputPath}, nil
}
