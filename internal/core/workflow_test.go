package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkflowDefaults(t *testing.T) {
	workflow, err := BuildWorkflow(WorkflowOptions{InstallPath: "./cmd/eol-check"})
	require.NoError(t, err)

	assert.Equal(t, defaultWorkflowName, workflow.Name)
	require.Len(t, workflow.On.Schedule, 1)
	assert.Equal(t, "0 0 * * *", workflow.On.Schedule[0].Cron)

	job, ok := workflow.Jobs[workflowJobName]
	require.True(t, ok)
	assert.Equal(t, "ubuntu-latest", job.RunsOn)
	require.Len(t, job.Steps, 5)
	assert.Equal(t, "actions/checkout@v4", job.Steps[0].Uses)
	assert.Equal(t, map[string]string{"go-version-file": "go.mod"}, job.Steps[1].With)
	assert.Equal(t, "go install ./cmd/eol-check", job.Steps[2].Run)
	assert.Equal(t, "eol-check gate -- eol-check check", job.Steps[3].Run)
	assert.Equal(t, checkStepID, job.Steps[3].ID)
	assert.Contains(t, job.Steps[4].If, "failure()")
	assert.Contains(t, job.Steps[4].Run, GateFailureMessage)
}

func TestBuildWorkflowCustom(t *testing.T) {
	workflow, err := BuildWorkflow(WorkflowOptions{
		Name:        "EOL",
		Offset:      "04:15",
		GoVersion:   "1.25",
		InstallPath: "example.com/eol-check/cmd/eol-check@latest",
		CheckArgs:   []string{"--format", "table"},
	})
	require.NoError(t, err)

	assert.Equal(t, "EOL", workflow.Name)
	assert.Equal(t, "15 4 * * *", workflow.On.Schedule[0].Cron)
	steps := workflow.Jobs[workflowJobName].Steps
	assert.Equal(t, map[string]string{"go-version": "1.25"}, steps[1].With)
	assert.Equal(t, "eol-check gate -- eol-check check --format table", steps[3].Run)
}

func TestBuildWorkflowErrors(t *testing.T) {
	_, err := BuildWorkflow(WorkflowOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install path is required")

	_, err = BuildWorkflow(WorkflowOptions{InstallPath: "./cmd/eol-check", Offset: "25:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid daily offset")
}
