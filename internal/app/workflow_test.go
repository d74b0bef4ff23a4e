package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRender(t *testing.T) {
	service, _ := newTestService(t)
	result, err := service.Workflow(t.Context(), WorkflowRequest{At: "02:15", CheckArgs: []string{"--format", "table"}})
	require.NoError(t, err)
	content := string(result.Content)
	assert.Contains(t, content, "15 2 * * *")
	assert.Contains(t, content, "go install ./cmd/eol-check")
	assert.Contains(t, content, "eol-check gate -- eol-check check --format table")
	assert.Empty(t, result.OutputPath)
}

func TestWorkflowWritesFile(t *testing.T) {
	service, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), ".github", "workflows", "check-eol.yml")
	result, err := service.Workflow(t.Context(), WorkflowRequest{OutputPath: path})
	require.NoError(t, err)
	assert.Equal(t, path, result.OutputPath)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(result.Content), string(written))
}

func TestWorkflowInvalidOffset(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Workflow(t.Context(), WorkflowRequest{At: "24:00"})
	require.Error(t, err)
}
