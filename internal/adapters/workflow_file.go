package adapters

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

type WorkflowFileAdapter struct{}

func NewWorkflowFileAdapter() WorkflowFileAdapter {
	return WorkflowFileAdapter{}
}

func (a WorkflowFileAdapter) Render(workflow types.Workflow) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(workflow); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render workflow").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render workflow").
			WithCause(err)
	}
	return buf.Bytes(), nil
}

func (a WorkflowFileAdapter) Write(path string, workflow types.Workflow) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workflow path is required")
	}
	content, err := a.Render(workflow)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create workflow directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write workflow").
			WithCause(err)
	}
	return nil
}

var _ ports.WorkflowWriterPort = WorkflowFileAdapter{}
