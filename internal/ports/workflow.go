package ports

import "eol-check/internal/types"

type WorkflowWriterPort interface {
	Render(workflow types.Workflow) ([]byte, error)
	Write(path string, workflow types.Workflow) error
}
