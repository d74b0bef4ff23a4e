package types

// Workflow mirrors the subset of the GitHub Actions schema rendered by
// the workflow command. Field order follows the conventional file layout.
type Workflow struct {
	Name string                 `yaml:"name"`
	On   WorkflowTriggers       `yaml:"on"`
	Jobs map[string]WorkflowJob `yaml:"jobs"`
}

type WorkflowTriggers struct {
	WorkflowDispatch struct{}           `yaml:"workflow_dispatch"`
	Schedule         []WorkflowSchedule `yaml:"schedule,omitempty"`
}

type WorkflowSchedule struct {
	Cron string `yaml:"cron"`
}

type WorkflowJob struct {
	RunsOn string         `yaml:"runs-on"`
	Steps  []WorkflowStep `yaml:"steps"`
}

type WorkflowStep struct {
	Name string            `yaml:"name,omitempty"`
	ID   string            `yaml:"id,omitempty"`
	If   string            `yaml:"if,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}
