package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"eol-check/internal/types"
)

const (
	defaultWorkflowName = "Check EOL dependencies"
	workflowJobName     = "eol-check"
	checkStepID         = "eol"
)

type WorkflowOptions struct {
	Name        string
	Offset      string
	GoVersion   string
	InstallPath string
	CheckArgs   []string
}

// BuildWorkflow assembles the CI descriptor: manual dispatch plus a daily
// cron trigger, environment setup, the checker run through the gate, and
// a failure step carrying the fixed message.
func BuildWorkflow(opts WorkflowOptions) (types.Workflow, error) {
	offset, err := ParseDailyOffset(opts.Offset)
	if err != nil {
		return types.Workflow{}, err
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = defaultWorkflowName
	}
	installPath := strings.TrimSpace(opts.InstallPath)
	if installPath == "" {
		return types.Workflow{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install path is required")
	}
	setupGo := map[string]string{"go-version-file": "go.mod"}
	if v := strings.TrimSpace(opts.GoVersion); v != "" {
		setupGo = map[string]string{"go-version": v}
	}
	checkCmd := strings.TrimSpace("eol-check gate -- eol-check check " + strings.Join(opts.CheckArgs, " "))

	workflow := types.Workflow{
		Name: name,
		On: types.WorkflowTriggers{
			Schedule: []types.WorkflowSchedule{{Cron: CronExpression(offset)}},
		},
		Jobs: map[string]types.WorkflowJob{
			workflowJobName: {
				RunsOn: "ubuntu-latest",
				Steps: []types.WorkflowStep{
					{Name: "Checkout", Uses: "actions/checkout@v4"},
					{Name: "Set up Go", Uses: "actions/setup-go@v5", With: setupGo},
					{Name: "Install eol-check", Run: fmt.Sprintf("go install %s", installPath)},
					{Name: "Check for EOL dependencies", ID: checkStepID, Run: checkCmd},
					{
						Name: "Report failure",
						If:   fmt.Sprintf("failure() && steps.%s.outcome == 'failure'", checkStepID),
						Run:  fmt.Sprintf("echo \"::error::%s\"", GateFailureMessage),
					},
				},
			},
		},
	}
	return workflow, nil
}
