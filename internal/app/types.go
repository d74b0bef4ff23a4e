package app

import (
	"time"

	"eol-check/internal/types"
)

// SourceRequest selects where EOL data comes from. File wins over URL;
// CacheTTL <= 0 or NoCache disables the on-disk cache.
type SourceRequest struct {
	URL              string
	File             string
	CacheDir         string
	CacheTTL         time.Duration
	NoCache          bool
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type CheckRequest struct {
	Source           SourceRequest
	Root             string
	Targets          []types.Target
	IncludeDev       bool
	Waivers          []types.Waiver
	FrameworkMapping map[string]string
	LiquibaseMapping map[string]string
	Workers          int
	Format           types.OutputFormat
	ReportFile       string
}

type CheckResult struct {
	Report      types.Report
	EOLCount    int
	WaivedCount int
}

type GateRequest struct {
	Command []string
}

type GateResult struct {
	ExitCode int
	Passed   bool
	Message  string
}

type ScheduleRequest struct {
	Check   CheckRequest
	At      string
	RunNow  bool
	MaxRuns int
}

type ScheduleResult struct {
	Runs     int
	Failures int
}

type WorkflowRequest struct {
	Name        string
	At          string
	GoVersion   string
	InstallPath string
	CheckArgs   []string
	OutputPath  string
}

type WorkflowResult struct {
	Content    []byte
	OutputPath string
}

type ProductsRequest struct {
	Source   SourceRequest
	Products []string
}

type ProductSummary struct {
	Name      string
	Supported []string
	Releases  int
}

type ProductsResult struct {
	Source   string
	Products []ProductSummary
}

type ValidateRequest struct {
	Root       string
	Targets    []types.Target
	IncludeDev bool
	Waivers    []types.Waiver
}

type TargetSummary struct {
	Target       types.Target
	Dependencies int
	Skipped      bool
}

type ValidateResult struct {
	Targets []TargetSummary
}
