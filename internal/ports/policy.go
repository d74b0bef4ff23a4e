package ports

import "eol-check/internal/types"

// PolicyPort decides which findings are accepted despite being end-of-life.
type PolicyPort interface {
	Validate() error
	Apply(report types.TargetReport) types.TargetReport
}
