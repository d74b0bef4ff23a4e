package types

import "time"

// Finding is the classification of one dependency. Name carries the
// normalised dependency name used for waiver matching.
type Finding struct {
	Name              string        `json:"-" yaml:"-"`
	Dependency        string        `json:"dependency" yaml:"dependency"`
	Used              string        `json:"used" yaml:"used"`
	Required          string        `json:"required,omitempty" yaml:"required,omitempty"`
	SupportedVersions []string      `json:"supported_versions,omitempty" yaml:"supported_versions,omitempty"`
	Status            FindingStatus `json:"status" yaml:"status"`
	Note              string        `json:"note,omitempty" yaml:"note,omitempty"`
}

type TargetReport struct {
	Target    Target    `json:"target" yaml:"target"`
	EOL       []Finding `json:"eol" yaml:"eol"`
	UpToDate  []Finding `json:"up_to_date" yaml:"up_to_date"`
	Unchecked []Finding `json:"unchecked" yaml:"unchecked"`
	Waived    []Finding `json:"waived,omitempty" yaml:"waived,omitempty"`
}

// Add files the finding under the section matching its status.
func (r *TargetReport) Add(finding Finding) {
	switch finding.Status {
	case FindingStatusEOL:
		r.EOL = append(r.EOL, finding)
	case FindingStatusUpToDate:
		r.UpToDate = append(r.UpToDate, finding)
	case FindingStatusWaived:
		r.Waived = append(r.Waived, finding)
	default:
		r.Unchecked = append(r.Unchecked, finding)
	}
}

type Report struct {
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Source      string         `json:"source" yaml:"source"`
	Targets     []TargetReport `json:"targets" yaml:"targets"`
}

func (r Report) HasEOL() bool {
	return r.EOLCount() > 0
}

func (r Report) EOLCount() int {
	count := 0
	for _, target := range r.Targets {
		count += len(target.EOL)
	}
	return count
}
