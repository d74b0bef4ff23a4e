package types

// Target is one manifest file checked as a unit in the report.
type Target struct {
	Name      string    `json:"name" yaml:"name" mapstructure:"name"`
	Ecosystem Ecosystem `json:"ecosystem" yaml:"ecosystem" mapstructure:"ecosystem"`
	Path      string    `json:"path" yaml:"path" mapstructure:"path"`
}

// Dependency is a declared dependency ready for classification. Product
// is the endoflife.json key and DisplayName the name shown in reports;
// both default to Name when empty.
type Dependency struct {
	Name        string
	DisplayName string
	Product     string
	Version     string
	Ecosystem   Ecosystem
	Source      string
	// Skip marks dependencies that are reported as unchecked without a
	// catalog lookup. SkipReason overrides the default note.
	Skip       bool
	SkipReason string
}

func (d Dependency) ProductKey() string {
	if d.Product != "" {
		return d.Product
	}
	return d.Name
}

func (d Dependency) ReportName() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

type POMCoordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	// HasVersion distinguishes an empty <version/> from a missing one.
	HasVersion bool
}

// POMModel is the subset of a Maven pom.xml the checker needs.
type POMModel struct {
	Parent       *POMCoordinate
	Properties   map[string]string
	Dependencies []POMCoordinate
}
