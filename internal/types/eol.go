package types

// EOLData is the endoflife.json document keyed by product name.
type EOLData map[string]EOLProduct

type EOLProduct struct {
	Result EOLProductResult `json:"result" yaml:"result"`
}

type EOLProductResult struct {
	Name     string       `json:"name" yaml:"name"`
	Label    string       `json:"label,omitempty" yaml:"label,omitempty"`
	Releases []EOLRelease `json:"releases" yaml:"releases"`
}

// EOLRelease is a single release cycle. IsEOL is a pointer because an
// absent flag carries different meaning from an explicit false.
type EOLRelease struct {
	Name         string          `json:"name" yaml:"name"`
	Label        string          `json:"label,omitempty" yaml:"label,omitempty"`
	ReleaseDate  string          `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	IsEOL        *bool           `json:"isEol,omitempty" yaml:"isEol,omitempty"`
	EOLFrom      string          `json:"eolFrom,omitempty" yaml:"eolFrom,omitempty"`
	IsMaintained *bool           `json:"isMaintained,omitempty" yaml:"isMaintained,omitempty"`
	Latest       *EOLLatestEntry `json:"latest,omitempty" yaml:"latest,omitempty"`
}

type EOLLatestEntry struct {
	Name string `json:"name" yaml:"name"`
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}
