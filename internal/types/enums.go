package types

import "strings"

type Ecosystem string

const (
	EcosystemNpm   Ecosystem = "npm"
	EcosystemMaven Ecosystem = "maven"
	EcosystemPip   Ecosystem = "pip"
	EcosystemApt   Ecosystem = "apt"
)

type FindingStatus string

const (
	FindingStatusEOL       FindingStatus = "eol"
	FindingStatusUpToDate  FindingStatus = "up-to-date"
	FindingStatusUnchecked FindingStatus = "unchecked"
	FindingStatusWaived    FindingStatus = "waived"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseEcosystem accepts the canonical names plus a few common aliases.
func ParseEcosystem(value string) (Ecosystem, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "npm", "node", "javascript":
		return EcosystemNpm, true
	case "maven", "mvn", "java":
		return EcosystemMaven, true
	case "pip", "python", "pypi":
		return EcosystemPip, true
	case "apt", "deb", "debian":
		return EcosystemApt, true
	default:
		return "", false
	}
}

// ParseOutputFormat maps a format name to OutputFormat; empty means table.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "table", "text":
		return OutputFormatTable, true
	case "json":
		return OutputFormatJSON, true
	case "yaml", "yml":
		return OutputFormatYAML, true
	default:
		return "", false
	}
}
