package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"eol-check/internal/ports"
	"eol-check/internal/shared"
	"eol-check/internal/types"
)

const skipReasonUnpinned = "no version pinned"

var requirementOperators = []string{"===", "==", "~=", ">=", "<=", "!=", ">", "<"}

// pinningOperators name a version the requirement actually installs;
// exclusions and upper bounds never do.
var pinningOperators = map[string]bool{"===": true, "==": true, "~=": true, ">=": true}

// RequirementsAdapter reads pip requirements files. The first pinning
// specifier of each requirement supplies the checked version.
type RequirementsAdapter struct{}

func NewRequirementsAdapter() RequirementsAdapter {
	return RequirementsAdapter{}
}

func (a RequirementsAdapter) ParseDependencies(path string) ([]types.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read requirements file").
			WithCause(err)
	}
	var deps []types.Dependency
	for _, line := range joinContinuations(string(content)) {
		dep, ok := parseRequirementLine(line)
		if !ok {
			continue
		}
		dep.Source = path
		deps = append(deps, dep)
	}
	return deps, nil
}

func joinContinuations(content string) []string {
	var lines []string
	var current strings.Builder
	for _, raw := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimRight(raw, " \t")
		if strings.HasSuffix(trimmed, "\\") {
			current.WriteString(strings.TrimSuffix(trimmed, "\\"))
			current.WriteString(" ")
			continue
		}
		current.WriteString(trimmed)
		lines = append(lines, current.String())
		current.Reset()
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

func parseRequirementLine(line string) (types.Dependency, bool) {
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
		return types.Dependency{}, false
	}
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if strings.Contains(line, "://") || strings.Contains(line, " @ ") ||
		strings.HasPrefix(line, ".") || strings.HasPrefix(line, "/") {
		return types.Dependency{}, false
	}

	nameEnd := len(line)
	for i, r := range line {
		if strings.ContainsRune("=~<>!([ ", r) {
			nameEnd = i
			break
		}
	}
	rawName := strings.TrimSpace(line[:nameEnd])
	if idx := strings.Index(rawName, "["); idx >= 0 {
		rawName = rawName[:idx]
	}
	rest := strings.TrimSpace(line[nameEnd:])
	if strings.HasPrefix(rest, "[") {
		if idx := strings.Index(rest, "]"); idx >= 0 {
			rest = strings.TrimSpace(rest[idx+1:])
		}
	}
	rest = strings.Trim(rest, "() ")

	name := shared.NormalizePipName(rawName)
	if name == "" {
		return types.Dependency{}, false
	}
	dep := types.Dependency{
		Name:        name,
		DisplayName: strings.TrimSpace(rawName),
		Ecosystem:   types.EcosystemPip,
	}
	version := pinnedVersion(rest)
	if version == "" {
		dep.Skip = true
		dep.SkipReason = skipReasonUnpinned
		return dep, true
	}
	dep.Version = version
	return dep, true
}

func pinnedVersion(specifiers string) string {
	for _, specifier := range strings.Split(specifiers, ",") {
		specifier = strings.TrimSpace(specifier)
		for _, op := range requirementOperators {
			if !strings.HasPrefix(specifier, op) {
				continue
			}
			if !pinningOperators[op] {
				break
			}
			version := strings.TrimSpace(strings.TrimPrefix(specifier, op))
			if version = strings.TrimSuffix(version, ".*"); version != "" {
				return version
			}
			break
		}
	}
	return ""
}

var _ ports.ManifestPort = RequirementsAdapter{}
