package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

// AptLockAdapter reads package=version lock files as produced by
// dpkg-query or apt-mark style tooling. Architecture qualifiers are dropped.
type AptLockAdapter struct{}

func NewAptLockAdapter() AptLockAdapter {
	return AptLockAdapter{}
}

func (a AptLockAdapter) ParseDependencies(path string) ([]types.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("apt lock file not found").
			WithCause(err)
	}
	var deps []types.Dependency
	for lineNo, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid apt lock entry").
				WithCause(fmt.Errorf("line %d: %q", lineNo+1, line))
		}
		name := strings.TrimSpace(parts[0])
		if idx := strings.Index(name, ":"); idx >= 0 {
			name = name[:idx]
		}
		deps = append(deps, types.Dependency{
			Name:      name,
			Version:   strings.TrimSpace(parts[1]),
			Ecosystem: types.EcosystemApt,
			Source:    path,
		})
	}
	return deps, nil
}

var _ ports.ManifestPort = AptLockAdapter{}
