package core

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	defaultSpringFrameworkVersion = "6.2.5"
	defaultLiquibaseVersion       = "4.26.0"
)

// VersionMapping maps a Spring Boot release line to the version of a
// library it manages.
type VersionMapping map[string]string

func DefaultSpringFrameworkMapping() VersionMapping {
	return VersionMapping{
		"3.0": "6.0",
		"3.1": "6.0",
		"3.2": "6.1",
		"3.3": "6.1",
		"3.4": "6.2",
		"3.5": "6.3",
	}
}

func DefaultLiquibaseMapping() VersionMapping {
	return VersionMapping{
		"3.0": "4.17.0",
		"3.1": "4.20.0",
		"3.2": "4.23.0",
		"3.3": "4.24.0",
		"3.4": "4.26.0",
		"3.5": "4.28.0",
	}
}

// Merge returns a copy of m with override entries applied on top.
func (m VersionMapping) Merge(override map[string]string) VersionMapping {
	return lo.Assign(m, VersionMapping(override))
}

// Lookup finds the entry whose key is the longest prefix of version on a
// segment boundary, so "3.1" does not claim "3.10.2".
func (m VersionMapping) Lookup(version string) (string, bool) {
	version = strings.TrimSpace(version)
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		if !strings.HasPrefix(version, key) {
			continue
		}
		rest := version[len(key):]
		if rest == "" || strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "-") {
			return m[key], true
		}
	}
	return "", false
}
