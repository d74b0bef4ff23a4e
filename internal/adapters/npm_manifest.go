package adapters

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

// NpmManifestAdapter reads package.json. Dependencies keep the order in
// which they appear in the file.
type NpmManifestAdapter struct {
	IncludeDev bool
}

func NewNpmManifestAdapter(includeDev bool) NpmManifestAdapter {
	return NpmManifestAdapter{IncludeDev: includeDev}
}

type packageJSON struct {
	Name            string          `json:"name"`
	Dependencies    json.RawMessage `json:"dependencies"`
	DevDependencies json.RawMessage `json:"devDependencies"`
}

type orderedEntry struct {
	Key   string
	Value string
}

func (a NpmManifestAdapter) ParseDependencies(path string) ([]types.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.json").
			WithCause(err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package.json").
			WithCause(err)
	}
	entries, err := orderedStringMap(pkg.Dependencies)
	if err != nil {
		return nil, err
	}
	if a.IncludeDev {
		devEntries, err := orderedStringMap(pkg.DevDependencies)
		if err != nil {
			return nil, err
		}
		entries = append(entries, devEntries...)
	}
	deps := make([]types.Dependency, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Key)
		if name == "" {
			continue
		}
		deps = append(deps, types.Dependency{
			Name:      name,
			Version:   strings.TrimSpace(entry.Value),
			Ecosystem: types.EcosystemNpm,
			Source:    path,
		})
	}
	return deps, nil
}

// orderedStringMap decodes a JSON object of string values preserving key
// order. A missing or null object yields no entries.
func orderedStringMap(raw json.RawMessage) ([]orderedEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	token, err := decoder.Token()
	if err != nil {
		return nil, invalidDependencyMap(err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, invalidDependencyMap(nil)
	}
	var entries []orderedEntry
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, invalidDependencyMap(err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, invalidDependencyMap(nil)
		}
		var value string
		if err := decoder.Decode(&value); err != nil {
			return nil, invalidDependencyMap(err)
		}
		entries = append(entries, orderedEntry{Key: key, Value: value})
	}
	return entries, nil
}

func invalidDependencyMap(cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("package.json dependencies must be an object of version strings")
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}

var _ ports.ManifestPort = NpmManifestAdapter{}
