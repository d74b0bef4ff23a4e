package ports

import "eol-check/internal/types"

// ManifestPort parses the flat manifests (npm, pip, apt) into declared
// dependencies.
type ManifestPort interface {
	ParseDependencies(path string) ([]types.Dependency, error)
}

type POMPort interface {
	ParsePOM(path string) (types.POMModel, error)
}
