package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"eol-check/internal/adapters"
	"eol-check/internal/core"
	"eol-check/internal/ports"
	"eol-check/internal/types"
)

// DefaultTargets are checked when no targets are configured.
func DefaultTargets() []types.Target {
	return []types.Target{
		{Name: "Frontend", Ecosystem: types.EcosystemNpm, Path: filepath.Join("frontend", "package.json")},
		{Name: "Backend", Ecosystem: types.EcosystemMaven, Path: filepath.Join("backend", "pom.xml")},
	}
}

type resolvedTarget struct {
	target   types.Target
	optional bool
}

// resolveTargets validates configured targets and anchors relative paths
// at root. Default targets are optional: a missing file is skipped.
func resolveTargets(root string, configured []types.Target) ([]resolvedTarget, error) {
	optional := len(configured) == 0
	if optional {
		configured = DefaultTargets()
	}
	seen := map[string]bool{}
	resolved := make([]resolvedTarget, 0, len(configured))
	for i, target := range configured {
		ecosystem, ok := types.ParseEcosystem(string(target.Ecosystem))
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported ecosystem %q for target %d", target.Ecosystem, i+1))
		}
		path := strings.TrimSpace(target.Path)
		if path == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("target %d has no path", i+1))
		}
		if !filepath.IsAbs(path) && strings.TrimSpace(root) != "" {
			path = filepath.Join(root, path)
		}
		name := strings.TrimSpace(target.Name)
		if name == "" {
			name = strings.TrimSpace(target.Path)
		}
		if seen[name] {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate target name %q", name))
		}
		seen[name] = true
		resolved = append(resolved, resolvedTarget{
			target:   types.Target{Name: name, Ecosystem: ecosystem, Path: path},
			optional: optional,
		})
	}
	return resolved, nil
}

func manifestExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// collectDependencies parses the target manifest and, for Maven, derives
// the checkable dependency list from the POM model.
func (s Service) collectDependencies(ctx context.Context, target types.Target, includeDev bool, deriver core.MavenDeriver, catalog core.Catalog) ([]types.Dependency, error) {
	switch target.Ecosystem {
	case types.EcosystemNpm:
		return adapters.NewNpmManifestAdapter(includeDev).ParseDependencies(target.Path)
	case types.EcosystemMaven:
		model, err := s.POMParser.ParsePOM(target.Path)
		if err != nil {
			return nil, err
		}
		return deriver.Derive(ctx, model, catalog, target.Path), nil
	case types.EcosystemPip:
		return s.Requirements.ParseDependencies(target.Path)
	case types.EcosystemApt:
		return s.AptLock.ParseDependencies(target.Path)
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported ecosystem %q", target.Ecosystem))
	}
}

// eolSource builds the configured source chain: file or HTTP, optionally
// wrapped in the on-disk cache. File sources are never cached.
func (s Service) eolSource(ctx context.Context, req SourceRequest) ports.EOLSourcePort {
	if s.EOLSource != nil {
		return s.EOLSource
	}
	if file := strings.TrimSpace(req.File); file != "" {
		return adapters.NewFileEOLSource(file)
	}
	var source ports.EOLSourcePort = adapters.NewHTTPEOLSource(req.URL, req.HTTPTimeoutSec, req.HTTPRetries, req.HTTPRetryDelayMs)
	if req.NoCache || req.CacheTTL <= 0 {
		return source
	}
	dir := strings.TrimSpace(req.CacheDir)
	if dir == "" {
		dir = adapters.DefaultCacheDir()
	}
	log.Ctx(ctx).Debug().Str("dir", dir).Dur("ttl", req.CacheTTL).Msg("EOL cache enabled")
	fs := s.CacheFs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return adapters.NewCachedEOLSource(fs, source, dir, req.CacheTTL)
}
