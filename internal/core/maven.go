package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"eol-check/internal/types"
)

const (
	springBootParentArtifact = "spring-boot-starter-parent"
	springBootProduct        = "spring-boot"
	springFrameworkProduct   = "spring-framework"
	springOxmVersionProperty = "spring-oxm.version"
	javaVersionProperty      = "java.version"
	javaProduct              = "java"
	liquibaseGroup           = "org.liquibase"
	liquibaseArtifact        = "liquibase-core"
	liquibaseProduct         = "liquibase"
)

// MavenDeriver turns a parsed pom.xml into checkable dependencies,
// filling in versions Spring Boot manages implicitly.
type MavenDeriver struct {
	Framework VersionMapping
	Liquibase VersionMapping
}

func NewMavenDeriver(framework VersionMapping, liquibase VersionMapping) MavenDeriver {
	if framework == nil {
		framework = DefaultSpringFrameworkMapping()
	}
	if liquibase == nil {
		liquibase = DefaultLiquibaseMapping()
	}
	return MavenDeriver{Framework: framework, Liquibase: liquibase}
}

func (d MavenDeriver) Derive(ctx context.Context, model types.POMModel, catalog Catalog, source string) []types.Dependency {
	var deps []types.Dependency
	parentVersion := ""

	if parent := model.Parent; parent != nil && parent.GroupID != "" && parent.ArtifactID != "" && parent.HasVersion {
		name := strings.ToLower(parent.ArtifactID)
		parentVersion = parent.Version
		if name == springBootParentArtifact && catalog.Has(springBootProduct) {
			deps = append(deps, types.Dependency{
				Name:      name,
				Product:   springBootProduct,
				Version:   parentVersion,
				Ecosystem: types.EcosystemMaven,
				Source:    source,
			})
			if catalog.Has(springFrameworkProduct) {
				deps = append(deps, types.Dependency{
					Name:      springFrameworkProduct,
					Version:   d.springFrameworkVersion(parentVersion, model.Properties),
					Ecosystem: types.EcosystemMaven,
					Source:    source,
				})
			}
		} else {
			deps = append(deps, types.Dependency{
				Name:      name,
				Version:   parentVersion,
				Ecosystem: types.EcosystemMaven,
				Source:    source,
				Skip:      true,
			})
		}
	}

	if javaVersion, ok := model.Properties[javaVersionProperty]; ok && catalog.Has(javaProduct) {
		deps = append(deps, types.Dependency{
			Name:      javaProduct,
			Version:   javaVersion,
			Ecosystem: types.EcosystemMaven,
			Source:    source,
		})
	}

	for _, dep := range model.Dependencies {
		if strings.TrimSpace(dep.ArtifactID) == "" {
			continue
		}
		name := strings.ToLower(dep.ArtifactID)
		if dep.HasVersion {
			deps = append(deps, types.Dependency{
				Name:      name,
				Version:   resolveProperty(dep.Version, model.Properties),
				Ecosystem: types.EcosystemMaven,
				Source:    source,
			})
			continue
		}
		if name == liquibaseArtifact && strings.ToLower(dep.GroupID) == liquibaseGroup && catalog.Has(liquibaseProduct) {
			version, ok := d.Liquibase.Lookup(parentVersion)
			if !ok {
				version = defaultLiquibaseVersion
			}
			deps = append(deps, types.Dependency{
				Name:      liquibaseProduct,
				Version:   version,
				Ecosystem: types.EcosystemMaven,
				Source:    source,
			})
		}
	}

	deps = DedupeDependencies(deps)
	log.Ctx(ctx).Debug().Str("source", source).Int("deps", len(deps)).Msg("maven dependencies derived")
	return deps
}

func (d MavenDeriver) springFrameworkVersion(bootVersion string, properties map[string]string) string {
	if version, ok := d.Framework.Lookup(bootVersion); ok {
		return version
	}
	if version, ok := properties[springOxmVersionProperty]; ok && strings.TrimSpace(version) != "" {
		return strings.TrimSpace(version)
	}
	return defaultSpringFrameworkVersion
}

// resolveProperty substitutes a whole-value ${name} reference. Unknown
// properties leave the reference untouched.
func resolveProperty(value string, properties map[string]string) string {
	ref := strings.TrimSpace(value)
	if !strings.HasPrefix(ref, "${") || !strings.HasSuffix(ref, "}") {
		return value
	}
	name := strings.TrimSpace(ref[2 : len(ref)-1])
	if resolved, ok := properties[name]; ok {
		return strings.TrimSpace(resolved)
	}
	return value
}

// DedupeDependencies keeps one entry per report name. A later entry
// replaces an earlier one in place, so output order follows first
// appearance.
func DedupeDependencies(deps []types.Dependency) []types.Dependency {
	index := map[string]int{}
	var out []types.Dependency
	for _, dep := range deps {
		key := dep.ReportName()
		if pos, ok := index[key]; ok {
			out[pos] = dep
			continue
		}
		index[key] = len(out)
		out = append(out, dep)
	}
	return out
}
