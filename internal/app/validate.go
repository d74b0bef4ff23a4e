package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"eol-check/internal/core"
	"eol-check/internal/policies"
	"eol-check/internal/types"
)

// Validate checks configuration before a run: targets resolve, required
// manifests exist and parse, and waiver patterns compile. No EOL data is
// fetched.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	targets, err := resolveTargets(req.Root, req.Targets)
	if err != nil {
		return ValidateResult{}, err
	}
	if err := policies.NewWaiverPolicy(req.Waivers, s.now().UTC()).Validate(); err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{}
	for _, resolved := range targets {
		target := resolved.target
		if !manifestExists(target.Path) {
			if resolved.optional {
				result.Targets = append(result.Targets, TargetSummary{Target: target, Skipped: true})
				continue
			}
			return ValidateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("manifest for target %q not found: %s", target.Name, target.Path))
		}
		count, err := s.countDependencies(ctx, target, req.IncludeDev)
		if err != nil {
			return ValidateResult{}, err
		}
		log.Ctx(ctx).Debug().Str("target", target.Name).Int("dependencies", count).Msg("target validated")
		result.Targets = append(result.Targets, TargetSummary{Target: target, Dependencies: count})
	}
	if len(result.Targets) > 0 && allSkipped(result.Targets) {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no dependency manifests found")
	}
	return result, nil
}

// countDependencies parses without a catalog, so Maven reports the raw
// declared dependency count.
func (s Service) countDependencies(ctx context.Context, target types.Target, includeDev bool) (int, error) {
	if target.Ecosystem == types.EcosystemMaven {
		model, err := s.POMParser.ParsePOM(target.Path)
		if err != nil {
			return 0, err
		}
		return len(model.Dependencies), nil
	}
	deps, err := s.collectDependencies(ctx, target, includeDev, core.MavenDeriver{}, core.Catalog{})
	if err != nil {
		return 0, err
	}
	return len(deps), nil
}

func allSkipped(targets []TargetSummary) bool {
	for _, target := range targets {
		if !target.Skipped {
			return false
		}
	}
	return true
}
