package core

import (
	"context"
	"strings"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"eol-check/internal/types"
)

const (
	NoteNotInCatalog       = "Not checked - dependency not found in endoflife.json"
	NoteNoSupportedRelease = "no supported releases"
	NoteStringComparison   = "version not parseable, compared as string"
)

// Classifier decides the EOL status of declared dependencies against a
// catalog as of a fixed day.
type Classifier struct {
	catalog Catalog
	today   time.Time
}

func NewClassifier(catalog Catalog, today time.Time) Classifier {
	return Classifier{catalog: catalog, today: today}
}

func (c Classifier) Classify(ctx context.Context, dep types.Dependency) types.Finding {
	assert.NotEmpty(ctx, dep.Name, "dependency name must be set")
	finding := types.Finding{
		Name:       dep.Name,
		Dependency: dep.ReportName(),
		Used:       dep.Version,
	}
	if dep.Skip || !c.catalog.Has(dep.ProductKey()) {
		finding.Status = types.FindingStatusUnchecked
		finding.Note = NoteNotInCatalog
		if dep.Skip && dep.SkipReason != "" {
			finding.Note = dep.SkipReason
		}
		return finding
	}
	supported := c.catalog.SupportedVersions(dep.ProductKey(), c.today)
	if dep.Ecosystem == types.EcosystemNpm {
		c.applyLatestRule(&finding, dep, supported)
	} else {
		c.applyCycleRule(&finding, dep, supported)
	}
	log.Ctx(ctx).Debug().
		Str("dependency", finding.Dependency).
		Str("used", finding.Used).
		Str("status", string(finding.Status)).
		Msg("dependency classified")
	return finding
}

func (c Classifier) ClassifyAll(ctx context.Context, target types.Target, deps []types.Dependency) types.TargetReport {
	report := types.TargetReport{Target: target}
	for _, dep := range deps {
		report.Add(c.Classify(ctx, dep))
	}
	return report
}

// applyLatestRule: the used version must not be older than the newest
// supported release.
func (c Classifier) applyLatestRule(finding *types.Finding, dep types.Dependency, supported []string) {
	latest, ok := c.catalog.LatestSupported(dep.ProductKey(), c.today)
	if !ok {
		finding.Status = types.FindingStatusEOL
		finding.Note = NoteNoSupportedRelease
		return
	}
	finding.SupportedVersions = supported
	cache := newVersionCache(dep.Ecosystem)
	cmp, err := cache.compare(stripRangePrefix(dep.Version), latest)
	if err != nil {
		finding.Note = NoteStringComparison
		if strings.TrimSpace(dep.Version) != latest {
			finding.Status = types.FindingStatusEOL
			finding.Required = latest
			return
		}
		finding.Status = types.FindingStatusUpToDate
		return
	}
	if cmp < 0 {
		finding.Status = types.FindingStatusEOL
		finding.Required = latest
		return
	}
	finding.Status = types.FindingStatusUpToDate
}

// applyCycleRule: the used version is fine when at least one supported
// release cycle is at or below it.
func (c Classifier) applyCycleRule(finding *types.Finding, dep types.Dependency, supported []string) {
	if len(supported) == 0 {
		finding.Status = types.FindingStatusUnchecked
		finding.Note = NoteNoSupportedRelease
		return
	}
	finding.SupportedVersions = supported
	cache := newVersionCache(dep.Ecosystem)
	used := strings.TrimSpace(dep.Version)
	isSupported := false
	for _, cycle := range supported {
		cmp, err := cache.compare(cycle, used)
		if err != nil {
			finding.Note = NoteStringComparison
			isSupported = containsString(supported, used)
			break
		}
		if cmp <= 0 {
			isSupported = true
			break
		}
	}
	if isSupported {
		finding.Status = types.FindingStatusUpToDate
		return
	}
	finding.Status = types.FindingStatusEOL
	finding.Required = supported[0]
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
