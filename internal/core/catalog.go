package core

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"eol-check/internal/types"
)

// Catalog answers release support questions against an endoflife.json
// document.
type Catalog struct {
	data  types.EOLData
	lower map[string]string
}

func NewCatalog(data types.EOLData) Catalog {
	lower := make(map[string]string, len(data))
	for _, name := range sortedProductNames(data) {
		key := strings.ToLower(name)
		if _, exists := lower[key]; !exists {
			lower[key] = name
		}
	}
	return Catalog{data: data, lower: lower}
}

// Lookup returns the product entry. Exact names win over case-insensitive
// matches. A product without a releases list is treated as absent.
func (c Catalog) Lookup(product string) (types.EOLProductResult, bool) {
	entry, ok := c.data[product]
	if !ok {
		name, found := c.lower[strings.ToLower(strings.TrimSpace(product))]
		if !found {
			return types.EOLProductResult{}, false
		}
		entry = c.data[name]
	}
	if entry.Result.Releases == nil {
		return types.EOLProductResult{}, false
	}
	return entry.Result, true
}

func (c Catalog) Has(product string) bool {
	_, ok := c.Lookup(product)
	return ok
}

// SupportedVersions lists supported release names in document order,
// which is newest first for endoflife.json.
func (c Catalog) SupportedVersions(product string, today time.Time) []string {
	result, ok := c.Lookup(product)
	if !ok {
		return nil
	}
	supported := lo.Filter(result.Releases, func(release types.EOLRelease, _ int) bool {
		return ReleaseSupported(release, today)
	})
	return lo.Map(supported, func(release types.EOLRelease, _ int) string {
		return release.Name
	})
}

func (c Catalog) LatestSupported(product string, today time.Time) (string, bool) {
	supported := c.SupportedVersions(product, today)
	if len(supported) == 0 {
		return "", false
	}
	return supported[0], true
}

func (c Catalog) Products() []string {
	return sortedProductNames(c.data)
}

func (c Catalog) Len() int {
	return len(c.data)
}

// ReleaseSupported applies the support rule: an explicit isEol flag
// decides; otherwise an eolFrom date after today means supported; with
// neither the release counts as end-of-life.
func ReleaseSupported(release types.EOLRelease, today time.Time) bool {
	if release.IsEOL != nil {
		return !*release.IsEOL
	}
	if after, ok := dateAfter(release.EOLFrom, today); ok {
		return after
	}
	return false
}

func sortedProductNames(data types.EOLData) []string {
	names := lo.Keys(data)
	sort.Strings(names)
	return names
}
