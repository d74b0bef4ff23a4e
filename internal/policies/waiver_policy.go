package policies

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"eol-check/internal/shared"
	"eol-check/internal/types"
)

// WaiverPolicy accepts known EOL findings. Patterns are compiled once;
// when several waivers match, the one declared first wins.
type WaiverPolicy struct {
	Waivers        []types.Waiver
	Today          time.Time
	exactByEco     map[types.Ecosystem]map[string]int
	exactAny       map[string]int
	prefixByEco    map[types.Ecosystem][]prefixPattern
	prefixAny      []prefixPattern
	wildcardByEco  map[types.Ecosystem]int
	wildcardAny    int
	invalidPattern []string
}

func NewWaiverPolicy(waivers []types.Waiver, today time.Time) WaiverPolicy {
	policy := WaiverPolicy{Today: today, wildcardAny: -1}
	for _, waiver := range waivers {
		if waiverExpired(waiver, today) {
			continue
		}
		policy.Waivers = append(policy.Waivers, waiver)
	}
	policy.compile()
	return policy
}

// Validate reports the first waiver whose pattern could not be parsed.
func (p WaiverPolicy) Validate() error {
	if len(p.invalidPattern) == 0 {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid waiver pattern %q", p.invalidPattern[0]))
}

func (p WaiverPolicy) Match(ecosystem types.Ecosystem, name string) (types.Waiver, bool) {
	return p.waiverAt(p.matchIndex(ecosystem, name))
}

// MatchFinding tries the finding's normalised name and its report name;
// the earliest declared waiver matching either wins.
func (p WaiverPolicy) MatchFinding(ecosystem types.Ecosystem, finding types.Finding) (types.Waiver, bool) {
	best := -1
	for _, name := range findingNames(ecosystem, finding) {
		best = minIndex(best, p.matchIndex(ecosystem, name))
	}
	return p.waiverAt(best)
}

func (p WaiverPolicy) waiverAt(index int) (types.Waiver, bool) {
	if index >= 0 && index < len(p.Waivers) {
		return p.Waivers[index], true
	}
	return types.Waiver{}, false
}

func findingNames(ecosystem types.Ecosystem, finding types.Finding) []string {
	names := []string{finding.Dependency}
	if finding.Name != "" && finding.Name != finding.Dependency {
		names = append(names, finding.Name)
	}
	if ecosystem == types.EcosystemPip {
		if normalized := shared.NormalizePipName(finding.Dependency); normalized != finding.Name {
			names = append(names, normalized)
		}
	}
	return names
}

func (p WaiverPolicy) matchIndex(ecosystem types.Ecosystem, name string) int {
	best := -1
	if matches, ok := p.exactByEco[ecosystem]; ok {
		if idx, found := matches[name]; found {
			best = minIndex(best, idx)
		}
	}
	if idx, found := p.exactAny[name]; found {
		best = minIndex(best, idx)
	}
	for _, entry := range p.prefixByEco[ecosystem] {
		if strings.HasPrefix(name, entry.prefix) {
			best = minIndex(best, entry.waiverIndex)
		}
	}
	for _, entry := range p.prefixAny {
		if strings.HasPrefix(name, entry.prefix) {
			best = minIndex(best, entry.waiverIndex)
		}
	}
	if idx, found := p.wildcardByEco[ecosystem]; found {
		best = minIndex(best, idx)
	}
	if p.wildcardAny >= 0 {
		best = minIndex(best, p.wildcardAny)
	}
	return best
}

// Apply moves waived EOL findings into the waived section.
func (p WaiverPolicy) Apply(report types.TargetReport) types.TargetReport {
	if len(p.Waivers) == 0 || len(report.EOL) == 0 {
		return report
	}
	var remaining []types.Finding
	for _, finding := range report.EOL {
		waiver, ok := p.MatchFinding(report.Target.Ecosystem, finding)
		if !ok {
			remaining = append(remaining, finding)
			continue
		}
		finding.Status = types.FindingStatusWaived
		finding.Note = waiverNote(waiver)
		report.Waived = append(report.Waived, finding)
	}
	report.EOL = remaining
	return report
}

type prefixPattern struct {
	prefix      string
	waiverIndex int
}

type parsedPattern struct {
	ecosystem *types.Ecosystem
	kind      patternKind
	name      string
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternWildcard
	patternInvalid
)

func (p *WaiverPolicy) compile() {
	p.exactByEco = map[types.Ecosystem]map[string]int{}
	p.exactAny = map[string]int{}
	p.prefixByEco = map[types.Ecosystem][]prefixPattern{}
	p.prefixAny = nil
	p.wildcardByEco = map[types.Ecosystem]int{}
	p.wildcardAny = -1
	p.invalidPattern = nil
	for idx, waiver := range p.Waivers {
		parsed, ok := parsePattern(waiver.Match)
		if !ok {
			p.invalidPattern = append(p.invalidPattern, waiver.Match)
			continue
		}
		switch parsed.kind {
		case patternWildcard:
			p.storeWildcard(parsed.ecosystem, idx)
		case patternExact:
			p.storeExact(parsed.ecosystem, parsed.name, idx)
		case patternPrefix:
			p.storePrefix(parsed.ecosystem, parsed.name, idx)
		}
	}
}

func (p *WaiverPolicy) storeExact(ecosystem *types.Ecosystem, name string, index int) {
	if ecosystem == nil {
		if _, ok := p.exactAny[name]; !ok {
			p.exactAny[name] = index
		}
		return
	}
	if p.exactByEco[*ecosystem] == nil {
		p.exactByEco[*ecosystem] = map[string]int{}
	}
	if _, ok := p.exactByEco[*ecosystem][name]; !ok {
		p.exactByEco[*ecosystem][name] = index
	}
}

func (p *WaiverPolicy) storePrefix(ecosystem *types.Ecosystem, prefix string, index int) {
	entry := prefixPattern{prefix: prefix, waiverIndex: index}
	if ecosystem == nil {
		p.prefixAny = append(p.prefixAny, entry)
		return
	}
	p.prefixByEco[*ecosystem] = append(p.prefixByEco[*ecosystem], entry)
}

func (p *WaiverPolicy) storeWildcard(ecosystem *types.Ecosystem, index int) {
	if ecosystem == nil {
		if p.wildcardAny < 0 {
			p.wildcardAny = index
		}
		return
	}
	if _, ok := p.wildcardByEco[*ecosystem]; !ok {
		p.wildcardByEco[*ecosystem] = index
	}
}

func parsePattern(pattern string) (parsedPattern, bool) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return parsedPattern{kind: patternInvalid}, false
	}
	if trimmed == "*" {
		return parsedPattern{kind: patternWildcard}, true
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) == 2 {
		ecosystem, ok := types.ParseEcosystem(strings.ToLower(strings.TrimSpace(parts[0])))
		if !ok {
			return parsedPattern{kind: patternInvalid}, false
		}
		name, kind := parseNamePattern(parts[1])
		if kind == patternInvalid {
			return parsedPattern{kind: patternInvalid}, false
		}
		if ecosystem == types.EcosystemPip && kind != patternWildcard {
			name = shared.NormalizePipName(name)
		}
		return parsedPattern{ecosystem: &ecosystem, kind: kind, name: name}, true
	}
	if len(parts) > 2 {
		return parsedPattern{kind: patternInvalid}, false
	}
	name, kind := parseNamePattern(trimmed)
	if kind == patternInvalid {
		return parsedPattern{kind: patternInvalid}, false
	}
	return parsedPattern{kind: kind, name: name}, true
}

func parseNamePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.TrimSuffix(pattern, "*"), patternPrefix
	}
	return pattern, patternExact
}

func minIndex(current int, candidate int) int {
	if candidate < 0 {
		return current
	}
	if current < 0 || candidate < current {
		return candidate
	}
	return current
}

// waiverExpired treats an unparseable expiry as already expired so a typo
// never waives findings forever.
func waiverExpired(waiver types.Waiver, today time.Time) bool {
	expires := strings.TrimSpace(waiver.Expires)
	if expires == "" {
		return false
	}
	parsed, err := time.Parse("2006-01-02", expires)
	if err != nil {
		return true
	}
	return parsed.Format("2006-01-02") < today.UTC().Format("2006-01-02")
}

func waiverNote(waiver types.Waiver) string {
	note := strings.TrimSpace(waiver.Reason)
	if note == "" {
		note = "waived"
	}
	if owner := strings.TrimSpace(waiver.Owner); owner != "" {
		note = fmt.Sprintf("%s (owner=%s)", note, owner)
	}
	if expires := strings.TrimSpace(waiver.Expires); expires != "" {
		note = fmt.Sprintf("%s until %s", note, expires)
	}
	return note
}
