package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	goversion "github.com/hashicorp/go-version"
	debversion "github.com/knqyf263/go-deb-version"

	"eol-check/internal/types"
)

// versionCache memoizes parsed version objects so a dependency compared
// against every supported release cycle is parsed once.
type versionCache struct {
	ecosystem types.Ecosystem
	deb       map[string]debversion.Version
	pep       map[string]pep440.Version
	generic   map[string]*goversion.Version
}

func newVersionCache(ecosystem types.Ecosystem) *versionCache {
	return &versionCache{
		ecosystem: ecosystem,
		deb:       map[string]debversion.Version{},
		pep:       map[string]pep440.Version{},
		generic:   map[string]*goversion.Version{},
	}
}

func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// genericVersion handles Maven style qualifiers ("6.1.0-M1",
// "5.3.9.RELEASE") that PEP 440 rejects.
func (c *versionCache) genericVersion(value string) (*goversion.Version, error) {
	if parsed, ok := c.generic[value]; ok {
		return parsed, nil
	}
	parsed, err := goversion.NewVersion(value)
	if err != nil {
		return nil, err
	}
	c.generic[value] = parsed
	return parsed, nil
}

// compare returns -1, 0 or 1 comparing a and b under the ecosystem's
// ordering. An error means at least one side could not be parsed and the
// caller should fall back to string comparison.
func (c *versionCache) compare(a string, b string) (int, error) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version")
	}
	if c.ecosystem == types.EcosystemApt {
		v1, err := c.debVersion(a)
		if err != nil {
			return 0, err
		}
		v2, err := c.debVersion(b)
		if err != nil {
			return 0, err
		}
		return v1.Compare(v2), nil
	}
	if v1, err := c.pepVersion(a); err == nil {
		if v2, err := c.pepVersion(b); err == nil {
			return v1.Compare(v2), nil
		}
	}
	v1, err := c.genericVersion(a)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unparseable version %q", a)).
			WithCause(err)
	}
	v2, err := c.genericVersion(b)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unparseable version %q", b)).
			WithCause(err)
	}
	return v1.Compare(v2), nil
}

// stripRangePrefix drops a single leading "^", "~" or ">" so "^18.2.0"
// compares as "18.2.0". Anything left over, such as the "=" of ">=", makes
// the version unparseable and falls back to string comparison.
func stripRangePrefix(value string) string {
	value = strings.TrimSpace(value)
	if value != "" && strings.ContainsRune("^~>", rune(value[0])) {
		return value[1:]
	}
	return value
}
