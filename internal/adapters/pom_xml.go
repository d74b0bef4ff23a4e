package adapters

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"eol-check/internal/ports"
	"eol-check/internal/types"
)

// POMAdapter extracts parent, properties and every <dependency> element
// (including dependencyManagement and plugin dependencies) from pom.xml.
// Elements are matched by local name so the Maven namespace is optional.
type POMAdapter struct {
	mu    sync.Mutex
	cache map[string]pomCacheEntry
}

func NewPOMAdapter() *POMAdapter {
	return &POMAdapter{cache: map[string]pomCacheEntry{}}
}

type pomCoordinate struct {
	GroupID    string  `xml:"groupId"`
	ArtifactID string  `xml:"artifactId"`
	Version    *string `xml:"version"`
}

type pomProperties struct {
	Entries []pomProperty `xml:",any"`
}

type pomProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type pomCacheEntry struct {
	modTime time.Time
	model   types.POMModel
}

func (a *POMAdapter) ParsePOM(path string) (types.POMModel, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.POMModel{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read pom.xml").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry.model, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return types.POMModel{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read pom.xml").
			WithCause(err)
	}
	model, err := parsePOM(content)
	if err != nil {
		return types.POMModel{}, err
	}

	a.mu.Lock()
	a.cache[path] = pomCacheEntry{modTime: info.ModTime(), model: model}
	a.mu.Unlock()
	return model, nil
}

func parsePOM(content []byte) (types.POMModel, error) {
	model := types.POMModel{Properties: map[string]string{}}
	decoder := xml.NewDecoder(bytes.NewReader(content))
	sawRoot := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return types.POMModel{}, invalidPOM(err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			sawRoot = true
			if start.Name.Local != "project" {
				return types.POMModel{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("pom.xml root element must be project")
			}
			continue
		}
		switch start.Name.Local {
		case "parent":
			var coord pomCoordinate
			if err := decoder.DecodeElement(&coord, &start); err != nil {
				return types.POMModel{}, invalidPOM(err)
			}
			if model.Parent == nil {
				parent := coord.toModel()
				model.Parent = &parent
			}
		case "dependency":
			var coord pomCoordinate
			if err := decoder.DecodeElement(&coord, &start); err != nil {
				return types.POMModel{}, invalidPOM(err)
			}
			model.Dependencies = append(model.Dependencies, coord.toModel())
		case "properties":
			var props pomProperties
			if err := decoder.DecodeElement(&props, &start); err != nil {
				return types.POMModel{}, invalidPOM(err)
			}
			for _, prop := range props.Entries {
				model.Properties[prop.XMLName.Local] = strings.TrimSpace(prop.Value)
			}
		}
	}
	if !sawRoot {
		return types.POMModel{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pom.xml is empty")
	}
	return model, nil
}

func (c pomCoordinate) toModel() types.POMCoordinate {
	coord := types.POMCoordinate{
		GroupID:    strings.TrimSpace(c.GroupID),
		ArtifactID: strings.TrimSpace(c.ArtifactID),
	}
	if c.Version != nil {
		coord.Version = strings.TrimSpace(*c.Version)
		coord.HasVersion = true
	}
	return coord
}

func invalidPOM(cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("failed to parse pom.xml").
		WithCause(cause)
}

var _ ports.POMPort = (*POMAdapter)(nil)
