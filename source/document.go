// Package source reads and writes world documents and watches data
// directories for changes.
//
// A world document is YAML or JSON with the same shape in both formats:
// a list of entities, each with an optional ordered property bag and
// optional nested relationships, an optional flat relationships list,
// and an optional inverses section feeding the relation registry.
// JSON is valid YAML, so one decoder covers both.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/world"
)

// Format selects the serialization of a written document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format matching a file extension. Everything
// but .json writes YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InverseRule declares one relation registry entry in a world document
// or config file: either an inverse candidate with a precedence rank, or
// a symmetric label.
type InverseRule struct {
	Label     string `yaml:"label" json:"label"`
	Inverse   string `yaml:"inverse,omitempty" json:"inverse,omitempty"`
	Rank      int    `yaml:"rank,omitempty" json:"rank,omitempty"`
	Symmetric bool   `yaml:"symmetric,omitempty" json:"symmetric,omitempty"`
}

// File is a parsed world document: the ordered bulk-load document plus
// any inverse rules the file declares.
type File struct {
	Document *world.Document
	Inverses []InverseRule
}

type entityDoc struct {
	Name          string             `yaml:"name" json:"name"`
	Type          string             `yaml:"type" json:"type"`
	Description   string             `yaml:"description,omitempty" json:"description,omitempty"`
	Properties    *entity.Properties `yaml:"properties,omitempty" json:"properties,omitempty"`
	Relationships []nestedEdgeDoc    `yaml:"relationships,omitempty" json:"relationships,omitempty"`
}

type nestedEdgeDoc struct {
	Label   string `yaml:"label" json:"label"`
	Target  string `yaml:"target" json:"target"`
	Derived bool   `yaml:"derived,omitempty" json:"derived,omitempty"`
}

type edgeDoc struct {
	Source  string `yaml:"source" json:"source"`
	Label   string `yaml:"label" json:"label"`
	Target  string `yaml:"target" json:"target"`
	Derived bool   `yaml:"derived,omitempty" json:"derived,omitempty"`
}

type fileDoc struct {
	Entities      []entityDoc   `yaml:"entities" json:"entities"`
	Relationships []edgeDoc     `yaml:"relationships,omitempty" json:"relationships,omitempty"`
	Inverses      []InverseRule `yaml:"inverses,omitempty" json:"inverses,omitempty"`
}

// Parse decodes a world document. Relationships nested under entities
// come first in the resulting order, in entity order, followed by the
// flat relationships list, so load failure positions are stable.
func Parse(data []byte) (*File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse world document: %w", err)
	}

	out := &world.Document{}
	for _, ent := range doc.Entities {
		out.Entities = append(out.Entities, world.EntityRecord{
			Name:        ent.Name,
			Type:        ent.Type,
			Description: ent.Description,
			Properties:  ent.Properties,
		})
		for _, rel := range ent.Relationships {
			out.Relationships = append(out.Relationships, world.EdgeRecord{
				Source:  ent.Name,
				Label:   rel.Label,
				Target:  rel.Target,
				Derived: rel.Derived,
			})
		}
	}
	for _, rel := range doc.Relationships {
		out.Relationships = append(out.Relationships, world.EdgeRecord{
			Source:  rel.Source,
			Label:   rel.Label,
			Target:  rel.Target,
			Derived: rel.Derived,
		})
	}
	return &File{Document: out, Inverses: doc.Inverses}, nil
}

// ParseFile reads and decodes one world document from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world document: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Write serializes an export document in the flat shape: entities
// without nested relationships, then the full relationships list with
// derived flags.
func Write(doc *world.Document, format Format) ([]byte, error) {
	out := fileDoc{}
	for _, rec := range doc.Entities {
		out.Entities = append(out.Entities, entityDoc{
			Name:        rec.Name,
			Type:        rec.Type,
			Description: rec.Description,
			Properties:  rec.Properties,
		})
	}
	for _, rec := range doc.Relationships {
		out.Relationships = append(out.Relationships, edgeDoc{
			Source:  rec.Source,
			Label:   rec.Label,
			Target:  rec.Target,
			Derived: rec.Derived,
		})
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode world document: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("encode world document: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// WriteFile writes an export document to path, picking the format from
// the extension.
func WriteFile(path string, doc *world.Document) error {
	data, err := Write(doc, FormatForPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write world document: %w", err)
	}
	return nil
}

// ApplyInverses registers a document's inverse rules into the world's
// relation registry. Rows with Symmetric set register the label as its
// own inverse; others need both Label and Inverse. Incomplete rows are
// skipped.
func ApplyInverses(w *world.World, rules []InverseRule) {
	for _, rule := range rules {
		if rule.Label == "" {
			continue
		}
		if rule.Symmetric {
			w.RegisterSymmetric(rule.Label)
			continue
		}
		if rule.Inverse == "" {
			continue
		}
		w.RegisterInverse(rule.Label, rule.Inverse, rule.Rank)
	}
}
