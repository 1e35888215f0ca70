package world

import (
	"fmt"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
)

// EntityRecord describes one entity in a bulk-load or export document.
type EntityRecord struct {
	Name        string             `json:"name" yaml:"name"`
	Type        string             `json:"type" yaml:"type"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  *entity.Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// EdgeRecord describes one relationship in a bulk-load or export
// document. Derived marks edges added by closure rather than asserted by
// a source.
type EdgeRecord struct {
	Source  string `json:"source" yaml:"source"`
	Label   string `json:"label" yaml:"label"`
	Target  string `json:"target" yaml:"target"`
	Derived bool   `json:"derived,omitempty" yaml:"derived,omitempty"`
}

// Document is the ordered bulk-load input and export output: entities
// first, then relationships.
type Document struct {
	Entities      []EntityRecord `json:"entities" yaml:"entities"`
	Relationships []EdgeRecord   `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Stage names the document section a load failure occurred in.
type Stage string

const (
	StageEntities      Stage = "entities"
	StageRelationships Stage = "relationships"
)

// LoadError reports the first record a bulk load rejected and its
// position in the input sequence. Records before it remain applied.
type LoadError struct {
	Stage Stage
	Index int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s[%d]: %v", e.Stage, e.Index, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load applies doc's entities in order, then its relationships in order,
// stopping at the first integrity failure and reporting its position.
// There is no rollback: records applied before the failure stay applied.
// Callers needing atomicity snapshot beforehand and restore on error.
func (w *World) Load(doc *Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, rec := range doc.Entities {
		if err := w.store.Add(rec.Name, rec.Type, rec.Description, rec.Properties); err != nil {
			return &LoadError{Stage: StageEntities, Index: i, Err: err}
		}
		w.graph.Resolve(rec.Name)
	}
	for i, rec := range doc.Relationships {
		origin := graph.OriginAsserted
		if rec.Derived {
			origin = graph.OriginDerived
		}
		if _, err := w.graph.AddEdge(rec.Source, rec.Label, rec.Target, origin); err != nil {
			return &LoadError{Stage: StageRelationships, Index: i, Err: err}
		}
	}
	return nil
}

// Export returns the world as an ordered document: entities in insertion
// order, relationships in insertion order, each edge carrying its
// asserted or derived flag. Loading the document into an empty world
// reproduces the graph.
func (w *World) Export() *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc := &Document{}
	for _, ent := range w.store.List() {
		props := ent.Properties
		if props.Len() == 0 {
			props = nil
		}
		doc.Entities = append(doc.Entities, EntityRecord{
			Name:        ent.Name,
			Type:        ent.Type,
			Description: ent.Description,
			Properties:  props,
		})
	}
	for _, edge := range w.graph.Edges() {
		doc.Relationships = append(doc.Relationships, EdgeRecord{
			Source:  edge.Source,
			Label:   edge.Label,
			Target:  edge.Target,
			Derived: edge.Derived(),
		})
	}
	return doc
}
