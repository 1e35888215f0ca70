// Package world ties the entity store, relation registry, relationship
// graph, closure engine, and query engine together behind a single
// facade with a single-writer, concurrent-reader contract.
//
// All mutating operations take the write lock; queries, validation, and
// export take the read lock. Enrichment runs entirely under the write
// lock and stages its derived edges before applying them, so readers
// observe either none of a pass's additions or all of them.
package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/c360studio/worldgraph/closure"
	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
	"github.com/c360studio/worldgraph/relation"
)

// World is a complete narrative knowledge graph: entities, the relation
// registry, and the labeled edges between entities.
type World struct {
	mu       sync.RWMutex
	store    *entity.Store
	registry *relation.Registry
	graph    *graph.Graph

	allowUnresolved bool
}

// Option configures a World.
type Option func(*World)

// WithRegistry replaces the default curated narrative registry.
func WithRegistry(r *relation.Registry) Option {
	return func(w *World) { w.registry = r }
}

// AllowUnresolved permits relationships whose endpoints have not been
// added yet. Such edges stay flagged until the missing entity arrives.
func AllowUnresolved() Option {
	return func(w *World) { w.allowUnresolved = true }
}

// New returns an empty world. Without options it uses the curated
// narrative relation registry and rejects unresolved references.
func New(opts ...Option) *World {
	w := &World{
		store:    entity.NewStore(),
		registry: relation.Narrative(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.graph = newGraph(w.store, w.allowUnresolved)
	return w
}

func newGraph(store *entity.Store, allowUnresolved bool) *graph.Graph {
	if allowUnresolved {
		return graph.New(store, graph.AllowUnresolved())
	}
	return graph.New(store)
}

// AddEntity creates an entity. It fails with entity.DuplicateEntityError
// when the name is taken. Any unresolved edges waiting on the name are
// resolved.
func (w *World) AddEntity(name, entityType, description string, props *entity.Properties) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.store.Add(name, entityType, description, props); err != nil {
		return err
	}
	w.graph.Resolve(name)
	return nil
}

// DeleteEntity removes an entity after detaching every edge that touches
// it. It returns the number of edges removed.
func (w *World) DeleteEntity(name string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.store.Has(name) {
		return 0, &entity.UnknownEntityError{Name: name}
	}
	detached := w.graph.RemoveEntityEdges(name)
	if err := w.store.Remove(name); err != nil {
		return detached, err
	}
	return detached, nil
}

// SetType changes an entity's type tag.
func (w *World) SetType(name, entityType string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.SetType(name, entityType)
}

// SetDescription changes an entity's description.
func (w *World) SetDescription(name, description string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.SetDescription(name, description)
}

// UpdateProperties merges patch into an entity's property bag. Patch keys
// overwrite existing values in place, new keys append.
func (w *World) UpdateProperties(name string, patch *entity.Properties) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.UpdateProperties(name, patch)
}

// AddProperty sets a property that must not already exist on the entity.
func (w *World) AddProperty(name, property string, v entity.Value) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	ent, err := w.store.Get(name)
	if err != nil {
		return err
	}
	if ent.Properties.Has(property) {
		return fmt.Errorf("add property %q to %q: %w", property, name, ErrPropertyExists)
	}
	return w.store.SetProperty(name, property, v)
}

// ModifyProperty overwrites a property that must already exist.
func (w *World) ModifyProperty(name, property string, v entity.Value) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	ent, err := w.store.Get(name)
	if err != nil {
		return err
	}
	if !ent.Properties.Has(property) {
		return fmt.Errorf("modify property %q of %q: %w", property, name, entity.ErrPropertyNotFound)
	}
	return w.store.SetProperty(name, property, v)
}

// DeleteProperty removes a property from an entity. The name, type, and
// description fields are protected.
func (w *World) DeleteProperty(name, property string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.DeleteProperty(name, property)
}

// AddRelationship asserts a directed labeled edge and returns a copy of
// it.
func (w *World) AddRelationship(source, label, target string) (*graph.Edge, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.AddEdge(source, label, target, graph.OriginAsserted)
}

// RemoveRelationship deletes the edge matching the triple. Derived
// inverse edges it implied are left for a later closure pass.
func (w *World) RemoveRelationship(source, label, target string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.graph.RemoveEdge(source, label, target)
}

// RegisterInverse adds or reranks a candidate inverse for label.
func (w *World) RegisterInverse(label, inverse string, rank int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.registry.RegisterInverse(label, inverse, rank)
}

// RegisterSymmetric marks label as its own inverse.
func (w *World) RegisterSymmetric(label string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.registry.RegisterSymmetric(label)
}

// Enrich runs an inverse-closure pass, adding missing inverse edges as
// derived edges. The additions are applied while the write lock is held,
// so readers never observe a partial pass. The added edges are returned
// in application order; a second call adds nothing.
func (w *World) Enrich() ([]*graph.Edge, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return closure.NewEngine(w.graph, w.registry).Enrich()
}

// Validate reports missing inverses and inverse-label mismatches without
// mutating the graph.
func (w *World) Validate() *closure.Report {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return closure.NewEngine(w.graph, w.registry).Validate()
}

// Clear empties the store and graph. The relation registry is kept.
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.store = entity.NewStore()
	w.graph = newGraph(w.store, w.allowUnresolved)
}

// ErrPropertyExists is returned by AddProperty when the property is
// already present; ModifyProperty is the overwriting form.
var ErrPropertyExists = errors.New("property already exists")
