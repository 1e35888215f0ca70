// Package graph holds the directed labeled relationship graph for worldgraph.
//
// Edges are stored in an insertion-ordered arena with per-entity adjacency
// indexes, so enumeration order is deterministic and traversal never depends
// on map iteration. The graph checks endpoints against an entity resolver at
// insertion time; forward references are rejected unless the graph was built
// with AllowUnresolved, in which case the edge is kept and flagged until the
// missing endpoint arrives.
package graph

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/c360studio/worldgraph/entity"
)

// Resolver reports whether an entity name is present in the store.
// *entity.Store satisfies it.
type Resolver interface {
	Has(name string) bool
}

type tripleKey struct {
	source string
	label  string
	target string
}

// Graph stores directed labeled edges between named entities.
//
// Graph is not safe for concurrent use. Callers that share a graph across
// goroutines must serialize access themselves; the world facade does this
// with a single RWMutex over store, registry, and graph together.
type Graph struct {
	resolver        Resolver
	allowUnresolved bool

	arena    []*Edge
	byID     map[uuid.UUID]int
	triples  map[tripleKey]uuid.UUID
	outgoing map[string][]uuid.UUID
	incoming map[string][]uuid.UUID

	// pending maps a missing entity name to the edges waiting on it.
	pending map[string][]uuid.UUID
}

// Option configures a Graph.
type Option func(*Graph)

// AllowUnresolved permits edges whose endpoints are not yet in the store.
// Such edges are flagged Unresolved until Resolve is called for the
// missing name.
func AllowUnresolved() Option {
	return func(g *Graph) { g.allowUnresolved = true }
}

// New returns an empty graph that checks endpoints against resolver.
func New(resolver Resolver, opts ...Option) *Graph {
	g := &Graph{
		resolver: resolver,
		byID:     make(map[uuid.UUID]int),
		triples:  make(map[tripleKey]uuid.UUID),
		outgoing: make(map[string][]uuid.UUID),
		incoming: make(map[string][]uuid.UUID),
		pending:  make(map[string][]uuid.UUID),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddEdge inserts a directed edge and returns a copy of it. It fails with
// entity.UnknownEntityError when an endpoint is absent (unless the graph
// allows unresolved references) and with DuplicateEdgeError when the exact
// triple already exists. A failed insert leaves the graph unchanged.
func (g *Graph) AddEdge(source, label, target string, origin Origin) (*Edge, error) {
	if source == "" || label == "" || target == "" {
		return nil, fmt.Errorf("add edge: source, label, and target must be non-empty")
	}

	missing := make([]string, 0, 2)
	if !g.resolver.Has(source) {
		missing = append(missing, source)
	}
	if !g.resolver.Has(target) && target != source {
		missing = append(missing, target)
	}
	if len(missing) > 0 && !g.allowUnresolved {
		return nil, &entity.UnknownEntityError{Name: missing[0]}
	}

	key := tripleKey{source, label, target}
	if _, exists := g.triples[key]; exists {
		return nil, &DuplicateEdgeError{Source: source, Label: label, Target: target}
	}

	edge := &Edge{
		ID:         uuid.New(),
		Source:     source,
		Label:      label,
		Target:     target,
		Origin:     origin,
		Unresolved: len(missing) > 0,
	}
	g.byID[edge.ID] = len(g.arena)
	g.arena = append(g.arena, edge)
	g.triples[key] = edge.ID
	g.outgoing[source] = append(g.outgoing[source], edge.ID)
	g.incoming[target] = append(g.incoming[target], edge.ID)
	for _, name := range missing {
		g.pending[name] = append(g.pending[name], edge.ID)
	}
	return edge.Clone(), nil
}

// RemoveEdge deletes the edge matching the triple. It fails with
// EdgeNotFoundError if no such edge exists. Derived inverse edges implied
// by the removed edge are left in place for a later closure pass to
// reconcile.
func (g *Graph) RemoveEdge(source, label, target string) error {
	key := tripleKey{source, label, target}
	id, ok := g.triples[key]
	if !ok {
		return &EdgeNotFoundError{Source: source, Label: label, Target: target}
	}
	g.removeByID(id, key)
	return nil
}

func (g *Graph) removeByID(id uuid.UUID, key tripleKey) {
	idx := g.byID[id]
	g.arena[idx] = nil
	delete(g.byID, id)
	delete(g.triples, key)
	g.outgoing[key.source] = removeID(g.outgoing[key.source], id)
	g.incoming[key.target] = removeID(g.incoming[key.target], id)
	for name, ids := range g.pending {
		g.pending[name] = removeID(ids, id)
		if len(g.pending[name]) == 0 {
			delete(g.pending, name)
		}
	}
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// HasEdge reports whether the exact triple exists.
func (g *Graph) HasEdge(source, label, target string) bool {
	_, ok := g.triples[tripleKey{source, label, target}]
	return ok
}

// Get returns a copy of the edge with the given handle.
func (g *Graph) Get(id uuid.UUID) (*Edge, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return g.arena[idx].Clone(), true
}

// EdgesFrom returns copies of all edges whose source is name, in
// insertion order.
func (g *Graph) EdgesFrom(name string) []*Edge {
	return g.collect(g.outgoing[name])
}

// EdgesTo returns copies of all edges whose target is name, in
// insertion order.
func (g *Graph) EdgesTo(name string) []*Edge {
	return g.collect(g.incoming[name])
}

func (g *Graph) collect(ids []uuid.UUID) []*Edge {
	if len(ids) == 0 {
		return nil
	}
	edges := make([]*Edge, 0, len(ids))
	for _, id := range ids {
		if idx, ok := g.byID[id]; ok {
			edges = append(edges, g.arena[idx].Clone())
		}
	}
	return edges
}

// Edges returns copies of every edge in insertion order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.byID))
	for _, e := range g.arena {
		if e != nil {
			edges = append(edges, e.Clone())
		}
	}
	return edges
}

// Len returns the number of edges.
func (g *Graph) Len() int { return len(g.byID) }

// Labels returns the distinct relationship labels in use, sorted.
func (g *Graph) Labels() []string {
	seen := make(map[string]bool)
	for _, e := range g.arena {
		if e != nil {
			seen[e.Label] = true
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// RemoveEntityEdges deletes every edge touching name and returns the
// number removed. The world facade calls this when deleting an entity so
// the graph never holds edges to a name the store no longer knows.
func (g *Graph) RemoveEntityEdges(name string) int {
	ids := make([]uuid.UUID, 0, len(g.outgoing[name])+len(g.incoming[name]))
	ids = append(ids, g.outgoing[name]...)
	for _, id := range g.incoming[name] {
		if _, still := g.byID[id]; still && !containsID(ids, id) {
			ids = append(ids, id)
		}
	}
	removed := 0
	for _, id := range ids {
		idx, ok := g.byID[id]
		if !ok {
			continue
		}
		e := g.arena[idx]
		g.removeByID(id, tripleKey{e.Source, e.Label, e.Target})
		removed++
	}
	return removed
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// Resolve clears the Unresolved flag on edges that were waiting for name,
// provided both endpoints now exist. It returns the number of edges
// resolved. Call it after adding an entity to a graph built with
// AllowUnresolved.
func (g *Graph) Resolve(name string) int {
	ids := g.pending[name]
	if len(ids) == 0 {
		return 0
	}
	resolved := 0
	remaining := ids[:0]
	for _, id := range ids {
		idx, ok := g.byID[id]
		if !ok {
			continue
		}
		e := g.arena[idx]
		if g.resolver.Has(e.Source) && g.resolver.Has(e.Target) {
			e.Unresolved = false
			resolved++
			continue
		}
		remaining = append(remaining, id)
	}
	if len(remaining) == 0 {
		delete(g.pending, name)
	} else {
		g.pending[name] = remaining
	}
	return resolved
}

// Unresolved returns copies of all edges still waiting on a missing
// endpoint, in insertion order.
func (g *Graph) Unresolved() []*Edge {
	var edges []*Edge
	for _, e := range g.arena {
		if e != nil && e.Unresolved {
			edges = append(edges, e.Clone())
		}
	}
	return edges
}

// Clone returns a deep copy bound to resolver. Pass the clone of the
// matching entity store when snapshotting a world.
func (g *Graph) Clone(resolver Resolver) *Graph {
	if resolver == nil {
		resolver = g.resolver
	}
	clone := New(resolver)
	clone.allowUnresolved = g.allowUnresolved
	for _, e := range g.arena {
		if e == nil {
			continue
		}
		copied := e.Clone()
		clone.byID[copied.ID] = len(clone.arena)
		clone.arena = append(clone.arena, copied)
		clone.triples[tripleKey{copied.Source, copied.Label, copied.Target}] = copied.ID
		clone.outgoing[copied.Source] = append(clone.outgoing[copied.Source], copied.ID)
		clone.incoming[copied.Target] = append(clone.incoming[copied.Target], copied.ID)
	}
	for name, ids := range g.pending {
		clone.pending[name] = append([]uuid.UUID(nil), ids...)
	}
	return clone
}
