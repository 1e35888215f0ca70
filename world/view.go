package world

import (
	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
	"github.com/c360studio/worldgraph/query"
)

// Entity returns a copy of the named entity.
func (w *World) Entity(name string) (*entity.Entity, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.Get(name)
}

// HasEntity reports whether the name is present.
func (w *World) HasEntity(name string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.Has(name)
}

// EntityCount returns the number of entities.
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.Len()
}

// RelationshipCount returns the number of edges.
func (w *World) RelationshipCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Len()
}

// ListEntities returns entities in insertion order, optionally filtered.
// Filtering preserves relative order.
func (w *World) ListEntities(opts ...entity.ListOption) []*entity.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.List(opts...)
}

// EdgeFilter narrows ListRelationships. Zero fields match everything.
// SourceType and TargetType match the endpoint entities' type tags;
// edges with an unresolved endpoint only match while the corresponding
// type filter is empty.
type EdgeFilter struct {
	SourceType string
	Label      string
	TargetType string
}

// ListRelationships returns edges in insertion order, optionally
// filtered by label and endpoint types.
func (w *World) ListRelationships(filter EdgeFilter) []*graph.Edge {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var edges []*graph.Edge
	for _, edge := range w.graph.Edges() {
		if filter.Label != "" && edge.Label != filter.Label {
			continue
		}
		if filter.SourceType != "" && !w.typeIs(edge.Source, filter.SourceType) {
			continue
		}
		if filter.TargetType != "" && !w.typeIs(edge.Target, filter.TargetType) {
			continue
		}
		edges = append(edges, edge)
	}
	return edges
}

func (w *World) typeIs(name, entityType string) bool {
	ent, err := w.store.Get(name)
	return err == nil && ent.Type == entityType
}

// EntityNames returns all entity names, sorted.
func (w *World) EntityNames() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.Names()
}

// EntityTypes returns the distinct entity types in use, sorted.
func (w *World) EntityTypes() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.store.Types()
}

// RelationshipLabels returns the distinct edge labels in use, sorted.
func (w *World) RelationshipLabels() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Labels()
}

// Inverses returns the registered candidate inverse labels for label,
// highest precedence first.
func (w *World) Inverses(label string) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry.Inverses(label)
}

// UnresolvedEdges returns edges still waiting on a missing endpoint.
func (w *World) UnresolvedEdges() []*graph.Edge {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Unresolved()
}

// Neighbors returns the entities adjacent to name. See query.Neighbors.
func (w *World) Neighbors(name string, dir query.Direction, labels ...string) ([]query.Neighbor, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.NewEngine(w.store, w.graph).Neighbors(name, dir, labels...)
}

// ShortestPath returns a minimal-length path between two entities. See
// query.ShortestPath.
func (w *World) ShortestPath(source, target string, maxDepth int, dir query.Direction) ([]*graph.Edge, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.NewEngine(w.store, w.graph).ShortestPath(source, target, maxDepth, dir)
}

// SubgraphByType returns the induced subgraph of one entity type.
func (w *World) SubgraphByType(entityType string) *query.Subgraph {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.NewEngine(w.store, w.graph).SubgraphByType(entityType)
}

// FindByRelationship returns the entities playing role on edges carrying
// label.
func (w *World) FindByRelationship(label string, role query.Role) []*entity.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.NewEngine(w.store, w.graph).FindByRelationship(label, role)
}

// Within returns the subgraph reachable from name in at most depth hops.
func (w *World) Within(name string, depth int) (*query.Subgraph, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return query.NewEngine(w.store, w.graph).Within(name, depth)
}
