// Package query provides read-only traversal over a world's entity store
// and relationship graph.
//
// All results come back as ordered slices whose order is deterministic:
// neighborhood and subgraph enumeration follow edge insertion order, and
// shortest-path ties are broken by the insertion order of the edges met
// during frontier expansion. Traversals track visited entities so cyclic
// graphs always terminate.
package query

import (
	"github.com/google/uuid"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
)

// Engine answers traversal queries. It holds references, not copies, so
// it observes graph mutations made between calls. Engines are read-only
// and safe to share once the underlying world is quiescent; the world
// facade serializes queries against mutations.
type Engine struct {
	store *entity.Store
	graph *graph.Graph
}

// NewEngine returns an engine over store and g.
func NewEngine(store *entity.Store, g *graph.Graph) *Engine {
	return &Engine{store: store, graph: g}
}

// Neighbor pairs an edge with the entity on its far side. Entity is nil
// when the far endpoint is an unresolved forward reference.
type Neighbor struct {
	Edge   *graph.Edge
	Entity *entity.Entity
}

// Neighbors returns the entities adjacent to name in the given direction,
// in edge insertion order. With labels present, only edges carrying one of
// them are considered. A self-referential edge appears once even in Both.
func (e *Engine) Neighbors(name string, dir Direction, labels ...string) ([]Neighbor, error) {
	if !e.store.Has(name) {
		return nil, &entity.UnknownEntityError{Name: name}
	}
	wanted := make(map[string]bool, len(labels))
	for _, label := range labels {
		wanted[label] = true
	}

	var neighbors []Neighbor
	seen := make(map[uuid.UUID]bool)
	appendEdge := func(edge *graph.Edge, far string) {
		if len(wanted) > 0 && !wanted[edge.Label] {
			return
		}
		if seen[edge.ID] {
			return
		}
		seen[edge.ID] = true
		n := Neighbor{Edge: edge}
		if ent, err := e.store.Get(far); err == nil {
			n.Entity = ent
		}
		neighbors = append(neighbors, n)
	}

	if dir == Outgoing || dir == Both {
		for _, edge := range e.graph.EdgesFrom(name) {
			appendEdge(edge, edge.Target)
		}
	}
	if dir == Incoming || dir == Both {
		for _, edge := range e.graph.EdgesTo(name) {
			appendEdge(edge, edge.Source)
		}
	}
	return neighbors, nil
}

type step struct {
	neighbor string
	edge     *graph.Edge
}

// steps lists the traversal moves available from name, in edge insertion
// order, outgoing before incoming when dir is Both.
func (e *Engine) steps(name string, dir Direction) []step {
	var out []step
	if dir == Outgoing || dir == Both {
		for _, edge := range e.graph.EdgesFrom(name) {
			out = append(out, step{neighbor: edge.Target, edge: edge})
		}
	}
	if dir == Incoming || dir == Both {
		for _, edge := range e.graph.EdgesTo(name) {
			out = append(out, step{neighbor: edge.Source, edge: edge})
		}
	}
	return out
}

type visit struct {
	parent string
	edge   *graph.Edge
}

// ShortestPath runs breadth-first search from source to target following
// edges in dir, and returns the first minimal-length path found as an
// ordered edge sequence. Equal-length ties resolve to the path whose
// edges were met first during frontier expansion. A maxDepth of zero or
// less leaves the search unbounded; the visited set still guarantees
// termination. source == target yields an empty path without traversal.
// It fails with entity.UnknownEntityError for absent endpoints and
// NoPathFoundError when the frontier is exhausted.
func (e *Engine) ShortestPath(source, target string, maxDepth int, dir Direction) ([]*graph.Edge, error) {
	if !e.store.Has(source) {
		return nil, &entity.UnknownEntityError{Name: source}
	}
	if !e.store.Has(target) {
		return nil, &entity.UnknownEntityError{Name: target}
	}
	if source == target {
		return []*graph.Edge{}, nil
	}

	visited := map[string]visit{source: {}}
	frontier := []string{source}
	for depth := 1; len(frontier) > 0 && (maxDepth <= 0 || depth <= maxDepth); depth++ {
		var next []string
		for _, name := range frontier {
			for _, s := range e.steps(name, dir) {
				if _, ok := visited[s.neighbor]; ok {
					continue
				}
				visited[s.neighbor] = visit{parent: name, edge: s.edge}
				if s.neighbor == target {
					return reconstruct(visited, source, target), nil
				}
				next = append(next, s.neighbor)
			}
		}
		frontier = next
	}
	return nil, &NoPathFoundError{Source: source, Target: target, MaxDepth: maxDepth}
}

func reconstruct(visited map[string]visit, source, target string) []*graph.Edge {
	var path []*graph.Edge
	for name := target; name != source; {
		v := visited[name]
		path = append(path, v.edge)
		name = v.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Subgraph is an induced slice of the world: a set of entities and the
// edges whose endpoints both belong to it.
type Subgraph struct {
	Entities []*entity.Entity
	Edges    []*graph.Edge
}

// SubgraphByType returns the induced subgraph of entities carrying the
// given type. Entities keep store insertion order, edges keep graph
// insertion order.
func (e *Engine) SubgraphByType(entityType string) *Subgraph {
	entities := e.store.List(entity.ByType(entityType))
	member := make(map[string]bool, len(entities))
	for _, ent := range entities {
		member[ent.Name] = true
	}
	sub := &Subgraph{Entities: entities}
	for _, edge := range e.graph.Edges() {
		if member[edge.Source] && member[edge.Target] {
			sub.Edges = append(sub.Edges, edge)
		}
	}
	return sub
}

// FindByRelationship returns the entities playing role on edges carrying
// label, deduplicated, in first-appearance order. Unresolved endpoint
// names with no stored entity are skipped.
func (e *Engine) FindByRelationship(label string, role Role) []*entity.Entity {
	var found []*entity.Entity
	seen := make(map[string]bool)
	for _, edge := range e.graph.Edges() {
		if edge.Label != label {
			continue
		}
		name := edge.Source
		if role == RoleTarget {
			name = edge.Target
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		if ent, err := e.store.Get(name); err == nil {
			found = append(found, ent)
		}
	}
	return found
}

// Within returns the subgraph reachable from name in at most depth hops,
// following edges in both directions. Entities appear in discovery order
// starting with name itself; edges keep graph insertion order and are
// included when both endpoints were reached.
func (e *Engine) Within(name string, depth int) (*Subgraph, error) {
	if !e.store.Has(name) {
		return nil, &entity.UnknownEntityError{Name: name}
	}

	reached := map[string]bool{name: true}
	order := []string{name}
	frontier := []string{name}
	for hop := 1; len(frontier) > 0 && hop <= depth; hop++ {
		var next []string
		for _, current := range frontier {
			for _, s := range e.steps(current, Both) {
				if reached[s.neighbor] {
					continue
				}
				reached[s.neighbor] = true
				order = append(order, s.neighbor)
				next = append(next, s.neighbor)
			}
		}
		frontier = next
	}

	sub := &Subgraph{}
	for _, n := range order {
		if ent, err := e.store.Get(n); err == nil {
			sub.Entities = append(sub.Entities, ent)
		}
	}
	for _, edge := range e.graph.Edges() {
		if reached[edge.Source] && reached[edge.Target] {
			sub.Edges = append(sub.Edges, edge)
		}
	}
	return sub, nil
}
