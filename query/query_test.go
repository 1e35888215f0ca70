package query

import (
	"reflect"
	"testing"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := entity.NewStore()
	adds := []struct{ name, entityType string }{
		{"Eldor", "character"},
		{"Eldoria", "location"},
		{"Isadora", "character"},
		{"Alara", "character"},
		{"Silverblade", "artifact"},
		{"Thornwood", "location"},
	}
	for _, a := range adds {
		if err := store.Add(a.name, a.entityType, "", nil); err != nil {
			t.Fatalf("Add(%s): %v", a.name, err)
		}
	}
	g := graph.New(store)
	edges := []struct{ source, label, target string }{
		{"Eldor", "rules", "Eldoria"},
		{"Isadora", "daughter of", "Eldor"},
		{"Alara", "wields", "Silverblade"},
		{"Alara", "lives in", "Eldoria"},
		{"Eldoria", "allied with", "Thornwood"},
		{"Isadora", "lives in", "Eldoria"},
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.source, e.label, e.target, graph.OriginAsserted); err != nil {
			t.Fatalf("AddEdge(%s, %s, %s): %v", e.source, e.label, e.target, err)
		}
	}
	return NewEngine(store, g)
}

func pathLabels(path []*graph.Edge) []string {
	labels := make([]string, 0, len(path))
	for _, e := range path {
		labels = append(labels, e.Label)
	}
	return labels
}

func TestNeighborsDirections(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Neighbors("Eldoria", Outgoing)
	if err != nil {
		t.Fatalf("Neighbors outgoing: %v", err)
	}
	if len(out) != 1 || out[0].Entity.Name != "Thornwood" {
		t.Errorf("outgoing = %v", out)
	}

	in, err := engine.Neighbors("Eldoria", Incoming)
	if err != nil {
		t.Fatalf("Neighbors incoming: %v", err)
	}
	names := make([]string, 0, len(in))
	for _, n := range in {
		names = append(names, n.Entity.Name)
	}
	if !reflect.DeepEqual(names, []string{"Eldor", "Alara", "Isadora"}) {
		t.Errorf("incoming order = %v", names)
	}

	both, err := engine.Neighbors("Eldoria", Both)
	if err != nil {
		t.Fatalf("Neighbors both: %v", err)
	}
	if len(both) != 4 {
		t.Errorf("both = %d entries, want 4", len(both))
	}
}

func TestNeighborsLabelFilter(t *testing.T) {
	engine := newTestEngine(t)

	in, err := engine.Neighbors("Eldoria", Incoming, "lives in")
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	names := make([]string, 0, len(in))
	for _, n := range in {
		names = append(names, n.Entity.Name)
	}
	if !reflect.DeepEqual(names, []string{"Alara", "Isadora"}) {
		t.Errorf("filtered = %v", names)
	}
}

func TestNeighborsUnknownEntity(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Neighbors("Valdris", Both); !entity.IsUnknownEntity(err) {
		t.Errorf("err = %v, want UnknownEntityError", err)
	}
}

func TestNeighborsSelfLoopOnce(t *testing.T) {
	store := entity.NewStore()
	if err := store.Add("Eldor", "character", "", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	g := graph.New(store)
	if _, err := g.AddEdge("Eldor", "allied with", "Eldor", graph.OriginAsserted); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	neighbors, err := NewEngine(store, g).Neighbors("Eldor", Both)
	if err != nil {
		t.Fatalf("Neighbors: %v", err)
	}
	if len(neighbors) != 1 {
		t.Errorf("self-loop listed %d times, want 1", len(neighbors))
	}
}

func TestShortestPath(t *testing.T) {
	engine := newTestEngine(t)

	path, err := engine.ShortestPath("Isadora", "Thornwood", 0, Both)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if got := pathLabels(path); !reflect.DeepEqual(got, []string{"lives in", "allied with"}) {
		t.Errorf("path = %v", got)
	}
}

func TestShortestPathFollowsIncomingEdges(t *testing.T) {
	engine := newTestEngine(t)

	path, err := engine.ShortestPath("Silverblade", "Eldoria", 0, Both)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if got := pathLabels(path); !reflect.DeepEqual(got, []string{"wields", "lives in"}) {
		t.Errorf("path = %v", got)
	}

	// Outgoing only cannot leave Silverblade.
	_, err = engine.ShortestPath("Silverblade", "Eldoria", 0, Outgoing)
	if !IsNoPathFound(err) {
		t.Errorf("err = %v, want NoPathFoundError", err)
	}
}

func TestShortestPathTrivial(t *testing.T) {
	engine := newTestEngine(t)

	path, err := engine.ShortestPath("Eldor", "Eldor", 0, Both)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("path = %v, want empty", path)
	}
}

func TestShortestPathMaxDepth(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ShortestPath("Isadora", "Thornwood", 1, Both)
	if !IsNoPathFound(err) {
		t.Fatalf("err = %v, want NoPathFoundError", err)
	}
	if _, err := engine.ShortestPath("Isadora", "Thornwood", 2, Both); err != nil {
		t.Errorf("depth 2 should reach Thornwood: %v", err)
	}
}

func TestShortestPathUnknownEndpoint(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.ShortestPath("Isadora", "Valdris", 0, Both); !entity.IsUnknownEntity(err) {
		t.Errorf("err = %v, want UnknownEntityError", err)
	}
}

func TestShortestPathTieBreakByInsertionOrder(t *testing.T) {
	store := entity.NewStore()
	for _, name := range []string{"Eldor", "Isadora", "Alara", "Thornwood"} {
		if err := store.Add(name, "character", "", nil); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	g := graph.New(store)
	edges := []struct{ source, label, target string }{
		{"Eldor", "parent of", "Isadora"},
		{"Eldor", "mentor of", "Alara"},
		{"Isadora", "lives in", "Thornwood"},
		{"Alara", "lives in", "Thornwood"},
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e.source, e.label, e.target, graph.OriginAsserted); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	path, err := NewEngine(store, g).ShortestPath("Eldor", "Thornwood", 0, Outgoing)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(path) != 2 || path[0].Target != "Isadora" {
		t.Errorf("tie should resolve through the earlier edge, got %v", pathLabels(path))
	}
}

func TestShortestPathTerminatesOnCycle(t *testing.T) {
	store := entity.NewStore()
	for _, name := range []string{"Eldor", "Alara", "Thornwood"} {
		if err := store.Add(name, "character", "", nil); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	g := graph.New(store)
	if _, err := g.AddEdge("Eldor", "mentor of", "Alara", graph.OriginAsserted); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := g.AddEdge("Alara", "student of", "Eldor", graph.OriginAsserted); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	_, err := NewEngine(store, g).ShortestPath("Eldor", "Thornwood", 0, Both)
	if !IsNoPathFound(err) {
		t.Errorf("err = %v, want NoPathFoundError", err)
	}
}

func TestSubgraphByType(t *testing.T) {
	engine := newTestEngine(t)

	sub := engine.SubgraphByType("character")
	names := make([]string, 0, len(sub.Entities))
	for _, e := range sub.Entities {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"Eldor", "Isadora", "Alara"}) {
		t.Errorf("entities = %v", names)
	}
	if len(sub.Edges) != 1 || sub.Edges[0].Label != "daughter of" {
		t.Errorf("edges = %v", sub.Edges)
	}

	empty := engine.SubgraphByType("dragon")
	if len(empty.Entities) != 0 || len(empty.Edges) != 0 {
		t.Errorf("unknown type should induce an empty subgraph, got %+v", empty)
	}
}

func TestFindByRelationship(t *testing.T) {
	engine := newTestEngine(t)

	sources := engine.FindByRelationship("lives in", RoleSource)
	names := make([]string, 0, len(sources))
	for _, e := range sources {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"Alara", "Isadora"}) {
		t.Errorf("sources = %v", names)
	}

	targets := engine.FindByRelationship("lives in", RoleTarget)
	if len(targets) != 1 || targets[0].Name != "Eldoria" {
		t.Errorf("targets should deduplicate, got %v", targets)
	}

	if got := engine.FindByRelationship("dreams of", RoleSource); len(got) != 0 {
		t.Errorf("unused label = %v", got)
	}
}

func TestWithin(t *testing.T) {
	engine := newTestEngine(t)

	sub, err := engine.Within("Isadora", 1)
	if err != nil {
		t.Fatalf("Within: %v", err)
	}
	names := make([]string, 0, len(sub.Entities))
	for _, e := range sub.Entities {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"Isadora", "Eldor", "Eldoria"}) {
		t.Errorf("entities = %v", names)
	}
	if got := pathLabels(sub.Edges); !reflect.DeepEqual(got, []string{"rules", "daughter of", "lives in"}) {
		t.Errorf("edges = %v", got)
	}
}

func TestWithinZeroDepth(t *testing.T) {
	engine := newTestEngine(t)

	sub, err := engine.Within("Isadora", 0)
	if err != nil {
		t.Fatalf("Within: %v", err)
	}
	if len(sub.Entities) != 1 || sub.Entities[0].Name != "Isadora" {
		t.Errorf("entities = %v", sub.Entities)
	}
	if len(sub.Edges) != 0 {
		t.Errorf("edges = %v", sub.Edges)
	}
}

func TestDirectionParsing(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"outgoing", Outgoing, false},
		{"in", Incoming, false},
		{"both", Both, false},
		{"", Both, false},
		{"sideways", Both, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
