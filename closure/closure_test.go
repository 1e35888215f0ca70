package closure

import (
	"testing"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/graph"
	"github.com/c360studio/worldgraph/relation"
)

func newTestGraph(t *testing.T, names ...string) *graph.Graph {
	t.Helper()
	store := entity.NewStore()
	for _, name := range names {
		if err := store.Add(name, "character", "", nil); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	return graph.New(store)
}

func assertEdge(t *testing.T, g *graph.Graph, source, label, target string) {
	t.Helper()
	if !g.HasEdge(source, label, target) {
		t.Errorf("expected edge %s -[%s]-> %s", source, label, target)
	}
}

func TestEnrichAddsTopCandidate(t *testing.T) {
	g := newTestGraph(t, "Eldor", "Eldoria")
	registry := relation.NewRegistry()
	registry.RegisterInverse("rules", "ruled by", 0)
	registry.RegisterInverse("rules", "protected by", 1)

	mustAdd(t, g, "Eldor", "rules", "Eldoria")

	added, err := NewEngine(g, registry).Enrich()
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added = %v, want one edge", added)
	}
	if added[0].Origin != graph.OriginDerived {
		t.Errorf("Origin = %q, want derived", added[0].Origin)
	}
	assertEdge(t, g, "Eldoria", "ruled by", "Eldor")
	if g.HasEdge("Eldoria", "protected by", "Eldor") {
		t.Error("lower-precedence candidate should not be added")
	}
}

func TestEnrichIdempotent(t *testing.T) {
	g := newTestGraph(t, "Eldor", "Eldoria", "Isadora")
	registry := relation.Narrative()

	mustAdd(t, g, "Eldor", "rules", "Eldoria")
	mustAdd(t, g, "Isadora", "daughter of", "Eldor")
	mustAdd(t, g, "Isadora", "lives in", "Eldoria")

	// "daughter of" implies "parent of", which in turn implies
	// "child of", so the call settles at four derived edges.
	engine := NewEngine(g, registry)
	first, err := engine.Enrich()
	if err != nil {
		t.Fatalf("first Enrich: %v", err)
	}
	if len(first) != 4 {
		t.Errorf("first call added %d edges, want 4", len(first))
	}
	second, err := engine.Enrich()
	if err != nil {
		t.Fatalf("second Enrich: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second call added %v, want none", second)
	}
}

func TestEnrichCascadesOneWayRegistration(t *testing.T) {
	g := newTestGraph(t, "Isadora", "Eldor")
	registry := relation.NewRegistry()
	registry.RegisterInverse("daughter of", "parent of", 0)
	registry.RegisterInverse("parent of", "child of", 0)
	registry.RegisterInverse("child of", "parent of", 0)

	mustAdd(t, g, "Isadora", "daughter of", "Eldor")

	added, err := NewEngine(g, registry).Enrich()
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("added = %v, want parent of then child of", added)
	}
	assertEdge(t, g, "Eldor", "parent of", "Isadora")
	assertEdge(t, g, "Isadora", "child of", "Eldor")
}

func TestEnrichSkipsUnregisteredLabel(t *testing.T) {
	g := newTestGraph(t, "Alara", "Silverblade")
	registry := relation.Narrative()

	mustAdd(t, g, "Alara", "wields", "Silverblade")

	added, err := NewEngine(g, registry).Enrich()
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("unregistered label produced %v", added)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestEnrichSatisfiedByLowerPrecedence(t *testing.T) {
	g := newTestGraph(t, "Eldor", "Eldoria")
	registry := relation.NewRegistry()
	registry.RegisterInverse("rules", "ruled by", 0)
	registry.RegisterInverse("rules", "protected by", 1)

	mustAdd(t, g, "Eldor", "rules", "Eldoria")
	mustAdd(t, g, "Eldoria", "protected by", "Eldor")

	added, err := NewEngine(g, registry).Enrich()
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("any-candidate match should satisfy closure, added %v", added)
	}
}

func TestEnrichSymmetric(t *testing.T) {
	g := newTestGraph(t, "Eldoria", "Thornwood")
	registry := relation.Narrative()

	mustAdd(t, g, "Eldoria", "allied with", "Thornwood")

	added, err := NewEngine(g, registry).Enrich()
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("added = %v", added)
	}
	assertEdge(t, g, "Thornwood", "allied with", "Eldoria")
}

func TestEnrichStagesDuplicateImplicationOnce(t *testing.T) {
	g := newTestGraph(t, "Isadora", "Eldor")
	registry := relation.NewRegistry()
	registry.RegisterInverse("daughter of", "parent of", 0)
	registry.RegisterInverse("heir of", "parent of", 0)

	mustAdd(t, g, "Isadora", "daughter of", "Eldor")
	mustAdd(t, g, "Isadora", "heir of", "Eldor")

	added, err := NewEngine(g, registry).Enrich()
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(added) != 1 {
		t.Errorf("same implied triple staged twice: %v", added)
	}
	assertEdge(t, g, "Eldor", "parent of", "Isadora")
}

func TestValidateReportsMissing(t *testing.T) {
	g := newTestGraph(t, "Eldor", "Eldoria")
	registry := relation.Narrative()

	mustAdd(t, g, "Eldor", "rules", "Eldoria")

	report := NewEngine(g, registry).Validate()
	if report.Clean() {
		t.Fatal("report should not be clean")
	}
	if len(report.Missing) != 1 {
		t.Fatalf("Missing = %v", report.Missing)
	}
	m := report.Missing[0]
	if m.Source != "Eldor" || m.Label != "rules" || m.Target != "Eldoria" || m.ExpectedInverse != "ruled by" {
		t.Errorf("finding = %+v", m)
	}
	if g.Len() != 1 {
		t.Error("Validate must not mutate the graph")
	}
}

func TestValidateReportsMismatch(t *testing.T) {
	g := newTestGraph(t, "Eldor", "Eldoria")
	registry := relation.NewRegistry()
	registry.RegisterInverse("rules", "ruled by", 0)
	registry.RegisterInverse("rules", "protected by", 1)

	mustAdd(t, g, "Eldor", "rules", "Eldoria")
	mustAdd(t, g, "Eldoria", "protected by", "Eldor")

	report := NewEngine(g, registry).Validate()
	if len(report.Missing) != 0 {
		t.Errorf("Missing = %v", report.Missing)
	}
	if len(report.Mismatches) != 1 {
		t.Fatalf("Mismatches = %v", report.Mismatches)
	}
	mm := report.Mismatches[0]
	if mm.ExpectedInverse != "ruled by" || mm.ActualInverse != "protected by" {
		t.Errorf("finding = %+v", mm)
	}
}

func TestValidateCleanAfterEnrich(t *testing.T) {
	g := newTestGraph(t, "Eldor", "Eldoria", "Isadora", "Alara", "Silverblade")
	registry := relation.Narrative()

	mustAdd(t, g, "Eldor", "rules", "Eldoria")
	mustAdd(t, g, "Isadora", "daughter of", "Eldor")
	mustAdd(t, g, "Alara", "wields", "Silverblade")

	engine := NewEngine(g, registry)
	if _, err := engine.Enrich(); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	report := engine.Validate()
	if !report.Clean() {
		t.Errorf("report after enrichment = %+v", report)
	}
}

func TestValidateSkipsUnregistered(t *testing.T) {
	g := newTestGraph(t, "Alara", "Silverblade")
	registry := relation.Narrative()

	mustAdd(t, g, "Alara", "wields", "Silverblade")

	report := NewEngine(g, registry).Validate()
	if !report.Clean() {
		t.Errorf("unregistered label must be skipped, got %+v", report)
	}
}

func mustAdd(t *testing.T, g *graph.Graph, source, label, target string) {
	t.Helper()
	if _, err := g.AddEdge(source, label, target, graph.OriginAsserted); err != nil {
		t.Fatalf("AddEdge(%s, %s, %s): %v", source, label, target, err)
	}
}
