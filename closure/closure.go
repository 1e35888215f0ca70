// Package closure computes the inverse-edge closure of a relationship graph.
//
// The engine has two modes over the same lookup: Enrich adds the missing
// inverse edges as derived edges, Validate reports them without mutating
// the graph. Both are deterministic and idempotent. Labels with no
// registered inverse candidates are skipped silently, since not every
// relation is expected to have an inverse.
package closure

import (
	"fmt"

	"github.com/c360studio/worldgraph/graph"
	"github.com/c360studio/worldgraph/relation"
)

// Engine runs closure passes over a graph using a relation registry.
type Engine struct {
	graph    *graph.Graph
	registry *relation.Registry
}

// NewEngine returns an engine bound to g and registry.
func NewEngine(g *graph.Graph, registry *relation.Registry) *Engine {
	return &Engine{graph: g, registry: registry}
}

type staged struct {
	source string
	label  string
	target string
}

// Enrich adds, for every edge whose inverse is missing, the top-precedence
// candidate inverse as a derived edge. It stages a full pass over the
// current edge set, applies the stage as a batch, and repeats until a pass
// stages nothing, so derived edges receive their own inverses too (a
// one-way registration like "daughter of" implying "parent of" cascades
// into "child of" on the next pass). A second call on the enriched graph
// adds nothing. The added edges are returned in application order.
//
// Edges still flagged unresolved are excluded: closure runs over entities
// that exist, and deriving inverses of dangling references would only
// multiply them.
func (e *Engine) Enrich() ([]*graph.Edge, error) {
	var added []*graph.Edge
	for {
		plan := e.stage()
		if len(plan) == 0 {
			return added, nil
		}
		for _, s := range plan {
			edge, err := e.graph.AddEdge(s.source, s.label, s.target, graph.OriginDerived)
			if err != nil {
				if graph.IsDuplicateEdge(err) {
					continue
				}
				return added, fmt.Errorf("apply derived edge %s -[%s]-> %s: %w", s.source, s.label, s.target, err)
			}
			added = append(added, edge)
		}
	}
}

// stage collects the missing inverse edges implied by the current edge
// set, deduplicated, without mutating the graph.
func (e *Engine) stage() []staged {
	var plan []staged
	planned := make(map[staged]bool)
	for _, edge := range e.graph.Edges() {
		if edge.Unresolved {
			continue
		}
		candidates := e.registry.Inverses(edge.Label)
		if len(candidates) == 0 {
			continue
		}
		if e.present(edge, candidates) != "" {
			continue
		}
		add := staged{source: edge.Target, label: candidates[0], target: edge.Source}
		if planned[add] {
			continue
		}
		planned[add] = true
		plan = append(plan, add)
	}
	return plan
}

// Validate reports missing inverses and label mismatches without touching
// the graph. A mismatch means an inverse edge exists but carries a
// lower-precedence candidate label than the preferred one; it is a soft
// finding, not an error, since multiple inverse framings may coexist.
func (e *Engine) Validate() *Report {
	report := &Report{}
	for _, edge := range e.graph.Edges() {
		if edge.Unresolved {
			continue
		}
		candidates := e.registry.Inverses(edge.Label)
		if len(candidates) == 0 {
			continue
		}
		top := candidates[0]
		found := e.present(edge, candidates)
		switch {
		case found == "":
			report.Missing = append(report.Missing, MissingInverse{
				Source:          edge.Source,
				Label:           edge.Label,
				Target:          edge.Target,
				ExpectedInverse: top,
			})
		case found != top:
			report.Mismatches = append(report.Mismatches, InverseLabelMismatch{
				Source:          edge.Source,
				Label:           edge.Label,
				Target:          edge.Target,
				ExpectedInverse: top,
				ActualInverse:   found,
			})
		}
	}
	return report
}

// present returns the highest-precedence candidate label for which the
// inverse edge (target, candidate, source) exists, or "" if none do.
func (e *Engine) present(edge *graph.Edge, candidates []string) string {
	for _, candidate := range candidates {
		if e.graph.HasEdge(edge.Target, candidate, edge.Source) {
			return candidate
		}
	}
	return ""
}
