package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Origin records how an edge entered the graph.
type Origin string

const (
	// OriginAsserted marks edges stated directly by a source document or caller.
	OriginAsserted Origin = "asserted"
	// OriginDerived marks edges added by an inverse-closure pass.
	OriginDerived Origin = "derived"
)

// Edge is a directed labeled relationship between two entities.
type Edge struct {
	ID     uuid.UUID
	Source string
	Label  string
	Target string
	Origin Origin

	// Unresolved is set when an endpoint was absent from the store at
	// insertion time. It clears once both endpoints exist.
	Unresolved bool
}

// Derived reports whether the edge was added by closure rather than asserted.
func (e *Edge) Derived() bool { return e.Origin == OriginDerived }

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (e *Edge) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", e.Source, e.Label, e.Target)
}
