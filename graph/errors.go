package graph

import (
	"errors"
	"fmt"
)

// DuplicateEdgeError indicates the exact (source, label, target) triple
// already exists in the graph.
type DuplicateEdgeError struct {
	Source string
	Label  string
	Target string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("duplicate edge %s -[%s]-> %s", e.Source, e.Label, e.Target)
}

// EdgeNotFoundError indicates no edge matches the requested triple.
type EdgeNotFoundError struct {
	Source string
	Label  string
	Target string
}

func (e *EdgeNotFoundError) Error() string {
	return fmt.Sprintf("edge not found %s -[%s]-> %s", e.Source, e.Label, e.Target)
}

// IsDuplicateEdge reports whether err is a DuplicateEdgeError.
func IsDuplicateEdge(err error) bool {
	var dup *DuplicateEdgeError
	return errors.As(err, &dup)
}

// IsEdgeNotFound reports whether err is an EdgeNotFoundError.
func IsEdgeNotFound(err error) bool {
	var nf *EdgeNotFoundError
	return errors.As(err, &nf)
}
