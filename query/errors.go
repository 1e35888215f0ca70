package query

import (
	"errors"
	"fmt"
)

// NoPathFoundError indicates breadth-first search exhausted the reachable
// frontier without meeting the target.
type NoPathFoundError struct {
	Source   string
	Target   string
	MaxDepth int
}

func (e *NoPathFoundError) Error() string {
	if e.MaxDepth > 0 {
		return fmt.Sprintf("no path from %q to %q within depth %d", e.Source, e.Target, e.MaxDepth)
	}
	return fmt.Sprintf("no path from %q to %q", e.Source, e.Target)
}

// IsNoPathFound reports whether err is a NoPathFoundError.
func IsNoPathFound(err error) bool {
	var np *NoPathFoundError
	return errors.As(err, &np)
}
