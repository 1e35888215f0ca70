package commands

import (
	"fmt"
	"strings"

	"github.com/c360studio/worldgraph/graph"
)

// formatEdge renders an edge as "source -[label]-> target" with derived
// and unresolved markers.
func formatEdge(e *graph.Edge) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s -[%s]-> %s", e.Source, e.Label, e.Target)
	if e.Derived() {
		sb.WriteString(" (derived)")
	}
	if e.Unresolved {
		sb.WriteString(" (unresolved)")
	}
	return sb.String()
}

// truncate shortens s to at most max runes for table display, folding
// runs of whitespace into single spaces.
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// pluralize formats a count with the matching noun form.
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
