package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/c360studio/worldgraph/query"
)

// PathCommand finds the shortest relationship chain between two
// entities, following edges in either direction.
type PathCommand struct{}

// Config returns the command configuration.
func (c *PathCommand) Config() Config {
	return Config{
		Name:  "path",
		Usage: "path <source> <target>",
		Help:  "Show the shortest relationship chain between two entities",
	}
}

// Execute renders the path hop by hop. Edges traversed against their
// direction are drawn with a reversed arrow.
func (c *PathCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 2); err != nil {
		return "", err
	}
	source, target := args[0], args[1]
	path, err := env.World.ShortestPath(source, target, env.maxDepth(), query.Both)
	if err != nil {
		return "", err
	}
	if len(path) == 0 {
		return fmt.Sprintf("%q and %q are the same entity", source, target), nil
	}

	var sb strings.Builder
	sb.WriteString(source)
	current := source
	for _, edge := range path {
		if edge.Source == current {
			fmt.Fprintf(&sb, " -[%s]-> %s", edge.Label, edge.Target)
			current = edge.Target
		} else {
			fmt.Fprintf(&sb, " <-[%s]- %s", edge.Label, edge.Source)
			current = edge.Source
		}
	}
	fmt.Fprintf(&sb, " (%s)", pluralize(len(path), "hop", "hops"))
	return sb.String(), nil
}
