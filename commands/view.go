package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/c360studio/worldgraph/query"
)

// ViewEntityCommand shows one entity with its properties and the edges
// in both directions.
type ViewEntityCommand struct{}

// Config returns the command configuration.
func (c *ViewEntityCommand) Config() Config {
	return Config{
		Name:    "view_entity",
		Aliases: []string{"ve"},
		Usage:   "view_entity <name>",
		Help:    "Show an entity's fields, properties, and relationships",
	}
}

// Execute renders the entity card.
func (c *ViewEntityCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 1); err != nil {
		return "", err
	}
	name := args[0]
	ent, err := env.World.Entity(name)
	if err != nil {
		return "", err
	}
	outgoing, err := env.World.Neighbors(name, query.Outgoing)
	if err != nil {
		return "", err
	}
	incoming, err := env.World.Neighbors(name, query.Incoming)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", ent.Name)
	fmt.Fprintf(&sb, "Type: %s\n", ent.Type)
	fmt.Fprintf(&sb, "Description: %s\n", ent.Description)
	if ent.Properties.Len() > 0 {
		sb.WriteString("Properties:\n")
		for _, key := range ent.Properties.Keys() {
			value, _ := ent.Properties.Get(key)
			fmt.Fprintf(&sb, "  %s: %s\n", key, value)
		}
	}
	if len(outgoing) > 0 {
		sb.WriteString("Outgoing:\n")
		for _, n := range outgoing {
			fmt.Fprintf(&sb, "  %s\n", formatEdge(n.Edge))
		}
	}
	if len(incoming) > 0 {
		sb.WriteString("Incoming:\n")
		for _, n := range incoming {
			fmt.Fprintf(&sb, "  %s\n", formatEdge(n.Edge))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// ViewGraphCommand shows the subgraph reachable from an entity within a
// bounded number of hops.
type ViewGraphCommand struct{}

// Config returns the command configuration.
func (c *ViewGraphCommand) Config() Config {
	return Config{
		Name:    "view_graph",
		Aliases: []string{"vg"},
		Usage:   "view_graph <name> [depth]",
		Help:    "Show the neighborhood of an entity, up to depth hops away (default 3, max 5)",
	}
}

// Execute renders the neighborhood subgraph.
func (c *ViewGraphCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", fmt.Errorf("usage: %s", c.Config().Usage)
	}
	name := args[0]
	depth := 3
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("depth %q is not a number", args[1])
		}
		depth = n
	}
	if depth < 1 || depth > 5 {
		return "", fmt.Errorf("depth must be between 1 and 5")
	}
	sub, err := env.World.Within(name, depth)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s within %s of %q\n",
		pluralize(len(sub.Entities), "entity", "entities"),
		pluralize(depth, "hop", "hops"), name)
	for _, ent := range sub.Entities {
		fmt.Fprintf(&sb, "  %s (%s)\n", ent.Name, ent.Type)
	}
	if len(sub.Edges) > 0 {
		sb.WriteString("Relationships:\n")
		for _, edge := range sub.Edges {
			fmt.Fprintf(&sb, "  %s\n", formatEdge(edge))
		}
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
