package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/world"
)

// ListEntitiesCommand lists entities with optional substring filters.
type ListEntitiesCommand struct{}

// Config returns the command configuration.
func (c *ListEntitiesCommand) Config() Config {
	return Config{
		Name:    "list_entities",
		Aliases: []string{"le"},
		Usage:   "list_entities [--type T] [--name S] [--description S]",
		Help:    "List entities, filtered by substring on type, name, or description",
	}
}

// Execute lists the matching entities as a table.
func (c *ListEntitiesCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	positional, flags, err := parseFlags(args)
	if err != nil {
		return "", err
	}
	if len(positional) > 0 {
		return "", fmt.Errorf("usage: %s", c.Config().Usage)
	}
	var opts []entity.ListOption
	for key, value := range flags {
		switch key {
		case "type":
			opts = append(opts, entity.TypeContains(value))
		case "name":
			opts = append(opts, entity.NameContains(value))
		case "description":
			opts = append(opts, entity.DescriptionContains(value))
		default:
			return "", fmt.Errorf("unknown flag --%s", key)
		}
	}
	entities := env.World.ListEntities(opts...)
	if len(entities) == 0 {
		return "no entities", nil
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tDESCRIPTION")
	for _, ent := range entities {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ent.Name, ent.Type, truncate(ent.Description, 60))
	}
	tw.Flush()
	sb.WriteString(pluralize(len(entities), "entity", "entities"))
	return sb.String(), nil
}

// ListRelationshipsCommand lists edges with optional exact filters on
// label and endpoint types.
type ListRelationshipsCommand struct{}

// Config returns the command configuration.
func (c *ListRelationshipsCommand) Config() Config {
	return Config{
		Name:    "list_relationships",
		Aliases: []string{"lr"},
		Usage:   "list_relationships [--source-type T] [--rel-type L] [--target-type T]",
		Help:    "List relationships, filtered by endpoint type or label",
	}
}

// Execute lists the matching relationships.
func (c *ListRelationshipsCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	positional, flags, err := parseFlags(args)
	if err != nil {
		return "", err
	}
	if len(positional) > 0 {
		return "", fmt.Errorf("usage: %s", c.Config().Usage)
	}
	var filter world.EdgeFilter
	for key, value := range flags {
		switch key {
		case "source-type":
			filter.SourceType = value
		case "rel-type":
			filter.Label = value
		case "target-type":
			filter.TargetType = value
		default:
			return "", fmt.Errorf("unknown flag --%s", key)
		}
	}
	edges := env.World.ListRelationships(filter)
	if len(edges) == 0 {
		return "no relationships", nil
	}

	var sb strings.Builder
	for _, edge := range edges {
		sb.WriteString(formatEdge(edge))
		sb.WriteByte('\n')
	}
	sb.WriteString(pluralize(len(edges), "relationship", "relationships"))
	return sb.String(), nil
}
