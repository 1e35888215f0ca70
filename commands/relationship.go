package commands

import (
	"context"
	"fmt"
)

// AddRelationshipCommand asserts a labeled edge between two entities.
type AddRelationshipCommand struct{}

// Config returns the command configuration.
func (c *AddRelationshipCommand) Config() Config {
	return Config{
		Name:    "add_relationship",
		Aliases: []string{"ar"},
		Usage:   "add_relationship <source> <label> <target>",
		Help:    "Add a relationship; quote multi-word labels like \"ruled by\"",
	}
}

// Execute adds the edge.
func (c *AddRelationshipCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 3); err != nil {
		return "", err
	}
	edge, err := env.World.AddRelationship(args[0], args[1], args[2])
	if err != nil {
		return "", err
	}
	return "added " + formatEdge(edge), nil
}

// DeleteRelationshipCommand removes one asserted or derived edge.
type DeleteRelationshipCommand struct{}

// Config returns the command configuration.
func (c *DeleteRelationshipCommand) Config() Config {
	return Config{
		Name:    "delete_relationship",
		Aliases: []string{"dr"},
		Usage:   "delete_relationship <source> <label> <target>",
		Help:    "Remove the relationship matching source, label, and target",
	}
}

// Execute removes the edge.
func (c *DeleteRelationshipCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 3); err != nil {
		return "", err
	}
	if err := env.World.RemoveRelationship(args[0], args[1], args[2]); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed %s -[%s]-> %s", args[0], args[1], args[2]), nil
}
