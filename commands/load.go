package commands

import (
	"context"
	"fmt"

	"github.com/c360studio/worldgraph/source"
)

// LoadCommand reads a world document into the session. The load is
// atomic: on any parse or load error the world is left untouched.
type LoadCommand struct{}

// Config returns the command configuration.
func (c *LoadCommand) Config() Config {
	return Config{
		Name:  "load",
		Usage: "load <file>",
		Help:  "Load a world document (.yaml, .yml, or .json)",
	}
}

// Execute parses the file and loads it over the current world.
func (c *LoadCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 1); err != nil {
		return "", err
	}
	path := args[0]
	f, err := source.ParseFile(path)
	if err != nil {
		return "", err
	}
	snap := env.World.Snapshot()
	source.ApplyInverses(env.World, f.Inverses)
	if err := env.World.Load(f.Document); err != nil {
		env.World.Restore(snap)
		return "", err
	}
	return fmt.Sprintf("loaded %s and %s from %s",
		pluralize(len(f.Document.Entities), "entity", "entities"),
		pluralize(len(f.Document.Relationships), "relationship", "relationships"),
		path), nil
}

// ClearCommand empties the world. Registered inverse rules survive.
type ClearCommand struct{}

// Config returns the command configuration.
func (c *ClearCommand) Config() Config {
	return Config{
		Name:  "clear",
		Usage: "clear",
		Help:  "Remove every entity and relationship, keeping the relation registry",
	}
}

// Execute clears the world.
func (c *ClearCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 0); err != nil {
		return "", err
	}
	entities := env.World.EntityCount()
	relationships := env.World.RelationshipCount()
	env.World.Clear()
	return fmt.Sprintf("cleared %s and %s",
		pluralize(entities, "entity", "entities"),
		pluralize(relationships, "relationship", "relationships")), nil
}
