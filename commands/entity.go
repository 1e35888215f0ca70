package commands

import (
	"context"
	"fmt"
)

// AddEntityCommand creates an entity.
type AddEntityCommand struct{}

// Config returns the command configuration.
func (c *AddEntityCommand) Config() Config {
	return Config{
		Name:    "add_entity",
		Aliases: []string{"ae"},
		Usage:   `add_entity <type> <name> <description>`,
		Help:    "Add an entity; quote multi-word names and descriptions",
	}
}

// Execute adds the entity.
func (c *AddEntityCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 3); err != nil {
		return "", err
	}
	entityType, name, description := args[0], args[1], args[2]
	if err := env.World.AddEntity(name, entityType, description, nil); err != nil {
		return "", err
	}
	return fmt.Sprintf("added entity %q (%s)", name, entityType), nil
}

// ModifyEntityCommand updates an entity's type or description. Names are
// immutable; delete and re-add to rename.
type ModifyEntityCommand struct{}

// Config returns the command configuration.
func (c *ModifyEntityCommand) Config() Config {
	return Config{
		Name:    "modify_entity",
		Aliases: []string{"me"},
		Usage:   "modify_entity <name> [--type T] [--description D]",
		Help:    "Change an entity's type or description",
	}
}

// Execute applies the requested field changes.
func (c *ModifyEntityCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	positional, flags, err := parseFlags(args)
	if err != nil {
		return "", err
	}
	if len(positional) != 1 {
		return "", fmt.Errorf("usage: %s", c.Config().Usage)
	}
	name := positional[0]
	if len(flags) == 0 {
		return "", fmt.Errorf("nothing to change: pass --type or --description")
	}
	for key := range flags {
		if key != "type" && key != "description" {
			return "", fmt.Errorf("unknown flag --%s", key)
		}
	}
	if value, ok := flags["type"]; ok {
		if err := env.World.SetType(name, value); err != nil {
			return "", err
		}
	}
	if value, ok := flags["description"]; ok {
		if err := env.World.SetDescription(name, value); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("updated entity %q", name), nil
}

// DeleteEntityCommand removes an entity and detaches its edges.
type DeleteEntityCommand struct{}

// Config returns the command configuration.
func (c *DeleteEntityCommand) Config() Config {
	return Config{
		Name:    "delete_entity",
		Aliases: []string{"de"},
		Usage:   "delete_entity <name>",
		Help:    "Remove an entity along with every relationship that touches it",
	}
}

// Execute deletes the entity.
func (c *DeleteEntityCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 1); err != nil {
		return "", err
	}
	name := args[0]
	detached, err := env.World.DeleteEntity(name)
	if err != nil {
		return "", err
	}
	if detached == 0 {
		return fmt.Sprintf("deleted entity %q", name), nil
	}
	return fmt.Sprintf("deleted entity %q and detached %s",
		name, pluralize(detached, "relationship", "relationships")), nil
}
