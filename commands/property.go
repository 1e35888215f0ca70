package commands

import (
	"context"
	"fmt"
)

// AddPropertyCommand sets a new property on an entity.
type AddPropertyCommand struct{}

// Config returns the command configuration.
func (c *AddPropertyCommand) Config() Config {
	return Config{
		Name:    "add_property",
		Aliases: []string{"ap"},
		Usage:   "add_property <name> <property> <value>",
		Help:    "Add a property to an entity; true/false and integers are typed, everything else is a string",
	}
}

// Execute adds the property.
func (c *AddPropertyCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 3); err != nil {
		return "", err
	}
	name, property, raw := args[0], args[1], args[2]
	if err := env.World.AddProperty(name, property, parseValue(raw)); err != nil {
		return "", err
	}
	return fmt.Sprintf("set %s.%s = %s", name, property, raw), nil
}

// ModifyPropertyCommand overwrites an existing property.
type ModifyPropertyCommand struct{}

// Config returns the command configuration.
func (c *ModifyPropertyCommand) Config() Config {
	return Config{
		Name:    "modify_property",
		Aliases: []string{"mp"},
		Usage:   "modify_property <name> <property> <value>",
		Help:    "Replace the value of an existing property",
	}
}

// Execute overwrites the property.
func (c *ModifyPropertyCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 3); err != nil {
		return "", err
	}
	name, property, raw := args[0], args[1], args[2]
	if err := env.World.ModifyProperty(name, property, parseValue(raw)); err != nil {
		return "", err
	}
	return fmt.Sprintf("updated %s.%s = %s", name, property, raw), nil
}

// DeletePropertyCommand removes a property. The core name, type, and
// description fields are protected.
type DeletePropertyCommand struct{}

// Config returns the command configuration.
func (c *DeletePropertyCommand) Config() Config {
	return Config{
		Name:    "delete_property",
		Aliases: []string{"dp"},
		Usage:   "delete_property <name> <property>",
		Help:    "Remove a property from an entity",
	}
}

// Execute removes the property.
func (c *DeletePropertyCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 2); err != nil {
		return "", err
	}
	name, property := args[0], args[1]
	if err := env.World.DeleteProperty(name, property); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed %s.%s", name, property), nil
}
