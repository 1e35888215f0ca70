// Package commands implements the interactive shell commands of the
// worldgraph CLI. Commands are registered globally via init() and
// dispatched by canonical name or alias.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/c360studio/worldgraph/config"
	"github.com/c360studio/worldgraph/relation"
	"github.com/c360studio/worldgraph/world"
)

// ErrQuit signals the shell loop to stop. The quit command returns it;
// callers check with errors.Is.
var ErrQuit = errors.New("quit")

// Config describes a command: its canonical name, aliases, argument
// shape, and the one-line help shown in command listings.
type Config struct {
	Name    string
	Aliases []string
	Usage   string
	Help    string
}

// Env carries the session state commands operate on. Registry is the
// relation registry backing World; the export command uses it to
// resolve explicit relation IRIs. Config may be nil, in which case
// commands fall back to built-in defaults.
type Env struct {
	World    *world.World
	Registry *relation.Registry
	Config   *config.Config
}

// maxDepth returns the configured path search bound, zero for unbounded.
func (e *Env) maxDepth() int {
	if e.Config == nil {
		return 0
	}
	return e.Config.Query.MaxDepth
}

// exportFormat returns the default serialization for the export command.
func (e *Env) exportFormat() string {
	if e.Config == nil || e.Config.Export.Format == "" {
		return "yaml"
	}
	return e.Config.Export.Format
}

// Command is one interactive command.
type Command interface {
	// Config returns the command's registration data.
	Config() Config
	// Execute runs the command against the session and returns the
	// text to print.
	Execute(ctx context.Context, env *Env, args []string) (string, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Command)
	canonical  []string
)

// Register adds a command under its canonical name and every alias. It
// panics on a collision; registration runs at init time and a duplicate
// name is a programming error.
func Register(cmd Command) {
	registryMu.Lock()
	defer registryMu.Unlock()
	cfg := cmd.Config()
	names := append([]string{cfg.Name}, cfg.Aliases...)
	for _, name := range names {
		if _, exists := registry[name]; exists {
			panic(fmt.Sprintf("commands: duplicate registration of %q", name))
		}
		registry[name] = cmd
	}
	canonical = append(canonical, cfg.Name)
}

// Lookup resolves a command by canonical name or alias.
func Lookup(name string) (Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[name]
	return cmd, ok
}

// Names returns the canonical command names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, len(canonical))
	copy(names, canonical)
	sort.Strings(names)
	return names
}

func init() {
	// Listing commands
	Register(&ListEntitiesCommand{})
	Register(&ListRelationshipsCommand{})

	// Entity commands
	Register(&AddEntityCommand{})
	Register(&ModifyEntityCommand{})
	Register(&DeleteEntityCommand{})

	// Relationship commands
	Register(&AddRelationshipCommand{})
	Register(&DeleteRelationshipCommand{})

	// Property commands
	Register(&AddPropertyCommand{})
	Register(&ModifyPropertyCommand{})
	Register(&DeletePropertyCommand{})

	// Inspection commands
	Register(&ViewEntityCommand{})
	Register(&ViewGraphCommand{})
	Register(&PathCommand{})

	// Closure commands
	Register(&EnrichCommand{})
	Register(&ValidateCommand{})

	// Document commands
	Register(&LoadCommand{})
	Register(&ExportCommand{})
	Register(&ClearCommand{})

	// Shell commands
	Register(&HelpCommand{})
	Register(&QuitCommand{})
}
