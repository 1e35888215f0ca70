package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/c360studio/worldgraph/commands"
	"github.com/c360studio/worldgraph/config"
	"github.com/c360studio/worldgraph/relation"
	"github.com/c360studio/worldgraph/source"
	"github.com/c360studio/worldgraph/world"
)

// App wires the configuration, relation registry, and world behind one
// command environment.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *relation.Registry
	world    *world.World
	env      *commands.Env
}

// NewApp builds an empty world configured per cfg: the relation
// registry comes from the config rules and the unresolved-reference
// policy from the graph section.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	registry := cfg.BuildRegistry()
	opts := []world.Option{world.WithRegistry(registry)}
	if cfg.Graph.AllowUnresolved {
		opts = append(opts, world.AllowUnresolved())
	}
	w := world.New(opts...)
	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		world:    w,
		env:      &commands.Env{World: w, Registry: registry, Config: cfg},
	}
}

// Env returns the command environment for direct command dispatch.
func (a *App) Env() *commands.Env {
	return a.env
}

// LoadFile loads one world document, registering its inverse rules
// first so nested relationship labels resolve against them.
func (a *App) LoadFile(path string) error {
	f, err := source.ParseFile(path)
	if err != nil {
		return err
	}
	source.ApplyInverses(a.world, f.Inverses)
	if err := a.world.Load(f.Document); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("loaded world document",
		"path", path,
		"entities", len(f.Document.Entities),
		"relationships", len(f.Document.Relationships))
	return nil
}

// RunREPL reads commands from stdin until quit, EOF, or cancellation.
func (a *App) RunREPL(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Print("worldgraph> ")

		if !scanner.Scan() {
			// EOF (Ctrl+D)
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		args := commands.SplitArgs(line)
		cmd, ok := commands.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown command %q; type help for the list\n", args[0])
			continue
		}

		out, err := cmd.Execute(ctx, a.env, args[1:])
		if errors.Is(err, commands.ErrQuit) {
			fmt.Println("Goodbye!")
			return nil
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
