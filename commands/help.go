package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

// HelpCommand lists the available commands or shows one command's
// usage in detail.
type HelpCommand struct{}

// Config returns the command configuration.
func (c *HelpCommand) Config() Config {
	return Config{
		Name:  "help",
		Usage: "help [command]",
		Help:  "Show available commands or details for one command",
	}
}

// Execute renders the command listing or a single command's help.
func (c *HelpCommand) Execute(_ context.Context, _ *Env, args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("usage: %s", c.Config().Usage)
	}
	if len(args) == 1 {
		return c.describe(args[0])
	}

	var sb strings.Builder
	sb.WriteString("Commands:\n")
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for _, name := range Names() {
		cmd, ok := Lookup(name)
		if !ok {
			continue
		}
		cfg := cmd.Config()
		label := cfg.Name
		if len(cfg.Aliases) > 0 {
			label += " (" + strings.Join(cfg.Aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", label, cfg.Help)
	}
	tw.Flush()
	sb.WriteString(`Run "help <command>" for usage.`)
	return sb.String(), nil
}

func (c *HelpCommand) describe(name string) (string, error) {
	cmd, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown command %q; run help for the list", name)
	}
	cfg := cmd.Config()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", cfg.Help)
	fmt.Fprintf(&sb, "Usage: %s", cfg.Usage)
	if len(cfg.Aliases) > 0 {
		fmt.Fprintf(&sb, "\nAliases: %s", strings.Join(cfg.Aliases, ", "))
	}
	return sb.String(), nil
}

// QuitCommand ends the shell session.
type QuitCommand struct{}

// Config returns the command configuration.
func (c *QuitCommand) Config() Config {
	return Config{
		Name:    "quit",
		Aliases: []string{"exit"},
		Usage:   "quit",
		Help:    "Leave the shell",
	}
}

// Execute returns ErrQuit so the shell loop stops.
func (c *QuitCommand) Execute(_ context.Context, _ *Env, _ []string) (string, error) {
	return "", ErrQuit
}
