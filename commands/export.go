package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/c360studio/worldgraph/export"
	"github.com/c360studio/worldgraph/source"
)

// ExportCommand serializes the world as a document or as RDF.
type ExportCommand struct{}

// Config returns the command configuration.
func (c *ExportCommand) Config() Config {
	return Config{
		Name:  "export",
		Usage: "export [yaml|json|turtle|ntriples|jsonld] [file]",
		Help:  "Serialize the world, to the screen or to a file",
	}
}

// Execute renders the world in the requested format.
func (c *ExportCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if len(args) > 2 {
		return "", fmt.Errorf("usage: %s", c.Config().Usage)
	}
	format := env.exportFormat()
	if len(args) > 0 {
		format = args[0]
	}
	out, err := c.render(env, format)
	if err != nil {
		return "", err
	}
	if len(args) < 2 {
		return out, nil
	}
	path := args[1]
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return fmt.Sprintf("wrote %d bytes to %s", len(out), path), nil
}

func (c *ExportCommand) render(env *Env, format string) (string, error) {
	doc := env.World.Export()
	switch strings.ToLower(format) {
	case "yaml", "yml":
		data, err := source.Write(doc, source.FormatYAML)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "json":
		data, err := source.Write(doc, source.FormatJSON)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	rdf, err := export.ParseFormat(format)
	if err != nil {
		return "", err
	}
	var opts []export.Option
	if env.Registry != nil {
		opts = append(opts, export.WithRegistry(env.Registry))
	}
	return export.NewExporter(doc, opts...).Export(rdf)
}
