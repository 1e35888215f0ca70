package commands

import (
	"context"
	"strings"
)

// EnrichCommand materializes the inverse edges implied by the relation
// registry.
type EnrichCommand struct{}

// Config returns the command configuration.
func (c *EnrichCommand) Config() Config {
	return Config{
		Name:  "enrich",
		Usage: "enrich",
		Help:  "Add the missing inverse relationships implied by the registry",
	}
}

// Execute runs the closure pass and reports what it added.
func (c *EnrichCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 0); err != nil {
		return "", err
	}
	added, err := env.World.Enrich()
	if err != nil {
		return "", err
	}
	if len(added) == 0 {
		return "world already closed; nothing to add", nil
	}
	var sb strings.Builder
	for _, edge := range added {
		sb.WriteString("added " + formatEdge(edge) + "\n")
	}
	sb.WriteString(pluralize(len(added), "relationship added", "relationships added"))
	return sb.String(), nil
}

// ValidateCommand reports missing or mislabeled inverse edges without
// changing the graph.
type ValidateCommand struct{}

// Config returns the command configuration.
func (c *ValidateCommand) Config() Config {
	return Config{
		Name:  "validate",
		Usage: "validate",
		Help:  "Report relationships whose inverse is missing or mislabeled",
	}
}

// Execute runs the validation pass and lists its findings.
func (c *ValidateCommand) Execute(_ context.Context, env *Env, args []string) (string, error) {
	if err := wantArgs(c.Config(), args, 0); err != nil {
		return "", err
	}
	report := env.World.Validate()
	if report.Clean() {
		return "world is closed under its inverse rules", nil
	}
	var sb strings.Builder
	for _, missing := range report.Missing {
		sb.WriteString(missing.String() + "\n")
	}
	for _, mismatch := range report.Mismatches {
		sb.WriteString(mismatch.String() + "\n")
	}
	sb.WriteString(pluralize(report.Total(), "finding", "findings"))
	return sb.String(), nil
}
