// Package config provides configuration loading and management for worldgraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/worldgraph/relation"
	"github.com/c360studio/worldgraph/source"
)

// Config represents the complete worldgraph configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Data     DataConfig     `yaml:"data"`
	Registry RegistryConfig `yaml:"registry"`
	Graph    GraphConfig    `yaml:"graph"`
	Query    QueryConfig    `yaml:"query"`
	Export   ExportConfig   `yaml:"export"`
	NATS     NATSConfig     `yaml:"nats"`
	Lore     LoreConfig     `yaml:"lore"`
}

// LogConfig configures logging output
type LogConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error)
	Level string `yaml:"level"`
	// Format selects the slog handler (text or json)
	Format string `yaml:"format"`
}

// DataConfig configures where world documents live
type DataConfig struct {
	// Dir is the directory scanned for world documents
	Dir string `yaml:"dir"`
	// Patterns are doublestar globs matched under Dir
	Patterns []string `yaml:"patterns"`
	// Watch configures reload-on-change behavior
	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures the file watcher
type WatchConfig struct {
	// Enabled re-loads and re-enriches when world files change
	Enabled bool `yaml:"enabled"`
	// Debounce is the quiet period before a change event fires (e.g. "500ms")
	Debounce string `yaml:"debounce"`
}

// RegistryConfig seeds the relation registry
type RegistryConfig struct {
	// Defaults loads the curated narrative inverse table
	Defaults bool `yaml:"defaults"`
	// Inverses are extra rules applied after the defaults
	Inverses []source.InverseRule `yaml:"inverses"`
	// Symmetric labels are their own inverse
	Symmetric []string `yaml:"symmetric"`
}

// GraphConfig configures edge handling
type GraphConfig struct {
	// AllowUnresolved permits relationships whose target entity is not
	// defined yet
	AllowUnresolved bool `yaml:"allow_unresolved"`
}

// QueryConfig bounds traversal operations
type QueryConfig struct {
	// MaxDepth caps path searches (0 = unbounded)
	MaxDepth int `yaml:"max_depth"`
}

// ExportConfig sets export defaults
type ExportConfig struct {
	// Format is the default export format (yaml, json, turtle, ntriples, jsonld)
	Format string `yaml:"format"`
	// Output is the default output path (empty = stdout)
	Output string `yaml:"output"`
}

// NATSConfig configures graph publishing
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// Enabled turns on entity publishing
	Enabled bool `yaml:"enabled"`
	// Subject overrides the default ingest subject
	Subject string `yaml:"subject"`
}

// LoreConfig configures the lore importer
type LoreConfig struct {
	// Timeout is the maximum time for fetching a lore page (e.g. "30s")
	Timeout string `yaml:"timeout"`
	// MaxContentSize is the maximum response body size in bytes
	MaxContentSize int64 `yaml:"max_content_size"`
	// UserAgent is the User-Agent header for HTTP requests
	UserAgent string `yaml:"user_agent"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Data: DataConfig{
			Dir:      ".",
			Patterns: []string{"**/*.yaml", "**/*.yml", "**/*.json"},
			Watch: WatchConfig{
				Enabled:  false,
				Debounce: "500ms",
			},
		},
		Registry: RegistryConfig{
			Defaults: true,
		},
		Graph: GraphConfig{
			AllowUnresolved: true,
		},
		Query: QueryConfig{
			MaxDepth: 0, // Unbounded
		},
		Export: ExportConfig{
			Format: "yaml",
		},
		NATS: NATSConfig{
			URL:     "nats://localhost:4222",
			Enabled: false,
		},
		Lore: LoreConfig{
			Timeout:        "30s",
			MaxContentSize: 10 * 1024 * 1024, // 10MB
			UserAgent:      "worldgraph-lore/1.0",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Data.Watch.Debounce); err != nil {
			return fmt.Errorf("invalid data.watch.debounce format: %w", err)
		}
	}
	if c.Query.MaxDepth < 0 {
		return fmt.Errorf("query.max_depth must be non-negative")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required when publishing is enabled")
	}
	if c.Lore.Timeout != "" {
		if _, err := time.ParseDuration(c.Lore.Timeout); err != nil {
			return fmt.Errorf("invalid lore.timeout format: %w", err)
		}
	}
	if c.Lore.MaxContentSize < 0 {
		return fmt.Errorf("lore.max_content_size must be non-negative")
	}
	return nil
}

// BuildRegistry builds the relation registry the config describes: the
// curated narrative table when Defaults is set, then the configured
// inverse and symmetric rules on top.
func (c *Config) BuildRegistry() *relation.Registry {
	reg := relation.NewRegistry()
	if c.Registry.Defaults {
		reg = relation.Narrative()
	}
	for _, rule := range c.Registry.Inverses {
		if rule.Label == "" {
			continue
		}
		if rule.Symmetric {
			reg.RegisterSymmetric(rule.Label)
			continue
		}
		if rule.Inverse == "" {
			continue
		}
		reg.RegisterInverse(rule.Label, rule.Inverse, rule.Rank)
	}
	for _, label := range c.Registry.Symmetric {
		if label == "" {
			continue
		}
		reg.RegisterSymmetric(label)
	}
	return reg
}

// parseDurationOrDefault parses a duration string and returns the default if empty or invalid.
func parseDurationOrDefault(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// GetDebounce returns the watch debounce as a duration.
func (w WatchConfig) GetDebounce() time.Duration {
	return parseDurationOrDefault(w.Debounce, 500*time.Millisecond)
}

// GetTimeout returns the lore fetch timeout as a duration.
func (l LoreConfig) GetTimeout() time.Duration {
	return parseDurationOrDefault(l.Timeout, 30*time.Second)
}

// GetMaxContentSize returns the lore content size cap with default.
func (l LoreConfig) GetMaxContentSize() int64 {
	if l.MaxContentSize <= 0 {
		return 10 * 1024 * 1024 // 10MB default
	}
	return l.MaxContentSize
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one. Non-zero scalars and
// non-empty lists from other win; boolean flags copy unconditionally.
// File layers come pre-seeded from DefaultConfig via LoadFromFile, so
// the last layer stays authoritative for flags.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}

	// Data
	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}
	if len(other.Data.Patterns) > 0 {
		c.Data.Patterns = other.Data.Patterns
	}
	c.Data.Watch.Enabled = other.Data.Watch.Enabled
	if other.Data.Watch.Debounce != "" {
		c.Data.Watch.Debounce = other.Data.Watch.Debounce
	}

	// Registry
	c.Registry.Defaults = other.Registry.Defaults
	if len(other.Registry.Inverses) > 0 {
		c.Registry.Inverses = other.Registry.Inverses
	}
	if len(other.Registry.Symmetric) > 0 {
		c.Registry.Symmetric = other.Registry.Symmetric
	}

	// Graph
	c.Graph.AllowUnresolved = other.Graph.AllowUnresolved

	// Query
	if other.Query.MaxDepth != 0 {
		c.Query.MaxDepth = other.Query.MaxDepth
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Output != "" {
		c.Export.Output = other.Export.Output
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	c.NATS.Enabled = other.NATS.Enabled
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Lore
	if other.Lore.Timeout != "" {
		c.Lore.Timeout = other.Lore.Timeout
	}
	if other.Lore.MaxContentSize != 0 {
		c.Lore.MaxContentSize = other.Lore.MaxContentSize
	}
	if other.Lore.UserAgent != "" {
		c.Lore.UserAgent = other.Lore.UserAgent
	}
}
