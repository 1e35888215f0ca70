package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/worldgraph/source"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("expected default log format text, got %s", cfg.Log.Format)
	}
	if cfg.Data.Dir != "." {
		t.Errorf("expected default data dir ., got %s", cfg.Data.Dir)
	}
	if len(cfg.Data.Patterns) != 3 {
		t.Errorf("expected 3 default patterns, got %d", len(cfg.Data.Patterns))
	}
	if !cfg.Registry.Defaults {
		t.Error("expected curated registry defaults on by default")
	}
	if !cfg.Graph.AllowUnresolved {
		t.Error("expected unresolved references allowed by default")
	}
	if cfg.NATS.Enabled {
		t.Error("expected publishing off by default")
	}
	if cfg.Lore.GetTimeout() != 30*time.Second {
		t.Errorf("expected default lore timeout 30s, got %v", cfg.Lore.GetTimeout())
	}
	if cfg.Lore.GetMaxContentSize() != 10*1024*1024 {
		t.Errorf("expected default lore size cap 10MB, got %d", cfg.Lore.GetMaxContentSize())
	}
	if cfg.Data.Watch.GetDebounce() != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Data.Watch.GetDebounce())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "missing data dir",
			modify:  func(c *Config) { c.Data.Dir = "" },
			wantErr: true,
		},
		{
			name:    "bad debounce",
			modify:  func(c *Config) { c.Data.Watch.Debounce = "soon" },
			wantErr: true,
		},
		{
			name:    "negative max depth",
			modify:  func(c *Config) { c.Query.MaxDepth = -1 },
			wantErr: true,
		},
		{
			name: "publishing enabled without URL",
			modify: func(c *Config) {
				c.NATS.Enabled = true
				c.NATS.URL = ""
			},
			wantErr: true,
		},
		{
			name:    "bad lore timeout",
			modify:  func(c *Config) { c.Lore.Timeout = "later" },
			wantErr: true,
		},
		{
			name:    "negative lore size cap",
			modify:  func(c *Config) { c.Lore.MaxContentSize = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
log:
  level: debug
data:
  dir: "./worlds"
  patterns:
    - "**/*.yaml"
  watch:
    enabled: true
    debounce: 2s
registry:
  defaults: true
  inverses:
    - label: wields
      inverse: wielded by
    - label: rivals
      symmetric: true
  symmetric:
    - "sworn to"
graph:
  allow_unresolved: false
query:
  max_depth: 6
export:
  format: turtle
  output: world.ttl
nats:
  url: "nats://test:4222"
  enabled: true
lore:
  timeout: 10s
  max_content_size: 1048576
  user_agent: "test-agent/1.0"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Data.Dir != "./worlds" {
		t.Errorf("expected data dir ./worlds, got %s", cfg.Data.Dir)
	}
	if len(cfg.Data.Patterns) != 1 {
		t.Errorf("expected 1 pattern, got %d", len(cfg.Data.Patterns))
	}
	if !cfg.Data.Watch.Enabled {
		t.Error("expected watching enabled")
	}
	if cfg.Data.Watch.GetDebounce() != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Data.Watch.GetDebounce())
	}
	if len(cfg.Registry.Inverses) != 2 {
		t.Errorf("expected 2 inverse rules, got %d", len(cfg.Registry.Inverses))
	}
	if cfg.Graph.AllowUnresolved {
		t.Error("expected unresolved references disallowed")
	}
	if cfg.Query.MaxDepth != 6 {
		t.Errorf("expected max depth 6, got %d", cfg.Query.MaxDepth)
	}
	if cfg.Export.Format != "turtle" {
		t.Errorf("expected export format turtle, got %s", cfg.Export.Format)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if !cfg.NATS.Enabled {
		t.Error("expected publishing enabled")
	}
	if cfg.Lore.GetTimeout() != 10*time.Second {
		t.Errorf("expected lore timeout 10s, got %v", cfg.Lore.GetTimeout())
	}
	if cfg.Lore.GetMaxContentSize() != 1048576 {
		t.Errorf("expected lore size cap 1MB, got %d", cfg.Lore.GetMaxContentSize())
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := DefaultConfig()
	override.Log.Level = "debug"
	override.Data.Dir = "/override/worlds"
	override.Export.Format = "jsonld"

	base.Merge(override)

	if base.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", base.Log.Level)
	}
	if base.Data.Dir != "/override/worlds" {
		t.Errorf("expected data dir /override/worlds, got %s", base.Data.Dir)
	}
	// Format from override, output untouched
	if base.Export.Format != "jsonld" {
		t.Errorf("expected export format jsonld, got %s", base.Export.Format)
	}
	if base.Export.Output != "" {
		t.Errorf("expected export output to stay empty, got %s", base.Export.Output)
	}
	// Patterns should remain from base since override didn't change them
	if len(base.Data.Patterns) != 3 {
		t.Errorf("expected base patterns to remain, got %d", len(base.Data.Patterns))
	}
}

func TestConfigMergeFlags(t *testing.T) {
	// Flags copy as-is, so a layer can turn defaults off
	base := DefaultConfig()
	override := DefaultConfig()
	override.Registry.Defaults = false
	override.Graph.AllowUnresolved = false

	base.Merge(override)

	if base.Registry.Defaults {
		t.Error("expected registry defaults off after merge")
	}
	if base.Graph.AllowUnresolved {
		t.Error("expected unresolved references disallowed after merge")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Data.Dir = "/saved/worlds"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Data.Dir != "/saved/worlds" {
		t.Errorf("expected data dir /saved/worlds, got %s", loaded.Data.Dir)
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Registry.Inverses = []source.InverseRule{
		{Label: "wields", Inverse: "wielded by"},
	}
	cfg.Registry.Symmetric = []string{"rivals"}

	reg := cfg.BuildRegistry()

	// Curated defaults present
	if got := reg.Inverses("rules"); len(got) == 0 || got[0] != "ruled by" {
		t.Errorf("Inverses(rules) = %v, want ruled by first", got)
	}
	// Configured rules layered on top
	if got := reg.Inverses("wields"); len(got) == 0 || got[0] != "wielded by" {
		t.Errorf("Inverses(wields) = %v, want wielded by first", got)
	}
	if got := reg.Inverses("rivals"); len(got) == 0 || got[0] != "rivals" {
		t.Errorf("Inverses(rivals) = %v, want rivals itself", got)
	}
}

func TestBuildRegistryWithoutDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Registry.Defaults = false
	cfg.Registry.Inverses = []source.InverseRule{
		{Label: "wields", Inverse: "wielded by"},
	}

	reg := cfg.BuildRegistry()

	if reg.Has("rules") {
		t.Error("curated defaults should not be registered")
	}
	if !reg.Has("wields") {
		t.Error("configured rule should be registered")
	}
}
