package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/c360studio/worldgraph/config"
	"github.com/c360studio/worldgraph/source"
)

func TestNewAppAppliesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Registry.Inverses = []source.InverseRule{{Label: "wields", Inverse: "wielded by"}}
	cfg.Graph.AllowUnresolved = true

	app := NewApp(cfg, nil)
	if inv := app.world.Inverses("wields"); len(inv) == 0 || inv[0] != "wielded by" {
		t.Errorf("Inverses(wields) = %v", inv)
	}
	if inv := app.world.Inverses("rules"); len(inv) == 0 {
		t.Error("curated defaults missing")
	}

	if err := app.world.AddEntity("Eldor", "character", "An archmage", nil); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	edge, err := app.world.AddRelationship("Eldor", "wields", "Silverblade")
	if err != nil {
		t.Fatalf("unresolved edge rejected: %v", err)
	}
	if !edge.Unresolved {
		t.Error("edge to missing entity not flagged unresolved")
	}
}

func TestNewAppStrictReferences(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Graph.AllowUnresolved = false

	app := NewApp(cfg, nil)
	if err := app.world.AddEntity("Eldor", "character", "An archmage", nil); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	if _, err := app.world.AddRelationship("Eldor", "wields", "Silverblade"); err == nil {
		t.Error("unresolved edge accepted in strict mode")
	}
}

func TestAppLoadFile(t *testing.T) {
	doc := `entities:
  - name: Aria
    type: character
    description: Queen of Eldoria
    relationships:
      - label: rules
        target: Eldoria
  - name: Eldoria
    type: place
    description: A mountain kingdom
inverses:
  - label: performs in
    inverse: hosts
`
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	app := NewApp(config.DefaultConfig(), nil)
	if err := app.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n := app.world.EntityCount(); n != 2 {
		t.Errorf("EntityCount = %d, want 2", n)
	}
	if n := app.world.RelationshipCount(); n != 1 {
		t.Errorf("RelationshipCount = %d, want 1", n)
	}
	if inv := app.world.Inverses("performs in"); len(inv) == 0 || inv[0] != "hosts" {
		t.Errorf("document inverse rule not registered: %v", inv)
	}
}

func TestAppLoadFileReportsPath(t *testing.T) {
	doc := `entities:
  - name: Aria
    type: character
  - name: Aria
    type: character
`
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	app := NewApp(config.DefaultConfig(), nil)
	err := app.LoadFile(path)
	if err == nil {
		t.Fatal("duplicate entity accepted")
	}
	if !strings.Contains(err.Error(), "world.yaml") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yaml", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("entities: []\n"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	paths, err := expandGlobs([]string{filepath.Join(dir, "*.yaml")})
	if err != nil {
		t.Fatalf("expandGlobs: %v", err)
	}
	want := []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	paths, err = expandGlobs([]string{"plain.yaml"})
	if err != nil || len(paths) != 1 || paths[0] != "plain.yaml" {
		t.Errorf("literal path = %v, %v", paths, err)
	}

	if _, err := expandGlobs([]string{filepath.Join(dir, "*.json")}); err == nil {
		t.Error("empty glob match accepted")
	}
}
