package narrative_test

import (
	"testing"

	"github.com/c360studio/worldgraph/vocabulary/narrative"
)

func TestEntityIRI(t *testing.T) {
	tests := []struct {
		entityType string
		name       string
		want       string
	}{
		{"character", "Eldor the Wise", narrative.EntityNamespace + "character/eldor-the-wise"},
		{"location", "Eldoria", narrative.EntityNamespace + "location/eldoria"},
		{"Ancient Artifact", "Silverblade", narrative.EntityNamespace + "ancient-artifact/silverblade"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := narrative.EntityIRI(tc.entityType, tc.name)
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTermIRIs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"type", narrative.TypeIRI("character"), narrative.TypeNamespace + "character"},
		{"relation", narrative.RelationIRI("lives in"), narrative.RelationNamespace + "lives-in"},
		{"derived", narrative.DerivedIRI("lives in"), narrative.DerivedNamespace + "lives-in"},
		{"property", narrative.PropertyIRI("age"), narrative.PropertyNamespace + "age"},
		{"nested property", narrative.PropertyIRI("stats", "strength"), narrative.PropertyNamespace + "stats/strength"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}

func TestDottedPredicates(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"property", narrative.PropertyPredicate("Home Region"), "worldgraph.property.home-region"},
		{"nested property", narrative.PropertyPredicate("stats", "strength"), "worldgraph.property.stats.strength"},
		{"relation", narrative.RelationPredicate("lives in"), "worldgraph.relation.lives-in"},
		{"derived", narrative.DerivedPredicate("ruled by"), "worldgraph.derived.ruled-by"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}
