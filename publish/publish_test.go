package publish_test

import (
	"context"
	"testing"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/publish"
	"github.com/c360studio/worldgraph/world"
)

func TestEntityID(t *testing.T) {
	tests := []struct {
		entityType string
		name       string
		want       string
	}{
		{"character", "Eldor the Wise", "worldgraph.local.world.character.eldor-the-wise"},
		{"location", "Eldoria", "worldgraph.local.world.location.eldoria"},
		{"Ancient Artifact", "Silverblade", "worldgraph.local.world.ancient-artifact.silverblade"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := publish.EntityID(tc.entityType, tc.name)
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New()

	props := entity.NewProperties()
	props.Set("age", entity.Int(62))
	stats := entity.NewProperties()
	stats.Set("wisdom", entity.Int(20))
	props.Set("stats", entity.Map(stats))
	if err := w.AddEntity("Eldor", "character", "An ancient wizard", props); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	if err := w.AddEntity("Eldoria", "location", "A mystical realm", nil); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	if _, err := w.AddRelationship("Eldor", "rules", "Eldoria"); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}
	if _, err := w.Enrich(); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	return w
}

func findTriple(triples []message.Triple, predicate string) (message.Triple, bool) {
	for _, tr := range triples {
		if tr.Predicate == predicate {
			return tr, true
		}
	}
	return message.Triple{}, false
}

func TestBuildPayloads(t *testing.T) {
	now := time.Now()
	payloads := publish.BuildPayloads(newTestWorld(t).Export(), now)

	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}

	eldor := payloads[0]
	if eldor.EntityID_ != "worldgraph.local.world.character.eldor" {
		t.Errorf("unexpected entity ID %q", eldor.EntityID_)
	}
	if !eldor.UpdatedAt.Equal(now) {
		t.Errorf("payload should carry the publish timestamp")
	}
	if err := eldor.Validate(); err != nil {
		t.Errorf("payload should validate: %v", err)
	}

	name, ok := findTriple(eldor.TripleData, "worldgraph.entity.name")
	if !ok || name.Object != "Eldor" {
		t.Errorf("expected name triple, got %+v", name)
	}
	if name.Source != publish.Source {
		t.Errorf("got source %q, want %q", name.Source, publish.Source)
	}
	if name.Confidence != publish.AssertedConfidence {
		t.Errorf("got confidence %v, want %v", name.Confidence, publish.AssertedConfidence)
	}

	if _, ok := findTriple(eldor.TripleData, "worldgraph.entity.type"); !ok {
		t.Error("expected type triple")
	}
	if _, ok := findTriple(eldor.TripleData, "worldgraph.entity.description"); !ok {
		t.Error("expected description triple")
	}

	age, ok := findTriple(eldor.TripleData, "worldgraph.property.age")
	if !ok {
		t.Fatal("expected age property triple")
	}
	if age.Object != int64(62) {
		t.Errorf("got age object %v (%T), want int64 62", age.Object, age.Object)
	}
	if _, ok := findTriple(eldor.TripleData, "worldgraph.property.stats.wisdom"); !ok {
		t.Error("nested property should publish under its dotted path")
	}

	rules, ok := findTriple(eldor.TripleData, "worldgraph.relation.rules")
	if !ok {
		t.Fatal("expected relationship triple")
	}
	if rules.Object != "worldgraph.local.world.location.eldoria" {
		t.Errorf("relationship target should be an entity ID, got %v", rules.Object)
	}
	if rules.Confidence != publish.AssertedConfidence {
		t.Errorf("asserted edge at confidence %v", rules.Confidence)
	}
}

func TestBuildPayloadsDerivedConfidence(t *testing.T) {
	payloads := publish.BuildPayloads(newTestWorld(t).Export(), time.Now())

	eldoria := payloads[1]
	ruledBy, ok := findTriple(eldoria.TripleData, "worldgraph.relation.ruled-by")
	if !ok {
		t.Fatal("expected derived inverse triple on the target entity")
	}
	if ruledBy.Confidence != publish.DerivedConfidence {
		t.Errorf("derived edge at confidence %v, want %v", ruledBy.Confidence, publish.DerivedConfidence)
	}
	if ruledBy.Object != "worldgraph.local.world.character.eldor" {
		t.Errorf("derived target should be an entity ID, got %v", ruledBy.Object)
	}
}

func TestBuildPayloadsUnresolvedTarget(t *testing.T) {
	w := world.New(world.AllowUnresolved())
	if err := w.AddEntity("Isadora", "character", "", nil); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	if _, err := w.AddRelationship("Isadora", "daughter of", "The Lost King"); err != nil {
		t.Fatalf("AddRelationship: %v", err)
	}

	payloads := publish.BuildPayloads(w.Export(), time.Now())
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}

	daughter, ok := findTriple(payloads[0].TripleData, "worldgraph.relation.daughter-of")
	if !ok {
		t.Fatal("expected relationship triple")
	}
	if daughter.Object != "The Lost King" {
		t.Errorf("unresolved target should stay a name literal, got %v", daughter.Object)
	}
}

func TestPublishWorldNilClient(t *testing.T) {
	p := publish.New(nil)

	n, err := p.PublishWorld(context.Background(), newTestWorld(t))
	if err != nil {
		t.Fatalf("nil client should no-op, got error: %v", err)
	}
	if n != 0 {
		t.Errorf("nil client should publish nothing, got %d", n)
	}
}

func TestPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload publish.EntityPayload
		wantErr bool
	}{
		{
			"valid",
			publish.EntityPayload{
				EntityID_:  "worldgraph.local.world.character.eldor",
				TripleData: []message.Triple{{Subject: "s", Predicate: "p", Object: "o"}},
			},
			false,
		},
		{"missing id", publish.EntityPayload{TripleData: []message.Triple{{Subject: "s"}}}, true},
		{"missing triples", publish.EntityPayload{EntityID_: "worldgraph.local.world.character.eldor"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
