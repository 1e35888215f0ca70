package narrative

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/worldgraph/relation"
)

// Entity predicates carry the core fields present on every world entity.
const (
	// EntityName is the entity's display name.
	// Example: "Eldor the Wise"
	EntityName = "worldgraph.entity.name"

	// EntityType is the entity's free-form type.
	// Example: "character", "location", "artifact"
	EntityType = "worldgraph.entity.type"

	// EntityDescription is the entity's narrative description.
	EntityDescription = "worldgraph.entity.description"
)

// Dynamic predicate prefixes. Property keys and relationship labels are
// coined per world, so their predicates are built from these prefixes
// rather than registered individually.
const (
	// PropertyPrefix prefixes per-key property predicates.
	// Example: "worldgraph.property.age"
	PropertyPrefix = "worldgraph.property."

	// RelationPrefix prefixes per-label relationship predicates.
	// Example: "worldgraph.relation.lives-in"
	RelationPrefix = "worldgraph.relation."

	// DerivedPrefix prefixes the derivation markers paired with
	// RelationPrefix predicates.
	DerivedPrefix = "worldgraph.derived."
)

// PropertyPredicate returns the dotted predicate for a property key.
// Nested mapping keys extend the dotted path: PropertyPredicate("stats",
// "strength") is "worldgraph.property.stats.strength".
func PropertyPredicate(path ...string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = relation.Slug(p)
	}
	return PropertyPrefix + strings.Join(parts, ".")
}

// RelationPredicate returns the dotted predicate for a relationship label.
func RelationPredicate(label string) string {
	return RelationPrefix + relation.Slug(label)
}

// DerivedPredicate returns the dotted derivation marker for a label.
func DerivedPredicate(label string) string {
	return DerivedPrefix + relation.Slug(label)
}

// RegisterRelations publishes the labels of a relation registry into the
// shared semstreams vocabulary, carrying over each label's description
// and IRI metadata. Labels without an explicit IRI get the slug
// convention IRI.
func RegisterRelations(r *relation.Registry) {
	for _, label := range r.Labels() {
		iri := RelationIRI(label)
		desc := "Narrative relationship " + label
		if meta, ok := r.Metadata(label); ok {
			if meta.IRI != "" {
				iri = meta.IRI
			}
			if meta.Description != "" {
				desc = meta.Description
			}
		}
		vocabulary.Register(RelationPredicate(label),
			vocabulary.WithDescription(desc),
			vocabulary.WithDataType("entity_id"),
			vocabulary.WithIRI(iri))
	}
}

func init() {
	vocabulary.Register(EntityName,
		vocabulary.WithDescription("Display name of the world entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosPrefLabel))

	vocabulary.Register(EntityType,
		vocabulary.WithDescription("Free-form entity type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"entityType"))

	vocabulary.Register(EntityDescription,
		vocabulary.WithDescription("Narrative description of the entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/terms/description"))

	RegisterRelations(relation.Narrative())
}
