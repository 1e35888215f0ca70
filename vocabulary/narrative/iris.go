package narrative

import (
	"strings"

	"github.com/c360studio/worldgraph/relation"
)

// Namespace is the base IRI prefix for all worldgraph ontology terms.
const Namespace = "https://worldgraph.dev/ontology/"

// EntityNamespace is the base IRI for worldgraph entity instances.
const EntityNamespace = "https://worldgraph.dev/entity/"

// Sub-namespaces group term families so that a relationship label, a
// property key, and an entity type may share a name without colliding
// on an IRI.
const (
	// TypeNamespace holds entity type class IRIs.
	TypeNamespace = Namespace + "type/"

	// RelationNamespace holds relationship predicate IRIs.
	RelationNamespace = Namespace + "relation/"

	// DerivedNamespace holds the derivation marker predicates paired
	// with RelationNamespace terms.
	DerivedNamespace = Namespace + "derived/"

	// PropertyNamespace holds entity property predicate IRIs.
	PropertyNamespace = Namespace + "property/"
)

// ClassEntity is the base class for all world entities. Exported types
// additionally carry their own class under TypeNamespace.
const ClassEntity = Namespace + "Entity"

// TypeIRI returns the class IRI for an entity type.
// "character" becomes <.../ontology/type/character>.
func TypeIRI(entityType string) string {
	return TypeNamespace + relation.Slug(entityType)
}

// RelationIRI returns the predicate IRI for a relationship label under
// the slug convention. "lives in" becomes
// <.../ontology/relation/lives-in>. Labels carrying an explicit IRI in
// a relation registry override this convention at the export layer.
func RelationIRI(label string) string {
	return RelationNamespace + relation.Slug(label)
}

// DerivedIRI returns the derivation marker predicate paired with a
// relationship label. A triple under this predicate, with the same
// subject and object as a relationship triple, marks that relationship
// as inferred by the closure engine rather than asserted by an author.
func DerivedIRI(label string) string {
	return DerivedNamespace + relation.Slug(label)
}

// PropertyIRI returns the predicate IRI for an entity property key.
// Nested mapping keys join with slashes: PropertyIRI("stats", "strength")
// becomes <.../ontology/property/stats/strength>.
func PropertyIRI(path ...string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = relation.Slug(p)
	}
	return PropertyNamespace + strings.Join(parts, "/")
}

// EntityIRI returns the instance IRI for an entity. Type and name are
// slugged: ("character", "Eldor the Wise") becomes
// <.../entity/character/eldor-the-wise>.
func EntityIRI(entityType, name string) string {
	return EntityNamespace + relation.Slug(entityType) + "/" + relation.Slug(name)
}
