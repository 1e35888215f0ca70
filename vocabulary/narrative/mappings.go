package narrative

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/worldgraph/relation"
)

// PredicateIRIMap maps core worldgraph predicates to standard IRIs.
// Use this for RDF export to translate dotted predicates to standard IRIs.
var PredicateIRIMap = map[string]string{
	EntityName:        vocabulary.SkosPrefLabel,
	EntityType:        Namespace + "entityType",
	EntityDescription: "http://purl.org/dc/terms/description",
}

// GetPredicateIRI returns the IRI for a dotted predicate. Resolution
// order: the core map, the shared vocabulary registry, the dynamic
// prefix conventions, and finally the worldgraph namespace fallback.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	if slug, ok := strings.CutPrefix(predicate, RelationPrefix); ok {
		return RelationNamespace + slug
	}
	if slug, ok := strings.CutPrefix(predicate, DerivedPrefix); ok {
		return DerivedNamespace + slug
	}
	if slug, ok := strings.CutPrefix(predicate, PropertyPrefix); ok {
		// Dotted property paths map to slash paths under the namespace.
		return PropertyNamespace + strings.ReplaceAll(slug, ".", "/")
	}
	return Namespace + predicate
}

// RelationExportIRI resolves the export IRI for a relationship label,
// preferring an explicit IRI registered on the label over the slug
// convention. Pass a nil registry to use the convention alone.
func RelationExportIRI(r *relation.Registry, label string) string {
	if r != nil {
		if meta, ok := r.Metadata(label); ok && meta.IRI != "" {
			return meta.IRI
		}
	}
	return RelationIRI(label)
}
