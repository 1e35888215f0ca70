// Package narrative provides domain vocabulary predicates for worldgraph.
//
// The vocabulary covers narrative world entities (characters, locations,
// artifacts and whatever other types an author invents), their properties,
// and the relationships between them. It is designed for:
//   - Internal efficiency: dotted notation for NATS wildcard queries
//   - External interoperability: IRI mappings for RDF export
//
// # Semstreams Integration
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use dotted notation (domain.category.property)
//   - Core predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() for RDF export compatibility
//
// Unlike a closed domain vocabulary, worldgraph's property keys,
// relationship labels, and entity types are open-ended: authors coin them
// per world. The fixed core (name, type, description) is registered
// individually; everything else resolves through prefix conventions
// (PropertyPredicate, RelationPredicate) and the slug-based IRI builders
// in iris.go.
//
// # Usage
//
//	import (
//	    "github.com/c360studio/worldgraph/vocabulary/narrative"
//	    "github.com/c360studio/semstreams/message"
//	)
//
//	triples := []message.Triple{
//	    {Subject: entityID, Predicate: narrative.EntityName, Object: "Eldor the Wise"},
//	    {Subject: entityID, Predicate: narrative.RelationPredicate("lives in"), Object: targetID},
//	}
//
// # RDF Export
//
// mappings.go translates dotted predicates to IRIs for the export package:
//
//	iri := narrative.GetPredicateIRI(narrative.EntityName)
//	// → http://www.w3.org/2004/02/skos/core#prefLabel
package narrative
