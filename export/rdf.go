// Package export renders world documents as RDF. Entities become subjects
// under the worldgraph entity namespace, their core fields and properties
// become predicates, and relationships become entity-to-entity predicates.
// Derived relationships additionally carry a derivation marker predicate so
// the asserted/inferred distinction survives the export.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/relation"
	"github.com/c360studio/worldgraph/vocabulary/narrative"
	"github.com/c360studio/worldgraph/world"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// ref marks an object as an IRI reference rather than a string literal.
type ref string

// statement is one predicate-object pair emitted for a subject.
type statement struct {
	predicate string
	object    any
}

// Exporter renders a world document to RDF.
type Exporter struct {
	doc      *world.Document
	registry *relation.Registry
	prefixes map[string]string
	iris     map[string]string
	outgoing map[string][]world.EdgeRecord
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRegistry supplies the relation registry used to resolve explicit
// relationship IRIs. Without one, all labels follow the slug convention.
func WithRegistry(r *relation.Registry) Option {
	return func(e *Exporter) { e.registry = r }
}

// NewExporter creates an exporter over a world document.
func NewExporter(doc *world.Document, opts ...Option) *Exporter {
	e := &Exporter{
		doc:      doc,
		prefixes: defaultPrefixes(),
		iris:     make(map[string]string, len(doc.Entities)),
		outgoing: make(map[string][]world.EdgeRecord),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, rec := range doc.Entities {
		e.iris[rec.Name] = narrative.EntityIRI(rec.Type, rec.Name)
	}
	// Relationships whose source never resolved to an entity have no
	// subject IRI and are left to the YAML/JSON renditions.
	for _, edge := range doc.Relationships {
		if _, ok := e.iris[edge.Source]; ok {
			e.outgoing[edge.Source] = append(e.outgoing[edge.Source], edge)
		}
	}
	return e
}

// SetPrefix sets a namespace prefix for serializations that declare them.
func (e *Exporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":    "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":   "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":    "http://www.w3.org/2001/XMLSchema#",
		"dc":     "http://purl.org/dc/terms/",
		"skos":   "http://www.w3.org/2004/02/skos/core#",
		"wg":     narrative.Namespace,
		"wgt":    narrative.TypeNamespace,
		"wgr":    narrative.RelationNamespace,
		"wgd":    narrative.DerivedNamespace,
		"wgp":    narrative.PropertyNamespace,
		"entity": narrative.EntityNamespace,
	}
}

// Export serializes the document to the specified format.
func (e *Exporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// toTurtle serializes to Turtle format.
func (e *Exporter) toTurtle() string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for _, rec := range e.doc.Entities {
		stmts := e.statements(rec)
		w.WriteSubject(e.iris[rec.Name])
		w.WriteType(narrative.ClassEntity, false)
		w.WriteType(narrative.TypeIRI(rec.Type), len(stmts) == 0)
		for i, st := range stmts {
			w.WritePredicate(st.predicate, st.object, i == len(stmts)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

// toNTriples serializes to N-Triples format.
func (e *Exporter) toNTriples() string {
	w := NewNTriplesWriter()

	for _, rec := range e.doc.Entities {
		iri := e.iris[rec.Name]
		w.WriteTypeTriple(iri, narrative.ClassEntity)
		w.WriteTypeTriple(iri, narrative.TypeIRI(rec.Type))
		for _, st := range e.statements(rec) {
			w.WriteTriple(iri, st.predicate, st.object)
		}
	}

	return w.String()
}

// toJSONLD serializes to JSON-LD format.
func (e *Exporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, rec := range e.doc.Entities {
		props := make(map[string]any)
		for _, st := range e.statements(rec) {
			obj := formatObjectJSONLD(st.object)
			switch existing := props[st.predicate].(type) {
			case nil:
				props[st.predicate] = obj
			case []any:
				props[st.predicate] = append(existing, obj)
			default:
				props[st.predicate] = []any{existing, obj}
			}
		}
		types := []string{narrative.ClassEntity, narrative.TypeIRI(rec.Type)}
		w.AddNode(e.iris[rec.Name], types, props)
	}

	return w.String()
}

// statements flattens one entity record into its predicate-object pairs:
// name, description, properties in insertion order, then relationships in
// document order with derivation markers beside derived edges.
func (e *Exporter) statements(rec world.EntityRecord) []statement {
	stmts := []statement{
		{narrative.GetPredicateIRI(narrative.EntityName), rec.Name},
	}
	if rec.Description != "" {
		stmts = append(stmts, statement{narrative.GetPredicateIRI(narrative.EntityDescription), rec.Description})
	}
	for _, key := range rec.Properties.Keys() {
		v, _ := rec.Properties.Get(key)
		stmts = appendValue(stmts, []string{key}, v)
	}
	for _, edge := range e.outgoing[rec.Name] {
		obj := e.objectFor(edge.Target)
		stmts = append(stmts, statement{narrative.RelationExportIRI(e.registry, edge.Label), obj})
		if edge.Derived {
			stmts = append(stmts, statement{narrative.DerivedIRI(edge.Label), obj})
		}
	}
	return stmts
}

// appendValue flattens a property value onto stmts. Lists become repeated
// predicates, nested mappings extend the property path.
func appendValue(stmts []statement, path []string, v entity.Value) []statement {
	switch v.Kind() {
	case entity.KindString:
		s, _ := v.AsString()
		return append(stmts, statement{narrative.PropertyIRI(path...), s})
	case entity.KindInt:
		n, _ := v.AsInt()
		return append(stmts, statement{narrative.PropertyIRI(path...), n})
	case entity.KindBool:
		b, _ := v.AsBool()
		return append(stmts, statement{narrative.PropertyIRI(path...), b})
	case entity.KindStringList:
		items, _ := v.AsStrings()
		for _, item := range items {
			stmts = append(stmts, statement{narrative.PropertyIRI(path...), item})
		}
		return stmts
	case entity.KindMapping:
		sub, _ := v.AsMap()
		for _, key := range sub.Keys() {
			nested, _ := sub.Get(key)
			stmts = appendValue(stmts, append(path, key), nested)
		}
		return stmts
	default:
		return stmts
	}
}

// objectFor resolves a relationship target: entities present in the
// document become IRI references, unresolved names stay plain literals.
func (e *Exporter) objectFor(target string) any {
	if iri, ok := e.iris[target]; ok {
		return ref(iri)
	}
	return target
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case ref:
		return fmt.Sprintf("<%s>", string(v))
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case ref:
		return fmt.Sprintf("<%s>", string(v))
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectJSONLD converts an object value to its JSON-LD shape.
func formatObjectJSONLD(obj any) any {
	switch v := obj.(type) {
	case ref:
		return map[string]any{"@id": string(v)}
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return map[string]any{"@id": v}
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return map[string]any{"@value": v, "@type": "xsd:dateTime"}
		}
		return v
	default:
		return obj
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
