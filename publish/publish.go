// Package publish emits world entities to the semantic graph ingestion
// stream over NATS. A nil client degrades to a no-op so callers work
// identically with and without a broker configured.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/c360studio/worldgraph/entity"
	"github.com/c360studio/worldgraph/relation"
	"github.com/c360studio/worldgraph/vocabulary/narrative"
	"github.com/c360studio/worldgraph/world"
)

// IngestSubject is the stream subject for graph entity ingestion.
const IngestSubject = "graph.ingest.entity"

// Source identifies worldgraph as the origin of published triples.
const Source = "worldgraph.publish"

// Confidence levels distinguish author-asserted facts from inverses the
// closure engine derived.
const (
	AssertedConfidence = 1.0
	DerivedConfidence  = 0.8
)

// Publisher publishes world entities to a NATS stream.
type Publisher struct {
	client  *natsclient.Client
	subject string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSubject overrides the ingestion subject.
func WithSubject(subject string) Option {
	return func(p *Publisher) {
		if subject != "" {
			p.subject = subject
		}
	}
}

// New creates a Publisher. A nil client is allowed and makes every
// publish call a no-op.
func New(client *natsclient.Client, opts ...Option) *Publisher {
	p := &Publisher{client: client, subject: IngestSubject}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EntityID returns the stream entity ID for a world entity.
// Format: worldgraph.local.world.<type-slug>.<name-slug>
func EntityID(entityType, name string) string {
	return fmt.Sprintf("worldgraph.local.world.%s.%s", relation.Slug(entityType), relation.Slug(name))
}

// PublishWorld emits one entity payload per world entity to the ingestion
// subject and returns the number of entities published. Publishing stops
// at the first failure.
func (p *Publisher) PublishWorld(ctx context.Context, w *world.World) (int, error) {
	if p == nil || p.client == nil {
		return 0, nil
	}
	payloads := BuildPayloads(w.Export(), time.Now())
	for i := range payloads {
		data, err := json.Marshal(&payloads[i])
		if err != nil {
			return i, fmt.Errorf("marshal entity %s: %w", payloads[i].EntityID_, err)
		}
		if err := p.client.PublishToStream(ctx, p.subject, data); err != nil {
			return i, fmt.Errorf("publish entity %s: %w", payloads[i].EntityID_, err)
		}
	}
	return len(payloads), nil
}

// BuildPayloads converts an exported document into ingestion payloads,
// one per entity in document order. Every triple carries now as its
// timestamp. Relationship targets that exported as entities become entity
// ID references; unresolved targets stay plain name literals.
func BuildPayloads(doc *world.Document, now time.Time) []EntityPayload {
	ids := make(map[string]string, len(doc.Entities))
	for _, rec := range doc.Entities {
		ids[rec.Name] = EntityID(rec.Type, rec.Name)
	}
	outgoing := make(map[string][]world.EdgeRecord)
	for _, edge := range doc.Relationships {
		if _, ok := ids[edge.Source]; ok {
			outgoing[edge.Source] = append(outgoing[edge.Source], edge)
		}
	}

	payloads := make([]EntityPayload, 0, len(doc.Entities))
	for _, rec := range doc.Entities {
		id := ids[rec.Name]
		triples := []message.Triple{
			assertedTriple(id, narrative.EntityName, rec.Name, now),
			assertedTriple(id, narrative.EntityType, rec.Type, now),
		}
		if rec.Description != "" {
			triples = append(triples, assertedTriple(id, narrative.EntityDescription, rec.Description, now))
		}
		for _, key := range rec.Properties.Keys() {
			v, _ := rec.Properties.Get(key)
			triples = appendPropertyTriples(triples, id, []string{key}, v, now)
		}
		for _, edge := range outgoing[rec.Name] {
			object := any(edge.Target)
			if targetID, ok := ids[edge.Target]; ok {
				object = targetID
			}
			confidence := AssertedConfidence
			if edge.Derived {
				confidence = DerivedConfidence
			}
			triples = append(triples, message.Triple{
				Subject:    id,
				Predicate:  narrative.RelationPredicate(edge.Label),
				Object:     object,
				Source:     Source,
				Timestamp:  now,
				Confidence: confidence,
			})
		}
		payloads = append(payloads, EntityPayload{EntityID_: id, TripleData: triples, UpdatedAt: now})
	}
	return payloads
}

func assertedTriple(subject, predicate string, object any, now time.Time) message.Triple {
	return message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     Source,
		Timestamp:  now,
		Confidence: AssertedConfidence,
	}
}

// appendPropertyTriples flattens a property value into triples. Lists
// repeat the predicate per item, nested mappings extend the dotted path.
func appendPropertyTriples(triples []message.Triple, subject string, path []string, v entity.Value, now time.Time) []message.Triple {
	switch v.Kind() {
	case entity.KindString:
		s, _ := v.AsString()
		return append(triples, assertedTriple(subject, narrative.PropertyPredicate(path...), s, now))
	case entity.KindInt:
		n, _ := v.AsInt()
		return append(triples, assertedTriple(subject, narrative.PropertyPredicate(path...), n, now))
	case entity.KindBool:
		b, _ := v.AsBool()
		return append(triples, assertedTriple(subject, narrative.PropertyPredicate(path...), b, now))
	case entity.KindStringList:
		items, _ := v.AsStrings()
		for _, item := range items {
			triples = append(triples, assertedTriple(subject, narrative.PropertyPredicate(path...), item, now))
		}
		return triples
	case entity.KindMapping:
		sub, _ := v.AsMap()
		for _, key := range sub.Keys() {
			nested, _ := sub.Get(key)
			triples = appendPropertyTriples(triples, subject, append(path, key), nested, now)
		}
		return triples
	default:
		return triples
	}
}
