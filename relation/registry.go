// Package relation provides the relation type registry: the curated table
// mapping each relationship label to its candidate inverse labels with
// precedence ranks. Relationship semantics in this domain are curated, not
// derivable from the label string ("trains" inverts to "studies at", not a
// string transform), so the registry is an explicit, externally supplied
// table scoped to an instance rather than a package global.
package relation

import (
	"sort"
)

// Candidate is one inverse candidate for a label. Lower rank is preferred;
// candidates sharing a rank keep registration order.
type Candidate struct {
	Label string
	Rank  int

	seq int
}

// Metadata carries optional display and export information for a label.
type Metadata struct {
	Description string
	IRI         string
}

type labelEntry struct {
	candidates []Candidate
	meta       Metadata
}

// Registry holds inverse candidates and metadata per relationship label.
// Labels absent from the registry have no defined inverse; closure treats
// them as nothing to infer, not as an error. Not safe for concurrent
// mutation; callers serialize access (see the world package).
type Registry struct {
	entries map[string]*labelEntry
	seq     int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*labelEntry)}
}

// Option configures a Register call.
type Option func(*registration)

type registration struct {
	inverses    []Candidate
	symmetric   bool
	description string
	iri         string
}

// WithInverse adds an inverse candidate at the given precedence rank.
func WithInverse(inverse string, rank int) Option {
	return func(r *registration) {
		r.inverses = append(r.inverses, Candidate{Label: inverse, Rank: rank})
	}
}

// WithSymmetric marks the label as its own inverse at rank 0.
func WithSymmetric() Option {
	return func(r *registration) { r.symmetric = true }
}

// WithDescription attaches a human-readable description to the label.
func WithDescription(description string) Option {
	return func(r *registration) { r.description = description }
}

// WithIRI attaches an explicit ontology IRI to the label.
func WithIRI(iri string) Option {
	return func(r *registration) { r.iri = iri }
}

// Register applies options for a label: inverse candidates accumulate in
// option order, metadata fields overwrite when non-empty.
func (r *Registry) Register(label string, opts ...Option) {
	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}
	if reg.symmetric {
		r.RegisterSymmetric(label)
	}
	for _, c := range reg.inverses {
		r.RegisterInverse(label, c.Label, c.Rank)
	}
	if reg.description != "" || reg.iri != "" {
		entry := r.entry(label)
		if reg.description != "" {
			entry.meta.Description = reg.description
		}
		if reg.iri != "" {
			entry.meta.IRI = reg.iri
		}
	}
}

// RegisterInverse adds an inverse candidate for label at the given rank.
// Re-registering an existing (label, inverse) pair updates its rank in
// place, keeping its original registration order for rank ties.
func (r *Registry) RegisterInverse(label, inverse string, rank int) {
	entry := r.entry(label)
	for i := range entry.candidates {
		if entry.candidates[i].Label == inverse {
			entry.candidates[i].Rank = rank
			entry.sort()
			return
		}
	}
	r.seq++
	entry.candidates = append(entry.candidates, Candidate{Label: inverse, Rank: rank, seq: r.seq})
	entry.sort()
}

// RegisterSymmetric marks label as its own inverse at rank 0.
func (r *Registry) RegisterSymmetric(label string) {
	r.RegisterInverse(label, label, 0)
}

// Inverses returns the candidate inverse labels for label ordered by
// precedence, best first. The slice is empty for unregistered labels.
func (r *Registry) Inverses(label string) []string {
	entry, ok := r.entries[label]
	if !ok {
		return nil
	}
	out := make([]string, len(entry.candidates))
	for i, c := range entry.candidates {
		out[i] = c.Label
	}
	return out
}

// Candidates returns the ordered inverse candidates with their ranks.
func (r *Registry) Candidates(label string) []Candidate {
	entry, ok := r.entries[label]
	if !ok {
		return nil
	}
	out := make([]Candidate, len(entry.candidates))
	copy(out, entry.candidates)
	return out
}

// Has reports whether label has at least one registered inverse candidate.
func (r *Registry) Has(label string) bool {
	entry, ok := r.entries[label]
	return ok && len(entry.candidates) > 0
}

// Labels returns all registered labels sorted, for completion and display.
func (r *Registry) Labels() []string {
	labels := make([]string, 0, len(r.entries))
	for label := range r.entries {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Metadata returns the metadata recorded for label, if any.
func (r *Registry) Metadata(label string) (Metadata, bool) {
	entry, ok := r.entries[label]
	if !ok {
		return Metadata{}, false
	}
	return entry.meta, true
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	out.seq = r.seq
	for label, entry := range r.entries {
		candidates := make([]Candidate, len(entry.candidates))
		copy(candidates, entry.candidates)
		out.entries[label] = &labelEntry{candidates: candidates, meta: entry.meta}
	}
	return out
}

func (r *Registry) entry(label string) *labelEntry {
	entry, ok := r.entries[label]
	if !ok {
		entry = &labelEntry{}
		r.entries[label] = entry
	}
	return entry
}

func (e *labelEntry) sort() {
	sort.SliceStable(e.candidates, func(i, j int) bool {
		if e.candidates[i].Rank != e.candidates[j].Rank {
			return e.candidates[i].Rank < e.candidates[j].Rank
		}
		return e.candidates[i].seq < e.candidates[j].seq
	})
}
