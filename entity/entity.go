// Package entity provides the typed entity store for worldgraph. Entities
// are uniquely-named, typed records with open, insertion-ordered property
// bags. Names are immutable after creation; types and properties may be
// amended.
package entity

// Entity is a uniquely-named, typed record with descriptive properties.
type Entity struct {
	Name        string
	Type        string
	Description string
	Properties  *Properties
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	return &Entity{
		Name:        e.Name,
		Type:        e.Type,
		Description: e.Description,
		Properties:  e.Properties.Clone(),
	}
}
