package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPropertyNotFound is returned when a property operation targets a name
// the entity does not carry.
var ErrPropertyNotFound = errors.New("property not found")

// reservedProperties are the core fields that live on the entity itself and
// may not be shadowed or removed through the property surface.
var reservedProperties = map[string]bool{
	"name":        true,
	"type":        true,
	"description": true,
}

// Store holds entities in an append-mostly arena indexed by name. Entities
// are referenced by name rather than by pointer, so cyclic relationship
// structures never create ownership cycles. Lookups return copies; all
// mutation goes through store methods. The store itself is not safe for
// concurrent use; callers serialize access (see the world package).
type Store struct {
	arena []*Entity
	index map[string]int
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add creates a new entity. The property bag is deep-copied. It fails with
// DuplicateEntityError if the name is already present.
func (s *Store) Add(name, entityType, description string, props *Properties) error {
	if name == "" {
		return fmt.Errorf("entity name must not be empty")
	}
	if _, ok := s.index[name]; ok {
		return &DuplicateEntityError{Name: name}
	}
	s.arena = append(s.arena, &Entity{
		Name:        name,
		Type:        entityType,
		Description: description,
		Properties:  props.Clone(),
	})
	s.index[name] = len(s.arena) - 1
	return nil
}

// Get returns a copy of the named entity, or UnknownEntityError.
func (s *Store) Get(name string) (*Entity, error) {
	e, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// Has reports whether the name is present.
func (s *Store) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.index)
}

// UpdateProperties merges patch into the entity's bag: patch keys overwrite,
// other keys are retained. It fails with UnknownEntityError if absent.
func (s *Store) UpdateProperties(name string, patch *Properties) error {
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	if e.Properties == nil {
		e.Properties = NewProperties()
	}
	e.Properties.Merge(patch)
	return nil
}

// SetProperty sets a single property. Core field names are rejected with
// ErrReservedProperty.
func (s *Store) SetProperty(name, property string, v Value) error {
	if reservedProperties[property] {
		return fmt.Errorf("set property %q: %w", property, ErrReservedProperty)
	}
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	if e.Properties == nil {
		e.Properties = NewProperties()
	}
	e.Properties.Set(property, v.Clone())
	return nil
}

// DeleteProperty removes a single property. Core field names are rejected
// with ErrReservedProperty; a missing property reports ErrPropertyNotFound.
func (s *Store) DeleteProperty(name, property string) error {
	if reservedProperties[property] {
		return fmt.Errorf("delete property %q: %w", property, ErrReservedProperty)
	}
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	if !e.Properties.Delete(property) {
		return fmt.Errorf("entity %q has no property %q: %w", name, property, ErrPropertyNotFound)
	}
	return nil
}

// SetType changes the entity's type tag.
func (s *Store) SetType(name, entityType string) error {
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	e.Type = entityType
	return nil
}

// SetDescription changes the entity's description.
func (s *Store) SetDescription(name, description string) error {
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	e.Description = description
	return nil
}

// Remove deletes the named entity from the store. The caller is responsible
// for detaching relationships first (see world.DeleteEntity).
func (s *Store) Remove(name string) error {
	i, ok := s.index[name]
	if !ok {
		return &UnknownEntityError{Name: name}
	}
	s.arena[i] = nil
	delete(s.index, name)
	return nil
}

// ListOption narrows the entities returned by List.
type ListOption func(*listFilter)

type listFilter struct {
	exactType *string
	nameSub   string
	typeSub   string
	descSub   string
}

// ByType keeps only entities whose type matches exactly.
func ByType(entityType string) ListOption {
	return func(f *listFilter) { f.exactType = &entityType }
}

// NameContains keeps entities whose name contains the substring,
// case-insensitive.
func NameContains(s string) ListOption {
	return func(f *listFilter) { f.nameSub = strings.ToLower(s) }
}

// TypeContains keeps entities whose type contains the substring,
// case-insensitive.
func TypeContains(s string) ListOption {
	return func(f *listFilter) { f.typeSub = strings.ToLower(s) }
}

// DescriptionContains keeps entities whose description contains the
// substring, case-insensitive.
func DescriptionContains(s string) ListOption {
	return func(f *listFilter) { f.descSub = strings.ToLower(s) }
}

func (f *listFilter) match(e *Entity) bool {
	if f.exactType != nil && e.Type != *f.exactType {
		return false
	}
	if f.nameSub != "" && !strings.Contains(strings.ToLower(e.Name), f.nameSub) {
		return false
	}
	if f.typeSub != "" && !strings.Contains(strings.ToLower(e.Type), f.typeSub) {
		return false
	}
	if f.descSub != "" && !strings.Contains(strings.ToLower(e.Description), f.descSub) {
		return false
	}
	return true
}

// List returns copies of entities in insertion order. Filters preserve
// relative order.
func (s *Store) List(opts ...ListOption) []*Entity {
	var filter listFilter
	for _, opt := range opts {
		opt(&filter)
	}
	out := make([]*Entity, 0, len(s.index))
	for _, e := range s.arena {
		if e == nil {
			continue
		}
		if filter.match(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Names returns all entity names sorted, for completion and display.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.index))
	for name := range s.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the distinct entity types sorted, for completion and
// display.
func (s *Store) Types() []string {
	seen := make(map[string]bool)
	for _, e := range s.arena {
		if e != nil && e.Type != "" {
			seen[e.Type] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Clone returns a deep copy of the store, compacting removed slots.
func (s *Store) Clone() *Store {
	out := NewStore()
	for _, e := range s.arena {
		if e == nil {
			continue
		}
		out.arena = append(out.arena, e.Clone())
		out.index[e.Name] = len(out.arena) - 1
	}
	return out
}

func (s *Store) lookup(name string) (*Entity, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, &UnknownEntityError{Name: name}
	}
	return s.arena[i], nil
}
