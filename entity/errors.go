package entity

import (
	"errors"
	"fmt"
)

// ErrReservedProperty is returned when a property operation targets one of
// the core fields (name, type, description).
var ErrReservedProperty = errors.New("reserved property")

// UnknownEntityError reports an operation that referenced a name absent
// from the store.
type UnknownEntityError struct {
	Name string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %q", e.Name)
}

// DuplicateEntityError reports an attempt to add a name already present.
type DuplicateEntityError struct {
	Name string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate entity %q", e.Name)
}

// IsUnknownEntity reports whether err is an UnknownEntityError.
func IsUnknownEntity(err error) bool {
	var target *UnknownEntityError
	return errors.As(err, &target)
}

// IsDuplicateEntity reports whether err is a DuplicateEntityError.
func IsDuplicateEntity(err error) bool {
	var target *DuplicateEntityError
	return errors.As(err, &target)
}
