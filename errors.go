package ambient

import (
	"fmt"
	"reflect"
)

// DuplicateDefaultError reports a second default registration for a type.
// The first registration stays authoritative; the rejected call leaves the
// registry untouched.
type DuplicateDefaultError struct {
	Type reflect.Type
}

// Error implements the error interface for DuplicateDefaultError.
func (e *DuplicateDefaultError) Error() string {
	return fmt.Sprintf("ambient: default for type %s already registered", e.Type)
}

// NoDefaultError reports a default materialization for a type with no
// registered factory.
type NoDefaultError struct {
	Type reflect.Type
}

// Error implements the error interface for NoDefaultError.
func (e *NoDefaultError) Error() string {
	return fmt.Sprintf("ambient: no default registered for type %s", e.Type)
}

// MissingParameterError reports a resolution that found neither a binding in
// scope nor a default for the key's type. Name and Type identify the key
// that failed to resolve.
type MissingParameterError struct {
	Name string
	Type reflect.Type
}

// Error implements the error interface for MissingParameterError.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("ambient: no binding or default for parameter %s", keyID{name: e.Name, typ: e.Type})
}

// StackDisciplineError reports a release whose binding was not found on the
// stack. Structured use of With makes this unreachable, so it is raised as a
// panic, never returned.
type StackDisciplineError struct {
	ID uint64
}

// Error implements the error interface for StackDisciplineError.
func (e *StackDisciplineError) Error() string {
	return fmt.Sprintf("ambient: scope id %d not on stack, binder discipline violated", e.ID)
}
