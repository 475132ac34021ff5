package ambient

import (
	"log/slog"
	"reflect"
	"sync"
)

// Registry is a type-indexed store of default-value factories. A default is
// a property of a type, shared by every parameter of that type regardless of
// name. Populate a registry during startup wiring, before resolution begins.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]func() any
}

// NewRegistry creates an empty, isolated Registry instance.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[reflect.Type]func() any)}
}

var (
	defaultsMu sync.RWMutex
	defaults   = NewRegistry()
)

// Defaults returns the process-wide registry consulted by scopes that were
// not given their own via WithRegistry.
func Defaults() *Registry {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// SetDefaults overrides the process-wide registry. Intended for tests or
// custom wiring. A nil registry is ignored.
func SetDefaults(r *Registry) {
	if r == nil {
		return
	}
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = r
}

// RegisterDefault associates a zero-argument factory with type T in r.
// Registering a second factory for the same type returns a
// *DuplicateDefaultError and leaves the first registration authoritative.
func RegisterDefault[T any](r *Registry, factory func() T) error {
	t := typeOf[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[t]; exists {
		return &DuplicateDefaultError{Type: t}
	}
	slog.Debug("Registering ambient default.", "type", t.String())
	r.factories[t] = func() any { return factory() }
	return nil
}

// MustRegisterDefault is RegisterDefault for startup wiring; it panics on a
// duplicate registration.
func MustRegisterDefault[T any](r *Registry, factory func() T) {
	if err := RegisterDefault(r, factory); err != nil {
		panic(err)
	}
}

// HasDefault reports whether r holds a factory for type T.
func HasDefault[T any](r *Registry) bool {
	_, ok := r.factoryFor(typeOf[T]())
	return ok
}

// MakeDefault materializes the default value for type T. The factory runs on
// every call: materialized defaults are never cached, so an expensive
// factory is re-invoked on each unresolved read. Callers that need
// memoization should bind an explicit value instead of relying on the
// default. Returns a *NoDefaultError when T has no registered factory.
func MakeDefault[T any](r *Registry) (T, error) {
	factory, ok := r.factoryFor(typeOf[T]())
	if !ok {
		var zero T
		return zero, &NoDefaultError{Type: typeOf[T]()}
	}
	return factory().(T), nil
}

// factoryFor looks up the factory for an erased type tag.
func (r *Registry) factoryFor(t reflect.Type) (func() any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[t]
	return factory, ok
}
