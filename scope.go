package ambient

import (
	"log/slog"
	"reflect"
	"sync"
)

// scopeID tags one binder invocation. Fresh per push, never reused within a
// Scope.
type scopeID uint64

// binding is one (key, value) association on a scope stack. Immutable once
// pushed: overriding a parameter pushes a new binding rather than mutating
// an existing one.
type binding struct {
	id    keyID
	value any
	scope scopeID
}

// Scope is the stack of active bindings for one logical call tree. Inner
// bindings shadow outer bindings for the same key; releasing the inner one
// restores the outer.
//
// A Scope must be owned by a single logical call tree. Hand bindings to a
// concurrently running goroutine with Fork (or the ambientgroup subpackage),
// never by sharing the Scope itself. The stack is mutex-guarded so that one
// logical task may hop OS threads — for example across suspension points of
// a ctx-carrying call chain — without corrupting it.
type Scope struct {
	registry *Registry
	logger   *slog.Logger

	mu    sync.Mutex
	stack []binding
	next  scopeID
}

// Option configures a Scope.
type Option func(*Scope)

// WithLogger directs the scope's push/release narration to logger instead of
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scope) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry resolves defaults against r instead of the process-wide
// registry.
func WithRegistry(r *Registry) Option {
	return func(s *Scope) {
		s.registry = r
	}
}

// NewScope creates an empty scope stack.
func NewScope(opts ...Option) *Scope {
	s := &Scope{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len reports the number of bindings currently on the stack, shadowed ones
// included.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}

// push appends a binding and tags it with a fresh scope id.
func (s *Scope) push(id keyID, value any) scopeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	sid := s.next
	s.stack = append(s.stack, binding{id: id, value: value, scope: sid})
	s.log().Debug("Pushed ambient binding.", "key", id.String(), "scope_id", uint64(sid), "depth", len(s.stack))
	return sid
}

// release removes the binding tagged sid. Release targets that exact
// binding, never merely the top of the stack: bindings pushed above it that
// were not released belong to scopes that leaked past their binder, and are
// swept off with a warning. A sid that is nowhere on the stack means the
// binder discipline itself was broken, and release panics with a
// *StackDisciplineError.
func (s *Scope) release(sid scopeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].scope != sid {
			continue
		}
		if leaked := len(s.stack) - i - 1; leaked > 0 {
			s.log().Warn("Discarding bindings leaked past their binder.", "count", leaked, "scope_id", uint64(sid))
		}
		// Clear discarded entries so held values become collectable.
		for j := i; j < len(s.stack); j++ {
			s.stack[j] = binding{}
		}
		s.stack = s.stack[:i]
		s.log().Debug("Released ambient binding.", "scope_id", uint64(sid), "depth", len(s.stack))
		return
	}
	panic(&StackDisciplineError{ID: uint64(sid)})
}

// lookup scans from the innermost binding outward and returns the first
// value bound to id. Shadowed bindings stay on the stack and become visible
// again once the shadowing binding is released.
func (s *Scope) lookup(id keyID) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].id == id {
			return s.stack[i].value, true
		}
	}
	return nil, false
}

// log returns the scope's logger, defaulting for zero-value scopes.
func (s *Scope) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

// reg returns the registry this scope resolves defaults against. A nil
// scope and a scope without its own registry both use the process-wide one.
func (s *Scope) reg() *Registry {
	if s == nil || s.registry == nil {
		return Defaults()
	}
	return s.registry
}

// VisibleBinding is one entry of a Visible snapshot: an erased view of a
// currently resolvable (key, value) pair.
type VisibleBinding struct {
	Name  string
	Type  reflect.Type
	Value any
}

// Visible returns a snapshot of the bindings currently visible in s, one per
// key with the innermost value winning, ordered outermost first. It serves
// diagnostics and bridges such as ambienthcl; resolution itself goes through
// Resolve. A nil scope has no visible bindings.
func (s *Scope) Visible() []VisibleBinding {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

// visibleLocked collects the visible snapshot; callers hold s.mu.
func (s *Scope) visibleLocked() []VisibleBinding {
	seen := make(map[keyID]bool, len(s.stack))
	var out []VisibleBinding
	for i := len(s.stack) - 1; i >= 0; i-- {
		b := s.stack[i]
		if seen[b.id] {
			continue
		}
		seen[b.id] = true
		out = append(out, VisibleBinding{Name: b.id.name, Type: b.id.typ, Value: b.value})
	}
	// Reverse into outermost-first order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Fork returns a new independent Scope seeded with the bindings visible in s
// at the moment of the call, innermost value winning per key. The fork
// shares the registry but owns its own stack, so overrides on either side
// stay invisible to the other. Fork before spawning a goroutine that needs
// the current bindings. Forking a nil scope yields a fresh empty scope.
func (s *Scope) Fork() *Scope {
	if s == nil {
		return NewScope()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fork := &Scope{registry: s.registry, logger: s.logger}
	for _, vb := range s.visibleLocked() {
		fork.next++
		fork.stack = append(fork.stack, binding{
			id:    keyID{name: vb.Name, typ: vb.Type},
			value: vb.Value,
			scope: fork.next,
		})
	}
	return fork
}
