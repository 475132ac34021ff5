package ambient

// Defaulter is the static capability "type T has a default". A type
// implementing it on itself carries its fallback value in the type system:
//
//	type Config struct{ Option int }
//
//	func (Config) AmbientDefault() Config { return Config{Option: 0} }
//
// Such types satisfy the MustResolve constraint, which turns
// "the caller supplies a value or the type has a default" into a
// compile-time obligation. Prefer value receivers; a pointer-typed parameter
// with a pointer receiver is invoked on a nil receiver when unbound.
type Defaulter[T any] interface {
	AmbientDefault() T
}

// Resolve returns the value bound to key in s, searching the scope stack
// from the innermost binding outward. When no binding is in scope it falls
// back to the registry default for the key's type, then to T's own Defaulter
// implementation; when all three miss it returns a *MissingParameterError
// identifying the key. A bound value is returned exactly as supplied to the
// enclosing With. A nil scope resolves defaults only.
func Resolve[T any](s *Scope, key Key[T]) (T, error) {
	id := key.normalized()
	if s != nil {
		if v, ok := s.lookup(id); ok {
			return v.(T), nil
		}
	}
	if factory, ok := s.reg().factoryFor(id.typ); ok {
		return factory().(T), nil
	}
	var zero T
	if d, ok := any(zero).(Defaulter[T]); ok {
		return d.AmbientDefault(), nil
	}
	return zero, &MissingParameterError{Name: id.name, Type: id.typ}
}

// MustResolve is Resolve for types that carry their default in the type
// system. The Defaulter constraint guarantees a fallback exists, so the read
// cannot fail: stack first, then the registry, then T's AmbientDefault.
func MustResolve[T Defaulter[T]](s *Scope, key Key[T]) T {
	v, err := Resolve(s, key)
	if err != nil {
		// Unreachable: the Defaulter bound guarantees a fallback.
		panic(err)
	}
	return v
}
