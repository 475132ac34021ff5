package ambient

import (
	"fmt"
	"reflect"
)

// keyID is the erased identity of a Key: the (name, type) pair. It is
// comparable, so it serves directly as the lookup identity on scope stacks.
type keyID struct {
	name string
	typ  reflect.Type
}

// String renders the identity as name<type>, or <type> for unnamed keys.
func (id keyID) String() string {
	if id.name == "" {
		return fmt.Sprintf("<%s>", id.typ)
	}
	return fmt.Sprintf("%s<%s>", id.name, id.typ)
}

// Key identifies a contextual parameter of type T. Two keys identify the
// same parameter iff both their name and their type match: parameters of the
// same type under different names are distinct, and a named key never
// collides with the unnamed key of its type.
//
// Keys are immutable. Construct one per declared parameter site, typically
// as a package-level variable, and reuse it at every override and read site.
// The zero Key[T] is the unnamed key for T.
type Key[T any] struct {
	id keyID
}

// NewKey returns the unnamed key for type T.
func NewKey[T any]() Key[T] {
	return Key[T]{id: keyID{typ: typeOf[T]()}}
}

// NamedKey returns the key for type T distinguished by name. An empty name
// yields the unnamed key, same as NewKey.
func NamedKey[T any](name string) Key[T] {
	return Key[T]{id: keyID{name: name, typ: typeOf[T]()}}
}

// Name returns the key's name, or "" for unnamed keys.
func (k Key[T]) Name() string { return k.id.name }

// Type returns the key's parameter type.
func (k Key[T]) Type() reflect.Type { return k.normalized().typ }

// Equal reports whether both keys identify the same parameter.
func (k Key[T]) Equal(other Key[T]) bool { return k.normalized() == other.normalized() }

// String renders the key for diagnostics.
func (k Key[T]) String() string { return k.normalized().String() }

// normalized returns the erased identity, materializing the type tag for
// zero-value keys that were never built through a constructor.
func (k Key[T]) normalized() keyID {
	if k.id.typ == nil {
		k.id.typ = typeOf[T]()
	}
	return k.id
}

// typeOf resolves the reflect.Type of T without needing a value of T.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
