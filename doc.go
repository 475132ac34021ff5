// Package ambient provides scoped contextual parameters for Go: values that
// code deep in a call chain can read without being threaded through every
// intermediate signature, overridable per call for a bounded dynamic extent.
//
// A parameter is identified by a [Key], the pair of an optional name and a Go
// type. Callers override a parameter for the duration of one call with
// [With]; callees read it with [Resolve]. When no binding is in scope,
// resolution falls back to a type-registered default.
//
//	var RegionKey = ambient.NamedKey[string]("region")
//
//	func handler(scope *ambient.Scope) error {
//	    return ambient.With(scope, RegionKey, "eu-west-1", func() error {
//	        return doWork(scope) // doWork resolves "eu-west-1"
//	    })
//	}
//
// # Scopes
//
// A [Scope] is the stack of active bindings for one logical call tree. Nested
// [With] calls shadow outer bindings for the same key; the outer value becomes
// visible again the moment the inner call returns. Bindings are released on
// every exit path, including panics, so no binding outlives the call that
// created it.
//
// Each concurrent call tree must own its own Scope. Use [Scope.Fork] to seed
// a child goroutine with the currently visible bindings, or spawn tasks via
// the ambientgroup subpackage, which forks per task automatically. The
// ambientctx subpackage carries a Scope through context.Context for call
// chains that already pass one. The cmd/ambientcheck linter reports scopes
// that cross a go statement unforked.
//
// # Defaults
//
// A default is a property of a type, shared by every parameter of that type
// regardless of name. Register a factory once at startup with
// [RegisterDefault]; registering twice for one type is rejected. Defaults are
// materialized on every unresolved read; the factory result is never cached.
//
// Types can instead carry their default in the type system by implementing
// [Defaulter] on themselves. [MustResolve] constrains its type parameter to
// such types, which makes "the caller supplies a value or the type has a
// default" a compile-time obligation rather than a runtime check.
package ambient
