package ambient

// With binds value to key on s for the dynamic extent of body: body and
// everything it calls against this scope observes the binding, while callers
// of With never do. The binding is released on every exit path — normal
// return, error return, and panic — and a panic from body continues to
// propagate after the release. Release targets the exact binding pushed
// here, not whatever happens to sit on top of the stack.
func With[T any](s *Scope, key Key[T], value T, body func() error) error {
	sid := s.push(key.normalized(), value)
	defer s.release(sid)
	return body()
}

// Binding is one prepared (key, value) pair for WithAll. Construct it with
// Bound.
type Binding struct {
	id    keyID
	value any
}

// Bound pairs key with value for a WithAll call.
func Bound[T any](key Key[T], value T) Binding {
	return Binding{id: key.normalized(), value: value}
}

// WithAll applies binds left to right — the rightmost binding is innermost
// and shadows the others on key collisions — runs body, and releases in
// reverse order on every exit path. It is chaining sugar over With for
// stacking several overrides around one call, and introduces no semantics of
// its own.
func WithAll(s *Scope, body func() error, binds ...Binding) error {
	sids := make([]scopeID, len(binds))
	for i, b := range binds {
		sids[i] = s.push(b.id, b.value)
	}
	defer func() {
		for i := len(sids) - 1; i >= 0; i-- {
			s.release(sids[i])
		}
	}()
	return body()
}
