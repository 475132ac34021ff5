package scopeshare

import (
	"github.com/vk/ambient"
)

func use(s *ambient.Scope) {}

// Capturing the spawning call tree's scope inside the goroutine body.
func capturedShared() {
	scope := ambient.NewScope()
	go func() {
		use(scope) // want `goroutine captures ambient scope "scope" owned by the spawning call tree; hand it a Scope\.Fork or spawn via ambientgroup`
	}()
	use(scope)
}

// A fork taken before the spawn is an independent stack.
func capturedFork() {
	scope := ambient.NewScope()
	fork := scope.Fork()
	go func() {
		use(fork) // OK
	}()
	use(scope)
}

// A scope created inside the goroutine is owned by the goroutine.
func ownScope() {
	go func() {
		scope := ambient.NewScope()
		use(scope) // OK
	}()
}

// Passing the scope as an argument to the spawned call.
func argumentShared() {
	scope := ambient.NewScope()
	go use(scope) // want `goroutine receives the spawning call tree's ambient scope; pass a Scope\.Fork instead`
}

// Forking inline at the spawn site.
func argumentForkCall() {
	scope := ambient.NewScope()
	go use(scope.Fork()) // OK
}

// Forking into a variable before the spawn.
func argumentForkVar() {
	scope := ambient.NewScope()
	fork := scope.Fork()
	go use(fork) // OK
	use(scope)
}
