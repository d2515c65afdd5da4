package app

import (
	"fmt"
	"sync"
)

// Registry collects the modules compiled into a binary. Modules add
// themselves from init functions, so the order tracks import order and is
// stable for a given build.
type Registry struct {
	mu    sync.RWMutex
	order []Module
	seen  map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]bool)}
}

// Register adds a module. Two modules under the same name is a wiring
// mistake; it panics rather than letting one silently shadow the other.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := m.Name()
	if r.seen[name] {
		panic(fmt.Sprintf("app: module %q registered twice", name))
	}
	r.seen[name] = true
	r.order = append(r.order, m)
}

// Modules returns the registered modules in registration order. The slice
// is a copy; appending to it does not touch the registry.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Module, len(r.order))
	copy(out, r.order)
	return out
}

// defaultRegistry receives init-time self-registrations.
var defaultRegistry = NewRegistry()

// Register adds a module to the process-wide registry. Called from module
// init functions.
func Register(m Module) {
	defaultRegistry.Register(m)
}

// Modules lists the process-wide registry contents.
func Modules() []Module {
	return defaultRegistry.Modules()
}

// ResetGlobalRegistry swaps in an empty process-wide registry. Test helper.
func ResetGlobalRegistry() {
	defaultRegistry = NewRegistry()
}
