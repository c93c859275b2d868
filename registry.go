package lux

import (
	"fmt"
	"sort"
	"sync"
)

// NativeRegistry manages native functions in a thread-safe manner. An
// interpreter copies the registry into its global scope once, at
// construction, so later registrations only affect new interpreters.
type NativeRegistry struct {
	mu      sync.RWMutex
	natives map[string]*Native
}

func NewNativeRegistry() *NativeRegistry {
	return &NativeRegistry{
		natives: make(map[string]*Native),
	}
}

// Register adds a native. Names are case-sensitive, like every identifier.
func (r *NativeRegistry) Register(n *Native) error {
	if n == nil || n.Fn == nil {
		return fmt.Errorf("native function cannot be nil")
	}
	if n.Name == "" {
		return fmt.Errorf("native function name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.natives[n.Name]; exists {
		return fmt.Errorf("native function %s already registered", n.Name)
	}
	r.natives[n.Name] = n
	return nil
}

// RegisterFunc is shorthand for Register(&Native{...}).
func (r *NativeRegistry) RegisterFunc(name string, arity int, fn NativeFunc) error {
	return r.Register(&Native{Name: name, ArityN: arity, Fn: fn})
}

// MustRegister panics on registration errors; meant for package-level tables.
func (r *NativeRegistry) MustRegister(n *Native) *NativeRegistry {
	if err := r.Register(n); err != nil {
		panic(err)
	}
	return r
}

func (r *NativeRegistry) Lookup(name string) (*Native, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.natives[name]
	return n, ok
}

// List returns registered names in sorted order.
func (r *NativeRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.natives))
	for name := range r.natives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone copies the registry so callers can extend the defaults without
// touching them.
func (r *NativeRegistry) Clone() *NativeRegistry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := NewNativeRegistry()
	for name, n := range r.natives {
		out.natives[name] = n
	}
	return out
}

// Install defines every registered native in env.
func (r *NativeRegistry) Install(env *Environment) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, n := range r.natives {
		env.Define(name, n)
	}
}
