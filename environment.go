package lux

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefinedVariable is returned when no scope in the chain binds a name.
var ErrUndefinedVariable = errors.New("undefined variable")

// Environment is one scope of the chain. Parents are shared by pointer, so
// closures and nested blocks see the same bindings instead of copies.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

func NewEnv(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]Value),
		parent: parent,
	}
}

// Enclosing returns the parent scope, nil for the globals.
func (env *Environment) Enclosing() *Environment {
	return env.parent
}

// Define always writes into this scope, shadowing any outer binding.
func (env *Environment) Define(name string, value Value) {
	env.vars[name] = value
}

func (env *Environment) Lookup(name string) (Value, bool) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (env *Environment) Get(name string) (Value, error) {
	if v, ok := env.Lookup(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
}

// Assign mutates the nearest scope that already binds name.
func (env *Environment) Assign(name string, value Value) error {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.vars[name]; ok {
			e.vars[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
}

// Names lists the identifiers bound directly in this scope, sorted.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.vars))
	for name := range env.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Depth counts the scopes from this one out to the globals.
func (env *Environment) Depth() int {
	n := 0
	for e := env; e != nil; e = e.parent {
		n++
	}
	return n
}
