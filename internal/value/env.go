package value

import "sort"

// Env is one frame of the symbol table. Lookups fall back to the parent
// frame; the frame without a parent is the root.
//
// Env is not safe for concurrent use.
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewEnv creates an empty frame with the given parent (nil for a root).
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   make(map[string]Value),
	}
}

// Parent returns the parent frame, or nil for a root.
func (e *Env) Parent() *Env {
	return e.parent
}

// SetParent re-links the frame.
func (e *Env) SetParent(parent *Env) {
	e.parent = parent
}

// Root walks to the frame with no parent.
func (e *Env) Root() *Env {
	for e.parent != nil {
		e = e.parent
	}
	return e
}

// Get returns a copy of the value bound to name, searching parent frames.
// An unbound name yields an Error value.
func (e *Env) Get(name string) Value {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return Copy(v)
		}
	}
	return Errorf(UnboundSymbol, "unbound symbol '%s'", name)
}

// Lookup returns the value bound to name without copying it.
func (e *Env) Lookup(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Put binds a copy of v to name in this frame, replacing any binding.
func (e *Env) Put(name string, v Value) {
	e.vars[name] = Copy(v)
}

// Def binds a copy of v to name in the root frame.
func (e *Env) Def(name string, v Value) {
	e.Root().Put(name, v)
}

// Delete removes a binding from this frame.
func (e *Env) Delete(name string) {
	delete(e.vars, name)
}

// Has returns true if name is bound in this frame.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Names returns the names bound in this frame, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Copy creates a new frame with the same parent and deep copies of the
// bindings.
func (e *Env) Copy() *Env {
	clone := NewEnv(e.parent)
	for k, v := range e.vars {
		clone.vars[k] = Copy(v)
	}
	return clone
}
