// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

// Scope is a lexical environment frame: a mapping of names to values linked
// to an optional parent. A closure's captured scope keeps its parent chain
// reachable for as long as the closure is, which Go's garbage collector
// handles without any special bookkeeping (no reference counting is needed,
// unlike a host language without tracing GC).
type Scope struct {
	vars   map[string]Value
	parent *Scope

	// isClosureRoot marks the scope created for a closure invocation, the
	// level at which varargs is authoritative. Every other scope forwards
	// Varargs to its parent.
	isClosureRoot bool
	varargs       Arguments
}

// NewRootScope returns a fresh top-level [Scope] with no parent and no
// varargs. Bare-name assignment in the root scope creates a new global.
func NewRootScope() *Scope {
	return &Scope{vars: make(map[string]Value), isClosureRoot: true}
}

// NewChild returns a child scope for a nested block (`do...end`, a loop
// body, a branch of an `if`). It inherits varargs from s.
func (s *Scope) NewChild() *Scope {
	return &Scope{vars: make(map[string]Value), parent: s}
}

// NewClosureChild returns a child scope for invoking a closure, with its own
// varargs slot.
func (s *Scope) NewClosureChild(varargs Arguments) *Scope {
	return &Scope{vars: make(map[string]Value), parent: s, isClosureRoot: true, varargs: varargs}
}

// Get returns the nearest binding of name walking outward through parent
// scopes, or nil (Lua nil) if no scope binds it.
func (s *Scope) Get(name string) Value {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v
		}
	}
	return nil
}

// SetLocal binds or rebinds name in this scope only, shadowing any outer
// binding of the same name.
func (s *Scope) SetLocal(name string, v Value) {
	s.vars[name] = v
}

// SetGlobal walks to the root scope (the scope with no parent) and binds
// name there.
func (s *Scope) SetGlobal(name string, v Value) {
	root := s
	for root.parent != nil {
		root = root.parent
	}
	root.vars[name] = v
}

// Set implements bare-name assignment: if name is already bound in s,
// rebind it there; otherwise search outward through parents; if no scope
// (including the root) has it bound, create a new global binding at the
// root. This is Lua's "assignment to a name without `local` targets the
// nearest enclosing declaration, falling back to the global environment."
func (s *Scope) Set(name string, v Value) {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.vars[name]; ok {
			sc.vars[name] = v
			return
		}
		if sc.parent == nil {
			sc.vars[name] = v
			return
		}
	}
}

// Varargs returns the varargs list in effect for this scope: its own, if it
// is a closure-invocation scope, or the nearest enclosing closure's
// varargs. At the root with no enclosing closure, it is empty.
func (s *Scope) Varargs() Arguments {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.isClosureRoot {
			return sc.varargs
		}
	}
	return Empty
}
