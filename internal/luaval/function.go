// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

import "treelua.dev/treelua/internal/luaast"

// Function is a callable Lua value: either a [HostFunction] wrapping a
// native Go callable, or a [Closure] wrapping an AST function body and its
// captured scope. Invocation itself is implemented by the evaluator, not by
// this package, since calling a [Closure] means re-entering the AST walker.
type Function interface {
	Value
	functionID() uint64
}

// HostFunc is the signature of a Lua function implemented in Go. It
// receives the call arguments and returns the result list, or an error
// (ordinarily a [*EvalError], but any error is accepted and surfaced to the
// script as a [UserError] carrying its Error() string).
type HostFunc func(args Arguments) (Arguments, error)

// HostFunction is a [Function] backed by a native Go callable.
type HostFunction struct {
	id   uint64
	Name string
	Fn   HostFunc
}

// NewHostFunction wraps fn as a [Function] value. name is used only for
// diagnostics (error messages, tracebacks).
func NewHostFunction(name string, fn HostFunc) *HostFunction {
	return &HostFunction{id: newID(), Name: name, Fn: fn}
}

func (f *HostFunction) valueType() Type    { return TypeFunction }
func (f *HostFunction) functionID() uint64 { return f.id }

// Closure is a [Function] backed by an AST function body, bound to the
// scope that was active at the point the function literal was evaluated.
type Closure struct {
	id       uint64
	Params   []string
	IsVararg bool
	Body     *luaast.Block
	// Captured is the lexical scope the closure closes over.
	Captured *Scope
}

// NewClosure captures scope as the closure's lexical environment.
func NewClosure(params []string, isVararg bool, body *luaast.Block, scope *Scope) *Closure {
	return &Closure{id: newID(), Params: params, IsVararg: isVararg, Body: body, Captured: scope}
}

func (f *Closure) valueType() Type    { return TypeFunction }
func (f *Closure) functionID() uint64 { return f.id }
