// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaeval

import (
	"treelua.dev/treelua/internal/luaast"
	"treelua.dev/treelua/internal/luaval"
)

// defaultMaxDepth bounds recursion over AST depth and call depth combined.
// It is deliberately far below the point where an unbounded recursive
// script would exhaust a goroutine's (auto-growing) stack, so that
// runaway recursion fails with a [luaval.StackOverflow] [*luaval.EvalError]
// instead of crashing the process.
const defaultMaxDepth = 220

// maxMetaDepth bounds __index/__newindex/__call metamethod chain
// traversal, guarding against a metatable cycle turning a single indexing
// operation into an infinite loop.
const maxMetaDepth = 200

// Interpreter evaluates an AST against a value universe and scope chain. An
// Interpreter holds only configuration, not per-execution state, so a
// single Interpreter is safe to use concurrently for independent
// executions (each with its own [luaval.Scope] tree); recursion depth is
// passed as a parameter rather than stored on the Interpreter.
type Interpreter struct {
	// MaxDepth overrides defaultMaxDepth if non-zero.
	MaxDepth int
}

// New returns an [*Interpreter] with default settings.
func New() *Interpreter {
	return &Interpreter{}
}

func (it *Interpreter) maxDepth() int {
	if it.MaxDepth > 0 {
		return it.MaxDepth
	}
	return defaultMaxDepth
}

func (it *Interpreter) checkDepth(depth int) error {
	if depth > it.maxDepth() {
		return &luaval.EvalError{Kind: luaval.StackOverflow, Message: "stack overflow"}
	}
	return nil
}

// Execute runs block against scope, returning the values passed to the
// first `return` statement reached, or an empty list if the block falls off
// the end without returning.
func (it *Interpreter) Execute(block *luaast.Block, scope *luaval.Scope) (luaval.Arguments, error) {
	args, sig, err := it.evalBlock(scope, block, 0)
	if err != nil {
		return nil, err
	}
	if sig == SignalReturn {
		return args, nil
	}
	return luaval.Empty, nil
}

// Call invokes fn (a [luaval.Function] or any value with a `__call`
// metamethod) with args, returning its result list.
func (it *Interpreter) Call(fn luaval.Value, args luaval.Arguments) (luaval.Arguments, error) {
	return it.call(fn, args, 0)
}

func (it *Interpreter) call(fn luaval.Value, args luaval.Arguments, depth int) (luaval.Arguments, error) {
	if err := it.checkDepth(depth); err != nil {
		return nil, err
	}
	switch f := fn.(type) {
	case *luaval.HostFunction:
		res, err := f.Fn(args)
		if err != nil {
			if evalErr, ok := err.(*luaval.EvalError); ok {
				return nil, evalErr
			}
			return nil, luaval.NewUserError(luaval.String(err.Error()))
		}
		return res, nil
	case *luaval.Closure:
		var varargs luaval.Arguments
		if f.IsVararg && len(args) > len(f.Params) {
			varargs = args[len(f.Params):]
		}
		callScope := f.Captured.NewClosureChild(varargs)
		for i, p := range f.Params {
			callScope.SetLocal(p, args.Get(i))
		}
		bodyArgs, sig, err := it.evalBlockIn(callScope, f.Body, depth+1)
		if err != nil {
			return nil, err
		}
		if sig == SignalReturn {
			return bodyArgs, nil
		}
		return luaval.Empty, nil
	default:
		if mm := luaval.Metamethod(fn, luaval.MetaCall); mm != nil {
			callArgs := make(luaval.Arguments, 0, len(args)+1)
			callArgs = append(callArgs, fn)
			callArgs = append(callArgs, args...)
			return it.call(mm, callArgs, depth+1)
		}
		return nil, luaval.Errorf(luaval.CallError, "attempt to call a %s value", luaval.TypeOf(fn))
	}
}

// index implements indexed read t[k], consulting __index on a raw miss.
func (it *Interpreter) index(t, k luaval.Value, depth int) (luaval.Value, error) {
	cur := t
	for i := 0; i < maxMetaDepth; i++ {
		if tab, ok := cur.(*luaval.Table); ok {
			if v := tab.Get(k); v != nil {
				return v, nil
			}
		}
		mm := luaval.Metamethod(cur, luaval.MetaIndex)
		switch mm := mm.(type) {
		case nil:
			if _, isTable := cur.(*luaval.Table); !isTable {
				return nil, luaval.Errorf(luaval.TypeError, "attempt to index a %s value", luaval.TypeOf(cur))
			}
			return nil, nil
		case *luaval.Table:
			cur = mm
		case luaval.Function:
			res, err := it.call(mm, luaval.Arguments{t, k}, depth+1)
			if err != nil {
				return nil, err
			}
			return res.First(), nil
		default:
			return nil, luaval.Errorf(luaval.TypeError, "invalid '__index' value")
		}
	}
	return nil, luaval.Errorf(luaval.TypeError, "'__index' chain too long; possible loop")
}

// newindex implements indexed write t[k] = v, consulting __newindex when k
// is not already present on the raw table.
func (it *Interpreter) newindex(t, k, v luaval.Value, depth int) error {
	if tab, ok := t.(*luaval.Table); ok && tab.SetExisting(k, v) {
		return nil
	}
	cur := t
	for i := 0; i < maxMetaDepth; i++ {
		mm := luaval.Metamethod(cur, luaval.MetaNewIndex)
		switch mm := mm.(type) {
		case nil:
			tab, ok := cur.(*luaval.Table)
			if !ok {
				return luaval.Errorf(luaval.TypeError, "attempt to index a %s value", luaval.TypeOf(cur))
			}
			return tab.Set(k, v)
		case *luaval.Table:
			if mm.SetExisting(k, v) {
				return nil
			}
			cur = mm
		case luaval.Function:
			_, err := it.call(mm, luaval.Arguments{t, k, v}, depth+1)
			return err
		default:
			return luaval.Errorf(luaval.TypeError, "invalid '__newindex' value")
		}
	}
	return luaval.Errorf(luaval.TypeError, "'__newindex' chain too long; possible loop")
}
