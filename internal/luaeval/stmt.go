// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaeval

import (
	"treelua.dev/treelua/internal/luaast"
	"treelua.dev/treelua/internal/luaval"
)

// evalBlock runs block in a fresh child scope of parent, the ordinary case
// for a loop body or an if/else branch.
func (it *Interpreter) evalBlock(parent *luaval.Scope, block *luaast.Block, depth int) (luaval.Arguments, Signal, error) {
	return it.evalBlockIn(parent.NewChild(), block, depth)
}

// evalBlockIn runs block directly in scope, without creating a further
// child. Used for closure invocation (so parameters and the body's top-level
// locals share one frame) and for a repeat-loop body (so its trailing
// `until` condition can see locals the body declared).
func (it *Interpreter) evalBlockIn(scope *luaval.Scope, block *luaast.Block, depth int) (luaval.Arguments, Signal, error) {
	if err := it.checkDepth(depth); err != nil {
		return nil, SignalNormal, err
	}
	for _, s := range block.Stmts {
		args, sig, err := it.evalStmt(scope, s, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		if sig != SignalNormal {
			return args, sig, nil
		}
	}
	return luaval.Empty, SignalNormal, nil
}

func (it *Interpreter) evalStmt(scope *luaval.Scope, s luaast.Stmt, depth int) (luaval.Arguments, Signal, error) {
	switch s := s.(type) {
	case *luaast.Assignment:
		return it.evalAssignment(scope, s, depth)

	case *luaast.LocalAssignment:
		values, err := it.evalExprList(scope, s.Values, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		for i, name := range s.Names {
			scope.SetLocal(name, values.Get(i))
		}
		return luaval.Empty, SignalNormal, nil

	case *luaast.ReturnStat:
		values, err := it.evalExprList(scope, s.Values, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		return values, SignalReturn, nil

	case luaast.BreakStat:
		return luaval.Empty, SignalBreak, nil

	case *luaast.FunctionCall:
		_, err := it.evalExpr(scope, s, depth+1)
		return luaval.Empty, SignalNormal, err

	case *luaast.Block:
		return it.evalBlock(scope, s, depth)

	case *luaast.IfStat:
		return it.evalIf(scope, s, depth)

	case *luaast.WhileStat:
		return it.evalWhile(scope, s, depth)

	case *luaast.RepeatStat:
		return it.evalRepeat(scope, s, depth)

	case *luaast.NumericFor:
		return it.evalNumericFor(scope, s, depth)

	case *luaast.GenericFor:
		return it.evalGenericFor(scope, s, depth)

	default:
		return nil, SignalNormal, luaval.Errorf(luaval.TypeError, "unsupported statement node %T", s)
	}
}

// evalAssignment evaluates every RHS value before writing any target, so
// that `a, b = b, a` swaps correctly.
func (it *Interpreter) evalAssignment(scope *luaval.Scope, s *luaast.Assignment, depth int) (luaval.Arguments, Signal, error) {
	values, err := it.evalExprList(scope, s.Values, depth+1)
	if err != nil {
		return nil, SignalNormal, err
	}
	for i, target := range s.Targets {
		v := values.Get(i)
		if err := it.assign(scope, target, v, depth+1); err != nil {
			return nil, SignalNormal, err
		}
	}
	return luaval.Empty, SignalNormal, nil
}

func (it *Interpreter) assign(scope *luaval.Scope, target luaast.Assignable, v luaval.Value, depth int) error {
	switch t := target.(type) {
	case *luaast.Variable:
		if t.Prefix == nil {
			scope.Set(t.Name, v)
			return nil
		}
		prefix, err := it.evalSingle(scope, t.Prefix, depth+1)
		if err != nil {
			return err
		}
		return it.newindex(prefix, luaval.String(t.Name), v, depth+1)

	case *luaast.TableAccess:
		obj, err := it.evalSingle(scope, t.Expr, depth+1)
		if err != nil {
			return err
		}
		key, err := it.evalSingle(scope, t.Index, depth+1)
		if err != nil {
			return err
		}
		return it.newindex(obj, key, v, depth+1)

	default:
		return luaval.Errorf(luaval.TypeError, "unsupported assignment target %T", target)
	}
}

// evalIf runs the block of the first truthy condition among the `if` clause
// and its `elseif`s, falling back to `else`. Each branch runs its own block.
func (it *Interpreter) evalIf(scope *luaval.Scope, s *luaast.IfStat, depth int) (luaval.Arguments, Signal, error) {
	cond, err := it.evalSingle(scope, s.Cond, depth+1)
	if err != nil {
		return nil, SignalNormal, err
	}
	if luaval.Truthy(cond) {
		return it.evalBlock(scope, s.Block, depth+1)
	}
	for _, clause := range s.Elseifs {
		cond, err := it.evalSingle(scope, clause.Cond, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		if luaval.Truthy(cond) {
			return it.evalBlock(scope, clause.Block, depth+1)
		}
	}
	if s.Else != nil {
		return it.evalBlock(scope, s.Else, depth+1)
	}
	return luaval.Empty, SignalNormal, nil
}

func (it *Interpreter) evalWhile(scope *luaval.Scope, s *luaast.WhileStat, depth int) (luaval.Arguments, Signal, error) {
	for {
		if err := it.checkDepth(depth); err != nil {
			return nil, SignalNormal, err
		}
		cond, err := it.evalSingle(scope, s.Cond, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		if !luaval.Truthy(cond) {
			return luaval.Empty, SignalNormal, nil
		}
		args, sig, err := it.evalBlock(scope, s.Block, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		switch sig {
		case SignalBreak:
			return luaval.Empty, SignalNormal, nil
		case SignalReturn:
			return args, sig, nil
		}
	}
}

// evalRepeat keeps the body's scope alive across the trailing condition
// test, so the condition can see locals the body declared.
func (it *Interpreter) evalRepeat(scope *luaval.Scope, s *luaast.RepeatStat, depth int) (luaval.Arguments, Signal, error) {
	for {
		if err := it.checkDepth(depth); err != nil {
			return nil, SignalNormal, err
		}
		bodyScope := scope.NewChild()
		args, sig, err := it.evalBlockIn(bodyScope, s.Block, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		switch sig {
		case SignalBreak:
			return luaval.Empty, SignalNormal, nil
		case SignalReturn:
			return args, sig, nil
		}
		cond, err := it.evalSingle(bodyScope, s.Cond, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		if luaval.Truthy(cond) {
			return luaval.Empty, SignalNormal, nil
		}
	}
}

func (it *Interpreter) evalNumericFor(scope *luaval.Scope, s *luaast.NumericFor, depth int) (luaval.Arguments, Signal, error) {
	start, err := it.forNumber(scope, s.Start, depth)
	if err != nil {
		return nil, SignalNormal, err
	}
	limit, err := it.forNumber(scope, s.Limit, depth)
	if err != nil {
		return nil, SignalNormal, err
	}
	step := luaval.Number(1)
	if s.Step != nil {
		step, err = it.forNumber(scope, s.Step, depth)
		if err != nil {
			return nil, SignalNormal, err
		}
	}
	if step == 0 {
		return nil, SignalNormal, &luaval.EvalError{Kind: luaval.LoopError, Message: "'for' step is zero"}
	}

	for i := start; (step > 0 && i <= limit) || (step < 0 && i >= limit); i += step {
		if err := it.checkDepth(depth); err != nil {
			return nil, SignalNormal, err
		}
		iterScope := scope.NewChild()
		iterScope.SetLocal(s.Var, i)
		args, sig, err := it.evalBlockIn(iterScope, s.Block, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		switch sig {
		case SignalBreak:
			return luaval.Empty, SignalNormal, nil
		case SignalReturn:
			return args, sig, nil
		}
	}
	return luaval.Empty, SignalNormal, nil
}

func (it *Interpreter) forNumber(scope *luaval.Scope, e luaast.Expr, depth int) (luaval.Number, error) {
	v, err := it.evalSingle(scope, e, depth+1)
	if err != nil {
		return 0, err
	}
	n, ok := luaval.ToNumber(v)
	if !ok {
		return 0, &luaval.EvalError{Kind: luaval.LoopError, Message: "'for' initial value must be a number"}
	}
	return n, nil
}

// evalGenericFor tests the iterator's result before binding loop variables,
// so a generic-for whose body never runs does not leave stray bindings from
// a final, discarded iteration.
func (it *Interpreter) evalGenericFor(scope *luaval.Scope, s *luaast.GenericFor, depth int) (luaval.Arguments, Signal, error) {
	ctrl, err := it.evalExprList(scope, s.Exprs, depth+1)
	if err != nil {
		return nil, SignalNormal, err
	}
	iterFn := ctrl.Get(0)
	state := ctrl.Get(1)
	control := ctrl.Get(2)

	for {
		if err := it.checkDepth(depth); err != nil {
			return nil, SignalNormal, err
		}
		res, err := it.call(iterFn, luaval.Arguments{state, control}, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		if res.First() == nil {
			return luaval.Empty, SignalNormal, nil
		}
		control = res.First()

		iterScope := scope.NewChild()
		for i, name := range s.Vars {
			iterScope.SetLocal(name, res.Get(i))
		}
		args, sig, err := it.evalBlockIn(iterScope, s.Block, depth+1)
		if err != nil {
			return nil, SignalNormal, err
		}
		switch sig {
		case SignalBreak:
			return luaval.Empty, SignalNormal, nil
		case SignalReturn:
			return args, sig, nil
		}
	}
}
