// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaeval

import (
	"treelua.dev/treelua/internal/luaast"
	"treelua.dev/treelua/internal/luaval"
)

// evalExprList evaluates a list of expressions following the argument-list
// expansion rule: every expression but the last contributes exactly one
// value; the last expression contributes every value it produces. This is
// shared by call arguments, return lists, local/global assignment RHS, and
// generic-for expression lists; table constructors apply the same rule in
// evalTableConstructor.
func (it *Interpreter) evalExprList(scope *luaval.Scope, exprs []luaast.Expr, depth int) (luaval.Arguments, error) {
	if len(exprs) == 0 {
		return luaval.Empty, nil
	}
	out := make(luaval.Arguments, 0, len(exprs))
	for _, e := range exprs[:len(exprs)-1] {
		v, err := it.evalSingle(scope, e, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	last, err := it.evalExpr(scope, exprs[len(exprs)-1], depth)
	if err != nil {
		return nil, err
	}
	return append(out, last...), nil
}

// evalSingle evaluates e in a single-value context, discarding any
// additional values a multi-value expression would produce.
func (it *Interpreter) evalSingle(scope *luaval.Scope, e luaast.Expr, depth int) (luaval.Value, error) {
	args, err := it.evalExpr(scope, e, depth)
	if err != nil {
		return nil, err
	}
	return args.First(), nil
}

// evalExpr evaluates e, returning every value it produces: more than one
// only for a [luaast.FunctionCall] or [luaast.VarargsLiteral] in tail
// position of a list, but callers not in such a position should call
// evalSingle instead.
func (it *Interpreter) evalExpr(scope *luaval.Scope, e luaast.Expr, depth int) (luaval.Arguments, error) {
	if err := it.checkDepth(depth); err != nil {
		return nil, err
	}
	switch e := e.(type) {
	case luaast.NilLiteral:
		return luaval.One(nil), nil
	case luaast.BoolLiteral:
		return luaval.One(luaval.Bool(e.Value)), nil
	case luaast.NumberLiteral:
		return luaval.One(luaval.Number(e.Value)), nil
	case luaast.StringLiteral:
		return luaval.One(luaval.String(e.Value)), nil
	case luaast.VarargsLiteral:
		return scope.Varargs(), nil

	case *luaast.Variable:
		if e.Prefix == nil {
			return luaval.One(scope.Get(e.Name)), nil
		}
		prefix, err := it.evalSingle(scope, e.Prefix, depth+1)
		if err != nil {
			return nil, err
		}
		v, err := it.index(prefix, luaval.String(e.Name), depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.One(v), nil

	case *luaast.TableAccess:
		obj, err := it.evalSingle(scope, e.Expr, depth+1)
		if err != nil {
			return nil, err
		}
		key, err := it.evalSingle(scope, e.Index, depth+1)
		if err != nil {
			return nil, err
		}
		v, err := it.index(obj, key, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.One(v), nil

	case *luaast.FunctionCall:
		fn, err := it.evalSingle(scope, e.Callee, depth+1)
		if err != nil {
			return nil, err
		}
		args, err := it.evalExprList(scope, e.Args, depth+1)
		if err != nil {
			return nil, err
		}
		return it.call(fn, args, depth+1)

	case *luaast.BinaryExpression:
		return it.evalBinaryExpr(scope, e, depth)

	case *luaast.UnaryExpression:
		v, err := it.evalSingle(scope, e.Expr, depth+1)
		if err != nil {
			return nil, err
		}
		res, err := it.unary(e.Op, v, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.One(res), nil

	case *luaast.FunctionDefinition:
		return luaval.One(luaval.NewClosure(e.Params, e.IsVararg, e.Body, scope)), nil

	case *luaast.TableConstructor:
		return it.evalTableConstructor(scope, e, depth)

	default:
		return nil, luaval.Errorf(luaval.TypeError, "unsupported expression node %T", e)
	}
}

// evalBinaryExpr handles And/Or short-circuiting before falling through to
// the non-short-circuit operator dispatch in ops.go.
func (it *Interpreter) evalBinaryExpr(scope *luaval.Scope, e *luaast.BinaryExpression, depth int) (luaval.Arguments, error) {
	switch e.Op {
	case luaast.And:
		a, err := it.evalSingle(scope, e.Left, depth+1)
		if err != nil {
			return nil, err
		}
		if !luaval.Truthy(a) {
			return luaval.One(a), nil
		}
		b, err := it.evalSingle(scope, e.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.One(b), nil

	case luaast.Or:
		a, err := it.evalSingle(scope, e.Left, depth+1)
		if err != nil {
			return nil, err
		}
		if luaval.Truthy(a) {
			return luaval.One(a), nil
		}
		b, err := it.evalSingle(scope, e.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.One(b), nil

	default:
		a, err := it.evalSingle(scope, e.Left, depth+1)
		if err != nil {
			return nil, err
		}
		b, err := it.evalSingle(scope, e.Right, depth+1)
		if err != nil {
			return nil, err
		}
		res, err := it.binary(e.Op, a, b, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.One(res), nil
	}
}

// evalTableConstructor builds a new table, applying the argument-list
// expansion rule only to a trailing positional field.
func (it *Interpreter) evalTableConstructor(scope *luaval.Scope, e *luaast.TableConstructor, depth int) (luaval.Arguments, error) {
	t := luaval.NewTable(len(e.Fields))
	arrayIndex := 1
	for i, f := range e.Fields {
		if f.Key != nil {
			key, err := it.evalSingle(scope, f.Key, depth+1)
			if err != nil {
				return nil, err
			}
			val, err := it.evalSingle(scope, f.Value, depth+1)
			if err != nil {
				return nil, err
			}
			if err := t.Set(key, val); err != nil {
				return nil, err
			}
			continue
		}

		if i == len(e.Fields)-1 {
			vals, err := it.evalExpr(scope, f.Value, depth+1)
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				if err := t.Set(luaval.Number(arrayIndex), v); err != nil {
					return nil, err
				}
				arrayIndex++
			}
			continue
		}

		val, err := it.evalSingle(scope, f.Value, depth+1)
		if err != nil {
			return nil, err
		}
		if err := t.Set(luaval.Number(arrayIndex), val); err != nil {
			return nil, err
		}
		arrayIndex++
	}
	return luaval.One(t), nil
}
