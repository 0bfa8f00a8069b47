// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaeval

import (
	"math"

	"treelua.dev/treelua/internal/luaast"
	"treelua.dev/treelua/internal/luaval"
)

// binary dispatches a non-short-circuit binary operator. And/Or are handled
// in evalBinaryExpr directly, since they must not evaluate their right operand
// unconditionally.
func (it *Interpreter) binary(op luaast.BinaryOperator, a, b luaval.Value, depth int) (luaval.Value, error) {
	switch op {
	case luaast.Addition, luaast.Subtraction, luaast.Multiplication, luaast.Division, luaast.Modulo, luaast.Power:
		return it.arithmetic(op, a, b, depth)
	case luaast.Concat:
		return it.concat(a, b, depth)
	case luaast.Equal:
		eq, err := it.equal(a, b, depth)
		return luaval.Bool(eq), err
	case luaast.Different:
		eq, err := it.equal(a, b, depth)
		return luaval.Bool(!eq), err
	case luaast.LessThan:
		return it.less(a, b, depth)
	case luaast.LessOrEqual:
		return it.lessEqual(a, b, depth)
	case luaast.GreaterThan:
		return it.less(b, a, depth)
	case luaast.GreaterOrEqual:
		return it.lessEqual(b, a, depth)
	default:
		return nil, luaval.Errorf(luaval.TypeError, "unsupported binary operator %s", op)
	}
}

func (it *Interpreter) arithmetic(op luaast.BinaryOperator, a, b luaval.Value, depth int) (luaval.Value, error) {
	an, aok := luaval.ToNumber(a)
	bn, bok := luaval.ToNumber(b)
	if aok && bok {
		return luaval.Number(applyArithmetic(op, float64(an), float64(bn))), nil
	}

	event, _ := luaval.ArithmeticEvent(op.String())
	if mm := luaval.BinaryMetamethod(a, b, event); mm != nil {
		res, err := it.call(mm, luaval.Arguments{a, b}, depth+1)
		if err != nil {
			return nil, err
		}
		return res.First(), nil
	}

	bad := a
	if aok {
		bad = b
	}
	return nil, luaval.Errorf(luaval.ArithmeticError, "attempt to perform arithmetic on a %s value", luaval.TypeOf(bad))
}

func applyArithmetic(op luaast.BinaryOperator, a, b float64) float64 {
	switch op {
	case luaast.Addition:
		return a + b
	case luaast.Subtraction:
		return a - b
	case luaast.Multiplication:
		return a * b
	case luaast.Division:
		return a / b
	case luaast.Modulo:
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r
	case luaast.Power:
		return math.Pow(a, b)
	default:
		panic("luaeval: applyArithmetic given a non-arithmetic operator")
	}
}

func (it *Interpreter) concat(a, b luaval.Value, depth int) (luaval.Value, error) {
	as, aok := luaval.ToStringValue(a)
	bs, bok := luaval.ToStringValue(b)
	if aok && bok {
		return as + bs, nil
	}
	if mm := luaval.BinaryMetamethod(a, b, luaval.MetaConcat); mm != nil {
		res, err := it.call(mm, luaval.Arguments{a, b}, depth+1)
		if err != nil {
			return nil, err
		}
		return res.First(), nil
	}
	bad := a
	if aok {
		bad = b
	}
	return nil, luaval.Errorf(luaval.TypeError, "attempt to concatenate a %s value", luaval.TypeOf(bad))
}

// equal implements `==`: same-type primitives compare by [luaval.RawEqual];
// two distinct tables additionally consult `__eq` (Lua only tries `__eq`
// when both operands are tables and raw-unequal).
func (it *Interpreter) equal(a, b luaval.Value, depth int) (bool, error) {
	if luaval.RawEqual(a, b) {
		return true, nil
	}
	ta, _ := a.(*luaval.Table)
	tb, _ := b.(*luaval.Table)
	if ta == nil || tb == nil {
		return false, nil
	}
	mm := luaval.BinaryMetamethod(a, b, luaval.MetaEq)
	if mm == nil {
		return false, nil
	}
	res, err := it.call(mm, luaval.Arguments{a, b}, depth+1)
	if err != nil {
		return false, err
	}
	return luaval.Truthy(res.First()), nil
}

func (it *Interpreter) less(a, b luaval.Value, depth int) (luaval.Value, error) {
	if an, aok := a.(luaval.Number); aok {
		if bn, bok := b.(luaval.Number); bok {
			return luaval.Bool(an < bn), nil
		}
	}
	if as, aok := a.(luaval.String); aok {
		if bs, bok := b.(luaval.String); bok {
			return luaval.Bool(as < bs), nil
		}
	}
	if mm := luaval.BinaryMetamethod(a, b, luaval.MetaLt); mm != nil {
		res, err := it.call(mm, luaval.Arguments{a, b}, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.Bool(luaval.Truthy(res.First())), nil
	}
	return nil, luaval.Errorf(luaval.TypeError, "attempt to compare %s with %s", luaval.TypeOf(a), luaval.TypeOf(b))
}

func (it *Interpreter) lessEqual(a, b luaval.Value, depth int) (luaval.Value, error) {
	if an, aok := a.(luaval.Number); aok {
		if bn, bok := b.(luaval.Number); bok {
			return luaval.Bool(an <= bn), nil
		}
	}
	if as, aok := a.(luaval.String); aok {
		if bs, bok := b.(luaval.String); bok {
			return luaval.Bool(as <= bs), nil
		}
	}
	if mm := luaval.BinaryMetamethod(a, b, luaval.MetaLe); mm != nil {
		res, err := it.call(mm, luaval.Arguments{a, b}, depth+1)
		if err != nil {
			return nil, err
		}
		return luaval.Bool(luaval.Truthy(res.First())), nil
	}
	// Fall back to "not (b < a)", the pre-5.4 rule for types that define
	// __lt but not __le.
	gt, err := it.less(b, a, depth)
	if err != nil {
		return nil, err
	}
	return luaval.Bool(!luaval.Truthy(gt)), nil
}

func (it *Interpreter) unary(op luaast.UnaryOperator, v luaval.Value, depth int) (luaval.Value, error) {
	switch op {
	case luaast.Negate:
		return luaval.Bool(!luaval.Truthy(v)), nil
	case luaast.Invert:
		if n, ok := luaval.ToNumber(v); ok {
			return -n, nil
		}
		if mm := luaval.Metamethod(v, luaval.MetaUnm); mm != nil {
			res, err := it.call(mm, luaval.Arguments{v, v}, depth+1)
			if err != nil {
				return nil, err
			}
			return res.First(), nil
		}
		return nil, luaval.Errorf(luaval.ArithmeticError, "attempt to perform arithmetic on a %s value", luaval.TypeOf(v))
	case luaast.Length:
		if s, ok := v.(luaval.String); ok {
			return luaval.Number(len(s)), nil
		}
		if mm := luaval.Metamethod(v, luaval.MetaLen); mm != nil {
			res, err := it.call(mm, luaval.Arguments{v}, depth+1)
			if err != nil {
				return nil, err
			}
			return res.First(), nil
		}
		if t, ok := v.(*luaval.Table); ok {
			return t.Len(), nil
		}
		return nil, luaval.Errorf(luaval.TypeError, "attempt to get length of a %s value", luaval.TypeOf(v))
	default:
		return nil, luaval.Errorf(luaval.TypeError, "unsupported unary operator %s", op)
	}
}
