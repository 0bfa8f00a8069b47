// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaeval

import (
	"testing"

	"treelua.dev/treelua/internal/luaast"
	"treelua.dev/treelua/internal/luaval"
)

func TestArithmetic(t *testing.T) {
	it := New()
	tests := []struct {
		op   luaast.BinaryOperator
		a, b float64
		want float64
	}{
		{luaast.Addition, 1, 2, 3},
		{luaast.Subtraction, 5, 2, 3},
		{luaast.Multiplication, 3, 4, 12},
		{luaast.Division, 7, 2, 3.5},
		{luaast.Power, 2, 10, 1024},
		{luaast.Modulo, 5, 3, 2},
		{luaast.Modulo, -5, 3, 1}, // Lua's % follows the divisor's sign.
		{luaast.Modulo, 5, -3, -1},
	}
	for _, test := range tests {
		t.Run(test.op.String(), func(t *testing.T) {
			got, err := it.binary(test.op, luaval.Number(test.a), luaval.Number(test.b), 0)
			if err != nil {
				t.Fatal(err)
			}
			if got != luaval.Number(test.want) {
				t.Errorf("%v %v %v = %v; want %v", test.a, test.op, test.b, got, test.want)
			}
		})
	}
}

func TestArithmeticCoercesNumericStrings(t *testing.T) {
	it := New()
	got, err := it.binary(luaast.Addition, luaval.String("1"), luaval.String("2"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.Number(3) {
		t.Errorf("\"1\" + \"2\" = %v; want 3", got)
	}
}

func TestArithmeticFallsBackToMetamethod(t *testing.T) {
	it := New()
	meta := luaval.NewTable(0)
	add := luaval.NewHostFunction("__add", func(args luaval.Arguments) (luaval.Arguments, error) {
		return luaval.One(luaval.String("added")), nil
	})
	if err := meta.Set(luaval.String(luaval.MetaAdd), add); err != nil {
		t.Fatal(err)
	}
	vec := luaval.NewTable(0)
	vec.Meta = meta

	got, err := it.binary(luaast.Addition, vec, luaval.Number(1), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.String("added") {
		t.Errorf("vec + 1 = %v; want %q", got, "added")
	}
}

func TestArithmeticTypeError(t *testing.T) {
	it := New()
	_, err := it.binary(luaast.Addition, luaval.String("abc"), luaval.Number(1), 0)
	if err == nil {
		t.Fatal("\"abc\" + 1 succeeded; want an error")
	}
	evalErr, ok := err.(*luaval.EvalError)
	if !ok || evalErr.Kind != luaval.ArithmeticError {
		t.Errorf("error = %v; want ArithmeticError", err)
	}
}

func TestConcat(t *testing.T) {
	it := New()
	got, err := it.binary(luaast.Concat, luaval.String("a"), luaval.Number(1), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.String("a1") {
		t.Errorf(`"a" .. 1 = %v; want "a1"`, got)
	}
}

func TestEqualOnlyConsultsMetamethodForTables(t *testing.T) {
	it := New()
	meta := luaval.NewTable(0)
	eq := luaval.NewHostFunction("__eq", func(args luaval.Arguments) (luaval.Arguments, error) {
		return luaval.One(luaval.Bool(true)), nil
	})
	if err := meta.Set(luaval.String(luaval.MetaEq), eq); err != nil {
		t.Fatal(err)
	}
	a, b := luaval.NewTable(0), luaval.NewTable(0)
	a.Meta, b.Meta = meta, meta

	got, err := it.equal(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("equal(a, b) = false; want true via __eq")
	}

	// Functions never consult __eq, even identically-shaped ones.
	f1 := luaval.NewHostFunction("f", func(luaval.Arguments) (luaval.Arguments, error) { return nil, nil })
	f2 := luaval.NewHostFunction("f", func(luaval.Arguments) (luaval.Arguments, error) { return nil, nil })
	got, err = it.equal(f1, f2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("equal(f1, f2) = true for distinct functions; want false")
	}
}

func TestLessEqualFallsBackToNotLess(t *testing.T) {
	it := New()
	meta := luaval.NewTable(0)
	lt := luaval.NewHostFunction("__lt", func(args luaval.Arguments) (luaval.Arguments, error) {
		a, _ := args.Get(0).(*luaval.Table)
		b, _ := args.Get(1).(*luaval.Table)
		return luaval.One(luaval.Bool(a.Get(luaval.String("n")).(luaval.Number) < b.Get(luaval.String("n")).(luaval.Number))), nil
	})
	if err := meta.Set(luaval.String(luaval.MetaLt), lt); err != nil {
		t.Fatal(err)
	}
	box := func(n float64) *luaval.Table {
		tab := luaval.NewTable(0)
		tab.Meta = meta
		if err := tab.Set(luaval.String("n"), luaval.Number(n)); err != nil {
			t.Fatal(err)
		}
		return tab
	}

	// meta defines __lt but not __le: a <= b must fall back to not (b < a).
	got, err := it.lessEqual(box(3), box(3), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.Bool(true) {
		t.Errorf("lessEqual(3, 3) = %v; want true", got)
	}

	got, err = it.lessEqual(box(5), box(3), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.Bool(false) {
		t.Errorf("lessEqual(5, 3) = %v; want false", got)
	}
}

func TestUnaryNot(t *testing.T) {
	it := New()
	got, err := it.unary(luaast.Negate, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.Bool(true) {
		t.Errorf("not nil = %v; want true", got)
	}
}

func TestUnaryLengthOfTable(t *testing.T) {
	it := New()
	tab := luaval.NewTable(0)
	if err := tab.Set(luaval.Number(1), luaval.String("a")); err != nil {
		t.Fatal(err)
	}
	if err := tab.Set(luaval.Number(2), luaval.String("b")); err != nil {
		t.Fatal(err)
	}
	got, err := it.unary(luaast.Length, tab, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.Number(2) {
		t.Errorf("#tab = %v; want 2", got)
	}
}

func TestUnaryInvert(t *testing.T) {
	it := New()
	got, err := it.unary(luaast.Invert, luaval.Number(5), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != luaval.Number(-5) {
		t.Errorf("-5 = %v; want -5", got)
	}
}
