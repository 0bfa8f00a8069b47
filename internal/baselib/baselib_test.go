// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package baselib

import (
	"bytes"
	"io"
	"testing"

	"treelua.dev/treelua/internal/luaeval"
	"treelua.dev/treelua/internal/luaval"
)

func newTestScope(t *testing.T, out io.Writer) (*luaeval.Interpreter, *luaval.Scope) {
	t.Helper()
	it := luaeval.New()
	scope := luaval.NewRootScope()
	Open(it, scope, Options{Output: out})
	return it, scope
}

func call(t *testing.T, it *luaeval.Interpreter, scope *luaval.Scope, name string, args ...luaval.Value) luaval.Arguments {
	t.Helper()
	fn := scope.Get(name)
	if fn == nil {
		t.Fatalf("%s is not registered", name)
	}
	got, err := it.Call(fn, luaval.Arguments(args))
	if err != nil {
		t.Fatalf("%s(...): %v", name, err)
	}
	return got
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	it, scope := newTestScope(t, &out)
	call(t, it, scope, "print", luaval.String("a"), luaval.Number(1))
	if got, want := out.String(), "a\t1\n"; got != want {
		t.Errorf("print output = %q; want %q", got, want)
	}
}

func TestType(t *testing.T) {
	it, scope := newTestScope(t, nil)
	tests := []struct {
		v    luaval.Value
		want string
	}{
		{nil, "nil"},
		{luaval.Bool(true), "boolean"},
		{luaval.Number(1), "number"},
		{luaval.String("s"), "string"},
		{luaval.NewTable(0), "table"},
	}
	for _, test := range tests {
		got := call(t, it, scope, "type", test.v)
		if got.First() != luaval.String(test.want) {
			t.Errorf("type(%#v) = %v; want %q", test.v, got.First(), test.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	it, scope := newTestScope(t, nil)
	got := call(t, it, scope, "tonumber", luaval.String("3.5"))
	if got.First() != luaval.Number(3.5) {
		t.Errorf("tonumber(\"3.5\") = %v; want 3.5", got.First())
	}
	got = call(t, it, scope, "tonumber", luaval.String("nope"))
	if got.First() != nil {
		t.Errorf("tonumber(\"nope\") = %v; want nil", got.First())
	}
}

func TestRawFamily(t *testing.T) {
	it, scope := newTestScope(t, nil)
	tab := luaval.NewTable(0)
	call(t, it, scope, "rawset", tab, luaval.String("x"), luaval.Number(1))
	got := call(t, it, scope, "rawget", tab, luaval.String("x"))
	if got.First() != luaval.Number(1) {
		t.Errorf("rawget after rawset = %v; want 1", got.First())
	}
	if got := call(t, it, scope, "rawequal", luaval.Number(1), luaval.Number(1)); got.First() != luaval.Bool(true) {
		t.Errorf("rawequal(1, 1) = %v; want true", got.First())
	}
	if got := call(t, it, scope, "rawlen", tab); got.First() != luaval.Number(0) {
		t.Errorf("rawlen(tab) = %v; want 0 (no key 1, so the border is 0)", got.First())
	}
}

func TestSetAndGetMetatable(t *testing.T) {
	it, scope := newTestScope(t, nil)
	tab := luaval.NewTable(0)
	meta := luaval.NewTable(0)
	call(t, it, scope, "setmetatable", tab, meta)
	got := call(t, it, scope, "getmetatable", tab)
	if got.First() != luaval.Value(meta) {
		t.Errorf("getmetatable(tab) = %v; want the table just set", got.First())
	}
}

func TestPairsWithoutMetamethodUsesNext(t *testing.T) {
	it, scope := newTestScope(t, nil)
	tab := luaval.NewTable(0)
	if err := tab.Set(luaval.String("a"), luaval.Number(1)); err != nil {
		t.Fatal(err)
	}
	if err := tab.Set(luaval.String("b"), luaval.Number(2)); err != nil {
		t.Fatal(err)
	}

	res := call(t, it, scope, "pairs", tab)
	if len(res) != 3 {
		t.Fatalf("pairs(tab) returned %d values; want 3 (iterator, state, control)", len(res))
	}
	iterFn, state := res[0], res[1]
	if state != luaval.Value(tab) {
		t.Errorf("pairs state = %v; want tab", state)
	}

	seen := map[string]luaval.Value{}
	control := res[2]
	for {
		step, err := it.Call(iterFn, luaval.Arguments{state, control})
		if err != nil {
			t.Fatal(err)
		}
		if step.First() == nil {
			break
		}
		k := step[0].(luaval.String)
		seen[string(k)] = step[1]
		control = step[0]
	}
	if len(seen) != 2 || seen["a"] != luaval.Number(1) || seen["b"] != luaval.Number(2) {
		t.Errorf("pairs iteration collected %v; want a=1, b=2", seen)
	}
}

func TestIpairsStopsAtFirstHole(t *testing.T) {
	it, scope := newTestScope(t, nil)
	tab := luaval.NewTable(0)
	if err := tab.Set(luaval.Number(1), luaval.String("a")); err != nil {
		t.Fatal(err)
	}
	if err := tab.Set(luaval.Number(2), luaval.String("b")); err != nil {
		t.Fatal(err)
	}
	// Leave index 3 absent, set 4 to make sure iteration stops at the hole.
	if err := tab.Set(luaval.Number(4), luaval.String("d")); err != nil {
		t.Fatal(err)
	}

	res := call(t, it, scope, "ipairs", tab)
	iterFn, state, control := res[0], res[1], res[2]
	var got []luaval.Value
	for {
		step, err := it.Call(iterFn, luaval.Arguments{state, control})
		if err != nil {
			t.Fatal(err)
		}
		if step.First() == nil {
			break
		}
		got = append(got, step[1])
		control = step[0]
	}
	if len(got) != 2 || got[0] != luaval.String("a") || got[1] != luaval.String("b") {
		t.Errorf("ipairs collected %v; want [a b]", got)
	}
}

func TestAssertPassesThroughOrErrors(t *testing.T) {
	it, scope := newTestScope(t, nil)
	got := call(t, it, scope, "assert", luaval.Bool(true), luaval.String("msg"))
	if len(got) != 2 {
		t.Errorf("assert(true, msg) = %v; want its arguments returned unchanged", got)
	}

	fn := scope.Get("assert")
	_, err := it.Call(fn, luaval.Arguments{luaval.Bool(false), luaval.String("boom")})
	if err == nil {
		t.Fatal("assert(false, \"boom\") succeeded; want an error")
	}
	if err.Error() != "boom" {
		t.Errorf("assert error = %q; want %q", err.Error(), "boom")
	}
}

func TestPcallCatchesErrors(t *testing.T) {
	it, scope := newTestScope(t, nil)
	boom := luaval.NewHostFunction("boom", func(args luaval.Arguments) (luaval.Arguments, error) {
		return nil, luaval.NewUserError(luaval.String("kaboom"))
	})
	got := call(t, it, scope, "pcall", boom)
	if len(got) != 2 || got[0] != luaval.Bool(false) || got[1] != luaval.String("kaboom") {
		t.Errorf("pcall(boom) = %v; want [false kaboom]", got)
	}

	ok := luaval.NewHostFunction("ok", func(args luaval.Arguments) (luaval.Arguments, error) {
		return luaval.One(luaval.Number(7)), nil
	})
	got = call(t, it, scope, "pcall", ok)
	if len(got) != 2 || got[0] != luaval.Bool(true) || got[1] != luaval.Number(7) {
		t.Errorf("pcall(ok) = %v; want [true 7]", got)
	}
}

func TestSelectHash(t *testing.T) {
	it, scope := newTestScope(t, nil)
	got := call(t, it, scope, "select", luaval.String("#"), luaval.Number(1), luaval.Number(2), luaval.Number(3))
	if got.First() != luaval.Number(3) {
		t.Errorf("select(\"#\", 1, 2, 3) = %v; want 3", got.First())
	}
	got = call(t, it, scope, "select", luaval.Number(2), luaval.Number(1), luaval.Number(2), luaval.Number(3))
	if len(got) != 2 || got[0] != luaval.Number(2) || got[1] != luaval.Number(3) {
		t.Errorf("select(2, 1, 2, 3) = %v; want [2 3]", got)
	}
}

func TestUnpack(t *testing.T) {
	it, scope := newTestScope(t, nil)
	tab := luaval.NewTable(0)
	for i, v := range []luaval.Value{luaval.String("a"), luaval.String("b"), luaval.String("c")} {
		if err := tab.Set(luaval.Number(i+1), v); err != nil {
			t.Fatal(err)
		}
	}
	got := call(t, it, scope, "unpack", tab)
	if len(got) != 3 {
		t.Errorf("unpack(tab) = %v; want 3 values", got)
	}
}

func TestToStringConsultsMetamethod(t *testing.T) {
	it := luaeval.New()
	tab := luaval.NewTable(0)
	tab.Meta = luaval.NewTable(0)
	toStr := luaval.NewHostFunction("__tostring", func(args luaval.Arguments) (luaval.Arguments, error) {
		return luaval.One(luaval.String("custom")), nil
	})
	if err := tab.Meta.Set(luaval.String("__tostring"), toStr); err != nil {
		t.Fatal(err)
	}
	got, err := ToString(it, tab)
	if err != nil {
		t.Fatal(err)
	}
	if got != "custom" {
		t.Errorf("ToString(tab) = %q; want %q", got, "custom")
	}
}
