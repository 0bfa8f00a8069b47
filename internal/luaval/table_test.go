// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

import "testing"

func TestTableGetSet(t *testing.T) {
	tab := NewTable(0)
	if got := tab.Get(String("x")); got != nil {
		t.Errorf("Get on empty table = %#v; want nil", got)
	}
	if err := tab.Set(String("x"), Number(1)); err != nil {
		t.Fatal(err)
	}
	if got := tab.Get(String("x")); got != Number(1) {
		t.Errorf("Get(x) = %#v; want 1", got)
	}
	// Setting to nil removes the key.
	if err := tab.Set(String("x"), nil); err != nil {
		t.Fatal(err)
	}
	if got := tab.Get(String("x")); got != nil {
		t.Errorf("Get(x) after delete = %#v; want nil", got)
	}
}

func TestTableSetInvalidKey(t *testing.T) {
	tab := NewTable(0)
	if err := tab.Set(nil, Number(1)); err == nil {
		t.Error("Set(nil, 1) succeeded; want InvalidKey error")
	}
	nan := Number(nanForTest())
	if err := tab.Set(nan, Number(1)); err == nil {
		t.Error("Set(NaN, 1) succeeded; want InvalidKey error")
	}
}

func nanForTest() float64 {
	var zero float64
	return zero / zero
}

func TestTableLen(t *testing.T) {
	tab := NewTable(0)
	for i := 1; i <= 3; i++ {
		if err := tab.Set(Number(i), Number(i*10)); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := tab.Len(), Number(3); got != want {
		t.Errorf("Len() = %v; want %v", got, want)
	}
	if err := tab.Set(Number(3), nil); err != nil {
		t.Fatal(err)
	}
	if got, want := tab.Len(), Number(2); got != want {
		t.Errorf("Len() after removing border = %v; want %v", got, want)
	}
}

func TestTableNext(t *testing.T) {
	tab := NewTable(0)
	if err := tab.Set(Number(1), String("a")); err != nil {
		t.Fatal(err)
	}
	if err := tab.Set(Number(2), String("b")); err != nil {
		t.Fatal(err)
	}

	var keys []Value
	k, v, ok := tab.Next(nil)
	for ok {
		keys = append(keys, k)
		_ = v
		k, v, ok = tab.Next(k)
	}
	if len(keys) != 2 {
		t.Errorf("iterated %d keys; want 2", len(keys))
	}
}

func TestTableSetExisting(t *testing.T) {
	tab := NewTable(0)
	if tab.SetExisting(String("x"), Number(1)) {
		t.Error("SetExisting on absent key reported found")
	}
	if err := tab.Set(String("x"), Number(1)); err != nil {
		t.Fatal(err)
	}
	if !tab.SetExisting(String("x"), Number(2)) {
		t.Error("SetExisting on present key reported not found")
	}
	if got := tab.Get(String("x")); got != Number(2) {
		t.Errorf("Get(x) after SetExisting = %#v; want 2", got)
	}
}

func TestTableID(t *testing.T) {
	a, b := NewTable(0), NewTable(0)
	if a.ID() == b.ID() {
		t.Error("two distinct tables share an ID")
	}
	if a.ID() == 0 {
		t.Error("table ID is zero")
	}
}
