// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArgumentsGet(t *testing.T) {
	args := Arguments{Number(1), Number(2)}
	if got := args.Get(0); got != Number(1) {
		t.Errorf("Get(0) = %v; want 1", got)
	}
	if got := args.Get(5); got != nil {
		t.Errorf("Get(5) = %v; want nil", got)
	}
	if got := args.Get(-1); got != nil {
		t.Errorf("Get(-1) = %v; want nil", got)
	}
}

func TestArgumentsFirst(t *testing.T) {
	if got := Empty.First(); got != nil {
		t.Errorf("Empty.First() = %v; want nil", got)
	}
	if got := Arguments{String("a")}.First(); got != String("a") {
		t.Errorf("First() = %v; want %q", got, "a")
	}
}

func TestAppendExpansionRule(t *testing.T) {
	// Only the tail contributes all of its values; every head contributes
	// just its first value.
	heads := []Arguments{
		{Number(1), Number(2)},
		Empty,
	}
	tail := Arguments{String("a"), String("b")}

	got := Append(heads, tail)
	want := Arguments{Number(1), nil, String("a"), String("b")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Append(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendNoHeads(t *testing.T) {
	got := Append(nil, Arguments{Number(1), Number(2)})
	want := Arguments{Number(1), Number(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Append(nil, tail) mismatch (-want +got):\n%s", diff)
	}
}
