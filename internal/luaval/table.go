// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

import (
	"math"
	"slices"
	"sort"
	"sync/atomic"
)

var nextTableID atomic.Uint64

func newID() uint64 {
	return nextTableID.Add(1)
}

// Table is the associative container backing Lua's single compound data
// type. Keys are held in a slice sorted by [Compare] so that lookups can use
// binary search, mirroring a sparse array-plus-hash table without needing
// two separate representations.
type Table struct {
	id      uint64
	entries []tableEntry
	// Meta is the table's metatable, or nil if it has none. Dispatch code in
	// [treelua.dev/treelua/internal/luaeval] reads Meta at the moment of
	// each operation, never caching it across a dispatch.
	Meta *Table
}

type tableEntry struct {
	key, value Value
}

// NewTable returns a new, empty table. capacity is a hint for how many
// entries the table is expected to hold.
func NewTable(capacity int) *Table {
	t := &Table{id: newID()}
	if capacity > 0 {
		t.entries = make([]tableEntry, 0, capacity)
	}
	return t
}

func (t *Table) valueType() Type { return TypeTable }

// ID returns the table's identity, stable for the table's lifetime and
// unique among all tables created in the process.
func (t *Table) ID() uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

func findEntry(entries []tableEntry, key Value) (int, bool) {
	return slices.BinarySearchFunc(entries, key, func(e tableEntry, key Value) int {
		return Compare(e.key, key)
	})
}

// Get performs a raw (metatable-free) read of t[key]. Get(nil, k) returns
// nil, matching a nil table behaving as empty.
func (t *Table) Get(key Value) Value {
	if t == nil {
		return nil
	}
	i, found := findEntry(t.entries, key)
	if !found {
		return nil
	}
	return t.entries[i].value
}

// Set performs a raw (metatable-free) write of t[key] = value. Setting a
// key's value to nil removes the key. Set reports [InvalidKey] if key is nil
// or NaN.
func (t *Table) Set(key, value Value) error {
	switch k := key.(type) {
	case nil:
		return &EvalError{Kind: InvalidKey, Message: "table index is nil"}
	case Number:
		if math.IsNaN(float64(k)) {
			return &EvalError{Kind: InvalidKey, Message: "table index is NaN"}
		}
	}

	i, found := findEntry(t.entries, key)
	switch {
	case found && value != nil:
		t.entries[i].value = value
	case found && value == nil:
		t.entries = slices.Delete(t.entries, i, i+1)
	case !found && value != nil:
		t.entries = slices.Insert(t.entries, i, tableEntry{key: key, value: value})
	}
	return nil
}

// SetExisting changes or removes the value for key if key is already present
// in the table, reporting whether it found the key. It never inserts a new
// key and never consults a metatable; it exists so `__newindex` dispatch can
// check "is this key already on the raw table" without a separate lookup.
func (t *Table) SetExisting(key, value Value) bool {
	if t == nil {
		return false
	}
	i, found := findEntry(t.entries, key)
	if !found {
		return false
	}
	if value == nil {
		t.entries = slices.Delete(t.entries, i, i+1)
	} else {
		t.entries[i].value = value
	}
	return true
}

// Len returns a border of the table: an index n such that t[n] is non-nil
// and t[n+1] is nil. For sparse tables, any such border is a valid answer,
// matching Lua's own ambiguity around the `#` operator.
func (t *Table) Len() Number {
	if t == nil {
		return 0
	}
	start, ok := findEntry(t.entries, Number(1))
	if !ok {
		return 0
	}

	maxKey := len(t.entries) - start
	searchSpace := t.entries[start+1:]
	n := sort.Search(len(searchSpace), func(i int) bool {
		k, ok := searchSpace[i].key.(Number)
		return !ok || k > Number(maxKey)
	})
	searchSpace = searchSpace[:n]
	maxKey = n + 1

	i := sort.Search(maxKey, func(i int) bool {
		_, found := findEntry(searchSpace, Number(i)+2)
		return !found
	})
	return Number(i) + 1
}

// Next implements the raw iteration order used by `next`/`pairs`: given a
// key previously returned by Next (or nil to start), it returns the
// following key/value pair, or ok=false once iteration is exhausted. The
// iteration order is the table's sorted key order; it is stable as long as
// the table isn't mutated between calls, matching Lua's undefined-but-stable
// `next` contract closely enough for scripts that don't mutate mid-iteration.
func (t *Table) Next(key Value) (nextKey, value Value, ok bool) {
	if t == nil {
		return nil, nil, false
	}
	if key == nil {
		if len(t.entries) == 0 {
			return nil, nil, false
		}
		e := t.entries[0]
		return e.key, e.value, true
	}
	i, found := findEntry(t.entries, key)
	if !found {
		return nil, nil, false
	}
	i++
	if i >= len(t.entries) {
		return nil, nil, false
	}
	e := t.entries[i]
	return e.key, e.value, true
}

// Clear removes every entry but keeps the underlying storage and metatable.
func (t *Table) Clear() {
	if t == nil {
		return
	}
	clear(t.entries)
	t.entries = t.entries[:0]
}
