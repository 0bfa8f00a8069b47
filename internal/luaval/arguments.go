// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

// Arguments is an ordered, extensible sequence of [Value] used for call
// arguments, return sequences, and varargs. Reading past the end yields nil
// (Lua's nil), matching Lua's "missing arguments are nil" convention.
type Arguments []Value

// Get returns the i-th value (0-indexed), or nil if i is out of range.
func (args Arguments) Get(i int) Value {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}

// First returns the first value, or nil if args is empty. This is how a
// context that consumes a single value from a multi-value expression list
// projects it down, per the argument-list expansion rule.
func (args Arguments) First() Value {
	return args.Get(0)
}

// One returns a single-element [Arguments] holding v, the typical result of
// evaluating an expression in a single-value context.
func One(v Value) Arguments {
	return Arguments{v}
}

// Empty is the zero-length argument list, the result of evaluating
// statements that produce no values (e.g. `break`).
var Empty = Arguments(nil)

// Append concatenates argument lists following the argument-list expansion
// rule: every element of heads contributes only its first value, and tail
// contributes in full. This is the sole primitive needed to implement call
// arguments, return lists, and table-constructor values, all of which share
// this rule.
func Append(heads []Arguments, tail Arguments) Arguments {
	out := make(Arguments, 0, len(heads)+len(tail))
	for _, h := range heads {
		out = append(out, h.First())
	}
	out = append(out, tail...)
	return out
}
