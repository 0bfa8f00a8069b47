// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package luaval implements the dynamic value universe of the evaluator:
// [Value], the tagged variant of Lua's runtime types; [Table], the
// associative container with an optional metatable; [Function], wrapping
// either a host callable or an AST closure; [Arguments], the ordered list
// used for call arguments, return sequences, and varargs; and [Scope], the
// lexical environment chain.
//
// This package only implements the *primitive* forms of the value-layer
// operations (raw table access, number/string coercion, raw equality).
// Full operator dispatch with metamethod fallback lives in
// [treelua.dev/treelua/internal/luaeval], because resolving a metamethod may
// need to re-enter the evaluator to call a closure.
package luaval
