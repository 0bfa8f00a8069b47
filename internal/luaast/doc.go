// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package luaast defines the abstract syntax tree node vocabulary consumed
// by the evaluator in [treelua.dev/treelua/internal/luaeval].
//
// The tree is treated as a pure data source: this package does not contain a
// lexer or parser. A tree is normally constructed by decoding a JSON
// document with [treelua.dev/treelua/internal/astjson], but any code that
// builds these structs directly (for instance, a test) is just as valid an
// input to the evaluator.
package luaast
