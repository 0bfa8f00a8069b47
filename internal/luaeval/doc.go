// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package luaeval implements the statement and expression evaluator: a set
// of mutually recursive functions over [treelua.dev/treelua/internal/luaast]
// nodes that execute against the value universe and lexical scope chain
// defined in [treelua.dev/treelua/internal/luaval].
//
// Every expression evaluates to a [luaval.Arguments] (possibly of length 0
// or 1); every statement evaluates to a (values, [Signal]) pair used to
// propagate `break` and `return` out of nested blocks without exceptions.
package luaeval
