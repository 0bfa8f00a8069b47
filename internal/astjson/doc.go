// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package astjson decodes the JSON document format used to hand a
// [treelua.dev/treelua/internal/luaast] tree to the evaluator without a
// parser. A document is a JSON object tree where every expression and
// statement node is an object carrying a "type" discriminator naming the
// node (e.g. "BinaryExpression", "IfStat") alongside that node's fields,
// spelled as the lower-camel-case form of the corresponding Go struct field
// names (e.g. "stmts", "isVararg", "elseifs").
//
// This package is the sole place a tree ever starts from JSON; everything
// downstream works on an in-memory *luaast.Block.
package astjson
