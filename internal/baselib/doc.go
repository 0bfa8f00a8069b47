// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package baselib implements the subset of Lua's base library the
// specification calls out: the small set of globals (print, type,
// tostring, tonumber, pairs, ipairs, next, setmetatable, getmetatable,
// rawequal, rawget, rawset, rawlen, assert, error, pcall, xpcall, select,
// unpack) needed to write and debug ordinary scripts against the
// evaluator in [treelua.dev/treelua/internal/luaeval]. It does not attempt
// the rest of Lua's standard library (string/table/math/io/os), which is
// out of scope.
package baselib
