// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Type is an enumeration of the runtime types a [Value] can hold.
type Type int

// Value types, per the data model's tagged universe.
const (
	TypeNil Type = iota
	TypeBoolean
	TypeNumber
	TypeString
	TypeTable
	TypeFunction
)

// String returns the Lua name of the type.
func (tp Type) String() string {
	switch tp {
	case TypeNil:
		return "nil"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeFunction:
		return "function"
	default:
		return fmt.Sprintf("luaval.Type(%d)", int(tp))
	}
}

// Value is the internal representation of a Lua value. A Go nil interface
// value represents Lua's `nil`.
type Value interface {
	valueType() Type
}

// TypeOf returns the [Type] of v. TypeOf(nil) is [TypeNil].
func TypeOf(v Value) Type {
	if v == nil {
		return TypeNil
	}
	return v.valueType()
}

// Bool is a two-valued truth carrier.
type Bool bool

func (Bool) valueType() Type { return TypeBoolean }

// Number is an IEEE-754 double-precision Lua number.
type Number float64

func (Number) valueType() Type { return TypeNumber }

// String is an immutable, possibly non-UTF-8, byte sequence.
type String string

func (String) valueType() Type { return TypeString }

// Truthy reports whether v is truthy: every value except nil and false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// ToNumber coerces v to a [Number], parsing numeric strings. It reports
// whether the coercion succeeded.
func ToNumber(v Value) (Number, bool) {
	switch v := v.(type) {
	case Number:
		return v, true
	case String:
		s := strings.TrimSpace(string(v))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if i, ierr := strconv.ParseInt(s, 0, 64); ierr == nil {
				return Number(i), true
			}
			return 0, false
		}
		return Number(f), true
	default:
		return 0, false
	}
}

// ToStringValue converts v to its string representation for `..` and
// string-context coercion. Numbers format the way Lua's `%.14g` does;
// strings pass through unchanged. ToStringValue reports false for tables,
// functions, booleans, and nil, which have no primitive string coercion
// (tables/functions only stringify via a `__tostring`/`__concat`
// metamethod, resolved by the evaluator, not here).
func ToStringValue(v Value) (String, bool) {
	switch v := v.(type) {
	case String:
		return v, true
	case Number:
		return String(formatNumber(float64(v))), true
	default:
		return "", false
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) && !isNegZero(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', 14, 64)
}

func isNegZero(f float64) bool {
	return f == 0 && strconv.FormatFloat(f, 'g', -1, 64)[0] == '-'
}

// identity returns an opaque, comparable identity for reference-typed
// values (tables and functions), used by [Compare] and [RawEqual]. It panics
// for value-typed [Value]s, which compare by value instead.
func identity(v Value) uint64 {
	switch v := v.(type) {
	case *Table:
		return v.id
	case Function:
		return v.functionID()
	default:
		panic("luaval: identity of non-reference value")
	}
}

// RawEqual reports whether two values are equal without consulting any
// `__eq` metamethod: numbers and strings compare by value, tables and
// functions compare by identity, nil equals only nil.
func RawEqual(a, b Value) bool {
	ta, tb := TypeOf(a), TypeOf(b)
	if ta != tb {
		return false
	}
	switch a := a.(type) {
	case nil:
		return true
	case Bool:
		return a == b.(Bool)
	case Number:
		return a == b.(Number)
	case String:
		return a == b.(String)
	default:
		return identity(a) == identity(b)
	}
}

// Compare returns -1, 0, or +1 for a<b, a==b, a>b under a total order used
// for sorting table keys; it is not Lua's `<` operator (which only accepts
// numbers and strings and never compares across types). Values of differing
// types are ordered by their [Type].
func Compare(a, b Value) int {
	ta, tb := TypeOf(a), TypeOf(b)
	if ta != tb {
		return cmp.Compare(ta, tb)
	}
	switch a := a.(type) {
	case nil:
		return 0
	case Bool:
		b := b.(Bool)
		switch {
		case a == b:
			return 0
		case bool(a):
			return 1
		default:
			return -1
		}
	case Number:
		return cmp.Compare(a, b.(Number))
	case String:
		return cmp.Compare(a, b.(String))
	default:
		return cmp.Compare(identity(a), identity(b))
	}
}
