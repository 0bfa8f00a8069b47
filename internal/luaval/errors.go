// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaval

import "fmt"

// Kind enumerates the evaluator's error taxonomy.
type Kind int

const (
	// TypeError is raised when an operation is applied to an unsupported
	// value type with no applicable metamethod.
	TypeError Kind = iota
	// InvalidKey is raised when indexing or assigning a table with nil or
	// NaN as the key.
	InvalidKey
	// ArithmeticError is raised when numeric coercion fails, e.g. a
	// non-numeric string used in arithmetic.
	ArithmeticError
	// CallError is raised when attempting to call a non-callable value that
	// has no `__call` metamethod.
	CallError
	// LoopError is raised when a numeric for-loop's start, limit, or step
	// does not coerce to a number.
	LoopError
	// StackOverflow is raised when recursion (AST depth or call depth)
	// exceeds the evaluator's configured limit.
	StackOverflow
	// UserError is raised by a script via `error(v)`, or by a host
	// callable returning an error; it carries an arbitrary payload value.
	UserError
)

func (k Kind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case InvalidKey:
		return "InvalidKey"
	case ArithmeticError:
		return "ArithmeticError"
	case CallError:
		return "CallError"
	case LoopError:
		return "LoopError"
	case StackOverflow:
		return "StackOverflow"
	case UserError:
		return "UserError"
	default:
		return fmt.Sprintf("luaval.Kind(%d)", int(k))
	}
}

// EvalError is the error type raised by value-layer and evaluator-layer
// operations. Value holds the payload of a [UserError] (any value, strings
// included); for every other [Kind], Value is nil and Message carries the
// description.
type EvalError struct {
	Kind    Kind
	Message string
	Value   Value
	// Traceback is an optional, human-readable call chain. Nothing in this
	// module fills it in; errors raised by the evaluator leave it empty.
	Traceback []string
}

func (e *EvalError) Error() string {
	if e.Kind == UserError && e.Value != nil {
		if s, ok := ToStringValue(e.Value); ok {
			return string(s)
		}
		return fmt.Sprintf("(error object is a %s value)", TypeOf(e.Value))
	}
	return e.Message
}

// Payload returns the [Value] that a `pcall`/`xpcall` boundary should return
// for this error: e.Value if set, otherwise e.Message as a [String].
func (e *EvalError) Payload() Value {
	if e.Value != nil {
		return e.Value
	}
	return String(e.Message)
}

// NewUserError wraps an arbitrary value raised by `error(v)`.
func NewUserError(v Value) *EvalError {
	return &EvalError{Kind: UserError, Value: v}
}

// Errorf builds an [*EvalError] of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
