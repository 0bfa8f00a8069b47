// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaast

// Expr is implemented by every expression node.
type Expr interface {
	expr()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmt()
}

// Assignable is implemented by expression nodes that may appear as an
// assignment target: [Variable] and [TableAccess].
type Assignable interface {
	Expr
	assignable()
}

// NilLiteral is the `nil` literal expression.
type NilLiteral struct{}

// BoolLiteral is a `true` or `false` literal expression.
type BoolLiteral struct {
	Value bool
}

// NumberLiteral is a numeric literal expression.
type NumberLiteral struct {
	Value float64
}

// StringLiteral is a string literal expression. Lua strings are 8-bit clean
// byte sequences, not necessarily valid UTF-8.
type StringLiteral struct {
	Value []byte
}

// VarargsLiteral is the `...` expression, referring to the enclosing
// function's variadic arguments.
type VarargsLiteral struct{}

// Variable is a name reference, optionally qualified by a prefix expression
// (`prefix.name` sugar is represented the same as `prefix["name"]`: the
// parser that produced this tree is responsible for that desugaring).
//
// When Prefix is nil, the name is resolved against the lexical scope chain.
// When Prefix is non-nil, Prefix is evaluated to a single value and Name is
// used as the index into it, per the indexing rules of the value layer.
type Variable struct {
	Prefix Expr // may be nil
	Name   string
}

// TableAccess is a `expr[index]` expression.
type TableAccess struct {
	Expr  Expr
	Index Expr
}

// FunctionCall is both an expression (`f(x)`) and, when its value is
// discarded, a statement.
type FunctionCall struct {
	Callee Expr
	Args   []Expr
}

// BinaryOperator enumerates the binary operators the evaluator understands.
type BinaryOperator int

const (
	Addition BinaryOperator = iota
	Subtraction
	Multiplication
	Division
	Modulo
	Power
	Concat
	Equal
	Different
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
	And
	Or
)

// String returns the Lua source spelling of the operator.
func (op BinaryOperator) String() string {
	switch op {
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	case Multiplication:
		return "*"
	case Division:
		return "/"
	case Modulo:
		return "%"
	case Power:
		return "^"
	case Concat:
		return ".."
	case Equal:
		return "=="
	case Different:
		return "~="
	case LessThan:
		return "<"
	case LessOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterOrEqual:
		return ">="
	case And:
		return "and"
	case Or:
		return "or"
	default:
		return "BinaryOperator(?)"
	}
}

// UnaryOperator enumerates the unary operators the evaluator understands.
type UnaryOperator int

const (
	// Negate is logical `not`.
	Negate UnaryOperator = iota
	// Invert is arithmetic negation (unary `-`).
	Invert
	// Length is the `#` operator.
	Length
)

func (op UnaryOperator) String() string {
	switch op {
	case Negate:
		return "not"
	case Invert:
		return "-"
	case Length:
		return "#"
	default:
		return "UnaryOperator(?)"
	}
}

// BinaryExpression is a binary operator expression.
type BinaryExpression struct {
	Op    BinaryOperator
	Left  Expr
	Right Expr
}

// UnaryExpression is a unary operator expression.
type UnaryExpression struct {
	Op   UnaryOperator
	Expr Expr
}

// FunctionDefinition is a function literal: `function(params) body end`.
type FunctionDefinition struct {
	Params   []string
	IsVararg bool
	Body     *Block
}

// TableField is one entry of a [TableConstructor]. A nil Key denotes a
// positional (array-style) field; a non-nil Key denotes a keyed field.
type TableField struct {
	Key   Expr // may be nil
	Value Expr
}

// TableConstructor is a `{...}` expression.
type TableConstructor struct {
	Fields []TableField
}

func (NilLiteral) expr()          {}
func (BoolLiteral) expr()         {}
func (NumberLiteral) expr()       {}
func (StringLiteral) expr()       {}
func (VarargsLiteral) expr()      {}
func (*Variable) expr()           {}
func (*TableAccess) expr()        {}
func (*FunctionCall) expr()       {}
func (*BinaryExpression) expr()   {}
func (*UnaryExpression) expr()    {}
func (*FunctionDefinition) expr() {}
func (*TableConstructor) expr()   {}

func (*Variable) assignable()    {}
func (*TableAccess) assignable() {}

// Assignment is `targets = values`, e.g. `a, b = 1, 2`.
type Assignment struct {
	Targets []Assignable
	Values  []Expr
}

// LocalAssignment is `local names = values`.
type LocalAssignment struct {
	Names  []string
	Values []Expr
}

// ReturnStat is a `return` statement.
type ReturnStat struct {
	Values []Expr
}

// BreakStat is a `break` statement.
type BreakStat struct{}

// Block is an ordered sequence of statements sharing a lexical scope.
type Block struct {
	Stmts []Stmt
}

// CondBlock pairs a condition with the block to run when it is truthy; used
// for `elseif` clauses.
type CondBlock struct {
	Cond  Expr
	Block *Block
}

// IfStat is an `if/elseif/else` statement.
type IfStat struct {
	Cond    Expr
	Block   *Block
	Elseifs []CondBlock
	Else    *Block // may be nil
}

// WhileStat is a `while` loop.
type WhileStat struct {
	Cond  Expr
	Block *Block
}

// RepeatStat is a `repeat ... until` loop. The condition is evaluated in the
// same scope as the body, so locals declared in the body are visible to it.
type RepeatStat struct {
	Block *Block
	Cond  Expr
}

// NumericFor is a `for var = start, limit[, step] do ... end` loop.
type NumericFor struct {
	Var   string
	Start Expr
	Limit Expr
	Step  Expr // may be nil, defaulting to 1
	Block *Block
}

// GenericFor is a `for vars in exprs do ... end` loop.
type GenericFor struct {
	Vars  []string
	Exprs []Expr
	Block *Block
}

func (*Assignment) stmt()      {}
func (*LocalAssignment) stmt() {}
func (*FunctionCall) stmt()    {}
func (*ReturnStat) stmt()      {}
func (BreakStat) stmt()        {}
func (*Block) stmt()           {}
func (*IfStat) stmt()          {}
func (*WhileStat) stmt()       {}
func (*RepeatStat) stmt()      {}
func (*NumericFor) stmt()      {}
func (*GenericFor) stmt()      {}
