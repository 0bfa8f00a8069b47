// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package astjson

import (
	"fmt"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"treelua.dev/treelua/internal/luaast"
)

// raw is an undecoded JSON value, deferred until its node's "type"
// discriminator picks the concrete shape to decode it into.
type raw = jsontext.Value

// DecodeBlock decodes a JSON document into a [*luaast.Block]. The document's
// top level is itself a Block node: {"stmts": [...]}.
func DecodeBlock(data []byte) (*luaast.Block, error) {
	return decodeBlock(raw(data))
}

func unmarshal[T any](data raw) (T, error) {
	var v T
	if err := jsonv2.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

type typed struct {
	Type string `json:"type"`
}

func decodeBlock(data raw) (*luaast.Block, error) {
	var doc struct {
		Stmts []raw `json:"stmts"`
	}
	if err := jsonv2.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("astjson: decode block: %w", err)
	}
	block := &luaast.Block{Stmts: make([]luaast.Stmt, 0, len(doc.Stmts))}
	for _, s := range doc.Stmts {
		stmt, err := decodeStmt(s)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func decodeOptionalBlock(data raw) (*luaast.Block, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return decodeBlock(data)
}

func decodeExprList(data []raw) ([]luaast.Expr, error) {
	out := make([]luaast.Expr, 0, len(data))
	for _, e := range data {
		expr, err := decodeExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeExpr(data raw) (luaast.Expr, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	t, err := unmarshal[typed](data)
	if err != nil {
		return nil, fmt.Errorf("astjson: decode expression: %w", err)
	}
	switch t.Type {
	case "NilLiteral":
		return luaast.NilLiteral{}, nil

	case "BoolLiteral":
		v, err := unmarshal[struct {
			Value bool `json:"value"`
		}](data)
		if err != nil {
			return nil, err
		}
		return luaast.BoolLiteral{Value: v.Value}, nil

	case "NumberLiteral":
		v, err := unmarshal[struct {
			Value float64 `json:"value"`
		}](data)
		if err != nil {
			return nil, err
		}
		return luaast.NumberLiteral{Value: v.Value}, nil

	case "StringLiteral":
		v, err := unmarshal[struct {
			Value string `json:"value"`
		}](data)
		if err != nil {
			return nil, err
		}
		return luaast.StringLiteral{Value: []byte(v.Value)}, nil

	case "VarargsLiteral":
		return luaast.VarargsLiteral{}, nil

	case "Variable":
		v, err := unmarshal[struct {
			Prefix raw    `json:"prefix"`
			Name   string `json:"name"`
		}](data)
		if err != nil {
			return nil, err
		}
		prefix, err := decodeExpr(v.Prefix)
		if err != nil {
			return nil, err
		}
		return &luaast.Variable{Prefix: prefix, Name: v.Name}, nil

	case "TableAccess":
		v, err := unmarshal[struct {
			Expr  raw `json:"expr"`
			Index raw `json:"index"`
		}](data)
		if err != nil {
			return nil, err
		}
		expr, err := decodeExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(v.Index)
		if err != nil {
			return nil, err
		}
		return &luaast.TableAccess{Expr: expr, Index: index}, nil

	case "FunctionCall":
		return decodeFunctionCall(data)

	case "BinaryExpression":
		v, err := unmarshal[struct {
			Op    string `json:"op"`
			Left  raw    `json:"left"`
			Right raw    `json:"right"`
		}](data)
		if err != nil {
			return nil, err
		}
		op, err := binaryOperatorFromString(v.Op)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return &luaast.BinaryExpression{Op: op, Left: left, Right: right}, nil

	case "UnaryExpression":
		v, err := unmarshal[struct {
			Op   string `json:"op"`
			Expr raw    `json:"expr"`
		}](data)
		if err != nil {
			return nil, err
		}
		op, err := unaryOperatorFromString(v.Op)
		if err != nil {
			return nil, err
		}
		expr, err := decodeExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		return &luaast.UnaryExpression{Op: op, Expr: expr}, nil

	case "FunctionDefinition":
		v, err := unmarshal[struct {
			Params   []string `json:"params"`
			IsVararg bool     `json:"isVararg"`
			Body     raw      `json:"body"`
		}](data)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(v.Body)
		if err != nil {
			return nil, err
		}
		return &luaast.FunctionDefinition{Params: v.Params, IsVararg: v.IsVararg, Body: body}, nil

	case "TableConstructor":
		v, err := unmarshal[struct {
			Fields []struct {
				Key   raw `json:"key"`
				Value raw `json:"value"`
			} `json:"fields"`
		}](data)
		if err != nil {
			return nil, err
		}
		fields := make([]luaast.TableField, 0, len(v.Fields))
		for _, f := range v.Fields {
			key, err := decodeExpr(f.Key)
			if err != nil {
				return nil, err
			}
			value, err := decodeExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields = append(fields, luaast.TableField{Key: key, Value: value})
		}
		return &luaast.TableConstructor{Fields: fields}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown expression type %q", t.Type)
	}
}

func decodeFunctionCall(data raw) (*luaast.FunctionCall, error) {
	v, err := unmarshal[struct {
		Callee raw   `json:"callee"`
		Args   []raw `json:"args"`
	}](data)
	if err != nil {
		return nil, err
	}
	callee, err := decodeExpr(v.Callee)
	if err != nil {
		return nil, err
	}
	args, err := decodeExprList(v.Args)
	if err != nil {
		return nil, err
	}
	return &luaast.FunctionCall{Callee: callee, Args: args}, nil
}

func decodeAssignable(data raw) (luaast.Assignable, error) {
	e, err := decodeExpr(data)
	if err != nil {
		return nil, err
	}
	target, ok := e.(luaast.Assignable)
	if !ok {
		return nil, fmt.Errorf("astjson: %T is not a valid assignment target", e)
	}
	return target, nil
}

func decodeStmt(data raw) (luaast.Stmt, error) {
	t, err := unmarshal[typed](data)
	if err != nil {
		return nil, fmt.Errorf("astjson: decode statement: %w", err)
	}
	switch t.Type {
	case "Assignment":
		v, err := unmarshal[struct {
			Targets []raw `json:"targets"`
			Values  []raw `json:"values"`
		}](data)
		if err != nil {
			return nil, err
		}
		targets := make([]luaast.Assignable, 0, len(v.Targets))
		for _, tg := range v.Targets {
			target, err := decodeAssignable(tg)
			if err != nil {
				return nil, err
			}
			targets = append(targets, target)
		}
		values, err := decodeExprList(v.Values)
		if err != nil {
			return nil, err
		}
		return &luaast.Assignment{Targets: targets, Values: values}, nil

	case "LocalAssignment":
		v, err := unmarshal[struct {
			Names  []string `json:"names"`
			Values []raw    `json:"values"`
		}](data)
		if err != nil {
			return nil, err
		}
		values, err := decodeExprList(v.Values)
		if err != nil {
			return nil, err
		}
		return &luaast.LocalAssignment{Names: v.Names, Values: values}, nil

	case "ReturnStat":
		v, err := unmarshal[struct {
			Values []raw `json:"values"`
		}](data)
		if err != nil {
			return nil, err
		}
		values, err := decodeExprList(v.Values)
		if err != nil {
			return nil, err
		}
		return &luaast.ReturnStat{Values: values}, nil

	case "BreakStat":
		return luaast.BreakStat{}, nil

	case "FunctionCall":
		return decodeFunctionCall(data)

	case "Block":
		return decodeBlock(data)

	case "IfStat":
		v, err := unmarshal[struct {
			Cond    raw `json:"cond"`
			Block   raw `json:"block"`
			Elseifs []struct {
				Cond  raw `json:"cond"`
				Block raw `json:"block"`
			} `json:"elseifs"`
			Else raw `json:"else"`
		}](data)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(v.Cond)
		if err != nil {
			return nil, err
		}
		block, err := decodeBlock(v.Block)
		if err != nil {
			return nil, err
		}
		elseifs := make([]luaast.CondBlock, 0, len(v.Elseifs))
		for _, ei := range v.Elseifs {
			cond, err := decodeExpr(ei.Cond)
			if err != nil {
				return nil, err
			}
			blk, err := decodeBlock(ei.Block)
			if err != nil {
				return nil, err
			}
			elseifs = append(elseifs, luaast.CondBlock{Cond: cond, Block: blk})
		}
		elseBlock, err := decodeOptionalBlock(v.Else)
		if err != nil {
			return nil, err
		}
		return &luaast.IfStat{Cond: cond, Block: block, Elseifs: elseifs, Else: elseBlock}, nil

	case "WhileStat":
		v, err := unmarshal[struct {
			Cond  raw `json:"cond"`
			Block raw `json:"block"`
		}](data)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(v.Cond)
		if err != nil {
			return nil, err
		}
		block, err := decodeBlock(v.Block)
		if err != nil {
			return nil, err
		}
		return &luaast.WhileStat{Cond: cond, Block: block}, nil

	case "RepeatStat":
		v, err := unmarshal[struct {
			Block raw `json:"block"`
			Cond  raw `json:"cond"`
		}](data)
		if err != nil {
			return nil, err
		}
		block, err := decodeBlock(v.Block)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(v.Cond)
		if err != nil {
			return nil, err
		}
		return &luaast.RepeatStat{Block: block, Cond: cond}, nil

	case "NumericFor":
		v, err := unmarshal[struct {
			Var   string `json:"var"`
			Start raw    `json:"start"`
			Limit raw    `json:"limit"`
			Step  raw    `json:"step"`
			Block raw    `json:"block"`
		}](data)
		if err != nil {
			return nil, err
		}
		start, err := decodeExpr(v.Start)
		if err != nil {
			return nil, err
		}
		limit, err := decodeExpr(v.Limit)
		if err != nil {
			return nil, err
		}
		step, err := decodeExpr(v.Step)
		if err != nil {
			return nil, err
		}
		block, err := decodeBlock(v.Block)
		if err != nil {
			return nil, err
		}
		return &luaast.NumericFor{Var: v.Var, Start: start, Limit: limit, Step: step, Block: block}, nil

	case "GenericFor":
		v, err := unmarshal[struct {
			Vars  []string `json:"vars"`
			Exprs []raw    `json:"exprs"`
			Block raw      `json:"block"`
		}](data)
		if err != nil {
			return nil, err
		}
		exprs, err := decodeExprList(v.Exprs)
		if err != nil {
			return nil, err
		}
		block, err := decodeBlock(v.Block)
		if err != nil {
			return nil, err
		}
		return &luaast.GenericFor{Vars: v.Vars, Exprs: exprs, Block: block}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown statement type %q", t.Type)
	}
}

func binaryOperatorFromString(s string) (luaast.BinaryOperator, error) {
	switch s {
	case "+":
		return luaast.Addition, nil
	case "-":
		return luaast.Subtraction, nil
	case "*":
		return luaast.Multiplication, nil
	case "/":
		return luaast.Division, nil
	case "%":
		return luaast.Modulo, nil
	case "^":
		return luaast.Power, nil
	case "..":
		return luaast.Concat, nil
	case "==":
		return luaast.Equal, nil
	case "~=":
		return luaast.Different, nil
	case "<":
		return luaast.LessThan, nil
	case "<=":
		return luaast.LessOrEqual, nil
	case ">":
		return luaast.GreaterThan, nil
	case ">=":
		return luaast.GreaterOrEqual, nil
	case "and":
		return luaast.And, nil
	case "or":
		return luaast.Or, nil
	default:
		return 0, fmt.Errorf("astjson: unknown binary operator %q", s)
	}
}

func unaryOperatorFromString(s string) (luaast.UnaryOperator, error) {
	switch s {
	case "not":
		return luaast.Negate, nil
	case "-":
		return luaast.Invert, nil
	case "#":
		return luaast.Length, nil
	default:
		return 0, fmt.Errorf("astjson: unknown unary operator %q", s)
	}
}
