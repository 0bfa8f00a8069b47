// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package baselib

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"treelua.dev/treelua/internal/luaeval"
	"treelua.dev/treelua/internal/luaval"
)

// Options configures the base library before [Open] registers it.
type Options struct {
	// Output is where `print` writes. Defaults to os.Stdout.
	Output io.Writer
}

// Open registers the base library's globals into global, dispatching calls
// (for tostring's __tostring and pcall/xpcall's protected calls) through it.
func Open(it *luaeval.Interpreter, global *luaval.Scope, opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	w := bufio.NewWriter(out)

	reg := func(name string, fn luaval.HostFunc) {
		global.SetGlobal(name, luaval.NewHostFunction(name, fn))
	}

	reg("print", func(args luaval.Arguments) (luaval.Arguments, error) {
		for i, v := range args {
			if i > 0 {
				w.WriteByte('\t')
			}
			s, err := ToString(it, v)
			if err != nil {
				return nil, err
			}
			w.WriteString(string(s))
		}
		w.WriteByte('\n')
		return nil, w.Flush()
	})

	reg("type", func(args luaval.Arguments) (luaval.Arguments, error) {
		return luaval.One(luaval.String(luaval.TypeOf(args.First()).String())), nil
	})

	reg("tostring", func(args luaval.Arguments) (luaval.Arguments, error) {
		s, err := ToString(it, args.First())
		if err != nil {
			return nil, err
		}
		return luaval.One(s), nil
	})

	reg("tonumber", func(args luaval.Arguments) (luaval.Arguments, error) {
		if n, ok := luaval.ToNumber(args.First()); ok {
			return luaval.One(n), nil
		}
		return luaval.One(nil), nil
	})

	reg("rawequal", func(args luaval.Arguments) (luaval.Arguments, error) {
		return luaval.One(luaval.Bool(luaval.RawEqual(args.Get(0), args.Get(1)))), nil
	})

	reg("rawget", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, err := checkTable(args.Get(0), "rawget")
		if err != nil {
			return nil, err
		}
		return luaval.One(t.Get(args.Get(1))), nil
	})

	reg("rawset", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, err := checkTable(args.Get(0), "rawset")
		if err != nil {
			return nil, err
		}
		if err := t.Set(args.Get(1), args.Get(2)); err != nil {
			return nil, err
		}
		return luaval.One(t), nil
	})

	reg("rawlen", func(args luaval.Arguments) (luaval.Arguments, error) {
		switch v := args.Get(0).(type) {
		case *luaval.Table:
			return luaval.One(v.Len()), nil
		case luaval.String:
			return luaval.One(luaval.Number(len(v))), nil
		default:
			return nil, luaval.Errorf(luaval.TypeError, "table or string expected")
		}
	})

	reg("setmetatable", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, err := checkTable(args.Get(0), "setmetatable")
		if err != nil {
			return nil, err
		}
		switch meta := args.Get(1).(type) {
		case nil:
			t.Meta = nil
		case *luaval.Table:
			t.Meta = meta
		default:
			return nil, luaval.Errorf(luaval.TypeError, "nil or table expected")
		}
		return luaval.One(t), nil
	})

	reg("getmetatable", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, ok := args.Get(0).(*luaval.Table)
		if !ok || t.Meta == nil {
			return luaval.One(nil), nil
		}
		return luaval.One(t.Meta), nil
	})

	reg("next", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, err := checkTable(args.Get(0), "next")
		if err != nil {
			return nil, err
		}
		k, v, ok := t.Next(args.Get(1))
		if !ok {
			return luaval.One(nil), nil
		}
		return luaval.Arguments{k, v}, nil
	})

	reg("pairs", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, err := checkTable(args.Get(0), "pairs")
		if err != nil {
			return nil, err
		}
		if mm := luaval.Metamethod(t, "__pairs"); mm != nil {
			return it.Call(mm, luaval.Arguments{t})
		}
		nextFn := global.Get("next")
		return luaval.Arguments{nextFn, t, nil}, nil
	})

	reg("ipairs", func(args luaval.Arguments) (luaval.Arguments, error) {
		t := args.Get(0)
		iter := luaval.NewHostFunction("ipairs.iterator", func(args luaval.Arguments) (luaval.Arguments, error) {
			t, err := checkTable(args.Get(0), "ipairs")
			if err != nil {
				return nil, err
			}
			n, _ := luaval.ToNumber(args.Get(1))
			n++
			v := t.Get(n)
			if v == nil {
				return luaval.One(nil), nil
			}
			return luaval.Arguments{n, v}, nil
		})
		return luaval.Arguments{iter, t, luaval.Number(0)}, nil
	})

	reg("assert", func(args luaval.Arguments) (luaval.Arguments, error) {
		if luaval.Truthy(args.Get(0)) {
			return args, nil
		}
		if len(args) >= 2 {
			return nil, luaval.NewUserError(args.Get(1))
		}
		return nil, luaval.NewUserError(luaval.String("assertion failed!"))
	})

	reg("error", func(args luaval.Arguments) (luaval.Arguments, error) {
		v := args.Get(0)
		if s, ok := v.(luaval.String); ok {
			return nil, luaval.NewUserError(s)
		}
		return nil, luaval.NewUserError(v)
	})

	reg("pcall", func(args luaval.Arguments) (luaval.Arguments, error) {
		if len(args) == 0 {
			return nil, luaval.Errorf(luaval.CallError, "bad argument #1 to 'pcall' (value expected)")
		}
		res, err := it.Call(args.Get(0), args[1:])
		if err != nil {
			return luaval.Arguments{luaval.Bool(false), payload(err)}, nil
		}
		return append(luaval.Arguments{luaval.Bool(true)}, res...), nil
	})

	reg("xpcall", func(args luaval.Arguments) (luaval.Arguments, error) {
		if len(args) < 2 {
			return nil, luaval.Errorf(luaval.CallError, "bad argument #2 to 'xpcall' (value expected)")
		}
		handler := args.Get(1)
		res, err := it.Call(args.Get(0), args[2:])
		if err != nil {
			handled, herr := it.Call(handler, luaval.Arguments{payload(err)})
			if herr != nil {
				return luaval.Arguments{luaval.Bool(false), payload(herr)}, nil
			}
			return append(luaval.Arguments{luaval.Bool(false)}, handled...), nil
		}
		return append(luaval.Arguments{luaval.Bool(true)}, res...), nil
	})

	reg("select", func(args luaval.Arguments) (luaval.Arguments, error) {
		if s, ok := args.Get(0).(luaval.String); ok && s == "#" {
			return luaval.One(luaval.Number(len(args) - 1)), nil
		}
		n, ok := luaval.ToNumber(args.Get(0))
		if !ok || n < 1 {
			return nil, luaval.Errorf(luaval.CallError, "bad argument #1 to 'select' (index out of range)")
		}
		i := int(n)
		if i >= len(args) {
			return luaval.Empty, nil
		}
		return args[i:], nil
	})

	reg("unpack", func(args luaval.Arguments) (luaval.Arguments, error) {
		t, err := checkTable(args.Get(0), "unpack")
		if err != nil {
			return nil, err
		}
		i := 1
		if n, ok := luaval.ToNumber(args.Get(1)); ok {
			i = int(n)
		}
		j := int(t.Len())
		if n, ok := luaval.ToNumber(args.Get(2)); ok {
			j = int(n)
		}
		if j < i {
			return luaval.Empty, nil
		}
		out := make(luaval.Arguments, 0, j-i+1)
		for k := i; k <= j; k++ {
			out = append(out, t.Get(luaval.Number(k)))
		}
		return out, nil
	})
}

func checkTable(v luaval.Value, fname string) (*luaval.Table, error) {
	t, ok := v.(*luaval.Table)
	if !ok {
		return nil, luaval.Errorf(luaval.TypeError, "bad argument #1 to '%s' (table expected, got %s)", fname, luaval.TypeOf(v))
	}
	return t, nil
}

// ToString converts v to its display string, consulting __tostring before
// falling back to the primitive value-layer conversion.
func ToString(it *luaeval.Interpreter, v luaval.Value) (luaval.String, error) {
	if mm := luaval.Metamethod(v, "__tostring"); mm != nil {
		res, err := it.Call(mm, luaval.Arguments{v})
		if err != nil {
			return "", err
		}
		s, _ := luaval.ToStringValue(res.First())
		return s, nil
	}
	if s, ok := luaval.ToStringValue(v); ok {
		return s, nil
	}
	switch v := v.(type) {
	case nil:
		return "nil", nil
	case luaval.Bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case *luaval.Table:
		return luaval.String(fmt.Sprintf("table: 0x%08x", v.ID())), nil
	default:
		return luaval.String(fmt.Sprintf("%s: %p", luaval.TypeOf(v), v)), nil
	}
}

// payload extracts the value a pcall/xpcall boundary should return for err.
func payload(err error) luaval.Value {
	if evalErr, ok := err.(*luaval.EvalError); ok {
		return evalErr.Payload()
	}
	return luaval.String(err.Error())
}
