// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"treelua.dev/treelua/internal/astjson"
	"treelua.dev/treelua/internal/baselib"
	"treelua.dev/treelua/internal/luaeval"
	"treelua.dev/treelua/internal/luaval"
)

func newRunCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "run AST_FILE",
		Short:                 "run a single JSON AST document",
		DisableFlagsInUseLine: true,
		Args:                  cobra.ExactArgs(1),
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runFile(cmd.Context(), g, args[0])
	}
	return c
}

func runFile(ctx context.Context, g *globalConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	block, err := astjson.DecodeBlock(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	it := &luaeval.Interpreter{MaxDepth: g.cfg.MaxDepth}
	scope := luaval.NewRootScope()
	baselib.Open(it, scope, baselib.Options{Output: os.Stdout})

	results, err := it.Execute(block, scope)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, v := range results {
		s, _ := baselib.ToString(it, v)
		fmt.Println(s)
	}
	return nil
}
