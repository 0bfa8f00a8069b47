// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"treelua.dev/treelua/internal/astjson"
	"treelua.dev/treelua/internal/baselib"
	"treelua.dev/treelua/internal/luaeval"
	"treelua.dev/treelua/internal/luaval"
	"treelua.dev/treelua/internal/runhistory"
	"treelua.dev/treelua/sortedset"
)

type batchOptions struct {
	concurrency int
	historyDB   string
}

func newBatchCommand(g *globalConfig) *cobra.Command {
	opts := &batchOptions{concurrency: 4}
	c := &cobra.Command{
		Use:                   "batch AST_FILE [AST_FILE ...]",
		Short:                 "run many independent JSON AST documents concurrently",
		DisableFlagsInUseLine: true,
		Args:                  cobra.MinimumNArgs(1),
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.Flags().IntVar(&opts.concurrency, "concurrency", opts.concurrency, "maximum number of scripts to run at once")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), g, opts, args)
	}
	return c
}

// runBatch executes every named file's document independently. Each
// execution gets its own scope, so scripts never observe one another, and
// the interpreter itself is shared safely across goroutines per its
// concurrency guarantees.
func runBatch(ctx context.Context, g *globalConfig, opts *batchOptions, paths []string) error {
	var history *runhistory.Store
	if g.cfg.HistoryDB != "" {
		history = runhistory.Open(defaultHistoryPath(g))
		defer history.Close()
	}

	it := &luaeval.Interpreter{MaxDepth: g.cfg.MaxDepth}

	// Running the same path twice would double-record it in the history
	// store. De-duplicate and sort so the same invocation always does the
	// same work and starts it in the same order. With more than one worker
	// the scripts still run concurrently, so the order of their output
	// depends on goroutine scheduling.
	unique := sortedset.New(paths...)

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(opts.concurrency)
	for i := 0; i < unique.Len(); i++ {
		path := unique.At(i)
		grp.Go(func() error {
			if grpCtx.Err() != nil {
				return grpCtx.Err()
			}
			return runBatchOne(grpCtx, it, history, path)
		})
	}
	return grp.Wait()
}

func runBatchOne(ctx context.Context, it *luaeval.Interpreter, history *runhistory.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	block, err := astjson.DecodeBlock(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	scope := luaval.NewRootScope()
	baselib.Open(it, scope, baselib.Options{})

	started := time.Now()
	results, runErr := it.Execute(block, scope)

	if history != nil {
		result := "ok"
		if runErr != nil {
			result = runErr.Error()
		}
		_ = history.Record(ctx, runhistory.Record{
			RequestID:  filepath.Base(path),
			Source:     path,
			StartedAt:  started,
			FinishedAt: time.Now(),
			OK:         runErr == nil,
			Result:     result,
		})
	}

	if runErr != nil {
		return fmt.Errorf("%s: %w", path, runErr)
	}
	for _, v := range results {
		s, _ := baselib.ToString(it, v)
		fmt.Printf("%s: %s\n", path, s)
	}
	return nil
}
