// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"

	"treelua.dev/treelua/internal/luaconfig"
)

type globalConfig struct {
	cfg        *luaconfig.Config
	configFile string
}

func main() {
	rootCommand := &cobra.Command{
		Use:           "treelua",
		Short:         "run and serve Lua scripts against the tree-walking evaluator",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	g := &globalConfig{cfg: luaconfig.Default()}
	rootCommand.PersistentFlags().StringVar(&g.configFile, "config", "", "`path` to a JWCC configuration file")
	showDebug := rootCommand.PersistentFlags().Bool("debug", false, "show debugging output")
	rootCommand.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if g.configFile != "" {
			if err := g.cfg.MergeFiles(oneFile(g.configFile)); err != nil {
				return err
			}
		}
		g.cfg.MergeEnvironment()
		initLogging(*showDebug || g.cfg.Debug)
		return nil
	}

	rootCommand.AddCommand(
		newRunCommand(g),
		newBatchCommand(g),
		newServeCommand(g),
		newHistoryCommand(g),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCommand.ExecuteContext(ctx)
	cancel()
	if err != nil {
		initLogging(*showDebug)
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

func oneFile(path string) func(func(string) bool) {
	return func(yield func(string) bool) {
		yield(path)
	}
}

var initLogOnce sync.Once

func initLogging(showDebug bool) {
	initLogOnce.Do(func() {
		minLogLevel := log.Info
		if showDebug {
			minLogLevel = log.Debug
		}
		log.SetDefault(&log.LevelFilter{
			Min:    minLogLevel,
			Output: log.New(os.Stderr, "treelua: ", log.StdFlags, nil),
		})
	})
}

func defaultHistoryPath(g *globalConfig) string {
	if g.cfg.HistoryDB != "" {
		return g.cfg.HistoryDB
	}
	return filepath.Join(".", "treelua-history.db")
}
