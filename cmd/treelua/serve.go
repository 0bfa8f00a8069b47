// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"
	"zombiezen.com/go/xcontext"

	"treelua.dev/treelua/internal/luaeval"
	"treelua.dev/treelua/internal/luaserve"
	"treelua.dev/treelua/internal/runhistory"
)

func newServeCommand(g *globalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:                   "serve",
		Short:                 "run the HTTP execution service",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), g)
	}
	return c
}

func runServe(ctx context.Context, g *globalConfig) error {
	listener, err := luaserve.Listen(g.cfg.ListenAddr)
	if err != nil {
		return err
	}
	// Arranges for listener to be closed the moment ctx is canceled, so a
	// blocked Accept unblocks on shutdown without a separate watchdog.
	_ = xcontext.CloseWhenDone(ctx, listener)

	var history *runhistory.Store
	if g.cfg.HistoryDB != "" {
		history = runhistory.Open(defaultHistoryPath(g))
		defer history.Close()
	}

	it := &luaeval.Interpreter{MaxDepth: g.cfg.MaxDepth}
	srv := luaserve.New(it, history)

	log.Infof(ctx, "listening on %s", listener.Addr())
	httpServer := &http.Server{Handler: srv.Handler()}
	err = httpServer.Serve(listener)
	if err != nil && ctx.Err() != nil {
		// listener was closed because ctx was canceled; that's an
		// ordinary shutdown, not a failure.
		return nil
	}
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
