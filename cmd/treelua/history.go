// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"treelua.dev/treelua/internal/runhistory"
)

func newHistoryCommand(g *globalConfig) *cobra.Command {
	limit := 25
	c := &cobra.Command{
		Use:                   "history",
		Short:                 "show recently recorded executions",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		SilenceErrors:         true,
		SilenceUsage:          true,
	}
	c.Flags().IntVar(&limit, "limit", limit, "maximum number of records to show")
	c.RunE = func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd.Context(), g, limit)
	}
	return c
}

func runHistory(ctx context.Context, g *globalConfig, limit int) error {
	store := runhistory.Open(defaultHistoryPath(g))
	defer store.Close()

	records, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range records {
		status := "ok"
		if !r.OK {
			status = "error: " + r.Result
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", r.StartedAt.Format("2006-01-02T15:04:05Z07:00"), r.RequestID, r.Source, status)
	}
	return nil
}
