// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package runhistory

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store := Open(filepath.Join(t.TempDir(), "history.db"))
	defer store.Close()

	base := time.Unix(1700000000, 0)
	records := []Record{
		{RequestID: "r1", Source: "a.json", StartedAt: base, FinishedAt: base.Add(time.Millisecond), OK: true, Result: "ok"},
		{RequestID: "r2", Source: "b.json", StartedAt: base.Add(time.Second), FinishedAt: base.Add(2 * time.Second), OK: false, Result: "boom"},
	}
	for _, r := range records {
		if err := store.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(10) returned %d records; want 2", len(got))
	}
	// Newest first.
	if got[0].RequestID != "r2" || got[1].RequestID != "r1" {
		t.Errorf("Recent order = [%s %s]; want [r2 r1]", got[0].RequestID, got[1].RequestID)
	}
	if got[0].OK {
		t.Error("r2.OK = true; want false")
	}
	if got[0].Result != "boom" {
		t.Errorf("r2.Result = %q; want %q", got[0].Result, "boom")
	}
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	store := Open(filepath.Join(t.TempDir(), "history.db"))
	defer store.Close()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Record{RequestID: "r", Source: "s", OK: true}); err != nil {
			t.Fatal(err)
		}
	}
	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("Recent(2) returned %d records; want 2", len(got))
	}
}
