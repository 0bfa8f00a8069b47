// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package runhistory

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"zombiezen.com/go/log"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/schema/*.sql
var rawSchemaFiles embed.FS

func schemaFiles() fs.FS {
	sub, err := fs.Sub(rawSchemaFiles, "sql/schema")
	if err != nil {
		panic(err)
	}
	return sub
}

var schemaState struct {
	init   sync.Once
	schema sqlitemigration.Schema
	err    error
}

func loadSchema() sqlitemigration.Schema {
	schemaState.init.Do(func() {
		for i := 1; ; i++ {
			migration, err := fs.ReadFile(schemaFiles(), fmt.Sprintf("%02d.sql", i))
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			if err != nil {
				schemaState.err = err
				return
			}
			schemaState.schema.Migrations = append(schemaState.schema.Migrations, string(migration))
		}
	})
	if schemaState.err != nil {
		panic(schemaState.err)
	}
	return schemaState.schema
}

// Record is one completed (or failed) execution, as stored by [Store.Record].
type Record struct {
	RequestID  string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	OK         bool
	Result     string
}

// Store is a SQLite-backed run-history audit log.
type Store struct {
	db *sqlitemigration.Pool
}

// Open opens (creating if necessary) the run-history database at dbPath.
// Callers must call [Store.Close] when done.
func Open(dbPath string) *Store {
	return &Store{
		db: sqlitemigration.NewPool(dbPath, loadSchema(), sqlitemigration.Options{
			Flags:       sqlite.OpenCreate | sqlite.OpenReadWrite,
			PrepareConn: prepareConn,
			OnStartMigrate: func() {
				log.Debugf(context.Background(), "runhistory: migrating")
			},
			OnReady: func() {
				log.Debugf(context.Background(), "runhistory: database ready")
			},
			OnError: func(err error) {
				log.Errorf(context.Background(), "runhistory: migration: %v", err)
			},
		}),
	}
}

func prepareConn(conn *sqlite.Conn) error {
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA journal_mode = wal;", nil); err != nil {
		return err
	}
	return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = on;", nil)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts r as a new row.
func (s *Store) Record(ctx context.Context, r Record) (err error) {
	conn, err := s.db.Get(ctx)
	if err != nil {
		return err
	}
	defer s.db.Put(conn)

	return sqlitex.Execute(conn,
		`INSERT INTO runs (request_id, source, started_at, finished_at, ok, result) `+
			`VALUES (:request_id, :source, :started_at, :finished_at, :ok, :result);`,
		&sqlitex.ExecOptions{
			Named: map[string]any{
				":request_id":  r.RequestID,
				":source":      r.Source,
				":started_at":  r.StartedAt.UnixNano(),
				":finished_at": r.FinishedAt.UnixNano(),
				":ok":          r.OK,
				":result":      r.Result,
			},
		},
	)
}

// Recent returns the limit most recent records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	conn, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	defer s.db.Put(conn)

	var records []Record
	err = sqlitex.Execute(conn,
		`SELECT request_id, source, started_at, finished_at, ok, result `+
			`FROM runs ORDER BY id DESC LIMIT :limit;`,
		&sqlitex.ExecOptions{
			Named: map[string]any{":limit": limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				records = append(records, Record{
					RequestID:  stmt.GetText("request_id"),
					Source:     stmt.GetText("source"),
					StartedAt:  time.Unix(0, stmt.GetInt64("started_at")),
					FinishedAt: time.Unix(0, stmt.GetInt64("finished_at")),
					OK:         stmt.GetInt64("ok") != 0,
					Result:     stmt.GetText("result"),
				})
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}
	return records, nil
}
