// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

package luaconfig

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/tailscale/hujson"
)

// Config holds the settings shared by the `treelua serve` HTTP service and,
// where applicable, the other CLI subcommands.
type Config struct {
	// Debug enables verbose logging.
	Debug bool `json:"debug"`
	// ListenAddr is the address `treelua serve` binds when not started
	// under systemd socket activation.
	ListenAddr string `json:"listenAddr"`
	// MaxDepth overrides the evaluator's recursion limit; zero keeps the
	// evaluator's built-in default.
	MaxDepth int `json:"maxDepth"`
	// HistoryDB is the path to the run-history SQLite database.
	HistoryDB string `json:"historyDB"`
}

// Default returns the configuration used when no config file overrides it.
func Default() *Config {
	return &Config{
		ListenAddr: "localhost:8080",
		HistoryDB:  filepath.Join(defaultVarDir(), "history.db"),
	}
}

// MergeEnvironment overlays settings from the process environment.
func (c *Config) MergeEnvironment() {
	if addr := os.Getenv("TREELUA_LISTEN_ADDR"); addr != "" {
		c.ListenAddr = addr
	}
	if db := os.Getenv("TREELUA_HISTORY_DB"); db != "" {
		c.HistoryDB = db
	}
}

// MergeFiles reads each path in turn, standardizing its JWCC content and
// unmarshaling it over c. A missing file is silently skipped; later paths
// override fields set by earlier ones.
func (c *Config) MergeFiles(paths iter.Seq[string]) error {
	for path := range paths {
		huJSONData, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		jsonData, err := hujson.Standardize(huJSONData)
		if err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
		if err := jsonv2.Unmarshal(jsonData, c, jsonv2.RejectUnknownMembers(false)); err != nil {
			return fmt.Errorf("read %s: %v", path, err)
		}
	}
	return nil
}

// defaultVarDir returns "/var/lib/treelua" on Unix-like systems or
// `%ProgramData%\treelua` on Windows.
func defaultVarDir() string {
	if dir := os.Getenv("ProgramData"); dir != "" {
		return filepath.Join(dir, "treelua")
	}
	return filepath.Join(string(filepath.Separator), "var", "lib", "treelua")
}
