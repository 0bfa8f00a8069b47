// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package luaconfig loads the CLI's and HTTP service's configuration from a
// JWCC (JSON with Comments, Commas) file, using hujson to standardize it
// before decoding with go-json-experiment/json.
package luaconfig
