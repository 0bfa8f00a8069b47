// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package runhistory records a host-side audit log of script executions:
// who ran what, when, and whether it succeeded. It is intentionally
// separate from the evaluator's own state, which remains exactly what the
// data model describes (a scope chain and a value universe, nothing
// persisted): runhistory is an operational concern of the CLI and HTTP
// service, not of evaluation itself.
package runhistory
