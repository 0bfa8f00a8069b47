// Copyright 2026 The treelua Authors
// SPDX-License-Identifier: MIT

// Package luaserve exposes the evaluator as an HTTP execution service: POST
// /execute runs a JSON-encoded AST document against a fresh scope and
// returns its result values (or error) as JSON; GET /healthz reports
// liveness. The service can either bind its own listener or, when started
// under systemd with socket activation configured, inherit one from the
// service manager.
package luaserve
