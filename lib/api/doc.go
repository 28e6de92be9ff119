// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the typed HTTP client for the shop management
// service. Every endpoint gets a method on [Client]; callers never
// build URLs or decode JSON themselves.
//
// Error contract: transport failures come back wrapped with the
// operation name; non-2xx responses come back as *[APIError] carrying
// the HTTP status and the service's message, matchable with
// errors.As or the [ErrStatus] helper. Context cancellation
// propagates unchanged so callers can tell an aborted request from a
// failed one.
//
// A 401 on any authenticated call clears the client's token and
// invokes the OnUnauthorized callback. The callback runs on the
// request goroutine; keep it cheap (the TUI posts a message and
// returns).
//
// Key exports:
//
//   - [Client], [New], [NewForTesting]
//   - [Config] -- base URL, token, callback, logger
//   - [APIError], [ErrStatus]
package api
