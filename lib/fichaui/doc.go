// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package fichaui implements the operator terminal for the repair
// shop: a bubbletea application with four tabs (dashboard, fichas,
// clientes, logs), a list/detail split on the record tabs, and modal
// overlays for edits.
//
// The model owns all state and is the only goroutine that mutates
// it. Every fetch runs as a bubbletea command and reports back as a
// message; the paginated lists route those results through
// [pager.Pager] so a slow response for an abandoned filter can never
// overwrite a newer one. Debounce timers and the refresh bus deliver
// into buffered channels that the model drains with listen commands.
package fichaui
