// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package fichaui

import (
	"github.com/assistec/fichas/lib/pager"
	"github.com/assistec/fichas/lib/refresh"
	"github.com/assistec/fichas/lib/schema"
)

// fichasPageMsg carries one fetched page of fichas back to the model.
// Request is the pager token the fetch was issued under; Commit uses
// it to discard superseded results.
type fichasPageMsg struct {
	request pager.Request
	page    schema.Page[schema.Ficha]
	err     error
}

type clientesPageMsg struct {
	request pager.Request
	page    schema.Page[schema.Cliente]
	err     error
}

type logsPageMsg struct {
	request pager.Request
	page    schema.Page[schema.LogEntry]
	err     error
}

// fichaDetailMsg is the detail-pane read for the selected ficha.
type fichaDetailMsg struct {
	id     int64
	detail schema.FichaDetail
	err    error
}

type clienteDetailMsg struct {
	id     int64
	detail schema.ClienteDetail
	err    error
}

// fichaSavedMsg reports a create or update round trip. created is
// true for creates, which prepend to the list instead of patching in
// place.
type fichaSavedMsg struct {
	ficha   schema.Ficha
	created bool
	err     error
}

type clienteSavedMsg struct {
	cliente schema.Cliente
	created bool
	err     error
}

// pickerResultsMsg carries the debounced client search inside the
// ficha form.
type pickerResultsMsg struct {
	query    string
	clientes []schema.Cliente
	err      error
}

// pdfSavedMsg reports the outcome of a PDF download.
type pdfSavedMsg struct {
	path string
	err  error
}

// statisticsMsg, recentFichasMsg, and recentClientesMsg are the
// three independent dashboard reads. A failed read leaves its panel
// in the empty state without touching the other two.
type statisticsMsg struct {
	stats []schema.MonthlyStat
	err   error
}

type recentFichasMsg struct {
	fichas []schema.Ficha
	err    error
}

type recentClientesMsg struct {
	clientes []schema.Cliente
	err      error
}

// refreshMsg is one event drained from the refresh bus subscription.
type refreshMsg struct {
	event refresh.Event
}

// debounceFiredMsg is a debounce timer expiry drained from the fire
// channel. tab names which list's filter fired.
type debounceFiredMsg struct {
	tab  Tab
	text string
}

// heatTickMsg drives the recently-changed row highlight decay.
type heatTickMsg struct{}
