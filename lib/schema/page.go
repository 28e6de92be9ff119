// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Page is the service's paged envelope. Total is a pointer because
// some endpoints omit it (the count query is skipped for filtered
// log reads); paging then falls back to the full-page heuristic.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    *int `json:"total,omitempty"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
}

// Page sizes used by the interface. Logs use a taller page because
// log rows are single-line.
const (
	ClientePageSize = 12
	FichaPageSize   = 12
	LogPageSize     = 20
)

// MinClienteQuery is the minimum filter length before a client search
// request is issued. Shorter non-empty queries match too much of the
// registry to be useful and are not sent.
const MinClienteQuery = 2
