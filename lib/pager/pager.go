// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package pager implements the paginated list controller behind every
// list view: filter state, page fetches, and the local mutations that
// keep a list current without refetching.
//
// The pager itself never performs I/O. It hands out [Request] values
// describing the fetch to run; the owner runs the fetch (as a
// bubbletea command) and feeds the outcome back through Commit. Every
// Request carries the generation current at issue time, and Commit
// discards results from superseded generations, so a slow response
// for an abandoned filter can never overwrite a newer one. All
// methods must be called from the owning goroutine; the fetch itself
// is the only concurrent part.
package pager

import (
	"context"
	"errors"
)

// Query is the fetch parameter set: the filter text, extra filter
// fields (status, date range), and the page window.
type Query struct {
	Text     string
	Extra    map[string]string
	Page     int
	PageSize int
}

// Result is one fetched page. Total is nil when the service omitted
// the count; paging then falls back to the full-page heuristic.
type Result[T any] struct {
	Items []T
	Total *int
}

// Request describes a fetch the owner should run. Pass it back to
// Commit together with the outcome.
type Request struct {
	Generation uint64
	Query      Query
}

// Outcome classifies what Commit did with a result.
type Outcome int

const (
	// Applied means the result updated the list.
	Applied Outcome = iota
	// Stale means the result belonged to a superseded generation and
	// was discarded.
	Stale
	// Canceled means the fetch was aborted; nothing changed and no
	// error is recorded.
	Canceled
	// Failed means the fetch errored; the list is unchanged and
	// LastError is set.
	Failed
)

// Config configures a Pager.
type Config[T any] struct {
	// PageSize is the window size for every fetch. Required.
	PageSize int

	// MinQuery gates short filters: non-empty text shorter than this
	// issues no fetch and leaves the list unfiltered. Zero disables
	// the gate.
	MinQuery int

	// Accumulate appends pages instead of replacing the window
	// (infinite scroll for the client registry).
	Accumulate bool

	// ID extracts a stable identity for PatchLocal. Required when
	// PatchLocal is used.
	ID func(T) int64
}

// Pager is the list controller. Not safe for concurrent use.
type Pager[T any] struct {
	config Config[T]

	items    []T
	text     string
	extra    map[string]string
	page     int
	total    *int
	lastPage int
	loaded   bool

	generation uint64

	// inFlight marks the outstanding fetch. LoadMore is a no-op
	// while a fetch for the current generation is pending.
	inFlight    bool
	inFlightGen uint64

	lastError error
}

// New returns a Pager with no data loaded.
func New[T any](config Config[T]) *Pager[T] {
	return &Pager[T]{config: config}
}

// Items returns the current window (or accumulation) in order.
func (p *Pager[T]) Items() []T { return p.items }

// Text returns the active filter text.
func (p *Pager[T]) Text() string { return p.text }

// PageNumber returns the page of the last applied fetch, 0 before any
// load.
func (p *Pager[T]) PageNumber() int { return p.page }

// Total returns the service-reported total, or -1 when unknown.
func (p *Pager[T]) Total() int {
	if p.total == nil {
		return -1
	}
	return *p.total
}

// LastError returns the error of the most recent failed fetch,
// cleared by the next applied one.
func (p *Pager[T]) LastError() error { return p.lastError }

// Loading reports whether a fetch for the current generation is
// outstanding.
func (p *Pager[T]) Loading() bool { return p.inFlight }

// HasMore reports whether another page is worth requesting. With a
// known total the arithmetic answer is used; without one, a full last
// page means "probably more". The heuristic can be wrong when the
// collection size is an exact multiple of the page size; the
// follow-up fetch then comes back empty and closes the list.
func (p *Pager[T]) HasMore() bool {
	if !p.loaded {
		return false
	}
	if p.total != nil {
		if p.config.Accumulate {
			return len(p.items) < *p.total
		}
		return p.page*p.config.PageSize < *p.total
	}
	return p.lastPage == p.config.PageSize
}

// SetFilter records a new filter intent and returns the fetch to run.
// issued is false when the gate swallowed the change: non-empty text
// below MinQuery keeps the previous list and issues nothing.
func (p *Pager[T]) SetFilter(text string, extra map[string]string) (Request, bool) {
	if text != "" && len([]rune(text)) < p.config.MinQuery {
		return Request{}, false
	}
	p.text = text
	p.extra = extra
	return p.issue(1), true
}

// Reload refetches page 1 of the current filter. Used when a refresh
// event lands on a visible tab.
func (p *Pager[T]) Reload() Request {
	return p.issue(1)
}

// LoadMore requests the next page. Returns false while a fetch is in
// flight or when HasMore is false; repeated scroll events at the list
// bottom collapse into a single fetch.
func (p *Pager[T]) LoadMore() (Request, bool) {
	if p.inFlight || !p.HasMore() {
		return Request{}, false
	}
	next := p.page + 1
	request := Request{
		Generation: p.generation,
		Query:      p.query(next),
	}
	p.inFlight = true
	p.inFlightGen = p.generation
	return request, true
}

// GoToPage fetches an arbitrary page of the current filter. Used by
// page-mode lists for explicit next/previous navigation.
func (p *Pager[T]) GoToPage(page int) (Request, bool) {
	if page < 1 {
		return Request{}, false
	}
	return p.issue(page), true
}

// issue bumps the generation and marks the fetch for page in flight.
func (p *Pager[T]) issue(page int) Request {
	p.generation++
	p.inFlight = true
	p.inFlightGen = p.generation
	return Request{
		Generation: p.generation,
		Query:      p.query(page),
	}
}

func (p *Pager[T]) query(page int) Query {
	extra := make(map[string]string, len(p.extra))
	for key, value := range p.extra {
		extra[key] = value
	}
	return Query{
		Text:     p.text,
		Extra:    extra,
		Page:     page,
		PageSize: p.config.PageSize,
	}
}

// Commit applies a fetch outcome. Stale results (superseded
// generation) and canceled fetches change nothing; a cancellation is
// never surfaced as an error.
func (p *Pager[T]) Commit(request Request, result Result[T], err error) Outcome {
	if request.Generation != p.generation {
		return Stale
	}
	if p.inFlight && p.inFlightGen == request.Generation {
		p.inFlight = false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Canceled
		}
		p.lastError = err
		return Failed
	}

	p.lastError = nil
	p.loaded = true
	p.page = request.Query.Page
	p.total = result.Total
	p.lastPage = len(result.Items)

	if p.config.Accumulate && request.Query.Page > 1 {
		p.items = append(p.items, result.Items...)
	} else {
		p.items = result.Items
	}
	return Applied
}

// Prepend inserts a freshly created record at the top of the list
// without refetching. The total, when known, grows by one.
func (p *Pager[T]) Prepend(item T) {
	p.items = append([]T{item}, p.items...)
	p.loaded = true
	if p.total != nil {
		updated := *p.total + 1
		p.total = &updated
	}
}

// PatchLocal applies an in-place update to the item with the given
// identity. Returns false when the item is not in the window.
func (p *Pager[T]) PatchLocal(id int64, apply func(T) T) bool {
	if p.config.ID == nil {
		return false
	}
	for i, item := range p.items {
		if p.config.ID(item) == id {
			p.items[i] = apply(item)
			return true
		}
	}
	return false
}

// ClearLocal drops all loaded data and paging state. The filter text
// survives; the next SetFilter or Reload starts from page 1.
func (p *Pager[T]) ClearLocal() {
	p.items = nil
	p.page = 0
	p.total = nil
	p.lastPage = 0
	p.loaded = false
	p.lastError = nil
}
