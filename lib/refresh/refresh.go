// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package refresh is the in-process notification bus between
// mutations and list views. A successful create or update publishes
// an Event; tabs subscribe and reload the affected scope the next
// time they are visible.
//
// Dispatch is lossy: a subscriber whose channel is full misses the
// event. Subscribers treat an event as "something changed, reload",
// so a dropped event behind a pending one loses nothing.
package refresh

import "sync"

// Scope names the data family an event invalidates.
type Scope string

const (
	ScopeClientes Scope = "clientes"
	ScopeFichas   Scope = "fichas"
	ScopeLogs     Scope = "logs"
)

// Event is one change notification. ID is the affected record when
// the publisher knows it, zero for bulk invalidation.
type Event struct {
	Scope Scope
	ID    int64
}

// Bus fans events out to subscribers. The zero value is not usable;
// call NewBus.
type Bus struct {
	mu          sync.Mutex
	subscribers map[*Subscription]struct{}
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[*Subscription]struct{})}
}

// Subscription is one subscriber's event feed. Read from C; call
// Cancel when done.
type Subscription struct {
	// C delivers events. Buffered; overflow is dropped.
	C <-chan Event

	bus     *Bus
	channel chan Event
}

// Cancel removes the subscription from the bus. The channel is not
// closed; pending events remain readable.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	delete(s.bus.subscribers, s)
}

// Subscribe registers a new subscriber. The channel buffer holds 16
// events, far beyond what a tab leaves unread between frames.
func (b *Bus) Subscribe() *Subscription {
	channel := make(chan Event, 16)
	sub := &Subscription{C: channel, bus: b, channel: channel}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[sub] = struct{}{}
	return sub
}

// Publish delivers event to every subscriber without blocking.
// Subscribers with full channels are skipped.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	subscribers := make([]*Subscription, 0, len(b.subscribers))
	for sub := range b.subscribers {
		subscribers = append(subscribers, sub)
	}
	b.mu.Unlock()

	for _, sub := range subscribers {
		select {
		case sub.channel <- event:
		default:
		}
	}
}
