// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package refresh

import (
	"testing"
	"time"

	"github.com/assistec/fichas/lib/testutil"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	t.Parallel()
	bus := NewBus()
	first := bus.Subscribe()
	second := bus.Subscribe()

	bus.Publish(Event{Scope: ScopeFichas, ID: 7})

	for _, sub := range []*Subscription{first, second} {
		event := testutil.RequireReceive(t, sub.C, time.Second, "waiting for event")
		if event.Scope != ScopeFichas || event.ID != 7 {
			t.Errorf("event = %+v, want fichas/7", event)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	t.Parallel()
	bus := NewBus()
	sub := bus.Subscribe()
	sub.Cancel()

	bus.Publish(Event{Scope: ScopeClientes})
	testutil.RequireNoReceive(t, sub.C, 50*time.Millisecond, "event after cancel")
}

func TestPublishDropsOnFullChannel(t *testing.T) {
	t.Parallel()
	bus := NewBus()
	sub := bus.Subscribe()

	// Fill the buffer and then some; Publish must never block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 64; i++ {
			bus.Publish(Event{Scope: ScopeLogs, ID: int64(i)})
		}
	}()
	testutil.RequireClosed(t, done, time.Second, "publisher blocked on a full subscriber")

	// The buffer holds the first events; the rest were dropped.
	received := 0
	for {
		select {
		case <-sub.C:
			received++
			continue
		default:
		}
		break
	}
	if received != 16 {
		t.Errorf("received %d events, want the 16 buffered", received)
	}
}
