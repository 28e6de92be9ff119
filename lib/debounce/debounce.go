// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package debounce delays type-ahead lookups until the operator
// pauses. Every keystroke restarts the delay, so only the final text
// of a burst produces a fetch; queries below the minimum length
// cancel whatever was pending instead.
package debounce

import (
	"sync"
	"time"

	"github.com/assistec/fichas/lib/clock"
)

// Delay is the pause after the last keystroke before a lookup fires.
const Delay = 300 * time.Millisecond

// Debouncer schedules at most one pending call to fire. Safe for
// concurrent use; fire runs on the clock's timer goroutine.
type Debouncer struct {
	clock    clock.Clock
	delay    time.Duration
	minRunes int
	fire     func(text string)

	mu    sync.Mutex
	timer *clock.Timer
}

// New returns a Debouncer that calls fire with the settled text.
// minRunes below 1 disables the length gate.
func New(c clock.Clock, delay time.Duration, minRunes int, fire func(text string)) *Debouncer {
	return &Debouncer{
		clock:    c,
		delay:    delay,
		minRunes: minRunes,
		fire:     fire,
	}
}

// Input records a keystroke's resulting text. The pending call, if
// any, is abandoned; text at or above the length gate schedules a new
// one.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if len([]rune(text)) < d.minRunes {
		return
	}
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(text)
	})
}

// Cancel abandons the pending call without scheduling a new one. Used
// when the picker closes mid-burst.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
