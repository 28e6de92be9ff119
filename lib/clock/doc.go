// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction so that
// time-driven behavior (the type-ahead debouncer, transient notice
// expiry) can be tested deterministically.
//
// Production code injects Real(); tests inject Fake() and drive time
// with Advance:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	d := debounce.New(c, 300*time.Millisecond, 2, fire)
//	d.Input("ma")
//	c.Advance(300 * time.Millisecond) // fire runs here
//
// When the timer is registered from another goroutine, call
// WaitForTimers before Advance to avoid racing the registration.
package clock
