// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package debounce

import (
	"testing"
	"time"

	"github.com/assistec/fichas/lib/clock"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFiresAfterPause(t *testing.T) {
	t.Parallel()
	fake := clock.Fake(testEpoch)
	var fired []string
	d := New(fake, Delay, 2, func(text string) { fired = append(fired, text) })

	d.Input("ma")
	fake.Advance(Delay)
	if len(fired) != 1 || fired[0] != "ma" {
		t.Fatalf("fired = %v, want [ma]", fired)
	}
}

func TestKeystrokeRestartsDelay(t *testing.T) {
	t.Parallel()
	fake := clock.Fake(testEpoch)
	var fired []string
	d := New(fake, Delay, 2, func(text string) { fired = append(fired, text) })

	d.Input("ma")
	fake.Advance(200 * time.Millisecond)
	d.Input("mar")

	// 300 ms after the first keystroke: the restarted delay has only
	// run 100 ms, so nothing fires yet.
	fake.Advance(100 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired = %v before the restarted delay elapsed", fired)
	}

	fake.Advance(200 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "mar" {
		t.Fatalf("fired = %v, want exactly [mar]", fired)
	}
}

func TestShortQueryCancelsPending(t *testing.T) {
	t.Parallel()
	fake := clock.Fake(testEpoch)
	var fired []string
	d := New(fake, Delay, 2, func(text string) { fired = append(fired, text) })

	d.Input("ma")
	d.Input("m")
	fake.Advance(time.Second)
	if len(fired) != 0 {
		t.Fatalf("fired = %v, want nothing for a 1-rune query", fired)
	}
}

func TestEmptyInputCancelsPending(t *testing.T) {
	t.Parallel()
	fake := clock.Fake(testEpoch)
	var fired []string
	d := New(fake, Delay, 2, func(text string) { fired = append(fired, text) })

	d.Input("mar")
	d.Input("")
	fake.Advance(time.Second)
	if len(fired) != 0 {
		t.Fatalf("fired = %v, want nothing after clearing", fired)
	}
}

func TestCancel(t *testing.T) {
	t.Parallel()
	fake := clock.Fake(testEpoch)
	fired := 0
	d := New(fake, Delay, 2, func(string) { fired++ })

	d.Input("mar")
	d.Cancel()
	fake.Advance(time.Second)
	if fired != 0 {
		t.Fatalf("fired %d times after Cancel", fired)
	}
}
