// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowAdvance(t *testing.T) {
	t.Parallel()
	c := Fake(testEpoch)
	if got := c.Now(); !got.Equal(testEpoch) {
		t.Errorf("Now = %v, want %v", got, testEpoch)
	}
	c.Advance(time.Minute)
	if got := c.Now(); !got.Equal(testEpoch.Add(time.Minute)) {
		t.Errorf("Now after advance = %v", got)
	}
}

func TestFakeAfterFiresOnAdvance(t *testing.T) {
	t.Parallel()
	c := Fake(testEpoch)
	ch := c.After(time.Second)

	select {
	case <-ch:
		t.Fatal("After fired before Advance")
	default:
	}

	c.Advance(time.Second)
	select {
	case <-ch:
	default:
		t.Fatal("After did not fire after Advance")
	}
}

func TestFakeAfterFuncStop(t *testing.T) {
	t.Parallel()
	c := Fake(testEpoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on pending timer = false, want true")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if timer.Stop() {
		t.Error("second Stop = true, want false")
	}
}

func TestFakeAfterFuncReset(t *testing.T) {
	t.Parallel()
	c := Fake(testEpoch)
	fires := 0
	timer := c.AfterFunc(300*time.Millisecond, func() { fires++ })

	// Push the deadline out before it fires, like a fresh keystroke.
	c.Advance(200 * time.Millisecond)
	if !timer.Reset(300 * time.Millisecond) {
		t.Error("Reset on pending timer = false, want true")
	}
	c.Advance(200 * time.Millisecond)
	if fires != 0 {
		t.Fatalf("timer fired %d times before the reset deadline", fires)
	}
	c.Advance(100 * time.Millisecond)
	if fires != 1 {
		t.Fatalf("fires = %d, want 1", fires)
	}
}

func TestFakeAfterFuncImmediate(t *testing.T) {
	t.Parallel()
	c := Fake(testEpoch)
	fired := false
	c.AfterFunc(0, func() { fired = true })
	if !fired {
		t.Error("AfterFunc(0) did not run synchronously")
	}
}

func TestFakeAdvanceFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()
	c := Fake(testEpoch)
	var order []int
	c.AfterFunc(2*time.Second, func() { order = append(order, 2) })
	c.AfterFunc(time.Second, func() { order = append(order, 1) })

	c.Advance(3 * time.Second)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("fire order = %v, want [1 2]", order)
	}
}
