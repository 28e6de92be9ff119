// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// HeatDecayDuration is how long a row glows after a change. Heat
// starts at 1.0 and decays linearly to 0.0 over this duration.
const HeatDecayDuration = 5 * time.Second

// HeatTickInterval is the re-render interval while any rows are hot.
// 100ms gives ~10fps for smooth color decay.
const HeatTickInterval = 100 * time.Millisecond

// heatEntry records when a record last changed.
type heatEntry struct {
	ignition time.Time
}

// HeatTracker maps record IDs to ignition timestamps for animated
// change highlighting. A mutation "ignites" its row, which then
// decays back to the normal background over [HeatDecayDuration].
type HeatTracker struct {
	entries map[int64]heatEntry
}

// NewHeatTracker creates an empty heat tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{entries: make(map[int64]heatEntry)}
}

// Ignite records a change for a record, restarting its decay if it
// was already hot.
func (tracker *HeatTracker) Ignite(id int64, now time.Time) {
	tracker.entries[id] = heatEntry{ignition: now}
}

// Heat returns the current intensity for a record: 1.0 at ignition,
// linearly decaying to 0.0. Unknown or fully decayed records return
// 0.0.
func (tracker *HeatTracker) Heat(id int64, now time.Time) float64 {
	entry, exists := tracker.entries[id]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= HeatDecayDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(HeatDecayDuration)
}

// HasHot reports whether any record still has heat, meaning the tick
// timer should keep running. Fully decayed entries are removed.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for id, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, id)
	}
	return hot
}
