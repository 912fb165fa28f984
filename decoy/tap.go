// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decoy

import "time"

const (
	TapWindow    = 500 * time.Millisecond
	TapThreshold = 4
)

// TapDetector counts rapid taps. A tap counts toward the sequence only if it
// lands less than TapWindow after the previous one.
type TapDetector struct {
	count   int
	lastTap time.Time
}

// Tap records a tap at now and reports whether it completed a rapid sequence.
// The count is reset to 0 after a trigger.
func (d *TapDetector) Tap(now time.Time) bool {
	if !d.lastTap.IsZero() && now.Sub(d.lastTap) < TapWindow {
		d.count++
	} else {
		d.count = 1
	}
	d.lastTap = now

	if d.count >= TapThreshold {
		d.count = 0
		return true
	}
	return false
}

// Count returns the length of the current tap sequence
func (d *TapDetector) Count() int {
	return d.count
}
