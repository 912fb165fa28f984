// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decoy

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/quickly-ask/models"
)

var ErrInvalidTransition = errors.New("invalid call transition")

const (
	// TickInterval is the resolution of the connected-call counter
	TickInterval = time.Second
	// HangupDelay is how long "Call ended" stays on screen
	HangupDelay = time.Second

	DefaultCaller = "Mama"
)

// Call is the simulated phone call behind the decoy overlay.
//
// Timer-driven transitions (the seconds counter and the hide after a reject)
// are evaluated against the clock whenever the call is read, so a Call needs
// no goroutines of its own.
type Call struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	caller string
	taps   TapDetector

	state       models.CallState
	pulse       bool
	connectedAt time.Time
	rejectedAt  time.Time
	elapsed     int // frozen value once the call leaves connected
}

func NewCall(clock clockwork.Clock, caller string) *Call {
	if caller == "" {
		caller = DefaultCaller
	}
	return &Call{
		clock:  clock,
		caller: caller,
		state:  models.CallIdle,
	}
}

// Tap registers a tap on the hidden trigger area. Taps only count while the
// overlay is hidden. It reports whether this tap brought up the call.
func (c *Call) Tap() (bool, models.CallSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.settle(now)

	if c.state != models.CallIdle {
		return false, c.snapshotAt(now)
	}
	if !c.taps.Tap(now) {
		return false, c.snapshotAt(now)
	}

	c.state = models.CallIncoming
	c.elapsed = 0
	c.pulse = true
	return true, c.snapshotAt(now)
}

// Accept answers an incoming call and starts the counter from 0
func (c *Call) Accept() (models.CallSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.settle(now)

	if c.state != models.CallIncoming {
		return c.snapshotAt(now), fmt.Errorf("%w: accept while %s", ErrInvalidTransition, c.state)
	}

	c.state = models.CallConnected
	c.connectedAt = now
	c.elapsed = 0
	c.pulse = false
	return c.snapshotAt(now), nil
}

// Reject declines an incoming call or hangs up a connected one.
// The overlay hides itself HangupDelay later.
func (c *Call) Reject() (models.CallSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.settle(now)

	if c.state != models.CallIncoming && c.state != models.CallConnected {
		return c.snapshotAt(now), fmt.Errorf("%w: reject while %s", ErrInvalidTransition, c.state)
	}

	c.elapsed = c.elapsedAt(now)
	c.state = models.CallRejected
	c.rejectedAt = now
	return c.snapshotAt(now), nil
}

// Snapshot returns the call as the overlay should render it right now
func (c *Call) Snapshot() models.CallSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.settle(now)
	return c.snapshotAt(now)
}

func (c *Call) State() models.CallState {
	return c.Snapshot().State
}

// settle applies the timer transitions that are due at now
func (c *Call) settle(now time.Time) {
	if c.state == models.CallRejected && now.Sub(c.rejectedAt) >= HangupDelay {
		c.state = models.CallIdle
		c.pulse = false
	}
}

func (c *Call) elapsedAt(now time.Time) int {
	if c.state != models.CallConnected {
		return c.elapsed
	}
	d := now.Sub(c.connectedAt)
	if d < 0 {
		return 0
	}
	return int(d / TickInterval)
}

func (c *Call) snapshotAt(now time.Time) models.CallSnapshot {
	snap := models.CallSnapshot{
		State:   c.state,
		Visible: c.state != models.CallIdle,
		Caller:  c.caller,
		Elapsed: c.elapsedAt(now),
		Pulse:   c.pulse && c.state != models.CallIdle,
	}

	switch c.state {
	case models.CallIncoming:
		snap.Display = "Incoming call..."
	case models.CallConnected:
		snap.Display = FormatElapsed(snap.Elapsed)
	case models.CallRejected:
		snap.Display = "Call ended"
	}
	return snap
}

// FormatElapsed renders seconds as mm:ss
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
