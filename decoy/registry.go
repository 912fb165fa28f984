// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decoy

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/segmentio/ksuid"
)

var ErrSessionNotFound = errors.New("decoy session not found")

const (
	DefaultSessionTTL = 30 * time.Minute
	sweepInterval     = time.Minute
)

type session struct {
	call     *Call
	lastSeen time.Time
}

// Registry holds one Call per browser session
type Registry struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	caller   string
	ttl      time.Duration
	sessions map[string]*session
}

func NewRegistry(clock clockwork.Clock, caller string, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		clock:    clock,
		caller:   caller,
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// Create starts a new session with an idle call
func (r *Registry) Create() (string, *Call) {
	id := ksuid.New().String()
	call := NewCall(r.clock, r.caller)

	r.mu.Lock()
	r.sessions[id] = &session{call: call, lastSeen: r.clock.Now()}
	r.mu.Unlock()

	return id, call
}

// Get returns the session's call and marks the session as used
func (r *Registry) Get(id string) (*Call, error) {
	if _, err := ksuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = r.clock.Now()
	return s.call, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions unused for longer than the TTL and returns how many
// were removed
func (r *Registry) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions until ctx is cancelled
func (r *Registry) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := r.Sweep(); n > 0 {
				slog.Info("decoy sessions expired", "count", n, "remaining", r.Len())
			}
		}
	}
}
