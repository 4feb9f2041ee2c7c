package client

import (
	"errors"
	"sync"
)

var (
	// ErrDecisionPending is returned by Ask while a decision is outstanding.
	ErrDecisionPending = errors.New("client: confirmation already pending")

	// ErrNoDecision is returned when resolving an idle gate.
	ErrNoDecision = errors.New("client: no confirmation pending")
)

// Confirm turns a destructive action into an awaited boolean decision.
// The gate has exactly two states, idle and pending, with resolve-with-bool
// as the only transition out of pending. At most one decision may be
// outstanding; there is no timeout — only Resolve (via Confirm/Cancel)
// answers the caller.
type Confirm struct {
	mu      sync.Mutex
	pending chan bool
}

// Ask moves the gate to pending and returns the channel carrying the
// eventual decision. A second Ask while pending fails.
func (g *Confirm) Ask() (<-chan bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending != nil {
		return nil, ErrDecisionPending
	}
	g.pending = make(chan bool, 1)
	return g.pending, nil
}

// Pending reports whether a decision is outstanding.
func (g *Confirm) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Resolve delivers the decision and returns the gate to idle.
func (g *Confirm) Resolve(ok bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return ErrNoDecision
	}
	g.pending <- ok
	close(g.pending)
	g.pending = nil
	return nil
}
