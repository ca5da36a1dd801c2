// Package timeout provides a single-slot delayed-action scheduler used to
// debounce work triggered by field edits.
package timeout

import (
	"sync"
	"time"

	"github.com/mcoot/aqua-access/internal/dependencies/clock"
)

// Scheduler runs at most one delayed action at a time
type Scheduler interface {
	// DoAfter schedules action to run after delay, cancelling and replacing
	// any action still pending
	DoAfter(delay time.Duration, action func())

	// DoNothing cancels the pending action, if any. Safe to call repeatedly.
	DoNothing()
}

// Timeout implements Scheduler on top of a Clock
type Timeout struct {
	clock clock.Clock

	mu    sync.Mutex
	timer clock.Timer
	// slot identifies the currently scheduled action; a timer that fires
	// after being replaced finds a different slot and does nothing
	slot uint64
}

// Ensure Timeout implements Scheduler
var _ Scheduler = (*Timeout)(nil)

// New creates a Timeout with nothing pending
func New(clk clock.Clock) *Timeout {
	return &Timeout{clock: clk}
}

// DoAfter schedules action, replacing any pending one
func (t *Timeout) DoAfter(delay time.Duration, action func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.slot++
	slot := t.slot

	t.timer = t.clock.AfterFunc(delay, func() {
		if !t.claim(slot) {
			return
		}
		action()
	})
}

// DoNothing cancels the pending action
func (t *Timeout) DoNothing() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.slot++
}

// Pending reports whether an action is scheduled and has not run yet
func (t *Timeout) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// claim clears the slot if it is still current, so the action runs once
func (t *Timeout) claim(slot uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slot != t.slot {
		return false
	}
	t.timer = nil
	return true
}

func (t *Timeout) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
