package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/mcoot/aqua-access/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Timers never fire on their own: Advance runs every due callback
// synchronously, in due order, on the calling goroutine.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	timers      []*MockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CurrentTime
}

// AfterFunc registers f to run once the clock is advanced past d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := &MockTimer{clock: c, due: c.CurrentTime.Add(d), f: f}
	c.timers = append(c.timers, timer)
	return timer
}

// Advance moves the clock forward by the given duration, firing due timers
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.CurrentTime.Add(d)
	c.mu.Unlock()

	for {
		timer := c.nextDue(target)
		if timer == nil {
			break
		}
		timer.f()
	}

	c.mu.Lock()
	c.CurrentTime = target
	c.mu.Unlock()
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CurrentTime = t
}

// PendingTimers returns how many timers are still waiting to fire
func (c *MockClock) PendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// nextDue removes and returns the earliest timer due at or before target
func (c *MockClock) nextDue(target time.Time) *MockTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.timers, func(i, j int) bool {
		return c.timers[i].due.Before(c.timers[j].due)
	})

	if len(c.timers) == 0 || c.timers[0].due.After(target) {
		return nil
	}

	timer := c.timers[0]
	c.timers = c.timers[1:]
	c.CurrentTime = timer.due
	return timer
}

func (c *MockClock) remove(timer *MockTimer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, t := range c.timers {
		if t == timer {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// MockTimer is a timer created by MockClock.AfterFunc
type MockTimer struct {
	clock *MockClock
	due   time.Time
	f     func()
}

// Stop cancels the timer if it has not fired yet
func (t *MockTimer) Stop() bool {
	return t.clock.remove(t)
}
