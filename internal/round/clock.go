package round

import (
	"sort"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. Stopping a fired or stopped timer is a no-op.
	Stop()
}

// Scheduler runs callbacks after a delay, on the goroutine that drives the machine.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// ManualClock is a deterministic Clock and Scheduler. Time moves only when
// Advance is called, and due callbacks run inside Advance in due order.
type ManualClock struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	due     time.Time
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() { t.stopped = true }

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.now }

// After implements Scheduler.
func (c *ManualClock) After(d time.Duration, fn func()) Timer {
	c.seq++
	t := &manualTimer{due: c.now.Add(d), seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *ManualClock) Pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves time forward by d, firing every callback that falls due,
// including callbacks scheduled by earlier ones.
func (c *ManualClock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		next := c.nextDue(end)
		if next == nil {
			break
		}
		next.stopped = true
		if next.due.After(c.now) {
			c.now = next.due
		}
		next.fn()
	}
	c.now = end
	c.compact()
}

func (c *ManualClock) nextDue(end time.Time) *manualTimer {
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.due.After(end) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}

func (c *ManualClock) compact() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
}
