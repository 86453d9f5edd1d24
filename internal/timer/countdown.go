package timer

import "time"

// countdown tracks remaining time against a wall-clock deadline so missed
// ticks never drift the display.
type countdown struct {
	remaining time.Duration
	deadline  time.Time
	running   bool
}

func (c *countdown) set(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.remaining = d
	c.running = false
	c.deadline = time.Time{}
}

func (c *countdown) start(now time.Time) {
	if c.running || c.remaining <= 0 {
		return
	}
	c.deadline = now.Add(c.remaining)
	c.running = true
}

func (c *countdown) pause(now time.Time) {
	if !c.running {
		return
	}
	c.remaining = c.left(now)
	c.running = false
}

func (c *countdown) left(now time.Time) time.Duration {
	if !c.running {
		return c.remaining
	}
	d := c.deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// tick reports whether the countdown reached zero at now. It fires once.
func (c *countdown) tick(now time.Time) bool {
	if !c.running || now.Before(c.deadline) {
		return false
	}
	c.remaining = 0
	c.running = false
	return true
}
