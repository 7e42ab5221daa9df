package ecs

// Clock turns variable frame time into a whole number of fixed steps.
type Clock struct {
	dt          float64
	accumulator float64
	ticks       uint64
	maxSteps    int
}

// DefaultTPS is the fixed simulation rate.
const DefaultTPS = 60

// NewClock returns a clock stepping at tps Hz. Non-positive values fall back
// to DefaultTPS.
func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Clock{dt: 1 / float64(tps), maxSteps: 5}
}

// Dt is the constant step duration in seconds.
func (c *Clock) Dt() float64 {
	return c.dt
}

// Ticks is the number of fixed steps taken so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Advance adds elapsed seconds and returns how many fixed steps are due.
// At most maxSteps are returned per call, the remainder is dropped so a long
// stall does not cause a spiral of catch-up steps.
func (c *Clock) Advance(elapsed float64) int {
	if elapsed < 0 {
		elapsed = 0
	}
	c.accumulator += elapsed
	// Tolerate float drift so 1/60 + 1/60 ... still yields one step per frame.
	const epsilon = 1e-9
	steps := 0
	for c.accumulator+epsilon >= c.dt && steps < c.maxSteps {
		c.accumulator -= c.dt
		steps++
	}
	if steps == c.maxSteps && c.accumulator >= c.dt {
		c.accumulator = 0
	}
	if c.accumulator < 0 {
		c.accumulator = 0
	}
	c.ticks += uint64(steps)
	return steps
}
