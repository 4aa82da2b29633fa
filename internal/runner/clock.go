package runner

// Clock turns the host's per-frame timestamps (milliseconds) into frame deltas.
type Clock struct {
	prev    float64
	started bool
}

// Tick records a timestamp and returns the time elapsed since the previous one.
// The first call only primes the clock and reports ok=false. A timestamp older
// than the previous one yields a zero delta.
func (c *Clock) Tick(now float64) (delta float64, ok bool) {
	if !c.started {
		c.started = true
		c.prev = now
		return 0, false
	}
	if now < c.prev {
		return 0, true
	}
	delta = now - c.prev
	c.prev = now
	return delta, true
}
