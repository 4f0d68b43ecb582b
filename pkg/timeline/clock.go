package timeline

import "sync"

// Clock is the external playback clock the engine reads and seeks.
type Clock interface {
	CurrentTime() float64
	Seek(t float64)
}

// ManualClock is a Clock driven by explicit Seek calls, e.g. playhead
// ticks pushed by a browser.
type ManualClock struct {
	mu sync.RWMutex
	t  float64
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) CurrentTime() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t
}

func (c *ManualClock) Seek(t float64) {
	c.mu.Lock()
	c.t = ClampTime(t)
	c.mu.Unlock()
}
