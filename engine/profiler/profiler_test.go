package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stepClock advances by step on every call after the first.
type stepClock struct {
	current time.Time
	step    time.Duration
	started bool
}

func (c *stepClock) now() time.Time {
	if c.started {
		c.current = c.current.Add(c.step)
	}
	c.started = true
	return c.current
}

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &stepClock{current: time.Unix(0, 0), step: 250 * time.Millisecond}
	p := NewProfiler(WithClock(clock.now))

	logged := []bool{p.Tick(), p.Tick(), p.Tick(), p.Tick()}
	assert.Equal(t, []bool{false, false, false, true}, logged)
	assert.InDelta(t, 4.0, p.FPS(), 1e-9)
	assert.Equal(t, uint64(4), p.Frames())

	assert.False(t, p.Tick(), "interval restarts after logging")
	assert.Equal(t, uint64(5), p.Frames())
}

func TestUpdateInterval(t *testing.T) {
	clock := &stepClock{current: time.Unix(0, 0), step: 10 * time.Millisecond}
	p := NewProfiler(WithClock(clock.now), WithUpdateInterval(20*time.Millisecond))

	assert.False(t, p.Tick())
	assert.True(t, p.Tick())
	assert.InDelta(t, 100.0, p.FPS(), 1e-9)
}

func TestDefaults(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0), WithClock(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.now)
	assert.Zero(t, p.FPS())
	assert.Zero(t, p.Frames())
}
