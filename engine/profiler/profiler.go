package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, frame time and heap usage of the render loop.
// Stats are written to the log once per update interval.
type Profiler struct {
	now            func() time.Time
	updateInterval time.Duration

	totalFrames uint64
	frameCount  int
	lastTime    time.Time
	lastFPS     float64

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithUpdateInterval sets how often stats are logged. Values <= 0 keep the default of 1 second.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now as the profiler's time source.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick must be called once per presented frame.
// When the update interval has elapsed it logs FPS, mean frame time, heap usage,
// allocation rate and GC activity, then starts a new interval.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.totalFrames++
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	frameMs := float64(elapsed.Milliseconds()) / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	log.Printf("[Profiler] frames: %d | FPS: %.2f | frame: %.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (+%d, last: %d µs)",
		p.totalFrames, fps, frameMs, heapMB, allocRateMB, gcCount, gcCount-p.lastGCCount, lastPauseUs)

	p.lastFPS = fps
	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Frames returns the number of frames ticked since the profiler was created.
func (p *Profiler) Frames() uint64 {
	return p.totalFrames
}

// FPS returns the frame rate measured over the last completed interval, or 0 before the first one.
func (p *Profiler) FPS() float64 {
	return p.lastFPS
}
