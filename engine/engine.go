package engine

import (
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-trio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-trio/engine/scene"
	"github.com/Carmen-Shannon/oxy-trio/engine/window"
)

// ErrNotConfigured is returned by Run when the engine is missing its window, renderer or scene.
var ErrNotConfigured = errors.New("engine requires a window, renderer and scene")

// State is the lifecycle state of the render loop.
type State int

const (
	// StateIdle is the state before Run is called.
	StateIdle State = iota
	// StateRunning is the state while Run is iterating frames.
	StateRunning
	// StateTerminated is the state once the loop has exited. It is final.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// engine implements the Engine interface.
// Window, renderer and scene are all driven from the goroutine that calls Run.
type engine struct {
	state atomic.Int32
	quit  atomic.Bool

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene

	// clock returns seconds since the window was created; defaults to window.Time.
	clock func() float64

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback   func(t float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives the render loop: it checks for a close request, renders one frame of the
// scene, presents it and polls window events until the window closes or Quit is called.
type Engine interface {
	// Window returns the window the engine polls.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are submitted to.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Scene returns the scene drawn each frame.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// State returns the current lifecycle state.
	//
	// Returns:
	//   - State: IDLE, RUNNING or TERMINATED
	State() State

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers a function called after every presented frame.
	//
	// Parameters:
	//   - callback: receives the elapsed time the frame was drawn for
	SetRenderCallback(callback func(t float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default); with VSync presentation the cap is redundant.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run iterates frames on the calling goroutine until the window reports a close
	// request or Quit is called. The close check happens before any work of an iteration.
	//
	// Returns:
	//   - error: ErrNotConfigured if a collaborator is missing, otherwise nil on a normal close
	Run() error

	// Quit requests the loop to stop before its next iteration.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine with the provided options and hooks the window's
// resize callback up to the renderer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		if e.clock == nil {
			e.clock = e.window.Time
		}
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				e.renderer.Resize(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) State() State {
	return State(e.state.Load())
}

func (e *engine) Run() error {
	if e.window == nil || e.renderer == nil || e.scene == nil {
		return ErrNotConfigured
	}
	if !e.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil
	}
	defer e.state.Store(int32(StateTerminated))

	for {
		if e.quit.Load() || !e.window.IsRunning() {
			log.Printf("[Engine] close requested, leaving render loop")
			return nil
		}

		frameStart := time.Now()
		e.renderFrame()
		e.window.PollEvents()

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// renderFrame executes one frame lifecycle: BeginFrame, the scene's draws, EndFrame and Present.
// A frame whose surface cannot be acquired is skipped; draw errors are logged and not retried.
func (e *engine) renderFrame() {
	t := float32(e.clock())

	if err := e.renderer.BeginFrame(); err != nil {
		if !errors.Is(err, renderer.ErrSurfaceUnavailable) {
			log.Printf("[Engine] skipping frame: %v", err)
		}
		return
	}

	if err := e.scene.DrawCalls(t); err != nil {
		log.Printf("[Engine] %v", err)
	}

	e.renderer.EndFrame()
	e.renderer.Present()

	if e.renderCallback != nil {
		e.renderCallback(t)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) Quit() {
	e.quit.Store(true)
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderCallback(callback func(t float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

// frameDuration converts a frame rate cap to a minimum frame duration; fps <= 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
