package window

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-trio/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrWindowCreation is returned when the windowing library cannot be initialized or the
// window cannot be created.
var ErrWindowCreation = errors.New("failed to create window")

const (
	defaultTitle  = "oxy-trio"
	defaultWidth  = 800
	defaultHeight = 600
)

// Window provides the platform window the renderer presents to.
// It reports framebuffer resizes and close requests and exposes the frame clock.
type Window interface {
	// SetResizeCallback sets the function called synchronously when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until a close has been requested.
	//
	// Returns:
	//   - bool: true if window is running, false if a close was requested
	IsRunning() bool

	// RequestClose flags the window to close. IsRunning reports false afterwards.
	RequestClose()

	// PollEvents processes pending window events without blocking. Resize callbacks and
	// close requests are delivered from here.
	PollEvents()

	// Time returns the seconds elapsed since the window was created.
	//
	// Returns:
	//   - float64: elapsed seconds
	Time() float64

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Title returns the title shown in the title bar.
	//
	// Returns:
	//   - string: the window title
	Title() string
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and the resize callback.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// resizable controls whether the user can resize the window.
	resizable bool

	// min and max size limits; zero leaves a side unconstrained.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: an error wrapping ErrWindowCreation if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowCreation, err)
	}
	return w, nil
}

// newEngineWindow builds the window configuration without creating a platform window.
// Unset or non-positive sizes fall back to the defaults.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		resizable: true,
	}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, defaultTitle)
	w.width = common.Coalesce(max(w.width, 0), defaultWidth)
	w.height = common.Coalesce(max(w.height, 0), defaultHeight)
	return w
}

// handleResize records the new framebuffer size and forwards it to the resize callback.
func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) PollEvents() {
	platformProcessMessages(w)
}

func (w *engineWindow) Time() float64 {
	return platformTime(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Title() string {
	return w.title
}
