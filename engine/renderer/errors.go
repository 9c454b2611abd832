package renderer

import "errors"

var (
	// ErrGraphicsLoader is returned when the GPU instance, surface, adapter or device cannot be acquired.
	ErrGraphicsLoader = errors.New("failed to load graphics backend")

	// ErrSurfaceUnavailable is returned by BeginFrame when there is no drawable surface,
	// such as while the window is minimized or the swapchain is outdated.
	ErrSurfaceUnavailable = errors.New("surface unavailable")

	// ErrPipelineNotFound is returned when a draw names a pipeline that was never registered.
	ErrPipelineNotFound = errors.New("pipeline not registered")
)
