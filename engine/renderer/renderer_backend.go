package renderer

import (
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. This is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// DefaultClearColor is the color every frame is cleared to before drawing.
var DefaultClearColor = wgpu.Color{R: 0.2, G: 0.3, B: 0.3, A: 1.0}

// Viewport is the rectangle of the framebuffer that draws are mapped to, in pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the viewport has no drawable area, as with a minimized window.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend is the set of GPU operations the Renderer delegates to.
type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode used by the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetViewport stores the viewport applied to every render pass started by BeginFrame.
	//
	// Parameters:
	//   - vp: the viewport rectangle in pixels
	SetViewport(vp Viewport)

	// RegisterRenderPipeline creates the shader modules, pipeline layout and render pipeline for p
	// and stores the result on p. Shader module failures are *shader.CompileError values and
	// layout or pipeline failures are *pipeline.LinkError values.
	//
	// Parameters:
	//   - p: the pipeline to link
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates a vertex buffer, uploads vertexData once, and stores it on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created vertex buffer on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - vertexCount: the number of vertices represented in vertexData
	//
	// Returns:
	//   - error: an error if the buffer could not be created, otherwise nil
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData []byte, vertexCount int) error

	// InitBindGroup creates GPU buffers, a bind group layout and a bind group from a layout descriptor
	// and stores them on the provider. Buffers are sized for every slot of the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider describing slots and storing the created resources
	//   - descriptor: the BindGroupLayoutDescriptor describing the layout of the bind group
	//
	// Returns:
	//   - error: an error if the bind group could not be initialized, otherwise nil
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass with a clear load op and the stored viewport.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes one non-indexed draw within the current render pass.
	//
	// Parameters:
	//   - p: the linked Pipeline to draw with
	//   - meshProvider: the BindGroupProvider holding the vertex buffer
	//   - slot: the slot index selected on providers with dynamic offsets
	//   - bindGroups: the BindGroupProviders to bind, each at its own group index
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, slot int, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release releases the device, surface and any frame resources still held.
	Release()
}
