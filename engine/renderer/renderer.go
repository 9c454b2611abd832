package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-trio/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	viewport Viewport

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API over a single GPU device and window surface. It caches linked
// pipelines by key, uploads vertex and uniform data through BindGroupProviders, and records
// one render pass per frame. A frame is BeginFrame, any number of DrawCall, EndFrame, Present.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines links one or more pipelines via the backend and caches them by PipelineKey.
	// Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: a *pipeline.LinkError or *shader.CompileError if linking fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex data into a new GPU vertex buffer stored on the provider.
	// The buffer is written once and never updated.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffer on
	//   - vertexData: the raw interleaved vertex bytes
	//   - vertexCount: the number of vertices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData []byte, vertexCount int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes all staged buffer writes to the GPU queue. Writes with no provider or a
	// negative binding target an unresolved uniform and are skipped without error.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass, clearing it.
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable while the viewport is empty, or the backend acquisition error
	BeginFrame() error

	// DrawCall encodes a single draw of the mesh within the current render pass.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding the vertex buffer
	//   - slot: the slot selected on bind groups that use dynamic offsets
	//   - bindGroups: the BindGroupProviders whose BindGroups will be set on the render pass
	//
	// Returns:
	//   - error: ErrPipelineNotFound if the pipeline is not registered
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, slot int, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Resize sets the viewport to (0, 0, width, height) and reconfigures the surface.
	// A zero-sized framebuffer records the viewport but leaves the surface unconfigured.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// Viewport returns the viewport applied to the next render pass.
	//
	// Returns:
	//   - Viewport: the current viewport
	Viewport() Viewport

	// SetPresentMode sets the surface present mode and reconfigures the surface at the current size.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release releases every cached pipeline's GPU resources and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer bound to the window's surface. It acquires a GPU instance,
// adapter and device, then configures the surface at the window's current framebuffer size.
//
// Parameters:
//   - win: the window whose surface the renderer presents to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error wrapping ErrGraphicsLoader if the GPU could not be acquired
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	switch r.backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount, r.clearColor)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}

	r.attach(win.Width(), win.Height())
	return r, nil
}

// newRenderer applies options over the defaults without touching the GPU.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   BackendTypeWGPU,
		presentMode:   PresentModeVSync,
		sampleCount:   MSAAOff,
		clearColor:    DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach pushes the configured present mode to the backend and sizes the surface.
func (r *renderer) attach(width, height int) {
	r.backend.SetPresentMode(r.presentMode)
	r.Resize(width, height)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData []byte, vertexCount int) error {
	if len(vertexData) == 0 || vertexCount <= 0 {
		return fmt.Errorf("mesh %q has no vertex data", provider.Label())
	}
	return r.backend.InitMeshBuffers(provider, vertexData, vertexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	valid := writes[:0:0]
	for _, w := range writes {
		if w.Provider == nil || w.Binding < 0 {
			continue
		}
		valid = append(valid, w)
	}
	if len(valid) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(valid)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	empty := r.viewport.Empty()
	r.mu.Unlock()

	if empty {
		return ErrSurfaceUnavailable
	}
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	return nil
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, slot int, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %q", ErrPipelineNotFound, pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, slot, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.viewport = Viewport{X: 0, Y: 0, Width: width, Height: height}
	vp := r.viewport
	r.mu.Unlock()

	r.backend.SetViewport(vp)
	if vp.Empty() {
		log.Printf("[Renderer] framebuffer is %dx%d, skipping surface configuration", width, height)
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Viewport() Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.presentMode = mode
	vp := r.viewport
	r.mu.Unlock()

	r.backend.SetPresentMode(mode)
	if !vp.Empty() {
		r.backend.ConfigureSurface(vp.Width, vp.Height)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		if rp := p.RenderPipeline(); rp != nil {
			rp.Release()
		}
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
