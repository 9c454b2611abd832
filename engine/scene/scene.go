package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-trio/common"
	"github.com/Carmen-Shannon/oxy-trio/engine/animator"
	"github.com/Carmen-Shannon/oxy-trio/engine/model"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrVertexLayout is returned by Init when the vertex shader reads vertex data with a layout
// other than the interleaved position/color layout the mesh is uploaded in.
var ErrVertexLayout = errors.New("vertex shader layout does not match mesh layout")

// Scene owns the triangle mesh, its instances and the shader program that draws them.
// Each frame it writes the projection once, then for every instance in order writes that
// instance's model matrix and issues one draw.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// PipelineKey returns the key the scene's render pipeline is registered under.
	PipelineKey() string

	// Instances returns the instances drawn each frame, in draw order.
	Instances() []animator.Instance

	// Renderer returns the renderer attached by Init, or nil.
	Renderer() renderer.Renderer

	// Init compiles and links the scene's shaders, uploads the mesh, and creates the
	// uniform bind groups on the renderer. The renderer is kept for DrawCalls.
	//
	// Parameters:
	//   - r: the renderer to create GPU resources on
	//
	// Returns:
	//   - error: a *shader.CompileError, *pipeline.LinkError, ErrVertexLayout or upload error
	Init(r renderer.Renderer) error

	// DrawCalls issues one draw per instance for time t.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Parameters:
	//   - t: seconds since the window was created
	//
	// Returns:
	//   - error: an error if the scene was not initialized or a draw failed
	DrawCalls(t float32) error

	// Release releases the GPU resources created by Init.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name        string
	pipelineKey string
	r           renderer.Renderer

	vertices       []model.Vertex
	instances      []animator.Instance
	projection     mgl32.Mat4
	vertexSource   string
	fragmentSource string

	projectionSlot shader.UniformSlot
	modelSlot      shader.UniformSlot

	meshProvider bind_group_provider.BindGroupProvider
	// groupProviders holds one provider per bind group of the pipeline, keyed by group index.
	groupProviders map[int]bind_group_provider.BindGroupProvider
	// bindGroups is groupProviders ordered by group index, reused every draw.
	bindGroups []bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates a scene drawing the default triangle at the three default instances
// with an identity projection.
//
// Parameters:
//   - name: the scene's identifier, also used to derive GPU resource labels
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the configured scene, not yet initialized
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		pipelineKey:    name + "_triangle",
		vertices:       model.Triangle(),
		instances:      animator.DefaultInstances(),
		projection:     mgl32.Ident4(),
		vertexSource:   triangleVertexSource,
		fragmentSource: triangleFragmentSource,
		groupProviders: make(map[int]bind_group_provider.BindGroupProvider),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) PipelineKey() string {
	return s.pipelineKey
}

func (s *scene) Instances() []animator.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]animator.Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Init(r renderer.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs, err := shader.NewShader(s.pipelineKey+"_vert", shader.ShaderTypeVertex, s.vertexSource)
	if err != nil {
		return err
	}
	fs, err := shader.NewShader(s.pipelineKey+"_frag", shader.ShaderTypeFragment, s.fragmentSource)
	if err != nil {
		return err
	}

	layouts := vs.VertexLayout(0)
	if len(layouts) != 1 || !model.LayoutMatches(layouts[0]) {
		return fmt.Errorf("scene %q: %w", s.name, ErrVertexLayout)
	}

	s.projectionSlot = vs.Locate(ProjectionUniform)
	s.modelSlot = vs.Locate(ModelUniform)

	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}
	if s.modelSlot.Valid {
		opts = append(opts, pipeline.WithDynamicOffset(s.modelSlot.Group, s.modelSlot.Binding))
	}
	p := pipeline.NewPipeline(s.pipelineKey, opts...)
	if err := r.RegisterPipelines(p); err != nil {
		return err
	}

	s.bindGroups = s.bindGroups[:0]
	for g := 0; g < p.BindGroupCount(); g++ {
		providerOpts := []bind_group_provider.BindGroupProviderOption{bind_group_provider.WithGroup(g)}
		if s.modelSlot.Valid && s.modelSlot.Group == g {
			providerOpts = append(providerOpts, bind_group_provider.WithSlots(len(s.instances), s.modelSlot.Size))
		}
		provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s_group_%d", s.name, g), providerOpts...)
		if err := r.InitBindGroup(provider, p.BindGroupLayoutDescriptor(g)); err != nil {
			return fmt.Errorf("scene %q: init bind group %d: %w", s.name, g, err)
		}
		s.groupProviders[g] = provider
		s.bindGroups = append(s.bindGroups, provider)
	}

	s.meshProvider = bind_group_provider.NewBindGroupProvider(s.name + "_mesh")
	if err := r.InitMeshBuffers(s.meshProvider, model.VertexBytes(s.vertices), len(s.vertices)); err != nil {
		return fmt.Errorf("scene %q: upload mesh: %w", s.name, err)
	}

	s.r = r
	return nil
}

// uniformWrite builds a write of data into the given instance slot of a uniform. Unresolved
// uniforms produce a write with binding -1, which the renderer skips.
func (s *scene) uniformWrite(slot shader.UniformSlot, instance int, data []byte) bind_group_provider.BufferWrite {
	if !slot.Valid {
		return bind_group_provider.BufferWrite{Binding: -1, Data: data}
	}
	provider := s.groupProviders[slot.Group]
	if provider == nil {
		return bind_group_provider.BufferWrite{Binding: -1, Data: data}
	}
	return bind_group_provider.BufferWrite{
		Provider: provider,
		Binding:  slot.Binding,
		Offset:   provider.SlotOffset(instance),
		Data:     data,
	}
}

func (s *scene) DrawCalls(t float32) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		s.uniformWrite(s.projectionSlot, 0, common.Mat4ToBytes(s.projection)),
	})

	for i, inst := range s.instances {
		transform := inst.Transform(i, t)
		s.r.WriteBuffers([]bind_group_provider.BufferWrite{
			s.uniformWrite(s.modelSlot, i, common.Mat4ToBytes(transform)),
		})
		if err := s.r.DrawCall(s.pipelineKey, s.meshProvider, i, s.bindGroups); err != nil {
			return fmt.Errorf("draw call failed for instance %d in scene %q: %w", i, s.name, err)
		}
	}

	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for g, provider := range s.groupProviders {
		provider.Release()
		delete(s.groupProviders, g)
	}
	s.bindGroups = nil
	if s.meshProvider != nil {
		s.meshProvider.Release()
		s.meshProvider = nil
	}
	s.r = nil
}
