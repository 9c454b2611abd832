package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It pairs a vertex and a fragment shader with the fixed-function state used to link them.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for lookups and diagnostics
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is the linked render pipeline, nil until the renderer registers it
	renderPipeline *wgpu.RenderPipeline

	// dynamicBindings marks (group, binding) pairs whose buffer binding uses a dynamic offset
	dynamicBindings map[int]map[int]bool

	cullMode   wgpu.CullMode
	topology   wgpu.PrimitiveTopology
	frontFace  wgpu.FrontFace
	writeMask  wgpu.ColorWriteMask
	blendState *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline: a vertex and a fragment shader linked
// together with primitive and color target state. It is the program handle used for every draw.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified stage if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the stage of the shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the linked WebGPU render pipeline, or nil if not yet linked.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the linked pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// Linked reports whether a render pipeline has been created for this pipeline.
	//
	// Returns:
	//   - bool: true once SetRenderPipeline has been called with a non-nil pipeline
	Linked() bool

	// Validate checks that both stages are present and of the expected kind.
	// It performs the device-independent part of linking.
	//
	// Returns:
	//   - error: a *LinkError describing the first problem found, or nil
	Validate() error

	// BindGroupLayoutDescriptor merges the layouts both stages declare for a group and applies
	// any dynamic offset markings. Entries declared by both stages have their visibility combined.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the merged descriptor, with no entries if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupCount returns one more than the highest bind group index used by either stage.
	//
	// Returns:
	//   - int: the number of bind group layouts the pipeline layout needs
	BindGroupCount() int

	// HasDynamicOffset reports whether the given binding was marked with WithDynamicOffset.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - bool: true if the binding uses a dynamic offset
	HasDynamicOffset(group, binding int) bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, or nil for opaque output
	BlendState() *wgpu.BlendState

	// SetRenderPipeline sets the linked render pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewPipeline is the entry point to create a new Pipeline interface.
// Defaults: triangle list, no culling, counter-clockwise front faces, opaque output.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:     pipelineKey,
		dynamicBindings: make(map[int]map[int]bool),
		cullMode:        wgpu.CullModeNone,
		topology:        wgpu.PrimitiveTopologyTriangleList,
		frontFace:       wgpu.FrontFaceCCW,
		writeMask:       wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) Linked() bool {
	return p.renderPipeline != nil
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil {
		return &LinkError{Key: p.pipelineKey, Log: "missing vertex shader"}
	}
	if p.fragmentShader == nil {
		return &LinkError{Key: p.pipelineKey, Log: "missing fragment shader"}
	}
	if p.vertexShader.ShaderType() != shader.ShaderTypeVertex {
		return &LinkError{Key: p.pipelineKey, Log: fmt.Sprintf("shader %s attached as vertex stage is %s", p.vertexShader.Key(), p.vertexShader.ShaderType())}
	}
	if p.fragmentShader.ShaderType() != shader.ShaderTypeFragment {
		return &LinkError{Key: p.pipelineKey, Log: fmt.Sprintf("shader %s attached as fragment stage is %s", p.fragmentShader.Key(), p.fragmentShader.ShaderType())}
	}
	if len(p.vertexShader.VertexLayouts()) == 0 {
		return &LinkError{Key: p.pipelineKey, Log: "vertex stage declares no vertex buffer layout"}
	}

	for g := 0; g < p.BindGroupCount(); g++ {
		vs := p.vertexShader.BindGroupLayoutDescriptor(g).Entries
		fs := p.fragmentShader.BindGroupLayoutDescriptor(g).Entries
		for _, ve := range vs {
			for _, fe := range fs {
				if ve.Binding == fe.Binding && ve.Buffer.Type != fe.Buffer.Type {
					return &LinkError{Key: p.pipelineKey, Log: fmt.Sprintf("stages disagree on the type of binding %d in group %d", ve.Binding, g)}
				}
			}
		}
	}
	return nil
}

func (p *pipeline) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	var entries []wgpu.BindGroupLayoutEntry
	for _, s := range []shader.Shader{p.vertexShader, p.fragmentShader} {
		if s == nil {
			continue
		}
	next:
		for _, e := range s.BindGroupLayoutDescriptor(group).Entries {
			for i := range entries {
				if entries[i].Binding == e.Binding {
					entries[i].Visibility |= e.Visibility
					continue next
				}
			}
			entries = append(entries, e)
		}
	}

	for i := range entries {
		if p.HasDynamicOffset(group, int(entries[i].Binding)) {
			entries[i].Buffer.HasDynamicOffset = true
		}
	}

	return wgpu.BindGroupLayoutDescriptor{
		Label:   fmt.Sprintf("%s_group_%d", p.pipelineKey, group),
		Entries: entries,
	}
}

func (p *pipeline) BindGroupCount() int {
	count := 0
	for _, s := range []shader.Shader{p.vertexShader, p.fragmentShader} {
		if s == nil {
			continue
		}
		for g := range s.BindGroupLayoutDescriptors() {
			if g+1 > count {
				count = g + 1
			}
		}
	}
	return count
}

func (p *pipeline) HasDynamicOffset(group, binding int) bool {
	return p.dynamicBindings[group][binding]
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
