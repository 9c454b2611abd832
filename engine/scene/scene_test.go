package scene

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-trio/common"
	"github.com/Carmen-Shannon/oxy-trio/engine/animator"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer implements renderer.Renderer without a GPU and logs every call.
type recordingRenderer struct {
	calls       []string
	writes      []bind_group_provider.BufferWrite
	pipelines   map[string]pipeline.Pipeline
	descriptors map[string]wgpu.BindGroupLayoutDescriptor
	meshBytes   int
	drawErr     error
}

var _ renderer.Renderer = &recordingRenderer{}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		pipelines:   make(map[string]pipeline.Pipeline),
		descriptors: make(map[string]wgpu.BindGroupLayoutDescriptor),
	}
}

func (r *recordingRenderer) Pipeline(key string) pipeline.Pipeline { return r.pipelines[key] }
func (r *recordingRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if err := p.Validate(); err != nil {
			return err
		}
		r.pipelines[p.PipelineKey()] = p
		r.calls = append(r.calls, "register "+p.PipelineKey())
	}
	return nil
}
func (r *recordingRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData []byte, vertexCount int) error {
	r.meshBytes = len(vertexData)
	provider.SetVertexCount(vertexCount)
	r.calls = append(r.calls, "mesh "+provider.Label())
	return nil
}
func (r *recordingRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	r.descriptors[provider.Label()] = descriptor
	r.calls = append(r.calls, "bind "+provider.Label())
	return nil
}
func (r *recordingRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		r.writes = append(r.writes, w)
		r.calls = append(r.calls, fmt.Sprintf("write %d@%d", w.Binding, w.Offset))
	}
}
func (r *recordingRenderer) BeginFrame() error { return nil }
func (r *recordingRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, slot int, bindGroups []bind_group_provider.BindGroupProvider) error {
	if r.drawErr != nil {
		return r.drawErr
	}
	groups := make([]string, len(bindGroups))
	for i, bg := range bindGroups {
		groups[i] = fmt.Sprint(bg.Group())
	}
	r.calls = append(r.calls, fmt.Sprintf("draw %s slot=%d verts=%d groups=%s", pipelineKey, slot, meshProvider.VertexCount(), strings.Join(groups, ",")))
	return nil
}
func (r *recordingRenderer) EndFrame()                                {}
func (r *recordingRenderer) Present()                                 {}
func (r *recordingRenderer) Resize(width, height int)                 {}
func (r *recordingRenderer) Viewport() renderer.Viewport              { return renderer.Viewport{} }
func (r *recordingRenderer) SetPresentMode(mode renderer.PresentMode) {}
func (r *recordingRenderer) Release()                                 {}

func TestInitBuildsPipelineAndResources(t *testing.T) {
	r := newRecordingRenderer()
	s := NewScene("main")
	require.NoError(t, s.Init(r))

	assert.Equal(t, []string{
		"register main_triangle",
		"bind main_group_0",
		"bind main_group_1",
		"mesh main_mesh",
	}, r.calls)
	assert.Equal(t, 72, r.meshBytes, "3 vertices of 6 floats")
	assert.Same(t, r, s.Renderer())

	p := r.Pipeline("main_triangle")
	require.NotNil(t, p)
	assert.True(t, p.HasDynamicOffset(1, 0), "model uniform is addressed per instance")
	assert.False(t, p.HasDynamicOffset(0, 0))

	model := r.descriptors["main_group_1"]
	require.Len(t, model.Entries, 1)
	assert.True(t, model.Entries[0].Buffer.HasDynamicOffset)
	assert.Equal(t, uint64(64), model.Entries[0].Buffer.MinBindingSize)
}

func TestDrawCallsOrder(t *testing.T) {
	r := newRecordingRenderer()
	s := NewScene("main")
	require.NoError(t, s.Init(r))
	r.calls = nil

	require.NoError(t, s.DrawCalls(1.5))

	assert.Equal(t, []string{
		"write 0@0",
		"write 0@0",
		"draw main_triangle slot=0 verts=3 groups=0,1",
		"write 0@256",
		"draw main_triangle slot=1 verts=3 groups=0,1",
		"write 0@512",
		"draw main_triangle slot=2 verts=3 groups=0,1",
	}, r.calls)

	require.Len(t, r.writes, 4)
	assert.Equal(t, 0, r.writes[0].Provider.Group())
	assert.Equal(t, common.Mat4ToBytes(mgl32.Ident4()), r.writes[0].Data)

	for i, inst := range animator.DefaultInstances() {
		w := r.writes[i+1]
		assert.Equal(t, 1, w.Provider.Group())
		assert.Equal(t, common.Mat4ToBytes(animator.ComputeTransform(inst.Base, i, 1.5)), w.Data, "instance %d", i)
	}
}

func TestDrawCallsAtTimeZero(t *testing.T) {
	r := newRecordingRenderer()
	s := NewScene("main")
	require.NoError(t, s.Init(r))
	require.NoError(t, s.DrawCalls(0))

	first := r.writes[1].Data
	assert.Equal(t, common.Mat4ToBytes(mgl32.Translate3D(-0.5, 0, 0)), first, "instance 0 at t=0 is a pure translation")
}

func TestDrawCallsRequiresInit(t *testing.T) {
	s := NewScene("main")
	assert.Error(t, s.DrawCalls(0))
}

func TestDrawCallsPropagatesDrawErrors(t *testing.T) {
	r := newRecordingRenderer()
	s := NewScene("main")
	require.NoError(t, s.Init(r))

	r.drawErr = renderer.ErrPipelineNotFound
	assert.ErrorIs(t, s.DrawCalls(0), renderer.ErrPipelineNotFound)
}

func TestMissingUniformWritesAreSkipped(t *testing.T) {
	vertex := `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};
struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec3<f32>,
};
@group(0) @binding(0) var<uniform> model: mat4x4<f32>;
@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = model * vec4<f32>(in.position, 1.0);
    out.color = in.color;
    return out;
}
`
	r := newRecordingRenderer()
	s := NewScene("flat", WithShaderSources(vertex, triangleFragmentSource))
	require.NoError(t, s.Init(r))
	require.NoError(t, s.DrawCalls(0))

	require.Len(t, r.writes, 4)
	assert.Equal(t, -1, r.writes[0].Binding, "projection is not declared")
	assert.Nil(t, r.writes[0].Provider)
	assert.Equal(t, uint64(256), r.writes[2].Offset)
}

func TestInitRejectsMismatchedVertexLayout(t *testing.T) {
	vertex := strings.Replace(triangleVertexSource, "@location(1) color: vec3<f32>", "@location(1) color: vec4<f32>", 1)
	r := newRecordingRenderer()
	err := NewScene("bad", WithShaderSources(vertex, triangleFragmentSource)).Init(r)
	assert.ErrorIs(t, err, ErrVertexLayout)
	assert.Empty(t, r.calls)
}

func TestInitReportsCompileErrors(t *testing.T) {
	r := newRecordingRenderer()
	err := NewScene("bad", WithShaderSources(triangleVertexSource, "// nothing here")).Init(r)

	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, shader.ShaderTypeFragment, ce.Stage)
	assert.Nil(t, NewScene("bad").Renderer())
}

func TestOptions(t *testing.T) {
	inst := []animator.Instance{{Base: mgl32.Vec3{1, 0, 0}}}
	s := NewScene("custom", WithInstances(inst...), WithPipelineKey("tri"), WithProjection(mgl32.Scale3D(2, 2, 2)))
	assert.Equal(t, "custom", s.Name())
	assert.Equal(t, "tri", s.PipelineKey())
	assert.Equal(t, inst, s.Instances())

	r := newRecordingRenderer()
	require.NoError(t, s.Init(r))
	require.NoError(t, s.DrawCalls(0))
	assert.Equal(t, common.Mat4ToBytes(mgl32.Scale3D(2, 2, 2)), r.writes[0].Data)
	assert.Len(t, r.writes, 2)
}

func TestRelease(t *testing.T) {
	r := newRecordingRenderer()
	s := NewScene("main")
	require.NoError(t, s.Init(r))
	s.Release()
	assert.Nil(t, s.Renderer())
	assert.Error(t, s.DrawCalls(0))
}
