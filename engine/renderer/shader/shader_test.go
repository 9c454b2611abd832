package shader

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `
// Interleaved position and color.
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec3<f32>,
};

@group(0) @binding(0) var<uniform> projection: mat4x4<f32>;
@group(1) @binding(0) var<uniform> model: mat4x4<f32>;

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = projection * model * vec4<f32>(in.position, 1.0);
    out.color = in.color;
    return out;
}
`

const testFragmentSource = `
/* block /* nested */ comment */
@fragment
fn fs_main(@location(0) color: vec3<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(color, 1.0);
}
`

func TestNewShaderReflectsVertexLayout(t *testing.T) {
	s, err := NewShader("tri_vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	require.Len(t, s.VertexLayouts(), 1)

	layout := s.VertexLayout(0)
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(24), layout[0].ArrayStride)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
	}, layout[0].Attributes)

	assert.Equal(t, "tri_vert", s.Module().Label)
	assert.Equal(t, testVertexSource, s.Source())
}

func TestNewShaderReflectsUniforms(t *testing.T) {
	s, err := NewShader("tri_vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	descs := s.BindGroupLayoutDescriptors()
	require.Len(t, descs, 2)
	for _, g := range []int{0, 1} {
		entries := s.BindGroupLayoutDescriptor(g).Entries
		require.Len(t, entries, 1)
		assert.Equal(t, wgpu.BufferBindingTypeUniform, entries[0].Buffer.Type)
		assert.Equal(t, uint64(64), entries[0].Buffer.MinBindingSize)
		assert.Equal(t, wgpu.ShaderStageVertex, entries[0].Visibility)
	}
	assert.Equal(t, "projection", s.BindGroupVarName(0, 0))
	assert.Equal(t, "model", s.BindGroupVarName(1, 0))
	assert.Equal(t, "", s.BindGroupVarName(3, 0))
}

func TestLocate(t *testing.T) {
	s, err := NewShader("tri_vert", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	model := s.Locate("model")
	assert.Equal(t, UniformSlot{Name: "model", Group: 1, Binding: 0, Size: 64, Valid: true}, model)

	projection := s.Locate("projection")
	assert.True(t, projection.Valid)
	assert.Equal(t, 0, projection.Group)

	missing := s.Locate("view")
	assert.False(t, missing.Valid)
	assert.Equal(t, -1, missing.Group)
	assert.Equal(t, "view", missing.Name)
}

func TestNewShaderFragment(t *testing.T) {
	s, err := NewShader("tri_frag", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())
	assert.Empty(t, s.BindGroupLayoutDescriptors())
}

func TestNewShaderCompileErrors(t *testing.T) {
	cases := []struct {
		name   string
		stage  ShaderType
		source string
	}{
		{"empty", ShaderTypeVertex, "  \n// only a comment\n"},
		{"fragment source as vertex", ShaderTypeVertex, testFragmentSource},
		{"vertex source as fragment", ShaderTypeFragment, testVertexSource},
		{"no vertex input", ShaderTypeVertex, "@vertex fn main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }"},
		{"commented out entry", ShaderTypeFragment, "// @fragment fn fs_main() {}"},
		{"unknown stage", ShaderType(7), testVertexSource},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewShader("bad", tc.stage, tc.source)
			assert.Nil(t, s)

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, "bad", ce.Key)
			assert.Equal(t, tc.stage, ce.Stage)
			assert.NotEmpty(t, ce.Log)
		})
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{Key: "tri_frag", Stage: ShaderTypeFragment, Log: "bad token"}
	assert.Equal(t, "shader FRAGMENT compilation failed (tri_frag): bad token", err.Error())
	assert.Equal(t, "UNKNOWN", ShaderType(9).String())
}
