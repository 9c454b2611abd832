package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTypeLayout(t *testing.T) {
	known := map[string]wgslTypeLayout{"Light": {32, 16}}

	cases := []struct {
		typeName string
		want     wgslTypeLayout
		ok       bool
	}{
		{"mat4x4<f32>", wgslTypeLayout{64, 16}, true},
		{"vec3<f32>", wgslTypeLayout{12, 16}, true},
		{"array<vec3<f32>, 4>", wgslTypeLayout{64, 16}, true},
		{"array<Light, 2>", wgslTypeLayout{64, 16}, true},
		{"array<f32>", wgslTypeLayout{}, false},
		{"texture_2d<f32>", wgslTypeLayout{}, false},
	}
	for _, tc := range cases {
		got, ok := resolveTypeLayout(tc.typeName, known)
		assert.Equal(t, tc.ok, ok, tc.typeName)
		assert.Equal(t, tc.want, got, tc.typeName)
	}
}

func TestComputeStructSizesResolvesNestedStructs(t *testing.T) {
	src := `
struct Outer { inner: Inner, scale: f32, };
struct Inner { offset: vec3<f32>, };
`
	sizes := computeStructSizes(parseStructBlocks(src))
	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Inner"])
	assert.Equal(t, wgslTypeLayout{32, 16}, sizes["Outer"])
}

func TestParseBindGroupLayoutsStorageAndStructs(t *testing.T) {
	src := `
struct Params { tint: vec4<f32>, time: f32, };
@group(0) @binding(1) var<storage, read> items: array<vec4<f32>, 8>;
@group(0) @binding(0) var<uniform> params: Params;
@group(2) @binding(0) var<storage, read_write> out: array<f32, 4>;
`
	descs, names := parseBindGroupLayouts(src, wgpu.ShaderStageFragment)
	require.Len(t, descs, 2)

	g0 := descs[0].Entries
	require.Len(t, g0, 2)
	assert.Equal(t, uint32(0), g0[0].Binding, "entries sorted by binding")
	assert.Equal(t, wgpu.BufferBindingTypeUniform, g0[0].Buffer.Type)
	assert.Equal(t, uint64(32), g0[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, g0[1].Buffer.Type)
	assert.Equal(t, uint64(128), g0[1].Buffer.MinBindingSize)

	assert.Equal(t, wgpu.BufferBindingTypeStorage, descs[2].Entries[0].Buffer.Type)
	assert.Equal(t, "out", names[2][0])
	assert.Equal(t, "params", names[0][0])
}

func TestParseVertexLayoutsSkipsOutputsAndUnknownTypes(t *testing.T) {
	src := `
struct Out { @builtin(position) pos: vec4<f32>, @location(0) uv: vec2<f32>, };
struct Weird { @location(0) m: mat4x4<f32>, };
struct In { @location(0) p: vec2f, @location(1) c: vec4f, @location(2) id: u32, };
`
	layouts := parseVertexLayouts(src)
	require.Len(t, layouts, 1)
	l := layouts[0][0]
	assert.Equal(t, uint64(28), l.ArrayStride)
	assert.Equal(t, uint64(24), l.Attributes[2].Offset)
	assert.Equal(t, wgpu.VertexFormatUint32, l.Attributes[2].Format)
}

func TestStripComments(t *testing.T) {
	src := "a // tail\n/* x /* y */ z */b"
	assert.Equal(t, "a \nb\n", stripComments(src))
}
