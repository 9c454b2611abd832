package model

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// FloatsPerVertex is the interleaved stride of a Vertex measured in float32 values.
const FloatsPerVertex = 6

// ColorOffset is the float offset of the color channel within a single interleaved vertex.
const ColorOffset = 3

// Vertex is the GPU-aligned representation of a single triangle vertex.
// Matches the WGSL VertexInput struct layout exactly.
// Size: 24 bytes (no padding; vertex attributes are tightly packed).
type Vertex struct {
	Position [3]float32 // offset  0: position in model space (12 bytes)
	Color    [3]float32 // offset 12: RGB color (12 bytes)
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// VertexLayout returns the vertex buffer layout that uploaded Vertex data is read with.
// Channel 0 is the position, channel 1 is the color, both Float32x3 read from one interleaved buffer.
//
// Returns:
//   - wgpu.VertexBufferLayout: the expected layout for shaders consuming Vertex data
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: FloatsPerVertex * 4,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: ColorOffset * 4, ShaderLocation: 1},
		},
	}
}

// LayoutMatches reports whether a reflected vertex buffer layout reads Vertex data correctly.
//
// Parameters:
//   - layout: the layout to compare, typically parsed from a vertex shader
//
// Returns:
//   - bool: true if the stride, step mode, and every attribute match VertexLayout
func LayoutMatches(layout wgpu.VertexBufferLayout) bool {
	want := VertexLayout()
	if layout.ArrayStride != want.ArrayStride || layout.StepMode != want.StepMode {
		return false
	}
	if len(layout.Attributes) != len(want.Attributes) {
		return false
	}
	for i, a := range layout.Attributes {
		if a != want.Attributes[i] {
			return false
		}
	}
	return true
}
