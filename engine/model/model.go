// Package model holds the static triangle mesh and the conversions between its vertex
// structs and the flat interleaved float array uploaded to the GPU.
package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-trio/common"
)

// Triangle returns the three vertices of the demo triangle: red bottom-left,
// green bottom-right and blue top.
//
// Returns:
//   - []Vertex: a new slice with the three triangle vertices
func Triangle() []Vertex {
	return []Vertex{
		{Position: [3]float32{-0.25, -0.25, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
		{Position: [3]float32{0.25, -0.25, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
		{Position: [3]float32{0.0, 0.25, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
	}
}

// Interleave flattens vertices into a single float array with stride FloatsPerVertex,
// position first and color at ColorOffset.
//
// Parameters:
//   - vertices: the vertices to flatten
//
// Returns:
//   - []float32: len(vertices) * FloatsPerVertex floats
func Interleave(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}

// Deinterleave reads an interleaved float array back into vertices using the same
// stride and channel offsets the GPU attribute layout uses.
//
// Parameters:
//   - data: interleaved vertex floats
//
// Returns:
//   - []Vertex: the decoded vertices
//   - error: an error if data is not a whole number of vertices
func Deinterleave(data []float32) ([]Vertex, error) {
	if len(data)%FloatsPerVertex != 0 {
		return nil, fmt.Errorf("model: %d floats is not a multiple of the %d float vertex stride", len(data), FloatsPerVertex)
	}
	out := make([]Vertex, len(data)/FloatsPerVertex)
	for i := range out {
		base := i * FloatsPerVertex
		copy(out[i].Position[:], data[base:base+ColorOffset])
		copy(out[i].Color[:], data[base+ColorOffset:base+FloatsPerVertex])
	}
	return out, nil
}

// VertexBytes returns the upload bytes for vertices.
//
// Parameters:
//   - vertices: the vertices to upload
//
// Returns:
//   - []byte: the interleaved vertex data as raw bytes
func VertexBytes(vertices []Vertex) []byte {
	return common.SliceToBytes(Interleave(vertices))
}
