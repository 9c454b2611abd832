package common

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))

	data := []float32{1, -2.5}
	b := SliceToBytes(data)
	require.Len(t, b, 8)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(b[0:4])))
	assert.Equal(t, float32(-2.5), math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])))
}

func TestMat4ToBytesIsColumnMajorCopy(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	b := Mat4ToBytes(m)
	require.Len(t, b, 64)

	// Translation lives in the fourth column: elements 12, 13, 14.
	for i, want := range []float32{1, 2, 3} {
		off := (12 + i) * 4
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[off : off+4]))
		assert.Equal(t, want, got)
	}

	m[12] = 99
	got := math.Float32frombits(binary.LittleEndian.Uint32(b[48:52]))
	assert.Equal(t, float32(1), got, "bytes must not alias the source matrix")
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(0), AlignUp(256, 0))
	assert.Equal(t, uint64(256), AlignUp(256, 64))
	assert.Equal(t, uint64(256), AlignUp(256, 256))
	assert.Equal(t, uint64(512), AlignUp(256, 257))
	assert.Equal(t, uint64(7), AlignUp(0, 7))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, 800, Coalesce(800, 1280))
}
