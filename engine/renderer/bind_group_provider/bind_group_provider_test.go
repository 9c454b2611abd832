package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainProvider(t *testing.T) {
	p := NewBindGroupProvider("projection")
	assert.Equal(t, "projection", p.Label())
	assert.Equal(t, 0, p.Group())
	assert.False(t, p.Dynamic())
	assert.Equal(t, 1, p.SlotCount())
	assert.Equal(t, uint64(0), p.SlotOffset(2))
	assert.Equal(t, uint64(64), p.BufferSize(64))
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
}

func TestSlottedProvider(t *testing.T) {
	p := NewBindGroupProvider("model", WithGroup(1), WithSlots(3, 64))
	assert.Equal(t, 1, p.Group())
	assert.True(t, p.Dynamic())
	assert.Equal(t, 3, p.SlotCount())
	assert.Equal(t, []uint64{0, 256, 512}, []uint64{p.SlotOffset(0), p.SlotOffset(1), p.SlotOffset(2)})
	assert.Equal(t, uint64(576), p.BufferSize(64))
}

func TestSlotStrideRoundsUpLargeElements(t *testing.T) {
	p := NewBindGroupProvider("big", WithSlots(2, 300))
	assert.Equal(t, uint64(512), p.SlotOffset(1))
	assert.Equal(t, uint64(812), p.BufferSize(300))
}

func TestWithSlotsIgnoresNonPositiveCount(t *testing.T) {
	p := NewBindGroupProvider("none", WithSlots(0, 64))
	assert.False(t, p.Dynamic())
	assert.Equal(t, 1, p.SlotCount())
}

func TestVertexCountAndRelease(t *testing.T) {
	p := NewBindGroupProvider("mesh", WithVertexCount(3))
	assert.Equal(t, 3, p.VertexCount())
	p.SetVertexCount(6)
	assert.Equal(t, 6, p.VertexCount())

	p.SetBuffer(0, nil)
	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.VertexBuffer())
}
