package bind_group_provider

import "github.com/Carmen-Shannon/oxy-trio/common"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the bind group index this provider binds to.
//
// Parameters:
//   - group: the @group(N) index declared in the shader
//
// Returns:
//   - BindGroupProviderOption: a function that sets the group index for this provider
func WithGroup(group int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}

// WithSlots makes every buffer of this provider hold count copies of its binding, each at a
// stride of elementSize rounded up to DynamicOffsetAlignment. Draws select a slot with a dynamic offset.
//
// Parameters:
//   - count: the number of slots, values below 1 leave the provider as a plain binding
//   - elementSize: the size in bytes of one slot's data
//
// Returns:
//   - BindGroupProviderOption: a function that configures slots for this provider
func WithSlots(count int, elementSize uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		if count < 1 {
			return
		}
		p.slotCount = count
		p.slotStride = common.AlignUp(DynamicOffsetAlignment, elementSize)
	}
}

// WithVertexCount sets the number of vertices drawn from this provider's vertex buffer.
//
// Parameters:
//   - count: the vertex count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the vertex count for this provider
func WithVertexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexCount = count
	}
}
