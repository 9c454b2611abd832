package scene

import (
	"github.com/Carmen-Shannon/oxy-trio/engine/animator"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithInstances replaces the default instances. Instances are drawn in slice order and the
// index of each instance offsets its animation.
//
// Parameters:
//   - instances: the instances to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInstances(instances ...animator.Instance) SceneBuilderOption {
	return func(s *scene) {
		s.instances = append([]animator.Instance(nil), instances...)
	}
}

// WithProjection sets the projection matrix written once per frame. Defaults to identity.
//
// Parameters:
//   - projection: the projection matrix
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProjection(projection mgl32.Mat4) SceneBuilderOption {
	return func(s *scene) {
		s.projection = projection
	}
}

// WithShaderSources replaces the embedded WGSL vertex and fragment sources.
//
// Parameters:
//   - vertexSource: WGSL source declaring a vertex entry point
//   - fragmentSource: WGSL source declaring a fragment entry point
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShaderSources(vertexSource, fragmentSource string) SceneBuilderOption {
	return func(s *scene) {
		s.vertexSource = vertexSource
		s.fragmentSource = fragmentSource
	}
}

// WithPipelineKey overrides the key the render pipeline is registered under.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineKey(key string) SceneBuilderOption {
	return func(s *scene) {
		s.pipelineKey = key
	}
}
