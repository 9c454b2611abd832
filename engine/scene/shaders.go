package scene

import _ "embed"

// Uniform variable names the scene writes each frame.
const (
	ProjectionUniform = "projection"
	ModelUniform      = "model"
)

//go:embed assets/triangle_vert.wgsl
var triangleVertexSource string

//go:embed assets/triangle_frag.wgsl
var triangleFragmentSource string
