package shader

import "fmt"

// CompileError reports a shader that could not be compiled, either by the WGSL front-end
// checks in NewShader or by the GPU device when the shader module is created.
type CompileError struct {
	// Key is the shader's unique key.
	Key string
	// Stage is the pipeline stage the shader was compiled for.
	Stage ShaderType
	// Log is the diagnostic text describing the failure.
	Log string
}

// Error formats the failure in the same shape for every stage, e.g.
// "shader VERTEX compilation failed (triangle_vert): no @vertex entry point".
func (e *CompileError) Error() string {
	return fmt.Sprintf("shader %s compilation failed (%s): %s", e.Stage, e.Key, e.Log)
}
