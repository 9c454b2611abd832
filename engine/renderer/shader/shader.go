package shader

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which render pipeline stage a shader is written for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// String returns the upper-case stage name used in diagnostics.
func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "VERTEX"
	case ShaderTypeFragment:
		return "FRAGMENT"
	default:
		return "UNKNOWN"
	}
}

// UniformSlot locates a named uniform variable within a shader's bind groups.
// A slot with Valid == false is returned for names the shader does not declare; writes to
// it are dropped by the renderer, mirroring an unresolved uniform location.
type UniformSlot struct {
	// Name is the WGSL variable name that was looked up.
	Name string
	// Group is the @group index of the variable.
	Group int
	// Binding is the @binding index of the variable within its group.
	Binding int
	// Size is the byte size of the variable's type, or 0 if it could not be resolved.
	Size uint64
	// Valid reports whether the shader declares the variable.
	Valid bool
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and uniform lookup.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a compiled WGSL shader. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors and vertex buffer
// layouts needed for pipeline creation and uniform uploads.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	//
	// Parameters:
	//   - group: the integer key identifying the bind group layout descriptor
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor for the group, or an empty descriptor if not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors.
	// These are the CPU-side descriptors extracted from the shader source which can be
	// used by the renderer to create the actual wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index, if it exists.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name associated with the group and binding, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// Locate resolves a uniform variable name to its bind group slot.
	// No validation is performed: unknown names yield a slot with Valid set to false.
	//
	// Parameters:
	//   - name: the WGSL variable name, e.g. "model"
	//
	// Returns:
	//   - UniformSlot: the resolved slot
	Locate(name string) UniformSlot

	// VertexLayout retrieves the vertex buffer layout for a specific key.
	//
	// Parameters:
	//   - key: the integer key identifying the vertex layout
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layout associated with the key, or nil if not set
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts associated with this shader.
	//
	// Returns:
	//   - map[int][]wgpu.VertexBufferLayout: a map of keys to their corresponding vertex buffer layouts
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader, which is built from the NewShader function.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the stage of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType
}

var _ Shader = &shader{}

// NewShader compiles WGSL source for the given stage. Compilation here is the device-free
// front end: the source must be non-empty and declare an entry point for the stage, and a
// vertex shader must declare a vertex input struct. Bind group layouts, variable names and
// vertex layouts are reflected from the source. The GPU module itself is created when the
// shader is linked into a pipeline.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage the shader is written for
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the compiled shader
//   - error: a *CompileError describing the first problem found
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	if strings.TrimSpace(stripComments(source)) == "" {
		return nil, &CompileError{Key: key, Stage: shaderType, Log: "empty source"}
	}
	s := &shader{
		key:                        key,
		source:                     source,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingVarNames:            make(map[int]map[int]string),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
	}
	if err := s.parseSource(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) Locate(name string) UniformSlot {
	for group, names := range s.bindingVarNames {
		for binding, varName := range names {
			if varName != name {
				continue
			}
			slot := UniformSlot{Name: name, Group: group, Binding: binding, Valid: true}
			for _, e := range s.bindGroupLayoutDescriptors[group].Entries {
				if int(e.Binding) == binding {
					slot.Size = e.Buffer.MinBindingSize
				}
			}
			return slot
		}
	}
	return UniformSlot{Name: name, Group: -1, Binding: -1}
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

// parseSource builds the shader module descriptor, parses the entry point name, and
// extracts layout metadata appropriate for the shader type. Vertex shaders get vertex
// buffer layouts parsed. All shader types get bind group layout descriptors parsed.
func (s *shader) parseSource() error {
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return &CompileError{Key: s.key, Stage: s.shaderType, Log: "no entry point found for stage"}
	}

	var visibility wgpu.ShaderStage
	switch s.shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = parseVertexLayouts(s.source)
		if len(s.vertexLayouts) == 0 {
			return &CompileError{Key: s.key, Stage: s.shaderType, Log: "no vertex input struct with @location fields"}
		}
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	default:
		return &CompileError{Key: s.key, Stage: s.shaderType, Log: "unsupported shader stage"}
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
	return nil
}
