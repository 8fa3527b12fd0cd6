package debug

import (
	"sync"

	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

var (
	vertexIDNames   = []string{"SV_VertexID", "gl_VertexID", "gl_VertexIndex", "vertex_index"}
	instanceIDNames = []string{"SV_InstanceID", "gl_InstanceID", "gl_InstanceIndex", "instance_index"}
)

func isOneOf(name string, names []string) bool {
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}

/**
 * @brief Wraps a back-end shader. The label is kept here and never forwarded,
 * everything else is delegated to the wrapped instance. The vertex and
 * instance ID inputs are looked up from the first successful reflection.
 */
type DbgShader struct {
	instance renderer.Shader
	desc     metadata.ShaderDescriptor
	label    string
	id       uint32

	mu         sync.Mutex
	scanned    bool
	vertexID   string
	instanceID string
}

func NewDbgShader(instance renderer.Shader, desc *metadata.ShaderDescriptor) *DbgShader {
	return &DbgShader{
		instance: instance,
		desc:     *desc,
		label:    desc.Name,
	}
}

// Instance returns the wrapped back-end shader.
func (s *DbgShader) Instance() renderer.Shader {
	return s.instance
}

// Descriptor returns the copy of the descriptor the shader was created with.
func (s *DbgShader) Descriptor() *metadata.ShaderDescriptor {
	return &s.desc
}

func (s *DbgShader) SetName(name string) {
	s.label = name
}

func (s *DbgShader) Name() string {
	return s.label
}

func (s *DbgShader) Type() metadata.ShaderType {
	return s.instance.Type()
}

func (s *DbgShader) Report() *metadata.Report {
	return s.instance.Report()
}

// Reflect delegates to the wrapped shader. The first successful reflection
// also resolves the vertex and instance IDs.
func (s *DbgShader) Reflect(reflection *metadata.ShaderReflection) bool {
	if !s.instance.Reflect(reflection) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scanned {
		s.scanIDs(reflection)
	}
	return true
}

func (s *DbgShader) FindUniformLocation(name string) int32 {
	return s.instance.FindUniformLocation(name)
}

func (s *DbgShader) IsPostTessellationVertex() bool {
	return s.instance.IsPostTessellationVertex()
}

// IsCompiled reports whether the wrapped shader has no compile or link errors.
// A shader without a report counts as compiled.
func (s *DbgShader) IsCompiled() bool {
	report := s.instance.Report()
	return report == nil || !report.HasErrors()
}

// VertexID returns the name of the vertex ID input, or "" if the shader does
// not read it.
func (s *DbgShader) VertexID() string {
	vertexID, _ := s.queryIDs()
	return vertexID
}

// InstanceID returns the name of the instance ID input, or "" if the shader
// does not read it.
func (s *DbgShader) InstanceID() string {
	_, instanceID := s.queryIDs()
	return instanceID
}

// queryIDs reflects the wrapped shader until one reflection succeeds.
func (s *DbgShader) queryIDs() (vertexID, instanceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scanned && s.instance.Type() == metadata.ShaderTypeVertex {
		var reflection metadata.ShaderReflection
		if s.instance.Reflect(&reflection) {
			s.scanIDs(&reflection)
		}
	}
	return s.vertexID, s.instanceID
}

// scanIDs must be called with mu held.
func (s *DbgShader) scanIDs(reflection *metadata.ShaderReflection) {
	s.scanned = true
	for _, attr := range reflection.Vertex.InputAttribs {
		switch {
		case attr.SystemValue == metadata.SystemValueVertexID || isOneOf(attr.Name, vertexIDNames):
			if s.vertexID == "" {
				s.vertexID = attr.Name
			}
		case attr.SystemValue == metadata.SystemValueInstanceID || isOneOf(attr.Name, instanceIDNames):
			if s.instanceID == "" {
				s.instanceID = attr.Name
			}
		}
	}
}
