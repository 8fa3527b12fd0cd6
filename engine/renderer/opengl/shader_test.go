package opengl

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const testVertexSource = `#version 330 core
layout(location = 0) in vec4 position;
uniform mat4 wvpMatrix;
void main() { gl_Position = wvpMatrix * position; }
`

func TestGLShaderCompile(t *testing.T) {
	f := newFakeFunctions("4.6.0")
	s, err := NewGLShader(f, &metadata.ShaderDescriptor{
		Name:   "mesh.vert",
		Type:   metadata.ShaderTypeVertex,
		Source: []byte(testVertexSource),
	})
	if err != nil {
		t.Fatalf("NewGLShader() error = %v", err)
	}
	if s.Report() == nil || s.Report().HasErrors() {
		t.Fatalf("Report() = %v, want a successful report", s.Report())
	}
	if s.Type() != metadata.ShaderTypeVertex || s.Name() != "mesh.vert" {
		t.Errorf("Type/Name = %v/%q", s.Type(), s.Name())
	}
	if s.IsPostTessellationVertex() {
		t.Error("vertex shader reported as post-tessellation")
	}
}

func TestGLShaderCompileError(t *testing.T) {
	f := newFakeFunctions("4.6.0")
	f.compileOK = false
	f.infoLog = "0:3(1): error: syntax error\n"
	s, err := NewGLShader(f, &metadata.ShaderDescriptor{Type: metadata.ShaderTypeFragment, Source: []byte("void main(")})
	if err != nil {
		t.Fatalf("NewGLShader() error = %v", err)
	}
	if !s.Report().HasErrors() {
		t.Fatal("Report().HasErrors() = false")
	}
	if got := s.Report().Text(); got != "0:3(1): error: syntax error\n" {
		t.Errorf("Report().Text() = %q", got)
	}

	var refl metadata.ShaderReflection
	if s.Reflect(&refl) {
		t.Error("Reflect() succeeded on a shader that failed to compile")
	}
	if s.FindUniformLocation("anything") != -1 {
		t.Error("FindUniformLocation() on a failed shader != -1")
	}
	if got := f.callsWithPrefix("CreateProgram"); len(got) != 0 {
		t.Errorf("failed shader linked a reflection program: %v", got)
	}
}

func TestGLShaderRejectsBinarySource(t *testing.T) {
	f := newFakeFunctions("4.6.0")
	_, err := NewGLShader(f, &metadata.ShaderDescriptor{
		Type:       metadata.ShaderTypeVertex,
		Source:     []byte{0x03, 0x02, 0x23, 0x07},
		SourceType: metadata.ShaderSourceBinaryBuffer,
	})
	if !errors.Is(err, core.ErrUnsupportedShaderSource) {
		t.Errorf("NewGLShader() error = %v, want ErrUnsupportedShaderSource", err)
	}
	if _, err := NewGLShader(f, &metadata.ShaderDescriptor{Type: metadata.ShaderTypeUndefined}); err == nil {
		t.Error("NewGLShader() accepted an undefined shader type")
	}
}

func TestGLShaderReflect(t *testing.T) {
	f := newFakeFunctions("4.6.0")
	f.attribs = []fakeUniform{
		{"position", 1, FLOAT_VEC4},
		{"gl_VertexID", 1, INT},
		{"gl_InstanceID", 1, INT},
	}
	f.uniforms = []fakeUniform{
		{"wvpMatrix", 1, FLOAT_MAT4},
		{"colorMap", 1, SAMPLER_2D},
	}
	f.blocks = []string{"Scene"}
	f.blockSizes["Scene"] = 128
	f.locations["wvpMatrix"] = 2

	s, err := NewGLShader(f, &metadata.ShaderDescriptor{Type: metadata.ShaderTypeVertex, Source: []byte(testVertexSource)})
	if err != nil {
		t.Fatal(err)
	}
	var refl metadata.ShaderReflection
	if !s.Reflect(&refl) {
		t.Fatal("Reflect() = false")
	}

	inputs := refl.Vertex.InputAttribs
	if len(inputs) != 3 {
		t.Fatalf("InputAttribs = %+v, want 3 entries", inputs)
	}
	if inputs[0].Name != "position" || inputs[0].Format != metadata.FormatRGBA32Float || inputs[0].Location != 0 {
		t.Errorf("InputAttribs[0] = %+v", inputs[0])
	}
	if inputs[1].SystemValue != metadata.SystemValueVertexID || inputs[2].SystemValue != metadata.SystemValueInstanceID {
		t.Errorf("system values = %v, %v", inputs[1].SystemValue, inputs[2].SystemValue)
	}
	if len(refl.Uniforms) != 1 || refl.Uniforms[0].Type != metadata.UniformTypeFloat4x4 {
		t.Errorf("Uniforms = %+v", refl.Uniforms)
	}
	if len(refl.Resources) != 2 {
		t.Fatalf("Resources = %+v, want 2", refl.Resources)
	}
	if r := refl.Resources[0].Binding; r.Name != "colorMap" || r.Type != metadata.ResourceTypeTexture || !r.BindFlags.Has(metadata.BindSampled) {
		t.Errorf("Resources[0] = %+v", r)
	}
	if r := refl.Resources[1]; r.Binding.Name != "Scene" || r.ConstantBufferSize != 128 || !r.Binding.StageFlags.Has(metadata.StageVertex) {
		t.Errorf("Resources[1] = %+v", r)
	}

	if loc := s.FindUniformLocation("wvpMatrix"); loc != 2 {
		t.Errorf("FindUniformLocation(wvpMatrix) = %d, want 2", loc)
	}
	if got := len(f.callsWithPrefix("LinkProgram")); got != 1 {
		t.Errorf("reflection program linked %d times, want 1", got)
	}

	f.calls = nil
	s.Release()
	if got := len(f.calls); got != 2 {
		t.Errorf("Release() calls = %v, want DeleteProgram and DeleteShader", f.calls)
	}
}
