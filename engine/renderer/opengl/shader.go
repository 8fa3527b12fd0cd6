package opengl

import (
	"fmt"
	"os"
	"strings"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type GLShader struct {
	funcs      Functions
	name       string
	shaderType metadata.ShaderType
	id         Object
	report     *metadata.Report

	// reflectProgram is a program with only this shader attached, linked on first use
	// for reflection and uniform lookups.
	reflectProgram Object
	reflectLinked  bool
}

func toGLShaderType(t metadata.ShaderType) (Enum, bool) {
	switch t {
	case metadata.ShaderTypeVertex:
		return VERTEX_SHADER, true
	case metadata.ShaderTypeTessControl:
		return TESS_CONTROL_SHADER, true
	case metadata.ShaderTypeTessEvaluation:
		return TESS_EVALUATION_SHADER, true
	case metadata.ShaderTypeGeometry:
		return GEOMETRY_SHADER, true
	case metadata.ShaderTypeFragment:
		return FRAGMENT_SHADER, true
	case metadata.ShaderTypeCompute:
		return COMPUTE_SHADER, true
	default:
		return 0, false
	}
}

func NewGLShader(f Functions, desc *metadata.ShaderDescriptor) (*GLShader, error) {
	glType, ok := toGLShaderType(desc.Type)
	if !ok {
		err := fmt.Errorf("opengl: invalid shader type `%s` for shader `%s`", desc.Type, desc.Name)
		core.LogError("%s", err.Error())
		return nil, err
	}

	source, err := shaderSource(desc)
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}

	s := &GLShader{
		funcs:      f,
		name:       desc.Name,
		shaderType: desc.Type,
		id:         f.CreateShader(glType),
		report:     metadata.NewReport("", false),
	}
	f.ShaderSource(s.id, source)
	f.CompileShader(s.id)

	infoLog := strings.TrimSpace(f.GetShaderInfoLog(s.id))
	if f.GetShaderi(s.id, COMPILE_STATUS) == FALSE {
		if infoLog == "" {
			infoLog = "unknown compile error"
		}
		s.report.Errorf("%s", infoLog)
	} else if infoLog != "" {
		s.report.Printf("%s", infoLog)
	}
	return s, nil
}

func shaderSource(desc *metadata.ShaderDescriptor) (string, error) {
	switch desc.SourceType {
	case metadata.ShaderSourceCodeString:
		return string(desc.Source), nil
	case metadata.ShaderSourceCodeFile:
		data, err := os.ReadFile(string(desc.Source))
		if err != nil {
			return "", fmt.Errorf("opengl: failed to read shader file `%s`: %w", string(desc.Source), err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: OpenGL accepts GLSL source only", core.ErrUnsupportedShaderSource)
	}
}

func (s *GLShader) SetName(name string) {
	s.name = name
}

func (s *GLShader) Name() string {
	return s.name
}

func (s *GLShader) ID() Object {
	return s.id
}

func (s *GLShader) Type() metadata.ShaderType {
	return s.shaderType
}

func (s *GLShader) Report() *metadata.Report {
	return s.report
}

func (s *GLShader) IsPostTessellationVertex() bool {
	return s.shaderType == metadata.ShaderTypeTessEvaluation
}

func (s *GLShader) linkReflectProgram() bool {
	if s.reflectLinked {
		return s.reflectProgram != 0
	}
	s.reflectLinked = true
	if s.report.HasErrors() {
		return false
	}

	f := s.funcs
	p := f.CreateProgram()
	f.AttachShader(p, s.id)
	f.LinkProgram(p)
	if f.GetProgrami(p, LINK_STATUS) == FALSE {
		core.LogDebug("shader `%s`: reflection program failed to link: %s", s.name, f.GetProgramInfoLog(p))
		f.DeleteProgram(p)
		return false
	}
	s.reflectProgram = p
	return true
}

func (s *GLShader) FindUniformLocation(name string) int32 {
	if !s.linkReflectProgram() {
		return -1
	}
	return s.funcs.GetUniformLocation(s.reflectProgram, name)
}

func (s *GLShader) Reflect(reflection *metadata.ShaderReflection) bool {
	if !s.linkReflectProgram() {
		return false
	}
	f := s.funcs

	if s.shaderType == metadata.ShaderTypeVertex {
		n := f.GetProgrami(s.reflectProgram, ACTIVE_ATTRIBUTES)
		for i := 0; i < n; i++ {
			name, _, ty := f.GetActiveAttrib(s.reflectProgram, uint32(i))
			attr := metadata.VertexAttribute{
				Name:        name,
				Format:      formatFromGLType(ty),
				SystemValue: systemValueFromGLName(name),
			}
			if loc := f.GetAttribLocation(s.reflectProgram, name); loc >= 0 {
				attr.Location = uint32(loc)
			}
			reflection.Vertex.InputAttribs = append(reflection.Vertex.InputAttribs, attr)
		}
	}

	stage := s.shaderType.Stage()
	n := f.GetProgrami(s.reflectProgram, ACTIVE_UNIFORMS)
	for i := 0; i < n; i++ {
		name, size, ty := f.GetActiveUniform(s.reflectProgram, uint32(i))
		if rt, ok := resourceTypeFromGLType(ty); ok {
			reflection.Resources = append(reflection.Resources, metadata.ShaderResourceReflection{
				Binding: metadata.BindingDescriptor{
					Name:       name,
					Type:       rt,
					BindFlags:  bindFlagsFromGLType(ty),
					StageFlags: stage,
					ArraySize:  uint32(size),
				},
			})
			continue
		}
		ut := uniformTypeFromGLType(ty)
		if ut == metadata.UniformTypeUndefined {
			continue
		}
		reflection.Uniforms = append(reflection.Uniforms, metadata.UniformDescriptor{
			Name:      name,
			Type:      ut,
			ArraySize: uint32(size),
		})
	}

	n = f.GetProgrami(s.reflectProgram, ACTIVE_UNIFORM_BLOCKS)
	for i := 0; i < n; i++ {
		reflection.Resources = append(reflection.Resources, metadata.ShaderResourceReflection{
			Binding: metadata.BindingDescriptor{
				Name:       f.GetActiveUniformBlockName(s.reflectProgram, uint32(i)),
				Type:       metadata.ResourceTypeBuffer,
				BindFlags:  metadata.BindConstantBuffer,
				StageFlags: stage,
				Slot:       uint32(f.GetActiveUniformBlocki(s.reflectProgram, uint32(i), UNIFORM_BLOCK_BINDING)),
			},
			ConstantBufferSize: uint32(f.GetActiveUniformBlocki(s.reflectProgram, uint32(i), UNIFORM_BLOCK_DATA_SIZE)),
		})
	}
	return true
}

func (s *GLShader) Release() {
	if s.reflectProgram != 0 {
		s.funcs.DeleteProgram(s.reflectProgram)
		s.reflectProgram = 0
	}
	if s.id != 0 {
		s.funcs.DeleteShader(s.id)
		s.id = 0
	}
}

func systemValueFromGLName(name string) metadata.SystemValue {
	switch name {
	case "gl_VertexID", "gl_VertexIndex":
		return metadata.SystemValueVertexID
	case "gl_InstanceID", "gl_InstanceIndex":
		return metadata.SystemValueInstanceID
	default:
		return metadata.SystemValueUndefined
	}
}

func formatFromGLType(ty Enum) metadata.Format {
	switch ty {
	case FLOAT:
		return metadata.FormatR32Float
	case FLOAT_VEC2:
		return metadata.FormatRG32Float
	case FLOAT_VEC3:
		return metadata.FormatRGB32Float
	case FLOAT_VEC4:
		return metadata.FormatRGBA32Float
	case INT:
		return metadata.FormatR32SInt
	case INT_VEC2:
		return metadata.FormatRG32SInt
	case INT_VEC3:
		return metadata.FormatRGB32SInt
	case INT_VEC4:
		return metadata.FormatRGBA32SInt
	case UNSIGNED_INT:
		return metadata.FormatR32UInt
	case UNSIGNED_INT_VEC2:
		return metadata.FormatRG32UInt
	case UNSIGNED_INT_VEC3:
		return metadata.FormatRGB32UInt
	case UNSIGNED_INT_VEC4:
		return metadata.FormatRGBA32UInt
	default:
		return metadata.FormatUndefined
	}
}

func resourceTypeFromGLType(ty Enum) (metadata.ResourceType, bool) {
	switch ty {
	case SAMPLER_2D, SAMPLER_3D, SAMPLER_CUBE, SAMPLER_2D_SHADOW, IMAGE_2D:
		return metadata.ResourceTypeTexture, true
	default:
		return metadata.ResourceTypeUndefined, false
	}
}

func bindFlagsFromGLType(ty Enum) metadata.BindFlags {
	if ty == IMAGE_2D {
		return metadata.BindStorage
	}
	return metadata.BindSampled | metadata.BindCombinedSampler
}

func uniformTypeFromGLType(ty Enum) metadata.UniformType {
	switch ty {
	case FLOAT:
		return metadata.UniformTypeFloat1
	case FLOAT_VEC2:
		return metadata.UniformTypeFloat2
	case FLOAT_VEC3:
		return metadata.UniformTypeFloat3
	case FLOAT_VEC4:
		return metadata.UniformTypeFloat4
	case INT:
		return metadata.UniformTypeInt1
	case INT_VEC2:
		return metadata.UniformTypeInt2
	case INT_VEC3:
		return metadata.UniformTypeInt3
	case INT_VEC4:
		return metadata.UniformTypeInt4
	case UNSIGNED_INT:
		return metadata.UniformTypeUInt1
	case UNSIGNED_INT_VEC2:
		return metadata.UniformTypeUInt2
	case UNSIGNED_INT_VEC3:
		return metadata.UniformTypeUInt3
	case UNSIGNED_INT_VEC4:
		return metadata.UniformTypeUInt4
	case FLOAT_MAT3:
		return metadata.UniformTypeFloat3x3
	case FLOAT_MAT4:
		return metadata.UniformTypeFloat4x4
	default:
		return metadata.UniformTypeUndefined
	}
}
