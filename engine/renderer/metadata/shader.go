package metadata

/** @brief Pipeline stage a shader is compiled for. */
type ShaderType int

const (
	ShaderTypeUndefined ShaderType = iota
	ShaderTypeVertex
	ShaderTypeTessControl
	ShaderTypeTessEvaluation
	ShaderTypeGeometry
	ShaderTypeFragment
	ShaderTypeCompute
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeTessControl:
		return "tess-control"
	case ShaderTypeTessEvaluation:
		return "tess-evaluation"
	case ShaderTypeGeometry:
		return "geometry"
	case ShaderTypeFragment:
		return "fragment"
	case ShaderTypeCompute:
		return "compute"
	default:
		return "undefined"
	}
}

// Stage returns the stage flag matching the shader type.
func (t ShaderType) Stage() StageFlags {
	switch t {
	case ShaderTypeVertex:
		return StageVertex
	case ShaderTypeTessControl:
		return StageTessControl
	case ShaderTypeTessEvaluation:
		return StageTessEvaluation
	case ShaderTypeGeometry:
		return StageGeometry
	case ShaderTypeFragment:
		return StageFragment
	case ShaderTypeCompute:
		return StageCompute
	default:
		return 0
	}
}

/** @brief How the Source field of a shader descriptor is interpreted. */
type ShaderSourceType int

const (
	/** @brief Source is the shader code itself. */
	ShaderSourceCodeString ShaderSourceType = iota
	/** @brief Source is a path to a file with shader code. */
	ShaderSourceCodeFile
	/** @brief Source is a binary module, for example SPIR-V. */
	ShaderSourceBinaryBuffer
	/** @brief Source is a path to a binary module. */
	ShaderSourceBinaryFile
)

// IsBinary reports whether the source holds a pre-compiled module.
func (t ShaderSourceType) IsBinary() bool {
	return t == ShaderSourceBinaryBuffer || t == ShaderSourceBinaryFile
}

/** @brief Special-purpose shader inputs and outputs generated by the pipeline. */
type SystemValue int

const (
	SystemValueUndefined SystemValue = iota
	SystemValueClipDistance
	SystemValueColor
	SystemValueCullDistance
	SystemValueDepth
	SystemValueFrontFacing
	SystemValueInstanceID
	SystemValuePosition
	SystemValuePrimitiveID
	SystemValueSampleID
	SystemValueStencil
	SystemValueVertexID
)

type VertexAttribute struct {
	Name        string
	Format      Format
	Location    uint32
	SystemValue SystemValue
}

type FragmentAttribute struct {
	Name        string
	Format      Format
	Location    uint32
	SystemValue SystemValue
}

type VertexShaderAttributes struct {
	InputAttribs  []VertexAttribute
	OutputAttribs []VertexAttribute
}

type FragmentShaderAttributes struct {
	OutputAttribs []FragmentAttribute
}

/**
 * @brief Describes a shader to be created by a render system.
 */
type ShaderDescriptor struct {
	/** @brief Optional debug name. */
	Name string
	Type ShaderType
	/** @brief Code, binary module or file path depending on SourceType. */
	Source     []byte
	SourceType ShaderSourceType
	/** @brief Entry point, required by WGSL and SPIR-V modules with several entry points. */
	EntryPoint string
	/** @brief Optional profile, for example "330 core" or "300 es". */
	Profile  string
	Vertex   VertexShaderAttributes
	Fragment FragmentShaderAttributes
}

/**
 * @brief A resource a shader accesses, as found by reflection.
 */
type ShaderResourceReflection struct {
	Binding BindingDescriptor
	/** @brief Descriptor set or bind group of the resource, 0 where the API has none. */
	Group uint32
	/** @brief Size of a constant buffer in bytes, 0 if unknown or not a buffer. */
	ConstantBufferSize uint32
}

type ComputeShaderAttributes struct {
	WorkGroupSize [3]uint32
}

/**
 * @brief Interface of a shader obtained by reflection.
 */
type ShaderReflection struct {
	Resources []ShaderResourceReflection
	Uniforms  []UniformDescriptor
	Vertex    VertexShaderAttributes
	Fragment  FragmentShaderAttributes
	Compute   ComputeShaderAttributes
}

// Reset clears the reflection so it can be filled again.
func (r *ShaderReflection) Reset() {
	*r = ShaderReflection{}
}
