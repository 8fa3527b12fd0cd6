package opengl

type (
	Enum   uint32
	Object uint32
)

// Functions is the native OpenGL or OpenGL ES context the back-end drives. It is
// implemented by the embedder on top of its GL loader and must only be called on
// the thread that owns the context.
type Functions interface {
	GetString(pname Enum) string
	GetStringi(pname Enum, index uint32) string
	GetInteger(pname Enum) int
	GetFloat(pname Enum) float32

	CreateSampler() Object
	DeleteSampler(s Object)
	BindSampler(unit uint32, s Object)
	SamplerParameteri(s Object, pname Enum, param int)
	SamplerParameterf(s Object, pname Enum, param float32)
	SamplerParameterfv(s Object, pname Enum, params []float32)

	ActiveTexture(texture Enum)
	BindTexture(target Enum, t Object)
	TexParameteri(target Enum, pname Enum, param int)
	TexParameterf(target Enum, pname Enum, param float32)
	TexParameterfv(target Enum, pname Enum, params []float32)
	BindImageTexture(unit uint32, t Object, level int, layered bool, layer int, access Enum, format Enum)

	BindBufferBase(target Enum, index uint32, b Object)

	CreateShader(ty Enum) Object
	ShaderSource(s Object, src string)
	CompileShader(s Object)
	GetShaderi(s Object, pname Enum) int
	GetShaderInfoLog(s Object) string
	DeleteShader(s Object)

	CreateProgram() Object
	AttachShader(p Object, s Object)
	LinkProgram(p Object)
	GetProgrami(p Object, pname Enum) int
	GetProgramInfoLog(p Object) string
	DeleteProgram(p Object)
	UseProgram(p Object)

	GetActiveAttrib(p Object, index uint32) (name string, size int, ty Enum)
	GetAttribLocation(p Object, name string) int32
	GetActiveUniform(p Object, index uint32) (name string, size int, ty Enum)
	GetUniformLocation(p Object, name string) int32
	Uniform1i(location int32, v int)
	GetUniformBlockIndex(p Object, name string) uint32
	GetActiveUniformBlockName(p Object, index uint32) string
	GetActiveUniformBlocki(p Object, index uint32, pname Enum) int
	UniformBlockBinding(p Object, blockIndex uint32, binding uint32)
	GetProgramResourceIndex(p Object, iface Enum, name string) uint32
	ShaderStorageBlockBinding(p Object, blockIndex uint32, binding uint32)
}
