package opengl

import (
	"fmt"
	"strings"
)

type fakeUniform struct {
	name string
	size int
	ty   Enum
}

// fakeFunctions records every state-changing call as a string and answers
// queries from its fields.
type fakeFunctions struct {
	version    string
	extensions []string
	integers   map[Enum]int
	floats     map[Enum]float32

	compileOK  bool
	infoLog    string
	linkOK     bool
	attribs    []fakeUniform
	uniforms   []fakeUniform
	blocks     []string
	blockSizes map[string]int
	locations  map[string]int32
	ssbos      map[string]uint32

	nextObject Object
	calls      []string
}

func newFakeFunctions(version string, extensions ...string) *fakeFunctions {
	return &fakeFunctions{
		version:    version,
		extensions: extensions,
		integers: map[Enum]int{
			MAX_SAMPLES:               8,
			MAX_COLOR_TEXTURE_SAMPLES: 8,
			MAX_DEPTH_TEXTURE_SAMPLES: 4,
			MAX_FRAMEBUFFER_SAMPLES:   16,
			MAX_COLOR_ATTACHMENTS:     8,
			MAX_TEXTURE_SIZE:          16384,
		},
		floats:     map[Enum]float32{},
		compileOK:  true,
		linkOK:     true,
		blockSizes: map[string]int{},
		locations:  map[string]int32{},
		ssbos:      map[string]uint32{},
	}
}

func (f *fakeFunctions) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeFunctions) newObject() Object {
	f.nextObject++
	return f.nextObject
}

// callsWithPrefix returns the recorded calls starting with prefix.
func (f *fakeFunctions) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeFunctions) GetString(pname Enum) string {
	switch pname {
	case VERSION:
		return f.version
	case EXTENSIONS:
		return strings.Join(f.extensions, " ")
	}
	return ""
}

func (f *fakeFunctions) GetStringi(pname Enum, index uint32) string {
	if pname == EXTENSIONS && int(index) < len(f.extensions) {
		return f.extensions[index]
	}
	return ""
}

func (f *fakeFunctions) GetInteger(pname Enum) int {
	if pname == NUM_EXTENSIONS {
		return len(f.extensions)
	}
	return f.integers[pname]
}

func (f *fakeFunctions) GetFloat(pname Enum) float32 { return f.floats[pname] }

func (f *fakeFunctions) CreateSampler() Object {
	s := f.newObject()
	f.record("CreateSampler %d", s)
	return s
}
func (f *fakeFunctions) DeleteSampler(s Object)            { f.record("DeleteSampler %d", s) }
func (f *fakeFunctions) BindSampler(unit uint32, s Object) { f.record("BindSampler %d %d", unit, s) }
func (f *fakeFunctions) SamplerParameteri(s Object, pname Enum, param int) {
	f.record("SamplerParameteri %d 0x%X 0x%X", s, pname, param)
}
func (f *fakeFunctions) SamplerParameterf(s Object, pname Enum, param float32) {
	f.record("SamplerParameterf %d 0x%X %v", s, pname, param)
}
func (f *fakeFunctions) SamplerParameterfv(s Object, pname Enum, params []float32) {
	f.record("SamplerParameterfv %d 0x%X %v", s, pname, params)
}

func (f *fakeFunctions) ActiveTexture(texture Enum) { f.record("ActiveTexture %d", texture-TEXTURE0) }
func (f *fakeFunctions) BindTexture(target Enum, t Object) {
	f.record("BindTexture 0x%X %d", target, t)
}
func (f *fakeFunctions) TexParameteri(target Enum, pname Enum, param int) {
	f.record("TexParameteri 0x%X 0x%X 0x%X", target, pname, param)
}
func (f *fakeFunctions) TexParameterf(target Enum, pname Enum, param float32) {
	f.record("TexParameterf 0x%X 0x%X %v", target, pname, param)
}
func (f *fakeFunctions) TexParameterfv(target Enum, pname Enum, params []float32) {
	f.record("TexParameterfv 0x%X 0x%X %v", target, pname, params)
}
func (f *fakeFunctions) BindImageTexture(unit uint32, t Object, level int, layered bool, layer int, access Enum, format Enum) {
	f.record("BindImageTexture %d %d", unit, t)
}
func (f *fakeFunctions) BindBufferBase(target Enum, index uint32, b Object) {
	f.record("BindBufferBase 0x%X %d %d", target, index, b)
}

func (f *fakeFunctions) CreateShader(ty Enum) Object {
	s := f.newObject()
	f.record("CreateShader 0x%X", ty)
	return s
}
func (f *fakeFunctions) ShaderSource(s Object, src string) { f.record("ShaderSource %d", s) }
func (f *fakeFunctions) CompileShader(s Object)            { f.record("CompileShader %d", s) }
func (f *fakeFunctions) GetShaderi(s Object, pname Enum) int {
	if pname == COMPILE_STATUS && f.compileOK {
		return TRUE
	}
	return FALSE
}
func (f *fakeFunctions) GetShaderInfoLog(s Object) string { return f.infoLog }
func (f *fakeFunctions) DeleteShader(s Object)            { f.record("DeleteShader %d", s) }

func (f *fakeFunctions) CreateProgram() Object {
	p := f.newObject()
	f.record("CreateProgram %d", p)
	return p
}
func (f *fakeFunctions) AttachShader(p Object, s Object) { f.record("AttachShader %d %d", p, s) }
func (f *fakeFunctions) LinkProgram(p Object)            { f.record("LinkProgram %d", p) }
func (f *fakeFunctions) GetProgrami(p Object, pname Enum) int {
	switch pname {
	case LINK_STATUS:
		if f.linkOK {
			return TRUE
		}
		return FALSE
	case ACTIVE_ATTRIBUTES:
		return len(f.attribs)
	case ACTIVE_UNIFORMS:
		return len(f.uniforms)
	case ACTIVE_UNIFORM_BLOCKS:
		return len(f.blocks)
	}
	return 0
}
func (f *fakeFunctions) GetProgramInfoLog(p Object) string { return "link failed" }
func (f *fakeFunctions) DeleteProgram(p Object)            { f.record("DeleteProgram %d", p) }
func (f *fakeFunctions) UseProgram(p Object)               { f.record("UseProgram %d", p) }

func (f *fakeFunctions) GetActiveAttrib(p Object, index uint32) (string, int, Enum) {
	a := f.attribs[index]
	return a.name, a.size, a.ty
}
func (f *fakeFunctions) GetAttribLocation(p Object, name string) int32 {
	for i, a := range f.attribs {
		if a.name == name {
			if strings.HasPrefix(name, "gl_") {
				return -1
			}
			return int32(i)
		}
	}
	return -1
}
func (f *fakeFunctions) GetActiveUniform(p Object, index uint32) (string, int, Enum) {
	u := f.uniforms[index]
	return u.name, u.size, u.ty
}
func (f *fakeFunctions) GetUniformLocation(p Object, name string) int32 {
	if loc, ok := f.locations[name]; ok {
		return loc
	}
	return -1
}
func (f *fakeFunctions) Uniform1i(location int32, v int) { f.record("Uniform1i %d %d", location, v) }
func (f *fakeFunctions) GetUniformBlockIndex(p Object, name string) uint32 {
	for i, b := range f.blocks {
		if b == name {
			return uint32(i)
		}
	}
	return INVALID_INDEX
}
func (f *fakeFunctions) GetActiveUniformBlockName(p Object, index uint32) string {
	return f.blocks[index]
}
func (f *fakeFunctions) GetActiveUniformBlocki(p Object, index uint32, pname Enum) int {
	if pname == UNIFORM_BLOCK_DATA_SIZE {
		return f.blockSizes[f.blocks[index]]
	}
	return 0
}
func (f *fakeFunctions) UniformBlockBinding(p Object, blockIndex uint32, binding uint32) {
	f.record("UniformBlockBinding %d %d %d", p, blockIndex, binding)
}
func (f *fakeFunctions) GetProgramResourceIndex(p Object, iface Enum, name string) uint32 {
	if idx, ok := f.ssbos[name]; ok {
		return idx
	}
	return INVALID_INDEX
}
func (f *fakeFunctions) ShaderStorageBlockBinding(p Object, blockIndex uint32, binding uint32) {
	f.record("ShaderStorageBlockBinding %d %d %d", p, blockIndex, binding)
}
