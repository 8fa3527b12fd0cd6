package opengl

import (
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// samplerParams is the GL form of a sampler descriptor, shared by native and
// emulated samplers.
type samplerParams struct {
	wrapS, wrapT, wrapR int
	minFilter           int
	magFilter           int
	minLOD, maxLOD      float32
	lodBias             float32
	maxAnisotropy       float32
	compareMode         int
	compareFunc         int
	borderColor         [4]float32
}

func toSamplerParams(desc *metadata.SamplerDescriptor) samplerParams {
	p := samplerParams{
		wrapS:         toGLAddressMode(desc.AddressModeU),
		wrapT:         toGLAddressMode(desc.AddressModeV),
		wrapR:         toGLAddressMode(desc.AddressModeW),
		minFilter:     toGLMinFilter(desc),
		magFilter:     toGLFilter(desc.MagFilter),
		minLOD:        desc.MinLOD,
		maxLOD:        desc.MaxLOD,
		lodBias:       desc.MipMapLODBias,
		maxAnisotropy: float32(max(desc.MaxAnisotropy, 1)),
		compareMode:   NONE,
		compareFunc:   toGLCompareFunc(desc.CompareOp),
		borderColor:   desc.BorderColor,
	}
	if desc.CompareEnabled {
		p.compareMode = COMPARE_REF_TO_TEXTURE
	}
	return p
}

func toGLAddressMode(mode metadata.SamplerAddressMode) int {
	switch mode {
	case metadata.SamplerAddressModeMirror:
		return MIRRORED_REPEAT
	case metadata.SamplerAddressModeClamp:
		return CLAMP_TO_EDGE
	case metadata.SamplerAddressModeBorder:
		return CLAMP_TO_BORDER
	case metadata.SamplerAddressModeMirrorOnce:
		return MIRROR_CLAMP_TO_EDGE
	default:
		return REPEAT
	}
}

func toGLFilter(filter metadata.SamplerFilter) int {
	if filter == metadata.SamplerFilterNearest {
		return NEAREST
	}
	return LINEAR
}

func toGLMinFilter(desc *metadata.SamplerDescriptor) int {
	if !desc.MipMapEnabled {
		return toGLFilter(desc.MinFilter)
	}
	switch {
	case desc.MinFilter == metadata.SamplerFilterNearest && desc.MipMapFilter == metadata.SamplerFilterNearest:
		return NEAREST_MIPMAP_NEAREST
	case desc.MinFilter == metadata.SamplerFilterNearest:
		return NEAREST_MIPMAP_LINEAR
	case desc.MipMapFilter == metadata.SamplerFilterNearest:
		return LINEAR_MIPMAP_NEAREST
	default:
		return LINEAR_MIPMAP_LINEAR
	}
}

func toGLCompareFunc(op metadata.CompareOp) int {
	switch op {
	case metadata.CompareOpNeverPass:
		return NEVER
	case metadata.CompareOpLess:
		return LESS
	case metadata.CompareOpEqual:
		return EQUAL
	case metadata.CompareOpLessEqual:
		return LEQUAL
	case metadata.CompareOpGreater:
		return GREATER
	case metadata.CompareOpNotEqual:
		return NOTEQUAL
	case metadata.CompareOpGreaterEqual:
		return GEQUAL
	default:
		return ALWAYS
	}
}

// GLSampler is a native sampler object (GL 3.3, GLES 3.0 or GL_ARB_sampler_objects).
// GLES has no TEXTURE_LOD_BIAS sampler parameter, so es skips it.
type GLSampler struct {
	funcs Functions
	id    Object
	es    bool
}

func NewGLSampler(f Functions, desc *metadata.SamplerDescriptor, es bool) *GLSampler {
	s := &GLSampler{funcs: f, id: f.CreateSampler(), es: es}
	s.SetDesc(desc)
	return s
}

func (s *GLSampler) ID() Object {
	return s.id
}

// SetDesc configures the sampler object with the given state.
func (s *GLSampler) SetDesc(desc *metadata.SamplerDescriptor) {
	p := toSamplerParams(desc)
	f := s.funcs
	f.SamplerParameteri(s.id, TEXTURE_WRAP_S, p.wrapS)
	f.SamplerParameteri(s.id, TEXTURE_WRAP_T, p.wrapT)
	f.SamplerParameteri(s.id, TEXTURE_WRAP_R, p.wrapR)
	f.SamplerParameteri(s.id, TEXTURE_MIN_FILTER, p.minFilter)
	f.SamplerParameteri(s.id, TEXTURE_MAG_FILTER, p.magFilter)
	f.SamplerParameterf(s.id, TEXTURE_MIN_LOD, p.minLOD)
	f.SamplerParameterf(s.id, TEXTURE_MAX_LOD, p.maxLOD)
	if !s.es {
		f.SamplerParameterf(s.id, TEXTURE_LOD_BIAS, p.lodBias)
	}
	if p.maxAnisotropy > 1 {
		f.SamplerParameterf(s.id, TEXTURE_MAX_ANISOTROPY, p.maxAnisotropy)
	}
	f.SamplerParameteri(s.id, TEXTURE_COMPARE_MODE, p.compareMode)
	f.SamplerParameteri(s.id, TEXTURE_COMPARE_FUNC, p.compareFunc)
	if desc.AddressModeU == metadata.SamplerAddressModeBorder || desc.AddressModeV == metadata.SamplerAddressModeBorder || desc.AddressModeW == metadata.SamplerAddressModeBorder {
		f.SamplerParameterfv(s.id, TEXTURE_BORDER_COLOR, p.borderColor[:])
	}
}

func (s *GLSampler) Release() {
	if s.id != 0 {
		s.funcs.DeleteSampler(s.id)
		s.id = 0
	}
}

// GL2XSampler emulates a sampler object on contexts without them. It keeps the
// sampler state and writes it into the parameters of the texture it is used with.
type GL2XSampler struct {
	params samplerParams
	border bool
	es     bool
}

// NewGL2XSampler creates an emulated sampler, es leaves out TEXTURE_LOD_BIAS.
func NewGL2XSampler(desc *metadata.SamplerDescriptor, es bool) *GL2XSampler {
	s := &GL2XSampler{es: es}
	s.SetDesc(desc)
	return s
}

func (s *GL2XSampler) SetDesc(desc *metadata.SamplerDescriptor) {
	s.params = toSamplerParams(desc)
	s.border = desc.AddressModeU == metadata.SamplerAddressModeBorder ||
		desc.AddressModeV == metadata.SamplerAddressModeBorder ||
		desc.AddressModeW == metadata.SamplerAddressModeBorder
}

// Apply writes the sampler state into the texture currently bound to target.
func (s *GL2XSampler) Apply(f Functions, target Enum) {
	p := s.params
	f.TexParameteri(target, TEXTURE_WRAP_S, p.wrapS)
	f.TexParameteri(target, TEXTURE_WRAP_T, p.wrapT)
	f.TexParameteri(target, TEXTURE_WRAP_R, p.wrapR)
	f.TexParameteri(target, TEXTURE_MIN_FILTER, p.minFilter)
	f.TexParameteri(target, TEXTURE_MAG_FILTER, p.magFilter)
	f.TexParameterf(target, TEXTURE_MIN_LOD, p.minLOD)
	f.TexParameterf(target, TEXTURE_MAX_LOD, p.maxLOD)
	if !s.es {
		f.TexParameterf(target, TEXTURE_LOD_BIAS, p.lodBias)
	}
	if p.maxAnisotropy > 1 {
		f.TexParameterf(target, TEXTURE_MAX_ANISOTROPY, p.maxAnisotropy)
	}
	f.TexParameteri(target, TEXTURE_COMPARE_MODE, p.compareMode)
	f.TexParameteri(target, TEXTURE_COMPARE_FUNC, p.compareFunc)
	if s.border {
		f.TexParameterfv(target, TEXTURE_BORDER_COLOR, p.borderColor[:])
	}
}
