package metadata

/** @brief Texture coordinate wrapping behaviour of a sampler. */
type SamplerAddressMode int

const (
	/** @brief Repeat the texture. */
	SamplerAddressModeRepeat SamplerAddressMode = iota
	/** @brief Repeat the texture, mirrored at every integer boundary. */
	SamplerAddressModeMirror
	/** @brief Clamp coordinates to the edge texels. */
	SamplerAddressModeClamp
	/** @brief Coordinates outside [0, 1] sample the border color. */
	SamplerAddressModeBorder
	/** @brief Mirror once, then clamp. */
	SamplerAddressModeMirrorOnce
)

/** @brief Texture filtering used for minification, magnification and mip-mapping. */
type SamplerFilter int

const (
	SamplerFilterNearest SamplerFilter = iota
	SamplerFilterLinear
)

/** @brief Comparison operator for depth-compare samplers. */
type CompareOp int

const (
	CompareOpNeverPass CompareOp = iota
	CompareOpLess
	CompareOpEqual
	CompareOpLessEqual
	CompareOpGreater
	CompareOpNotEqual
	CompareOpGreaterEqual
	CompareOpAlwaysPass
)

/**
 * @brief Full description of a sampler state object.
 */
type SamplerDescriptor struct {
	AddressModeU SamplerAddressMode
	AddressModeV SamplerAddressMode
	AddressModeW SamplerAddressMode
	MinFilter    SamplerFilter
	MagFilter    SamplerFilter
	MipMapFilter SamplerFilter
	/** @brief If false, the MipMapFilter is ignored and only the base level is sampled. */
	MipMapEnabled bool
	MipMapLODBias float32
	MinLOD        float32
	MaxLOD        float32
	/** @brief Anisotropy level, 1 disables anisotropic filtering. */
	MaxAnisotropy  uint32
	CompareEnabled bool
	CompareOp      CompareOp
	/** @brief RGBA border color used with SamplerAddressModeBorder. */
	BorderColor [4]float32
}

// DefaultSamplerDescriptor returns a trilinear, repeating sampler.
func DefaultSamplerDescriptor() SamplerDescriptor {
	return SamplerDescriptor{
		AddressModeU:  SamplerAddressModeRepeat,
		AddressModeV:  SamplerAddressModeRepeat,
		AddressModeW:  SamplerAddressModeRepeat,
		MinFilter:     SamplerFilterLinear,
		MagFilter:     SamplerFilterLinear,
		MipMapFilter:  SamplerFilterLinear,
		MipMapEnabled: true,
		MinLOD:        0,
		MaxLOD:        1000,
		MaxAnisotropy: 1,
		CompareOp:     CompareOpLess,
		BorderColor:   [4]float32{0, 0, 0, 0},
	}
}
