package metadata

/**
 * @brief Hardware limits relevant for pipeline layouts and render targets.
 */
type RenderingLimits struct {
	/** @brief Maximum number of samples for color attachments. */
	MaxColorBufferSamples uint32
	/** @brief Maximum number of samples for depth attachments. */
	MaxDepthBufferSamples uint32
	/** @brief Maximum number of samples for stencil attachments. */
	MaxStencilBufferSamples uint32
	/** @brief Maximum number of samples of a render target without any attachment. */
	MaxNoAttachmentSamples uint32
	/** @brief Maximum number of simultaneous color attachments. */
	MaxColorAttachments uint32
	MaxTextureSize      uint32
	/** @brief Maximum anisotropy a sampler can be created with. */
	MaxSamplerAnisotropy float32
}

// DefaultRenderingLimits returns conservative limits every supported back-end satisfies.
func DefaultRenderingLimits() RenderingLimits {
	return RenderingLimits{
		MaxColorBufferSamples:   4,
		MaxDepthBufferSamples:   4,
		MaxStencilBufferSamples: 4,
		MaxNoAttachmentSamples:  4,
		MaxColorAttachments:     4,
		MaxTextureSize:          4096,
		MaxSamplerAnisotropy:    1,
	}
}

/** @brief Shading languages a render system accepts. */
type ShadingLanguage int

const (
	ShadingLanguageGLSL ShadingLanguage = iota
	ShadingLanguageESSL
	ShadingLanguageSPIRV
	ShadingLanguageWGSL
)

func (l ShadingLanguage) String() string {
	switch l {
	case ShadingLanguageGLSL:
		return "GLSL"
	case ShadingLanguageESSL:
		return "ESSL"
	case ShadingLanguageSPIRV:
		return "SPIR-V"
	case ShadingLanguageWGSL:
		return "WGSL"
	default:
		return "Unknown"
	}
}

/**
 * @brief Optional features of a render system.
 */
type RenderingFeatures struct {
	/** @brief Native sampler objects. If false, sampler state is emulated per texture. */
	HasSamplers        bool
	HasUniformBuffers  bool
	HasStorageBuffers  bool
	HasStorageImages   bool
	HasComputeShaders  bool
	HasGeometryShaders bool
	HasTessellation    bool
	HasPushConstants   bool
	/** @brief Slots of a named layout are assigned from the binding names when shaders are linked. */
	ResolvesBindingsByName bool
	/**
	 * @brief Each binding category has its own slot range, for example GL
	 * uniform-block bindings and texture units. If false, all bindings of a
	 * descriptor set share one range.
	 */
	HasPerCategorySlots bool
}

type RenderingCapabilities struct {
	/** @brief Back-end API version string, for example "OpenGL 4.6" or "Vulkan 1.3". */
	APIVersion       string
	ShadingLanguages []ShadingLanguage
	/** @brief Texture formats usable as render-target attachments. */
	Formats  []Format
	Features RenderingFeatures
	Limits   RenderingLimits
}

// SupportsLanguage reports whether shaders in the given language are accepted.
func (c *RenderingCapabilities) SupportsLanguage(lang ShadingLanguage) bool {
	for _, l := range c.ShadingLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// ApplyOverrides replaces the sample limits that are non-zero in the given overrides.
func (l *RenderingLimits) ApplyOverrides(colorSamples, depthSamples, stencilSamples, noAttachmentSamples uint32) {
	if colorSamples != 0 {
		l.MaxColorBufferSamples = colorSamples
	}
	if depthSamples != 0 {
		l.MaxDepthBufferSamples = depthSamples
	}
	if stencilSamples != 0 {
		l.MaxStencilBufferSamples = stencilSamples
	}
	if noAttachmentSamples != 0 {
		l.MaxNoAttachmentSamples = noAttachmentSamples
	}
}
