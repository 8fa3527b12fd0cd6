package metadata

/**
 * @brief The kind of a hardware resource a binding refers to.
 */
type ResourceType int

const (
	/** @brief Undefined resource type, always resolves to an invalid binding. */
	ResourceTypeUndefined ResourceType = iota
	/** @brief Buffer resource (uniform, storage, vertex, index buffers). */
	ResourceTypeBuffer
	/** @brief Texture resource (sampled or storage images). */
	ResourceTypeTexture
	/** @brief Sampler state resource. */
	ResourceTypeSampler
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeBuffer:
		return "Buffer"
	case ResourceTypeTexture:
		return "Texture"
	case ResourceTypeSampler:
		return "Sampler"
	default:
		return "Undefined"
	}
}

/**
 * @brief Usage flags of a resource binding. A binding may carry more than one flag.
 */
type BindFlags uint32

const (
	BindVertexBuffer BindFlags = 1 << iota
	BindIndexBuffer
	/** @brief The buffer is bound as a constant (uniform) buffer. */
	BindConstantBuffer
	BindStreamOutputBuffer
	BindIndirectBuffer
	/** @brief The resource is read in shaders: a sampled texture or a read-only buffer. */
	BindSampled
	/** @brief The resource is read and written in shaders: a storage texture or buffer. */
	BindStorage
	BindColorAttachment
	BindDepthStencilAttachment
	BindCombinedSampler
	BindCopySrc
	BindCopyDst
)

func (f BindFlags) Has(flags BindFlags) bool {
	return f&flags != 0
}

/**
 * @brief Portable binding category of a resource kind and its bind flags.
 * Back-ends map each category to their native binding type.
 */
type BindingCategory int

const (
	/** @brief The kind and flags form no binding. Kept in layouts and never bound. */
	BindingCategoryInvalid BindingCategory = iota
	BindingCategoryConstantBuffer
	BindingCategoryStorageBuffer
	BindingCategoryTexture
	BindingCategoryImage
	BindingCategorySampler
)

func (c BindingCategory) String() string {
	switch c {
	case BindingCategoryConstantBuffer:
		return "constant buffer"
	case BindingCategoryStorageBuffer:
		return "storage buffer"
	case BindingCategoryTexture:
		return "texture"
	case BindingCategoryImage:
		return "storage image"
	case BindingCategorySampler:
		return "sampler"
	default:
		return "invalid"
	}
}

// ClassifyBinding resolves the category of a binding. Flags are checked in a
// fixed order per kind: constant buffers win over storage buffers and sampled
// textures over storage images. Samplers ignore their flags.
func ClassifyBinding(desc *BindingDescriptor) BindingCategory {
	switch desc.Type {
	case ResourceTypeBuffer:
		if desc.BindFlags.Has(BindConstantBuffer) {
			return BindingCategoryConstantBuffer
		}
		if desc.BindFlags.Has(BindSampled | BindStorage) {
			return BindingCategoryStorageBuffer
		}
	case ResourceTypeTexture:
		if desc.BindFlags.Has(BindSampled) {
			return BindingCategoryTexture
		}
		if desc.BindFlags.Has(BindStorage) {
			return BindingCategoryImage
		}
	case ResourceTypeSampler:
		return BindingCategorySampler
	}
	return BindingCategoryInvalid
}

/**
 * @brief Shader stages a binding is visible to.
 */
type StageFlags uint32

const (
	StageVertex StageFlags = 1 << iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute

	StageAllTess     = StageTessControl | StageTessEvaluation
	StageAllGraphics = StageVertex | StageAllTess | StageGeometry | StageFragment
	StageAll         = StageAllGraphics | StageCompute
)

func (f StageFlags) Has(flags StageFlags) bool {
	return f&flags != 0
}

/**
 * @brief Describes a single resource binding of a pipeline layout.
 */
type BindingDescriptor struct {
	/** @brief Optional name used for name-based slot resolution. */
	Name string
	/** @brief The kind of resource bound at this slot. */
	Type ResourceType
	/** @brief How the resource is used. Together with Type this selects the native binding category. */
	BindFlags BindFlags
	/** @brief Shader stages the binding is visible to. */
	StageFlags StageFlags
	/** @brief Binding slot. */
	Slot uint32
	/** @brief Number of array elements, 0 and 1 both mean a single resource. */
	ArraySize uint32
}

/**
 * @brief A sampler whose state is fixed when the pipeline layout is created.
 */
type StaticSamplerDescriptor struct {
	Name       string
	StageFlags StageFlags
	Slot       uint32
	Sampler    SamplerDescriptor
}

/**
 * @brief The data type of a uniform declaration.
 */
type UniformType int

const (
	UniformTypeUndefined UniformType = iota
	UniformTypeFloat1
	UniformTypeFloat2
	UniformTypeFloat3
	UniformTypeFloat4
	UniformTypeInt1
	UniformTypeInt2
	UniformTypeInt3
	UniformTypeInt4
	UniformTypeUInt1
	UniformTypeUInt2
	UniformTypeUInt3
	UniformTypeUInt4
	UniformTypeFloat3x3
	UniformTypeFloat4x4
	UniformTypeSampler
)

// Size returns the size in bytes of one element, 0 for samplers and undefined types.
func (t UniformType) Size() uint32 {
	switch t {
	case UniformTypeFloat1, UniformTypeInt1, UniformTypeUInt1:
		return 4
	case UniformTypeFloat2, UniformTypeInt2, UniformTypeUInt2:
		return 8
	case UniformTypeFloat3, UniformTypeInt3, UniformTypeUInt3:
		return 12
	case UniformTypeFloat4, UniformTypeInt4, UniformTypeUInt4:
		return 16
	case UniformTypeFloat3x3:
		return 36
	case UniformTypeFloat4x4:
		return 64
	default:
		return 0
	}
}

/**
 * @brief A single uniform declared by a pipeline layout.
 */
type UniformDescriptor struct {
	Name      string
	Type      UniformType
	ArraySize uint32
}

// Size returns the number of bytes the uniform occupies, including all array elements.
func (u UniformDescriptor) Size() uint32 {
	n := u.ArraySize
	if n == 0 {
		n = 1
	}
	return u.Type.Size() * n
}

/**
 * @brief Describes every resource a draw or dispatch call will bind.
 * Consumed once to build a pipeline layout and not retained.
 */
type PipelineLayoutDescriptor struct {
	Name string
	/** @brief Bindings resolved through a resource heap. */
	HeapBindings []BindingDescriptor
	/** @brief Bindings set individually for each draw or dispatch. */
	Bindings []BindingDescriptor
	/** @brief Samplers fixed at creation time. */
	StaticSamplers []StaticSamplerDescriptor
	Uniforms       []UniformDescriptor
}

// HasNamedBindings reports whether any heap binding, dynamic binding or static
// sampler carries a non-empty name.
func (d *PipelineLayoutDescriptor) HasNamedBindings() bool {
	for _, b := range d.HeapBindings {
		if b.Name != "" {
			return true
		}
	}
	for _, b := range d.Bindings {
		if b.Name != "" {
			return true
		}
	}
	for _, s := range d.StaticSamplers {
		if s.Name != "" {
			return true
		}
	}
	return false
}
