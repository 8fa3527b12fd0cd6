package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const (
	// WebGPU clamps anisotropy to 16.
	maxSamplerAnisotropy = 16

	// LOD clamp that keeps sampling on the base level for non-mipmapped samplers.
	baseLevelMaxLOD = 0.25
)

// toShaderStages keeps the stages WebGPU knows. Tessellation and geometry
// stages have no counterpart and are dropped.
func toShaderStages(stages metadata.StageFlags) gputypes.ShaderStages {
	var out gputypes.ShaderStages
	if stages.Has(metadata.StageVertex) {
		out |= gputypes.ShaderStageVertex
	}
	if stages.Has(metadata.StageFragment) {
		out |= gputypes.ShaderStageFragment
	}
	if stages.Has(metadata.StageCompute) {
		out |= gputypes.ShaderStageCompute
	}
	return out
}

// BindGroupLayoutEntryFor translates a binding into a bind group layout entry.
// It returns false when the resource kind and bind flags form no valid binding.
// Storage buffers without BindStorage are read-only.
func BindGroupLayoutEntryFor(desc *metadata.BindingDescriptor) (gputypes.BindGroupLayoutEntry, bool) {
	entry := gputypes.BindGroupLayoutEntry{
		Binding:    desc.Slot,
		Visibility: toShaderStages(desc.StageFlags),
	}

	switch metadata.ClassifyBinding(desc) {
	case metadata.BindingCategoryConstantBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case metadata.BindingCategoryStorageBuffer:
		bufferType := gputypes.BufferBindingTypeReadOnlyStorage
		if desc.BindFlags.Has(metadata.BindStorage) {
			bufferType = gputypes.BufferBindingTypeStorage
		}
		entry.Buffer = &gputypes.BufferBindingLayout{Type: bufferType}
	case metadata.BindingCategoryTexture:
		entry.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: viewDimension(desc.ArraySize),
		}
	case metadata.BindingCategoryImage:
		entry.StorageTexture = &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessReadWrite,
			ViewDimension: viewDimension(desc.ArraySize),
		}
	case metadata.BindingCategorySampler:
		entry.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	default:
		return entry, false
	}
	return entry, true
}

// duplicateBinding returns the first binding number that occurs twice in a
// bind group layout.
func duplicateBinding(entries []gputypes.BindGroupLayoutEntry) (uint32, bool) {
	seen := make(map[uint32]bool, len(entries))
	for _, e := range entries {
		if seen[e.Binding] {
			return e.Binding, true
		}
		seen[e.Binding] = true
	}
	return 0, false
}

func viewDimension(arraySize uint32) gputypes.TextureViewDimension {
	if arraySize > 1 {
		return gputypes.TextureViewDimension2DArray
	}
	return gputypes.TextureViewDimension2D
}

func staticSamplerEntry(desc *metadata.StaticSamplerDescriptor) gputypes.BindGroupLayoutEntry {
	bindingType := gputypes.SamplerBindingTypeFiltering
	if desc.Sampler.CompareEnabled {
		bindingType = gputypes.SamplerBindingTypeComparison
	}
	return gputypes.BindGroupLayoutEntry{
		Binding:    desc.Slot,
		Visibility: toShaderStages(desc.StageFlags),
		Sampler:    &gputypes.SamplerBindingLayout{Type: bindingType},
	}
}

// WebGPU has no border color, border and mirror-once fall back to the closest mode.
func toAddressMode(mode metadata.SamplerAddressMode) gputypes.AddressMode {
	switch mode {
	case metadata.SamplerAddressModeMirror, metadata.SamplerAddressModeMirrorOnce:
		return gputypes.AddressModeMirrorRepeat
	case metadata.SamplerAddressModeClamp, metadata.SamplerAddressModeBorder:
		return gputypes.AddressModeClampToEdge
	default:
		return gputypes.AddressModeRepeat
	}
}

func toFilterMode(filter metadata.SamplerFilter) gputypes.FilterMode {
	if filter == metadata.SamplerFilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

func toMipmapFilterMode(filter metadata.SamplerFilter) gputypes.MipmapFilterMode {
	if filter == metadata.SamplerFilterNearest {
		return gputypes.MipmapFilterModeNearest
	}
	return gputypes.MipmapFilterModeLinear
}

func toCompareFunction(op metadata.CompareOp) gputypes.CompareFunction {
	switch op {
	case metadata.CompareOpNeverPass:
		return gputypes.CompareFunctionNever
	case metadata.CompareOpLess:
		return gputypes.CompareFunctionLess
	case metadata.CompareOpEqual:
		return gputypes.CompareFunctionEqual
	case metadata.CompareOpLessEqual:
		return gputypes.CompareFunctionLessEqual
	case metadata.CompareOpGreater:
		return gputypes.CompareFunctionGreater
	case metadata.CompareOpNotEqual:
		return gputypes.CompareFunctionNotEqual
	case metadata.CompareOpGreaterEqual:
		return gputypes.CompareFunctionGreaterEqual
	default:
		return gputypes.CompareFunctionAlways
	}
}

// toSamplerDescriptor translates a sampler. The compare function stays
// undefined unless comparison is enabled.
func toSamplerDescriptor(label string, desc *metadata.SamplerDescriptor) gputypes.SamplerDescriptor {
	out := gputypes.SamplerDescriptor{
		Label:         label,
		AddressModeU:  toAddressMode(desc.AddressModeU),
		AddressModeV:  toAddressMode(desc.AddressModeV),
		AddressModeW:  toAddressMode(desc.AddressModeW),
		MagFilter:     toFilterMode(desc.MagFilter),
		MinFilter:     toFilterMode(desc.MinFilter),
		MipmapFilter:  toMipmapFilterMode(desc.MipMapFilter),
		LodMinClamp:   desc.MinLOD,
		LodMaxClamp:   desc.MaxLOD,
		Compare:       gputypes.CompareFunctionUndefined,
		MaxAnisotropy: uint16(math.Clamp(desc.MaxAnisotropy, 1, maxSamplerAnisotropy)),
	}
	if desc.CompareEnabled {
		out.Compare = toCompareFunction(desc.CompareOp)
	}
	if !desc.MipMapEnabled {
		out.MipmapFilter = gputypes.MipmapFilterModeNearest
		out.LodMinClamp = 0
		out.LodMaxClamp = baseLevelMaxLOD
	}
	return out
}

// DescribeEntry names the resource a bind group layout entry expects, or
// "invalid" for the nil entry of a binding that has no WebGPU equivalent.
func DescribeEntry(e *gputypes.BindGroupLayoutEntry) string {
	switch {
	case e == nil:
		return "invalid"
	case e.Buffer != nil:
		return fmt.Sprintf("%s buffer", e.Buffer.Type)
	case e.Sampler != nil:
		return fmt.Sprintf("%s sampler", e.Sampler.Type)
	case e.StorageTexture != nil:
		return fmt.Sprintf("storage texture %s", e.StorageTexture.ViewDimension)
	case e.Texture != nil:
		return fmt.Sprintf("texture %s", e.Texture.ViewDimension)
	default:
		return "empty"
	}
}
