package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// DescriptorTypeFor returns the Vulkan descriptor type of a binding, or false
// when the resource kind and bind flags do not form a valid descriptor. A
// sampled texture that also carries BindCombinedSampler becomes a combined
// image sampler.
func DescriptorTypeFor(desc *metadata.BindingDescriptor) (vk.DescriptorType, bool) {
	switch metadata.ClassifyBinding(desc) {
	case metadata.BindingCategoryConstantBuffer:
		return vk.DescriptorTypeUniformBuffer, true
	case metadata.BindingCategoryStorageBuffer:
		return vk.DescriptorTypeStorageBuffer, true
	case metadata.BindingCategoryTexture:
		if desc.BindFlags.Has(metadata.BindCombinedSampler) {
			return vk.DescriptorTypeCombinedImageSampler, true
		}
		return vk.DescriptorTypeSampledImage, true
	case metadata.BindingCategoryImage:
		return vk.DescriptorTypeStorageImage, true
	case metadata.BindingCategorySampler:
		return vk.DescriptorTypeSampler, true
	default:
		return vk.DescriptorTypeSampler, false
	}
}

func toVkStageFlags(stages metadata.StageFlags) vk.ShaderStageFlags {
	var flags vk.ShaderStageFlagBits
	if stages.Has(metadata.StageVertex) {
		flags |= vk.ShaderStageVertexBit
	}
	if stages.Has(metadata.StageTessControl) {
		flags |= vk.ShaderStageTessellationControlBit
	}
	if stages.Has(metadata.StageTessEvaluation) {
		flags |= vk.ShaderStageTessellationEvaluationBit
	}
	if stages.Has(metadata.StageGeometry) {
		flags |= vk.ShaderStageGeometryBit
	}
	if stages.Has(metadata.StageFragment) {
		flags |= vk.ShaderStageFragmentBit
	}
	if stages.Has(metadata.StageCompute) {
		flags |= vk.ShaderStageComputeBit
	}
	return vk.ShaderStageFlags(flags)
}

func descriptorCount(arraySize uint32) uint32 {
	if arraySize == 0 {
		return 1
	}
	return arraySize
}

// buildSetLayoutBindings translates bindings into native set layout entries.
// Bindings without a valid descriptor type are skipped; the indices of the
// skipped bindings are returned so callers can report them.
func buildSetLayoutBindings(bindings []metadata.BindingDescriptor) ([]vk.DescriptorSetLayoutBinding, []int) {
	var (
		out     []vk.DescriptorSetLayoutBinding
		skipped []int
	)
	for i := range bindings {
		desc := &bindings[i]
		descType, ok := DescriptorTypeFor(desc)
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		out = append(out, vk.DescriptorSetLayoutBinding{
			Binding:         desc.Slot,
			DescriptorType:  descType,
			DescriptorCount: descriptorCount(desc.ArraySize),
			StageFlags:      toVkStageFlags(desc.StageFlags),
		})
	}
	return out, skipped
}

// buildStaticSamplerBindings returns one immutable sampler entry per static
// sampler. samplers holds the native object of each descriptor in order.
func buildStaticSamplerBindings(descs []metadata.StaticSamplerDescriptor, samplers []vk.Sampler) []vk.DescriptorSetLayoutBinding {
	out := make([]vk.DescriptorSetLayoutBinding, 0, len(descs))
	for i := range descs {
		out = append(out, vk.DescriptorSetLayoutBinding{
			Binding:            descs[i].Slot,
			DescriptorType:     vk.DescriptorTypeSampler,
			DescriptorCount:    1,
			StageFlags:         toVkStageFlags(descs[i].StageFlags),
			PImmutableSamplers: []vk.Sampler{samplers[i]},
		})
	}
	return out
}

// duplicateBinding returns the first binding number that occurs twice in a
// set. All descriptor types of a set share one range of binding numbers.
func duplicateBinding(bindings []vk.DescriptorSetLayoutBinding) (uint32, bool) {
	seen := make(map[uint32]bool, len(bindings))
	for _, b := range bindings {
		if seen[b.Binding] {
			return b.Binding, true
		}
		seen[b.Binding] = true
	}
	return 0, false
}

var descriptorTypeNames = map[vk.DescriptorType]string{
	vk.DescriptorTypeSampler:              "sampler",
	vk.DescriptorTypeCombinedImageSampler: "combined image sampler",
	vk.DescriptorTypeSampledImage:         "sampled image",
	vk.DescriptorTypeStorageImage:         "storage image",
	vk.DescriptorTypeUniformBuffer:        "uniform buffer",
	vk.DescriptorTypeStorageBuffer:        "storage buffer",
}

// DescriptorTypeName returns a readable name for the descriptor types the
// back-end produces.
func DescriptorTypeName(t vk.DescriptorType) string {
	if name, ok := descriptorTypeNames[t]; ok {
		return name
	}
	return "unknown"
}
