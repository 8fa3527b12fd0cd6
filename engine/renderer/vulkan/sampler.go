package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Max LOD that restricts sampling to the base level, as recommended for
// emulating non-mipmapped samplers.
const baseLevelMaxLOD = 0.25

func toVkAddressMode(mode metadata.SamplerAddressMode) vk.SamplerAddressMode {
	switch mode {
	case metadata.SamplerAddressModeMirror:
		return vk.SamplerAddressModeMirroredRepeat
	case metadata.SamplerAddressModeClamp:
		return vk.SamplerAddressModeClampToEdge
	case metadata.SamplerAddressModeBorder:
		return vk.SamplerAddressModeClampToBorder
	case metadata.SamplerAddressModeMirrorOnce:
		return vk.SamplerAddressModeMirrorClampToEdge
	default:
		return vk.SamplerAddressModeRepeat
	}
}

func toVkFilter(filter metadata.SamplerFilter) vk.Filter {
	if filter == metadata.SamplerFilterNearest {
		return vk.FilterNearest
	}
	return vk.FilterLinear
}

func toVkMipmapMode(filter metadata.SamplerFilter) vk.SamplerMipmapMode {
	if filter == metadata.SamplerFilterNearest {
		return vk.SamplerMipmapModeNearest
	}
	return vk.SamplerMipmapModeLinear
}

func toVkCompareOp(op metadata.CompareOp) vk.CompareOp {
	switch op {
	case metadata.CompareOpNeverPass:
		return vk.CompareOpNever
	case metadata.CompareOpLess:
		return vk.CompareOpLess
	case metadata.CompareOpEqual:
		return vk.CompareOpEqual
	case metadata.CompareOpLessEqual:
		return vk.CompareOpLessOrEqual
	case metadata.CompareOpGreater:
		return vk.CompareOpGreater
	case metadata.CompareOpNotEqual:
		return vk.CompareOpNotEqual
	case metadata.CompareOpGreaterEqual:
		return vk.CompareOpGreaterOrEqual
	default:
		return vk.CompareOpAlways
	}
}

// toVkBorderColor picks the closest of the fixed Vulkan border colors.
func toVkBorderColor(color [4]float32) vk.BorderColor {
	if color[3] < 0.5 {
		return vk.BorderColorFloatTransparentBlack
	}
	if (color[0]+color[1]+color[2])/3 < 0.5 {
		return vk.BorderColorFloatOpaqueBlack
	}
	return vk.BorderColorFloatOpaqueWhite
}

// samplerCreateInfo translates a sampler descriptor. Anisotropy is clamped
// to maxAnisotropy, the device limit.
func samplerCreateInfo(desc *metadata.SamplerDescriptor, maxAnisotropy float32) vk.SamplerCreateInfo {
	info := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               toVkFilter(desc.MagFilter),
		MinFilter:               toVkFilter(desc.MinFilter),
		MipmapMode:              toVkMipmapMode(desc.MipMapFilter),
		AddressModeU:            toVkAddressMode(desc.AddressModeU),
		AddressModeV:            toVkAddressMode(desc.AddressModeV),
		AddressModeW:            toVkAddressMode(desc.AddressModeW),
		MipLodBias:              desc.MipMapLODBias,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1,
		CompareEnable:           boolToVk(desc.CompareEnabled),
		CompareOp:               toVkCompareOp(desc.CompareOp),
		MinLod:                  desc.MinLOD,
		MaxLod:                  desc.MaxLOD,
		BorderColor:             toVkBorderColor(desc.BorderColor),
		UnnormalizedCoordinates: vk.False,
	}
	if desc.MaxAnisotropy > 1 && maxAnisotropy > 1 {
		info.AnisotropyEnable = vk.True
		info.MaxAnisotropy = math.Clamp(float32(desc.MaxAnisotropy), 1, maxAnisotropy)
	}
	if !desc.MipMapEnabled {
		info.MipmapMode = vk.SamplerMipmapModeNearest
		info.MinLod = 0
		info.MaxLod = baseLevelMaxLOD
	}
	return info
}
