package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

var vkFormats = map[metadata.Format]vk.Format{
	metadata.FormatR8UNorm:           vk.FormatR8Unorm,
	metadata.FormatR8SNorm:           vk.FormatR8Snorm,
	metadata.FormatR8UInt:            vk.FormatR8Uint,
	metadata.FormatR8SInt:            vk.FormatR8Sint,
	metadata.FormatR16UNorm:          vk.FormatR16Unorm,
	metadata.FormatR16Float:          vk.FormatR16Sfloat,
	metadata.FormatR32UInt:           vk.FormatR32Uint,
	metadata.FormatR32SInt:           vk.FormatR32Sint,
	metadata.FormatR32Float:          vk.FormatR32Sfloat,
	metadata.FormatRG8UNorm:          vk.FormatR8g8Unorm,
	metadata.FormatRG16Float:         vk.FormatR16g16Sfloat,
	metadata.FormatRG32UInt:          vk.FormatR32g32Uint,
	metadata.FormatRG32SInt:          vk.FormatR32g32Sint,
	metadata.FormatRG32Float:         vk.FormatR32g32Sfloat,
	metadata.FormatRGB32UInt:         vk.FormatR32g32b32Uint,
	metadata.FormatRGB32SInt:         vk.FormatR32g32b32Sint,
	metadata.FormatRGB32Float:        vk.FormatR32g32b32Sfloat,
	metadata.FormatRGBA8UNorm:        vk.FormatR8g8b8a8Unorm,
	metadata.FormatRGBA8UNormSRGB:    vk.FormatR8g8b8a8Srgb,
	metadata.FormatRGBA8UInt:         vk.FormatR8g8b8a8Uint,
	metadata.FormatRGBA16Float:       vk.FormatR16g16b16a16Sfloat,
	metadata.FormatRGBA32UInt:        vk.FormatR32g32b32a32Uint,
	metadata.FormatRGBA32SInt:        vk.FormatR32g32b32a32Sint,
	metadata.FormatRGBA32Float:       vk.FormatR32g32b32a32Sfloat,
	metadata.FormatBGRA8UNorm:        vk.FormatB8g8r8a8Unorm,
	metadata.FormatBGRA8UNormSRGB:    vk.FormatB8g8r8a8Srgb,
	metadata.FormatRGB10A2UNorm:      vk.FormatA2b10g10r10UnormPack32,
	metadata.FormatR11G11B10Float:    vk.FormatB10g11r11UfloatPack32,
	metadata.FormatD16UNorm:          vk.FormatD16Unorm,
	metadata.FormatD24UNormS8UInt:    vk.FormatD24UnormS8Uint,
	metadata.FormatD32Float:          vk.FormatD32Sfloat,
	metadata.FormatD32FloatS8X24UInt: vk.FormatD32SfloatS8Uint,
	metadata.FormatBC1UNorm:          vk.FormatBc1RgbaUnormBlock,
	metadata.FormatBC1UNormSRGB:      vk.FormatBc1RgbaSrgbBlock,
	metadata.FormatBC2UNorm:          vk.FormatBc2UnormBlock,
	metadata.FormatBC3UNorm:          vk.FormatBc3UnormBlock,
	metadata.FormatBC4UNorm:          vk.FormatBc4UnormBlock,
	metadata.FormatBC5UNorm:          vk.FormatBc5UnormBlock,
}

// ToVkFormat returns the native format, or vk.FormatUndefined when the
// format has no core Vulkan equivalent.
func ToVkFormat(format metadata.Format) vk.Format {
	if f, ok := vkFormats[format]; ok {
		return f
	}
	return vk.FormatUndefined
}

// supportedFormats returns the formats the physical device can render to
// with optimal tiling, in format order.
func supportedFormats(d driver) []metadata.Format {
	usable := vk.FormatFeatureColorAttachmentBit | vk.FormatFeatureDepthStencilAttachmentBit

	var formats []metadata.Format
	for _, f := range metadata.Formats() {
		native, ok := vkFormats[f]
		if !ok {
			continue
		}
		properties := d.FormatProperties(native)
		if vk.FormatFeatureFlagBits(properties.OptimalTilingFeatures)&usable != 0 {
			formats = append(formats, f)
		}
	}
	return formats
}
