package webgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Formats without a WebGPU equivalent (A8 and the 96-bit RGB formats) are absent.
var textureFormats = map[metadata.Format]gputypes.TextureFormat{
	metadata.FormatR8UNorm:  gputypes.TextureFormatR8Unorm,
	metadata.FormatR8SNorm:  gputypes.TextureFormatR8Snorm,
	metadata.FormatR8UInt:   gputypes.TextureFormatR8Uint,
	metadata.FormatR8SInt:   gputypes.TextureFormatR8Sint,
	metadata.FormatR16UNorm: gputypes.TextureFormatR16Unorm,
	metadata.FormatR16Float: gputypes.TextureFormatR16Float,
	metadata.FormatR32UInt:  gputypes.TextureFormatR32Uint,
	metadata.FormatR32SInt:  gputypes.TextureFormatR32Sint,
	metadata.FormatR32Float: gputypes.TextureFormatR32Float,

	metadata.FormatRG8UNorm:  gputypes.TextureFormatRG8Unorm,
	metadata.FormatRG16Float: gputypes.TextureFormatRG16Float,
	metadata.FormatRG32UInt:  gputypes.TextureFormatRG32Uint,
	metadata.FormatRG32SInt:  gputypes.TextureFormatRG32Sint,
	metadata.FormatRG32Float: gputypes.TextureFormatRG32Float,

	metadata.FormatRGBA8UNorm:     gputypes.TextureFormatRGBA8Unorm,
	metadata.FormatRGBA8UNormSRGB: gputypes.TextureFormatRGBA8UnormSrgb,
	metadata.FormatRGBA8UInt:      gputypes.TextureFormatRGBA8Uint,
	metadata.FormatRGBA16Float:    gputypes.TextureFormatRGBA16Float,
	metadata.FormatRGBA32UInt:     gputypes.TextureFormatRGBA32Uint,
	metadata.FormatRGBA32SInt:     gputypes.TextureFormatRGBA32Sint,
	metadata.FormatRGBA32Float:    gputypes.TextureFormatRGBA32Float,

	metadata.FormatBGRA8UNorm:     gputypes.TextureFormatBGRA8Unorm,
	metadata.FormatBGRA8UNormSRGB: gputypes.TextureFormatBGRA8UnormSrgb,

	metadata.FormatRGB10A2UNorm:   gputypes.TextureFormatRGB10A2Unorm,
	metadata.FormatR11G11B10Float: gputypes.TextureFormatRG11B10Ufloat,

	metadata.FormatD16UNorm:          gputypes.TextureFormatDepth16Unorm,
	metadata.FormatD24UNormS8UInt:    gputypes.TextureFormatDepth24PlusStencil8,
	metadata.FormatD32Float:          gputypes.TextureFormatDepth32Float,
	metadata.FormatD32FloatS8X24UInt: gputypes.TextureFormatDepth32FloatStencil8,

	metadata.FormatBC1UNorm:     gputypes.TextureFormatBC1RGBAUnorm,
	metadata.FormatBC1UNormSRGB: gputypes.TextureFormatBC1RGBAUnormSrgb,
	metadata.FormatBC2UNorm:     gputypes.TextureFormatBC2RGBAUnorm,
	metadata.FormatBC3UNorm:     gputypes.TextureFormatBC3RGBAUnorm,
	metadata.FormatBC4UNorm:     gputypes.TextureFormatBC4RUnorm,
	metadata.FormatBC5UNorm:     gputypes.TextureFormatBC5RGUnorm,
}

var formatsByTexture = func() map[gputypes.TextureFormat]metadata.Format {
	m := make(map[gputypes.TextureFormat]metadata.Format, len(textureFormats))
	for f, tf := range textureFormats {
		m[tf] = f
	}
	return m
}()

// ToTextureFormat returns the WebGPU texture format of a format, or
// TextureFormatUndefined if WebGPU has none.
func ToTextureFormat(format metadata.Format) gputypes.TextureFormat {
	return textureFormats[format]
}

// FromTextureFormat is the inverse of ToTextureFormat. Texture formats with
// no counterpart map to FormatUndefined.
func FromTextureFormat(format gputypes.TextureFormat) metadata.Format {
	return formatsByTexture[format]
}

// isRenderable reports whether WebGPU can use the format as an attachment
// without optional features. Snorm formats and RG11B10Ufloat are sample-only.
func isRenderable(format metadata.Format) bool {
	if ToTextureFormat(format) == gputypes.TextureFormatUndefined || format == metadata.FormatR11G11B10Float {
		return false
	}
	flags := metadata.GetFormatAttribs(format).Flags
	if flags&metadata.FormatSupportsRenderTarget == 0 {
		return false
	}
	return flags&metadata.FormatIsNormalized == 0 || flags&metadata.FormatIsUnsigned != 0
}

// renderableFormats returns the formats WebGPU can render into, in enum order.
func renderableFormats() []metadata.Format {
	var out []metadata.Format
	for _, f := range metadata.Formats() {
		if isRenderable(f) {
			out = append(out, f)
		}
	}
	return out
}
