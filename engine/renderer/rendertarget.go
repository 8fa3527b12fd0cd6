package renderer

import (
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// IsAttachmentEnabled reports whether the attachment has a texture or an explicit format.
func IsAttachmentEnabled(attachment *metadata.AttachmentDescriptor) bool {
	return attachment.Texture != nil || attachment.Format != metadata.FormatUndefined
}

// GetAttachmentFormat returns the explicit format of the attachment, else the
// format of its texture, else FormatUndefined.
func GetAttachmentFormat(attachment *metadata.AttachmentDescriptor) metadata.Format {
	if attachment.Format != metadata.FormatUndefined {
		return attachment.Format
	}
	if attachment.Texture != nil {
		return attachment.Texture.Format()
	}
	return metadata.FormatUndefined
}

// NumActiveColorAttachments counts the enabled color attachments from index 0
// and stops at the first disabled one. Attachments after a gap are never counted.
func NumActiveColorAttachments(desc *metadata.RenderTargetDescriptor) uint32 {
	n := uint32(0)
	for n < metadata.MaxNumColorAttachments && IsAttachmentEnabled(&desc.ColorAttachments[n]) {
		n++
	}
	return n
}

// NumActiveResolveAttachments counts resolve textures within the active color attachment range.
func NumActiveResolveAttachments(desc *metadata.RenderTargetDescriptor) uint32 {
	n := uint32(0)
	numColor := NumActiveColorAttachments(desc)
	for i := uint32(0); i < numColor; i++ {
		if desc.ResolveAttachments[i].Texture != nil {
			n++
		}
	}
	return n
}

func HasAnyActiveAttachments(desc *metadata.RenderTargetDescriptor) bool {
	return NumActiveColorAttachments(desc) > 0 || IsAttachmentEnabled(&desc.DepthStencilAttachment)
}

// GetLimitedRenderTargetSamples clamps the requested sample count to the limits
// of the attachments that are actually present. A request of 0 stays 0.
func GetLimitedRenderTargetSamples(limits *metadata.RenderingLimits, desc *metadata.RenderTargetDescriptor) uint32 {
	if desc.Samples == 0 {
		return 0
	}
	if !HasAnyActiveAttachments(desc) {
		return math.MinOf(desc.Samples, limits.MaxNoAttachmentSamples)
	}

	depthStencilFormat := GetAttachmentFormat(&desc.DepthStencilAttachment)

	maxColorSamples := desc.Samples
	if IsAttachmentEnabled(&desc.ColorAttachments[0]) {
		maxColorSamples = limits.MaxColorBufferSamples
	}
	maxDepthSamples := desc.Samples
	if metadata.IsDepthFormat(depthStencilFormat) {
		maxDepthSamples = limits.MaxDepthBufferSamples
	}
	maxStencilSamples := desc.Samples
	if metadata.IsStencilFormat(depthStencilFormat) {
		maxStencilSamples = limits.MaxStencilBufferSamples
	}
	return math.MinOf(desc.Samples, maxColorSamples, maxDepthSamples, maxStencilSamples)
}

// RenderTargetInfo is the back-end neutral part of a render target.
// Back-ends embed it and add their native objects.
type RenderTargetInfo struct {
	name                string
	resolution          metadata.Extent2D
	samples             uint32
	numColorAttachments uint32
	numResolve          uint32
	depthStencilFormat  metadata.Format
	colorFormats        []metadata.Format
}

func NewRenderTargetInfo(limits *metadata.RenderingLimits, desc *metadata.RenderTargetDescriptor) *RenderTargetInfo {
	info := &RenderTargetInfo{
		name:                desc.Name,
		resolution:          desc.Resolution,
		samples:             GetLimitedRenderTargetSamples(limits, desc),
		numColorAttachments: NumActiveColorAttachments(desc),
		numResolve:          NumActiveResolveAttachments(desc),
		depthStencilFormat:  GetAttachmentFormat(&desc.DepthStencilAttachment),
	}
	info.colorFormats = make([]metadata.Format, info.numColorAttachments)
	for i := range info.colorFormats {
		info.colorFormats[i] = GetAttachmentFormat(&desc.ColorAttachments[i])
	}
	return info
}

func (r *RenderTargetInfo) SetName(name string) {
	r.name = name
}

func (r *RenderTargetInfo) Name() string {
	return r.name
}

func (r *RenderTargetInfo) Resolution() metadata.Extent2D {
	return r.resolution
}

// Samples returns the sample count after clamping to the hardware limits.
func (r *RenderTargetInfo) Samples() uint32 {
	return r.samples
}

func (r *RenderTargetInfo) NumColorAttachments() uint32 {
	return r.numColorAttachments
}

func (r *RenderTargetInfo) NumResolveAttachments() uint32 {
	return r.numResolve
}

func (r *RenderTargetInfo) ColorFormats() []metadata.Format {
	return r.colorFormats
}

func (r *RenderTargetInfo) DepthStencilFormat() metadata.Format {
	return r.depthStencilFormat
}

func (r *RenderTargetInfo) HasDepthAttachment() bool {
	return metadata.IsDepthFormat(r.depthStencilFormat)
}

func (r *RenderTargetInfo) HasStencilAttachment() bool {
	return metadata.IsStencilFormat(r.depthStencilFormat)
}
