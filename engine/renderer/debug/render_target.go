package debug

import (
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/** @brief Wraps a back-end render target and keeps a copy of its descriptor. */
type DbgRenderTarget struct {
	instance renderer.RenderTarget
	desc     metadata.RenderTargetDescriptor
	label    string
	id       uint32
}

func NewDbgRenderTarget(instance renderer.RenderTarget, desc *metadata.RenderTargetDescriptor) *DbgRenderTarget {
	return &DbgRenderTarget{instance: instance, desc: *desc, label: desc.Name}
}

func (rt *DbgRenderTarget) Instance() renderer.RenderTarget {
	return rt.instance
}

func (rt *DbgRenderTarget) Descriptor() *metadata.RenderTargetDescriptor {
	return &rt.desc
}

func (rt *DbgRenderTarget) SetName(name string) {
	rt.label = name
	rt.instance.SetName(name)
}

func (rt *DbgRenderTarget) Name() string {
	return rt.label
}

func (rt *DbgRenderTarget) Resolution() metadata.Extent2D {
	return rt.instance.Resolution()
}

func (rt *DbgRenderTarget) Samples() uint32 {
	return rt.instance.Samples()
}

func (rt *DbgRenderTarget) NumColorAttachments() uint32 {
	return rt.instance.NumColorAttachments()
}

func (rt *DbgRenderTarget) HasDepthAttachment() bool {
	return rt.instance.HasDepthAttachment()
}

func (rt *DbgRenderTarget) HasStencilAttachment() bool {
	return rt.instance.HasStencilAttachment()
}

// ValidateRenderTarget reports attachments that the attachment rules silently
// ignore or that cannot work: gaps in the color attachments, depth formats
// used as color and the other way round, resolve targets without
// multi-sampling, and sample counts the limits clamp.
func ValidateRenderTarget(d *Debugger, source string, limits *metadata.RenderingLimits, desc *metadata.RenderTargetDescriptor) {
	numColor := renderer.NumActiveColorAttachments(desc)
	for i := numColor + 1; i < metadata.MaxNumColorAttachments; i++ {
		if renderer.IsAttachmentEnabled(&desc.ColorAttachments[i]) {
			d.Errorf(source, "color attachment %d follows disabled attachment %d and is ignored", i, numColor)
		}
	}

	for i := uint32(0); i < numColor; i++ {
		if f := renderer.GetAttachmentFormat(&desc.ColorAttachments[i]); metadata.IsDepthOrStencilFormat(f) {
			d.Errorf(source, "color attachment %d has depth-stencil format %s", i, f)
		}
	}
	if a := &desc.DepthStencilAttachment; renderer.IsAttachmentEnabled(a) {
		if f := renderer.GetAttachmentFormat(a); !metadata.IsDepthOrStencilFormat(f) {
			d.Errorf(source, "depth-stencil attachment has color format %s", f)
		}
	}

	for i := uint32(0); i < metadata.MaxNumColorAttachments; i++ {
		if !renderer.IsAttachmentEnabled(&desc.ResolveAttachments[i]) {
			continue
		}
		switch {
		case i >= numColor:
			d.Warnf(source, "resolve attachment %d has no color attachment and is ignored", i)
		case desc.Samples <= 1:
			d.Errorf(source, "resolve attachment %d is set but the render target is not multi-sampled", i)
		}
	}

	if samples := renderer.GetLimitedRenderTargetSamples(limits, desc); samples != desc.Samples {
		d.Warnf(source, "%d samples requested, clamped to %d by the attachment limits", desc.Samples, samples)
	}
	if desc.Resolution.Width == 0 || desc.Resolution.Height == 0 {
		if !renderer.HasAnyActiveAttachments(desc) {
			d.Errorf(source, "render target without attachments needs a resolution")
		}
	}
}
