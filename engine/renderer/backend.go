package renderer

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// RenderSystemChild is implemented by every object a render system creates.
type RenderSystemChild interface {
	SetName(name string)
	Name() string
}

type Shader interface {
	RenderSystemChild
	Type() metadata.ShaderType
	// Report returns the compile or link diagnostics, nil if the back-end produced none.
	Report() *metadata.Report
	// Reflect fills the reflection with the shader interface and reports whether
	// the back-end could reflect the shader at all.
	Reflect(reflection *metadata.ShaderReflection) bool
	// FindUniformLocation returns the location of the named uniform or -1.
	FindUniformLocation(name string) int32
	// IsPostTessellationVertex reports whether the shader runs after the tessellator,
	// for example a tessellation-evaluation or a geometry shader fed by one.
	IsPostTessellationVertex() bool
}

type PipelineLayout interface {
	RenderSystemChild
	NumHeapBindings() uint32
	NumBindings() uint32
	NumStaticSamplers() uint32
	NumUniforms() uint32
	// HasNamedBindings reports whether any binding or static sampler has a name.
	HasNamedBindings() bool
}

type RenderTarget interface {
	RenderSystemChild
	Resolution() metadata.Extent2D
	Samples() uint32
	NumColorAttachments() uint32
	HasDepthAttachment() bool
	HasStencilAttachment() bool
}

// RenderSystem is the entry point of a back-end. All methods must be called on
// the thread that owns the native context.
type RenderSystem interface {
	Name() string
	Capabilities() *metadata.RenderingCapabilities
	Limits() metadata.RenderingLimits
	CreateShader(desc *metadata.ShaderDescriptor) (Shader, error)
	CreatePipelineLayout(desc *metadata.PipelineLayoutDescriptor) (PipelineLayout, error)
	CreateRenderTarget(desc *metadata.RenderTargetDescriptor) (RenderTarget, error)
	// Release destroys an object created by this render system.
	Release(obj RenderSystemChild) error
}

// RenderSystemConfig is passed to a back-end factory.
type RenderSystemConfig struct {
	// NativeContext is the opaque native context the back-end drives, for example
	// an opengl.Functions or a *vulkan.VulkanContext. Back-ends that only translate
	// descriptors accept nil.
	NativeContext interface{}
	// NativeSamplers forces or forbids native sampler objects where the back-end
	// has a choice.
	NativeSamplers core.NativeSamplersMode
	// LimitsOverride replaces non-zero sample limits queried from the device.
	LimitsOverride core.LimitsConfig
}

func ApplyLimitsOverride(limits *metadata.RenderingLimits, cfg *RenderSystemConfig) {
	if cfg == nil {
		return
	}
	o := cfg.LimitsOverride
	limits.ApplyOverrides(o.MaxColorBufferSamples, o.MaxDepthBufferSamples, o.MaxStencilBufferSamples, o.MaxNoAttachmentSamples)
}
