package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const BackendName = "webgpu"

// Sample counts every WebGPU implementation supports.
const maxSamples = 4

func init() {
	renderer.Register(BackendName, func(cfg *renderer.RenderSystemConfig) (renderer.RenderSystem, error) {
		switch ctx := cfg.NativeContext.(type) {
		case nil:
			return NewWebGPURenderSystem(nil, cfg), nil
		case *WebGPUContext:
			return NewWebGPURenderSystem(ctx, cfg), nil
		default:
			return nil, fmt.Errorf("%w: webgpu needs a *webgpu.WebGPUContext or nil, got %T", core.ErrNativeContextMissing, cfg.NativeContext)
		}
	})
}

/**
 * @brief Limits and features of the device the embedder created. The back-end
 * only produces descriptors, so no device handle is needed.
 */
type WebGPUContext struct {
	Limits   gputypes.Limits
	Features gputypes.Features
}

// DefaultContext describes a device with the default WebGPU limits plus
// push constants, as requested by native implementations.
func DefaultContext() *WebGPUContext {
	ctx := &WebGPUContext{Limits: gputypes.DefaultLimits()}
	ctx.Limits.MaxPushConstantSize = 128
	ctx.Features.Insert(gputypes.FeaturePushConstants)
	return ctx
}

// WebGPURenderTarget only tracks attachment state, render pass descriptors are
// built by the embedder.
type WebGPURenderTarget struct {
	*renderer.RenderTargetInfo
}

// ColorTextureFormats returns the WebGPU formats of the active color attachments.
func (rt *WebGPURenderTarget) ColorTextureFormats() []gputypes.TextureFormat {
	formats := rt.ColorFormats()
	out := make([]gputypes.TextureFormat, len(formats))
	for i, f := range formats {
		out[i] = ToTextureFormat(f)
	}
	return out
}

type WebGPURenderSystem struct {
	context *WebGPUContext
	limits  metadata.RenderingLimits
	formats []metadata.Format
	objects map[renderer.RenderSystemChild]struct{}
}

func NewWebGPURenderSystem(context *WebGPUContext, cfg *renderer.RenderSystemConfig) *WebGPURenderSystem {
	if context == nil {
		context = DefaultContext()
	}
	rs := &WebGPURenderSystem{
		context: context,
		limits:  limitsFromDevice(&context.Limits),
		formats: renderableFormats(),
		objects: make(map[renderer.RenderSystemChild]struct{}),
	}
	renderer.ApplyLimitsOverride(&rs.limits, cfg)

	core.LogInfo("WebGPU descriptors ready, %d bind groups, %d render-target formats", context.Limits.MaxBindGroups, len(rs.formats))
	return rs
}

func limitsFromDevice(limits *gputypes.Limits) metadata.RenderingLimits {
	return metadata.RenderingLimits{
		MaxColorBufferSamples:   maxSamples,
		MaxDepthBufferSamples:   maxSamples,
		MaxStencilBufferSamples: maxSamples,
		MaxNoAttachmentSamples:  maxSamples,
		MaxColorAttachments:     math.MinOf(limits.MaxColorAttachments, metadata.MaxNumColorAttachments),
		MaxTextureSize:          limits.MaxTextureDimension2D,
		MaxSamplerAnisotropy:    maxSamplerAnisotropy,
	}
}

func (rs *WebGPURenderSystem) Name() string {
	return BackendName
}

func (rs *WebGPURenderSystem) Capabilities() *metadata.RenderingCapabilities {
	return &metadata.RenderingCapabilities{
		APIVersion:       "WebGPU",
		ShadingLanguages: []metadata.ShadingLanguage{metadata.ShadingLanguageWGSL},
		Formats:          rs.formats,
		Features: metadata.RenderingFeatures{
			HasSamplers:       true,
			HasUniformBuffers: true,
			HasStorageBuffers: rs.context.Limits.MaxStorageBuffersPerShaderStage > 0,
			HasStorageImages:  rs.context.Limits.MaxStorageTexturesPerShaderStage > 0,
			HasComputeShaders: true,
			HasPushConstants:  rs.context.Features.Contains(gputypes.FeaturePushConstants),
		},
		Limits: rs.limits,
	}
}

func (rs *WebGPURenderSystem) Limits() metadata.RenderingLimits {
	return rs.limits
}

func (rs *WebGPURenderSystem) CreateShader(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	if desc.SourceType.IsBinary() {
		err := fmt.Errorf("%w: webgpu shader `%s` must be WGSL source", core.ErrUnsupportedShaderSource, desc.Name)
		core.LogError("%s", err.Error())
		return nil, err
	}
	s, err := NewWGSLShader(desc)
	if err != nil {
		return nil, err
	}
	rs.objects[s] = struct{}{}
	return s, nil
}

func (rs *WebGPURenderSystem) CreatePipelineLayout(desc *metadata.PipelineLayoutDescriptor) (renderer.PipelineLayout, error) {
	limits := rs.context.Limits
	if !rs.context.Features.Contains(gputypes.FeaturePushConstants) {
		limits.MaxPushConstantSize = 0
	}
	l, err := NewWebGPUPipelineLayout(&limits, desc)
	if err != nil {
		return nil, err
	}
	rs.objects[l] = struct{}{}
	return l, nil
}

func (rs *WebGPURenderSystem) CreateRenderTarget(desc *metadata.RenderTargetDescriptor) (renderer.RenderTarget, error) {
	for i := uint32(0); i < renderer.NumActiveColorAttachments(desc); i++ {
		if f := renderer.GetAttachmentFormat(&desc.ColorAttachments[i]); !isRenderable(f) {
			err := fmt.Errorf("webgpu: render target `%s`: color attachment %d has format %s, WebGPU cannot render into it", desc.Name, i, f)
			core.LogError("%s", err.Error())
			return nil, err
		}
	}
	rt := &WebGPURenderTarget{RenderTargetInfo: renderer.NewRenderTargetInfo(&rs.limits, desc)}
	rs.objects[rt] = struct{}{}
	return rt, nil
}

func (rs *WebGPURenderSystem) Release(obj renderer.RenderSystemChild) error {
	if _, ok := rs.objects[obj]; !ok {
		return fmt.Errorf("%w: %T `%s`", core.ErrObjectNotOwned, obj, obj.Name())
	}
	delete(rs.objects, obj)
	return nil
}
