package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const BackendName = "vulkan"

func init() {
	renderer.Register(BackendName, func(cfg *renderer.RenderSystemConfig) (renderer.RenderSystem, error) {
		context, ok := cfg.NativeContext.(*VulkanContext)
		if !ok || context == nil {
			return nil, fmt.Errorf("%w: vulkan needs a *vulkan.VulkanContext, got %T", core.ErrNativeContextMissing, cfg.NativeContext)
		}
		return NewVulkanRenderSystem(context, cfg)
	})
}

// VulkanRenderTarget only tracks attachment state, framebuffers and render
// passes belong to the embedder.
type VulkanRenderTarget struct {
	*renderer.RenderTargetInfo
}

type VulkanRenderSystem struct {
	driver     driver
	properties vk.PhysicalDeviceProperties
	features   vk.PhysicalDeviceFeatures
	formats    []metadata.Format
	limits     metadata.RenderingLimits
	objects    map[renderer.RenderSystemChild]struct{}
}

func NewVulkanRenderSystem(context *VulkanContext, cfg *renderer.RenderSystemConfig) (*VulkanRenderSystem, error) {
	return newVulkanRenderSystem(newNativeDriver(context), cfg), nil
}

func newVulkanRenderSystem(d driver, cfg *renderer.RenderSystemConfig) *VulkanRenderSystem {
	rs := &VulkanRenderSystem{
		driver:     d,
		properties: d.PhysicalDeviceProperties(),
		features:   d.PhysicalDeviceFeatures(),
		objects:    make(map[renderer.RenderSystemChild]struct{}),
	}
	rs.formats = supportedFormats(d)
	rs.limits = limitsFromDevice(&rs.properties.Limits)
	renderer.ApplyLimitsOverride(&rs.limits, cfg)

	core.LogInfo("%s device ready, %d render-target formats", rs.apiVersion(), len(rs.formats))
	return rs
}

// maxSampleCount returns the highest sample count set in a sample-count mask.
func maxSampleCount(mask vk.SampleCountFlags) uint32 {
	return math.FloorPowerOfTwo(uint32(mask) & 0x7F)
}

func limitsFromDevice(limits *vk.PhysicalDeviceLimits) metadata.RenderingLimits {
	return metadata.RenderingLimits{
		MaxColorBufferSamples:   maxSampleCount(limits.FramebufferColorSampleCounts),
		MaxDepthBufferSamples:   maxSampleCount(limits.FramebufferDepthSampleCounts),
		MaxStencilBufferSamples: maxSampleCount(limits.FramebufferStencilSampleCounts),
		MaxNoAttachmentSamples:  maxSampleCount(limits.FramebufferNoAttachmentsSampleCounts),
		MaxColorAttachments:     math.MinOf(limits.MaxColorAttachments, metadata.MaxNumColorAttachments),
		MaxTextureSize:          limits.MaxImageDimension2D,
		MaxSamplerAnisotropy:    limits.MaxSamplerAnisotropy,
	}
}

func (rs *VulkanRenderSystem) apiVersion() string {
	v := vk.Version(rs.properties.ApiVersion)
	return fmt.Sprintf("Vulkan %d.%d.%d", vk.Version.Major(v), vk.Version.Minor(v), vk.Version.Patch(v))
}

func (rs *VulkanRenderSystem) Name() string {
	return BackendName
}

func (rs *VulkanRenderSystem) Capabilities() *metadata.RenderingCapabilities {
	return &metadata.RenderingCapabilities{
		APIVersion:       rs.apiVersion(),
		ShadingLanguages: []metadata.ShadingLanguage{metadata.ShadingLanguageSPIRV, metadata.ShadingLanguageWGSL},
		Formats:          rs.formats,
		Features: metadata.RenderingFeatures{
			HasSamplers:        true,
			HasUniformBuffers:  true,
			HasStorageBuffers:  true,
			HasStorageImages:   true,
			HasComputeShaders:  true,
			HasGeometryShaders: rs.features.GeometryShader == vk.True,
			HasTessellation:    rs.features.TessellationShader == vk.True,
			HasPushConstants:   true,
		},
		Limits: rs.limits,
	}
}

func (rs *VulkanRenderSystem) Limits() metadata.RenderingLimits {
	return rs.limits
}

func (rs *VulkanRenderSystem) CreateShader(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	s, err := NewVulkanShader(rs.driver, desc)
	if err != nil {
		return nil, err
	}
	rs.objects[s] = struct{}{}
	return s, nil
}

func (rs *VulkanRenderSystem) CreatePipelineLayout(desc *metadata.PipelineLayoutDescriptor) (renderer.PipelineLayout, error) {
	l, err := NewVulkanPipelineLayout(rs.driver, &rs.properties.Limits, desc)
	if err != nil {
		return nil, err
	}
	rs.objects[l] = struct{}{}
	return l, nil
}

func (rs *VulkanRenderSystem) CreateRenderTarget(desc *metadata.RenderTargetDescriptor) (renderer.RenderTarget, error) {
	if n := renderer.NumActiveColorAttachments(desc); n > rs.limits.MaxColorAttachments {
		err := fmt.Errorf("vulkan: render target `%s` has %d color attachments, the device supports %d", desc.Name, n, rs.limits.MaxColorAttachments)
		core.LogError("%s", err.Error())
		return nil, err
	}
	rt := &VulkanRenderTarget{RenderTargetInfo: renderer.NewRenderTargetInfo(&rs.limits, desc)}
	rs.objects[rt] = struct{}{}
	return rt, nil
}

func (rs *VulkanRenderSystem) Release(obj renderer.RenderSystemChild) error {
	if _, ok := rs.objects[obj]; !ok {
		return fmt.Errorf("%w: %T `%s`", core.ErrObjectNotOwned, obj, obj.Name())
	}
	delete(rs.objects, obj)

	switch o := obj.(type) {
	case *VulkanShader:
		o.Release()
	case *VulkanPipelineLayout:
		o.Release()
	}
	return nil
}
