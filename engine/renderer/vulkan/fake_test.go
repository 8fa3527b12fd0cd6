package vulkan

import (
	"errors"
	"strings"

	vk "github.com/goki/vulkan"
)

// fakeDriver records native calls. Handles it returns are zero values.
type fakeDriver struct {
	properties     vk.PhysicalDeviceProperties
	features       vk.PhysicalDeviceFeatures
	formatFeatures map[vk.Format]vk.FormatFeatureFlags
	failSamplers   bool

	calls               []string
	samplerInfos        []vk.SamplerCreateInfo
	setLayoutBindings   [][]vk.DescriptorSetLayoutBinding
	pipelineLayoutInfos []vk.PipelineLayoutCreateInfo
	shaderCodeSizes     []uint64
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		properties: vk.PhysicalDeviceProperties{
			ApiVersion: uint32(vk.MakeVersion(1, 3, 0)),
			Limits: vk.PhysicalDeviceLimits{
				FramebufferColorSampleCounts:         vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount2Bit | vk.SampleCount4Bit | vk.SampleCount8Bit),
				FramebufferDepthSampleCounts:         vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount4Bit),
				FramebufferStencilSampleCounts:       vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount4Bit),
				FramebufferNoAttachmentsSampleCounts: vk.SampleCountFlags(vk.SampleCount1Bit | vk.SampleCount16Bit),
				MaxColorAttachments:                  8,
				MaxImageDimension2D:                  16384,
				MaxSamplerAnisotropy:                 16,
				MaxPushConstantsSize:                 128,
			},
		},
		features: vk.PhysicalDeviceFeatures{
			GeometryShader:     vk.True,
			TessellationShader: vk.False,
		},
		formatFeatures: map[vk.Format]vk.FormatFeatureFlags{
			vk.FormatR8g8b8a8Unorm:     vk.FormatFeatureFlags(vk.FormatFeatureColorAttachmentBit | vk.FormatFeatureSampledImageBit),
			vk.FormatD32Sfloat:         vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit),
			vk.FormatBc1RgbaUnormBlock: vk.FormatFeatureFlags(vk.FormatFeatureSampledImageBit),
		},
	}
}

func (d *fakeDriver) record(call string) {
	d.calls = append(d.calls, call)
}

// count returns how many recorded calls start with prefix.
func (d *fakeDriver) count(prefix string) int {
	n := 0
	for _, c := range d.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (d *fakeDriver) PhysicalDeviceProperties() vk.PhysicalDeviceProperties {
	return d.properties
}

func (d *fakeDriver) PhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	return d.features
}

func (d *fakeDriver) FormatProperties(format vk.Format) vk.FormatProperties {
	return vk.FormatProperties{OptimalTilingFeatures: d.formatFeatures[format]}
}

func (d *fakeDriver) CreateSampler(info *vk.SamplerCreateInfo) (vk.Sampler, error) {
	if d.failSamplers {
		return nil, errors.New("vkCreateSampler failed with VK_ERROR_OUT_OF_DEVICE_MEMORY")
	}
	d.record("CreateSampler")
	d.samplerInfos = append(d.samplerInfos, *info)
	return nil, nil
}

func (d *fakeDriver) DestroySampler(sampler vk.Sampler) {
	d.record("DestroySampler")
}

func (d *fakeDriver) CreateDescriptorSetLayout(info *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, error) {
	d.record("CreateDescriptorSetLayout")
	d.setLayoutBindings = append(d.setLayoutBindings, info.PBindings)
	return nil, nil
}

func (d *fakeDriver) DestroyDescriptorSetLayout(layout vk.DescriptorSetLayout) {
	d.record("DestroyDescriptorSetLayout")
}

func (d *fakeDriver) CreatePipelineLayout(info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error) {
	d.record("CreatePipelineLayout")
	d.pipelineLayoutInfos = append(d.pipelineLayoutInfos, *info)
	return nil, nil
}

func (d *fakeDriver) DestroyPipelineLayout(layout vk.PipelineLayout) {
	d.record("DestroyPipelineLayout")
}

func (d *fakeDriver) CreateShaderModule(info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error) {
	d.record("CreateShaderModule")
	d.shaderCodeSizes = append(d.shaderCodeSizes, info.CodeSize)
	return nil, nil
}

func (d *fakeDriver) DestroyShaderModule(module vk.ShaderModule) {
	d.record("DestroyShaderModule")
}
