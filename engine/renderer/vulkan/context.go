package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

/**
 * @brief The native context of the Vulkan back-end, owned by the embedder.
 * The render system creates its objects on Device and queries limits and
 * format support from PhysicalDevice.
 */
type VulkanContext struct {
	Device         vk.Device
	PhysicalDevice vk.PhysicalDevice
	Allocator      *vk.AllocationCallbacks
}

// driver is the set of native calls the back-end issues. nativeDriver
// forwards them to the Vulkan loader.
type driver interface {
	PhysicalDeviceProperties() vk.PhysicalDeviceProperties
	PhysicalDeviceFeatures() vk.PhysicalDeviceFeatures
	FormatProperties(format vk.Format) vk.FormatProperties

	CreateSampler(info *vk.SamplerCreateInfo) (vk.Sampler, error)
	DestroySampler(sampler vk.Sampler)
	CreateDescriptorSetLayout(info *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, error)
	DestroyDescriptorSetLayout(layout vk.DescriptorSetLayout)
	CreatePipelineLayout(info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error)
	DestroyPipelineLayout(layout vk.PipelineLayout)
	CreateShaderModule(info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error)
	DestroyShaderModule(module vk.ShaderModule)
}

type nativeDriver struct {
	context *VulkanContext
	locks   *VulkanLockPool
}

func newNativeDriver(context *VulkanContext) *nativeDriver {
	return &nativeDriver{context: context, locks: NewVulkanLockPool()}
}

func (d *nativeDriver) PhysicalDeviceProperties() vk.PhysicalDeviceProperties {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(d.context.PhysicalDevice, &properties)
	properties.Deref()
	properties.Limits.Deref()
	return properties
}

func (d *nativeDriver) PhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(d.context.PhysicalDevice, &features)
	features.Deref()
	return features
}

func (d *nativeDriver) FormatProperties(format vk.Format) vk.FormatProperties {
	var properties vk.FormatProperties
	vk.GetPhysicalDeviceFormatProperties(d.context.PhysicalDevice, format, &properties)
	properties.Deref()
	return properties
}

func (d *nativeDriver) CreateSampler(info *vk.SamplerCreateInfo) (vk.Sampler, error) {
	var sampler vk.Sampler
	err := d.locks.SafeCall(SamplerManagement, func() error {
		return resultError("vkCreateSampler", vk.CreateSampler(d.context.Device, info, d.context.Allocator, &sampler))
	})
	return sampler, err
}

func (d *nativeDriver) DestroySampler(sampler vk.Sampler) {
	_ = d.locks.SafeCall(SamplerManagement, func() error {
		vk.DestroySampler(d.context.Device, sampler, d.context.Allocator)
		return nil
	})
}

func (d *nativeDriver) CreateDescriptorSetLayout(info *vk.DescriptorSetLayoutCreateInfo) (vk.DescriptorSetLayout, error) {
	var layout vk.DescriptorSetLayout
	err := d.locks.SafeCall(PipelineManagement, func() error {
		return resultError("vkCreateDescriptorSetLayout", vk.CreateDescriptorSetLayout(d.context.Device, info, d.context.Allocator, &layout))
	})
	return layout, err
}

func (d *nativeDriver) DestroyDescriptorSetLayout(layout vk.DescriptorSetLayout) {
	_ = d.locks.SafeCall(PipelineManagement, func() error {
		vk.DestroyDescriptorSetLayout(d.context.Device, layout, d.context.Allocator)
		return nil
	})
}

func (d *nativeDriver) CreatePipelineLayout(info *vk.PipelineLayoutCreateInfo) (vk.PipelineLayout, error) {
	var layout vk.PipelineLayout
	err := d.locks.SafeCall(PipelineManagement, func() error {
		return resultError("vkCreatePipelineLayout", vk.CreatePipelineLayout(d.context.Device, info, d.context.Allocator, &layout))
	})
	return layout, err
}

func (d *nativeDriver) DestroyPipelineLayout(layout vk.PipelineLayout) {
	_ = d.locks.SafeCall(PipelineManagement, func() error {
		vk.DestroyPipelineLayout(d.context.Device, layout, d.context.Allocator)
		return nil
	})
}

func (d *nativeDriver) CreateShaderModule(info *vk.ShaderModuleCreateInfo) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	err := d.locks.SafeCall(ShaderManagement, func() error {
		return resultError("vkCreateShaderModule", vk.CreateShaderModule(d.context.Device, info, d.context.Allocator, &module))
	})
	return module, err
}

func (d *nativeDriver) DestroyShaderModule(module vk.ShaderModule) {
	_ = d.locks.SafeCall(ShaderManagement, func() error {
		vk.DestroyShaderModule(d.context.Device, module, d.context.Allocator)
		return nil
	})
}

func resultError(op string, result vk.Result) error {
	if VulkanResultIsSuccess(result) {
		return nil
	}
	return fmt.Errorf("%s failed with %s", op, VulkanResultString(result, true))
}
