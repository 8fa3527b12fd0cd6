package vulkan

import (
	"fmt"

	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief A pipeline layout backed by native descriptor set layouts.
 * Set 0 holds the heap bindings, set 1 the dynamic bindings followed by the
 * static samplers as immutable samplers. Uniforms are packed into a single
 * push-constant range.
 */
type VulkanPipelineLayout struct {
	driver driver
	name   string

	heapBindings     []metadata.BindingDescriptor
	bindings         []metadata.BindingDescriptor
	uniforms         []metadata.UniformDescriptor
	hasNamedBindings bool

	/** @brief Indices of dynamic bindings without a valid descriptor type. */
	skipped []int

	/** @brief Immutable samplers, owned by the layout. */
	staticSamplers []vk.Sampler
	setLayouts     []vk.DescriptorSetLayout
	pushConstants  []vk.PushConstantRange
	handle         vk.PipelineLayout
	hasHandle      bool
	released       bool
}

// pushConstantSize returns the byte size of the push-constant block holding
// all uniforms, 4-byte aligned.
func pushConstantSize(uniforms []metadata.UniformDescriptor) uint32 {
	var size uint32
	for _, u := range uniforms {
		size += math.AlignUp(u.Size(), 4)
	}
	return size
}

func NewVulkanPipelineLayout(d driver, limits *vk.PhysicalDeviceLimits, desc *metadata.PipelineLayoutDescriptor) (*VulkanPipelineLayout, error) {
	l := &VulkanPipelineLayout{
		driver:           d,
		name:             desc.Name,
		heapBindings:     append([]metadata.BindingDescriptor(nil), desc.HeapBindings...),
		bindings:         append([]metadata.BindingDescriptor(nil), desc.Bindings...),
		uniforms:         append([]metadata.UniformDescriptor(nil), desc.Uniforms...),
		hasNamedBindings: desc.HasNamedBindings(),
	}

	if err := l.createStaticSamplers(desc.StaticSamplers, limits.MaxSamplerAnisotropy); err != nil {
		l.Release()
		return nil, l.fail(err)
	}
	if err := l.createSetLayouts(desc.StaticSamplers); err != nil {
		l.Release()
		return nil, l.fail(err)
	}

	if size := pushConstantSize(l.uniforms); size > 0 {
		if size > limits.MaxPushConstantsSize {
			l.Release()
			return nil, l.fail(fmt.Errorf("uniforms need %d bytes of push constants, the device allows %d", size, limits.MaxPushConstantsSize))
		}
		l.pushConstants = []vk.PushConstantRange{{
			StageFlags: toVkStageFlags(metadata.StageAll),
			Offset:     0,
			Size:       size,
		}}
	}

	createInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(l.setLayouts)),
		PSetLayouts:            l.setLayouts,
		PushConstantRangeCount: uint32(len(l.pushConstants)),
		PPushConstantRanges:    l.pushConstants,
	}
	handle, err := d.CreatePipelineLayout(&createInfo)
	if err != nil {
		l.Release()
		return nil, l.fail(err)
	}
	l.handle = handle
	l.hasHandle = true

	core.LogDebug("pipeline layout `%s` created with %d descriptor set(s)", l.name, len(l.setLayouts))
	return l, nil
}

func (l *VulkanPipelineLayout) fail(err error) error {
	err = fmt.Errorf("vulkan: pipeline layout `%s`: %w", l.name, err)
	core.LogError("%s", err.Error())
	return err
}

func (l *VulkanPipelineLayout) createStaticSamplers(descs []metadata.StaticSamplerDescriptor, maxAnisotropy float32) error {
	for i := range descs {
		info := samplerCreateInfo(&descs[i].Sampler, maxAnisotropy)
		sampler, err := l.driver.CreateSampler(&info)
		if err != nil {
			return err
		}
		l.staticSamplers = append(l.staticSamplers, sampler)
	}
	return nil
}

func (l *VulkanPipelineLayout) createSetLayouts(staticSamplers []metadata.StaticSamplerDescriptor) error {
	heap, skippedHeap := buildSetLayoutBindings(l.heapBindings)
	for _, i := range skippedHeap {
		core.LogWarn("pipeline layout `%s`: heap binding %d (%s) has no descriptor type", l.name, i, l.heapBindings[i].Name)
	}

	dynamic, skipped := buildSetLayoutBindings(l.bindings)
	for _, i := range skipped {
		core.LogDebug("pipeline layout `%s`: binding %d (%s) has no descriptor type", l.name, i, l.bindings[i].Name)
	}
	l.skipped = skipped
	dynamic = append(dynamic, buildStaticSamplerBindings(staticSamplers, l.staticSamplers)...)

	sets := [][]vk.DescriptorSetLayoutBinding{heap}
	if len(dynamic) > 0 {
		sets = append(sets, dynamic)
	} else if len(heap) == 0 {
		return nil
	}

	for set, bindings := range sets {
		if slot, ok := duplicateBinding(bindings); ok {
			return fmt.Errorf("binding %d is used twice in descriptor set %d", slot, set)
		}
	}
	for _, bindings := range sets {
		info := vk.DescriptorSetLayoutCreateInfo{
			SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
			BindingCount: uint32(len(bindings)),
			PBindings:    bindings,
		}
		layout, err := l.driver.CreateDescriptorSetLayout(&info)
		if err != nil {
			return err
		}
		l.setLayouts = append(l.setLayouts, layout)
	}
	return nil
}

func (l *VulkanPipelineLayout) SetName(name string) {
	l.name = name
}

func (l *VulkanPipelineLayout) Name() string {
	return l.name
}

func (l *VulkanPipelineLayout) NumHeapBindings() uint32 {
	return uint32(len(l.heapBindings))
}

func (l *VulkanPipelineLayout) NumBindings() uint32 {
	return uint32(len(l.bindings))
}

func (l *VulkanPipelineLayout) NumStaticSamplers() uint32 {
	return uint32(len(l.staticSamplers))
}

func (l *VulkanPipelineLayout) NumUniforms() uint32 {
	return uint32(len(l.uniforms))
}

func (l *VulkanPipelineLayout) HasNamedBindings() bool {
	return l.hasNamedBindings
}

func (l *VulkanPipelineLayout) Handle() vk.PipelineLayout {
	return l.handle
}

func (l *VulkanPipelineLayout) SetLayouts() []vk.DescriptorSetLayout {
	return l.setLayouts
}

func (l *VulkanPipelineLayout) PushConstantRanges() []vk.PushConstantRange {
	return l.pushConstants
}

// SkippedBindings returns the indices of dynamic bindings left out of the
// native set layout.
func (l *VulkanPipelineLayout) SkippedBindings() []int {
	return l.skipped
}

// Release destroys the native layout, its set layouts and the static
// samplers. It is safe to call more than once.
func (l *VulkanPipelineLayout) Release() {
	if l.released {
		return
	}
	l.released = true

	if l.hasHandle {
		l.driver.DestroyPipelineLayout(l.handle)
	}
	for _, layout := range l.setLayouts {
		l.driver.DestroyDescriptorSetLayout(layout)
	}
	for _, sampler := range l.staticSamplers {
		l.driver.DestroySampler(sampler)
	}
	l.hasHandle = false
	l.setLayouts = nil
}
