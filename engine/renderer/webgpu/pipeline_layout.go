package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const (
	HeapBindGroup    = 0
	DynamicBindGroup = 1
)

/**
 * @brief A pipeline layout expressed as WebGPU bind group layouts.
 * Group 0 holds the heap bindings, group 1 the dynamic bindings followed by
 * the static samplers. Uniforms become a single push-constant range, which
 * needs the push-constants feature on the device.
 */
type WebGPUPipelineLayout struct {
	name string

	heapBindings     []metadata.BindingDescriptor
	bindings         []metadata.BindingDescriptor
	uniforms         []metadata.UniformDescriptor
	hasNamedBindings bool

	/** @brief One entry per dynamic binding, nil where the binding is invalid. */
	entries        []*gputypes.BindGroupLayoutEntry
	groups         []gputypes.BindGroupLayoutDescriptor
	staticSamplers []gputypes.SamplerDescriptor
	pushConstants  []gputypes.PushConstantRange
}

func NewWebGPUPipelineLayout(limits *gputypes.Limits, desc *metadata.PipelineLayoutDescriptor) (*WebGPUPipelineLayout, error) {
	l := &WebGPUPipelineLayout{
		name:             desc.Name,
		heapBindings:     append([]metadata.BindingDescriptor(nil), desc.HeapBindings...),
		bindings:         append([]metadata.BindingDescriptor(nil), desc.Bindings...),
		uniforms:         append([]metadata.UniformDescriptor(nil), desc.Uniforms...),
		hasNamedBindings: desc.HasNamedBindings(),
	}

	heap := gputypes.BindGroupLayoutDescriptor{Label: l.groupLabel("heap")}
	for i := range l.heapBindings {
		entry, ok := BindGroupLayoutEntryFor(&l.heapBindings[i])
		if !ok {
			core.LogWarn("pipeline layout `%s`: heap binding %d (%s) has no WebGPU binding type", l.name, i, l.heapBindings[i].Name)
			continue
		}
		heap.Entries = append(heap.Entries, entry)
	}

	dynamic := gputypes.BindGroupLayoutDescriptor{Label: l.groupLabel("dynamic")}
	l.entries = make([]*gputypes.BindGroupLayoutEntry, len(l.bindings))
	for i := range l.bindings {
		entry, ok := BindGroupLayoutEntryFor(&l.bindings[i])
		if !ok {
			core.LogDebug("pipeline layout `%s`: binding %d (%s) has no WebGPU binding type", l.name, i, l.bindings[i].Name)
			continue
		}
		l.entries[i] = &entry
		dynamic.Entries = append(dynamic.Entries, entry)
	}
	for i := range desc.StaticSamplers {
		s := &desc.StaticSamplers[i]
		l.staticSamplers = append(l.staticSamplers, toSamplerDescriptor(s.Name, &s.Sampler))
		dynamic.Entries = append(dynamic.Entries, staticSamplerEntry(s))
	}

	for group, g := range []gputypes.BindGroupLayoutDescriptor{heap, dynamic} {
		if slot, ok := duplicateBinding(g.Entries); ok {
			return nil, l.fail(fmt.Errorf("binding %d is used twice in bind group %d", slot, group))
		}
	}

	if len(dynamic.Entries) > 0 {
		l.groups = []gputypes.BindGroupLayoutDescriptor{heap, dynamic}
	} else if len(heap.Entries) > 0 {
		l.groups = []gputypes.BindGroupLayoutDescriptor{heap}
	}
	if limits != nil && uint32(len(l.groups)) > limits.MaxBindGroups {
		return nil, l.fail(fmt.Errorf("needs %d bind groups, the device allows %d", len(l.groups), limits.MaxBindGroups))
	}

	if size := uniformBlockSize(l.uniforms); size > 0 {
		if limits != nil && size > limits.MaxPushConstantSize {
			return nil, l.fail(fmt.Errorf("uniforms need %d bytes of push constants, the device allows %d", size, limits.MaxPushConstantSize))
		}
		l.pushConstants = []gputypes.PushConstantRange{{
			Stages: gputypes.ShaderStagesAll,
			Start:  0,
			End:    size,
		}}
	}
	return l, nil
}

func (l *WebGPUPipelineLayout) groupLabel(group string) string {
	if l.name == "" {
		return ""
	}
	return l.name + "." + group
}

func (l *WebGPUPipelineLayout) fail(err error) error {
	err = fmt.Errorf("webgpu: pipeline layout `%s`: %w", l.name, err)
	core.LogError("%s", err.Error())
	return err
}

func uniformBlockSize(uniforms []metadata.UniformDescriptor) uint32 {
	var size uint32
	for _, u := range uniforms {
		size += u.Size()
	}
	return math.AlignUp(size, 4)
}

func (l *WebGPUPipelineLayout) SetName(name string) {
	l.name = name
}

func (l *WebGPUPipelineLayout) Name() string {
	return l.name
}

func (l *WebGPUPipelineLayout) NumHeapBindings() uint32 {
	return uint32(len(l.heapBindings))
}

func (l *WebGPUPipelineLayout) NumBindings() uint32 {
	return uint32(len(l.bindings))
}

func (l *WebGPUPipelineLayout) NumStaticSamplers() uint32 {
	return uint32(len(l.staticSamplers))
}

func (l *WebGPUPipelineLayout) NumUniforms() uint32 {
	return uint32(len(l.uniforms))
}

func (l *WebGPUPipelineLayout) HasNamedBindings() bool {
	return l.hasNamedBindings
}

// Entries returns the layout entry of each dynamic binding in descriptor
// order. Invalid bindings keep their index with a nil entry.
func (l *WebGPUPipelineLayout) Entries() []*gputypes.BindGroupLayoutEntry {
	return l.entries
}

// BindGroupLayouts returns the descriptors of the bind groups to create,
// indexed by group number. Empty trailing groups are omitted.
func (l *WebGPUPipelineLayout) BindGroupLayouts() []gputypes.BindGroupLayoutDescriptor {
	return l.groups
}

// StaticSamplers returns the samplers the embedder creates once and binds in
// the dynamic group at the slots of the static sampler entries.
func (l *WebGPUPipelineLayout) StaticSamplers() []gputypes.SamplerDescriptor {
	return l.staticSamplers
}

func (l *WebGPUPipelineLayout) PushConstantRanges() []gputypes.PushConstantRange {
	return l.pushConstants
}
