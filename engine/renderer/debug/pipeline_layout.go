package debug

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func bindingLabel(kind string, index int, name string) string {
	if name == "" {
		return fmt.Sprintf("%s %d", kind, index)
	}
	return fmt.Sprintf("%s %d (%s)", kind, index, name)
}

/** @brief Wraps a back-end pipeline layout and keeps a copy of its descriptor. */
type DbgPipelineLayout struct {
	instance renderer.PipelineLayout
	desc     metadata.PipelineLayoutDescriptor
	label    string
	id       uint32
}

func NewDbgPipelineLayout(instance renderer.PipelineLayout, desc *metadata.PipelineLayoutDescriptor) *DbgPipelineLayout {
	return &DbgPipelineLayout{
		instance: instance,
		desc:     copyLayoutDescriptor(desc),
		label:    desc.Name,
	}
}

func copyLayoutDescriptor(desc *metadata.PipelineLayoutDescriptor) metadata.PipelineLayoutDescriptor {
	return metadata.PipelineLayoutDescriptor{
		Name:           desc.Name,
		HeapBindings:   append([]metadata.BindingDescriptor(nil), desc.HeapBindings...),
		Bindings:       append([]metadata.BindingDescriptor(nil), desc.Bindings...),
		StaticSamplers: append([]metadata.StaticSamplerDescriptor(nil), desc.StaticSamplers...),
		Uniforms:       append([]metadata.UniformDescriptor(nil), desc.Uniforms...),
	}
}

func (l *DbgPipelineLayout) Instance() renderer.PipelineLayout {
	return l.instance
}

func (l *DbgPipelineLayout) Descriptor() *metadata.PipelineLayoutDescriptor {
	return &l.desc
}

func (l *DbgPipelineLayout) SetName(name string) {
	l.label = name
	l.instance.SetName(name)
}

func (l *DbgPipelineLayout) Name() string {
	return l.label
}

func (l *DbgPipelineLayout) NumHeapBindings() uint32 {
	return l.instance.NumHeapBindings()
}

func (l *DbgPipelineLayout) NumBindings() uint32 {
	return l.instance.NumBindings()
}

func (l *DbgPipelineLayout) NumStaticSamplers() uint32 {
	return l.instance.NumStaticSamplers()
}

func (l *DbgPipelineLayout) NumUniforms() uint32 {
	return l.instance.NumUniforms()
}

func (l *DbgPipelineLayout) HasNamedBindings() bool {
	return l.instance.HasNamedBindings()
}

// ValidatePipelineLayout reports invalid bindings, slots used twice and
// unnamed bindings in a layout that is resolved by name. With per-category
// slots a slot may be reused by another category, otherwise every binding of
// a set needs its own slot. Static samplers share the set of the dynamic
// bindings.
func ValidatePipelineLayout(d *Debugger, source string, desc *metadata.PipelineLayoutDescriptor, features *metadata.RenderingFeatures) {
	type slotKey struct {
		heap     bool
		category metadata.BindingCategory
		slot     uint32
	}
	used := make(map[slotKey]string)
	claim := func(heap bool, category metadata.BindingCategory, slot uint32, label string) {
		key := slotKey{heap: heap, slot: slot}
		if features.HasPerCategorySlots {
			key.category = category
		}
		if other, ok := used[key]; ok {
			if features.HasPerCategorySlots {
				d.Errorf(source, "%s uses %s slot %d, already taken by %s", label, category, slot, other)
			} else {
				d.Errorf(source, "%s uses slot %d, already taken by %s", label, slot, other)
			}
			return
		}
		used[key] = label
	}

	check := func(bindings []metadata.BindingDescriptor, kind string, heap bool) {
		for i := range bindings {
			b := &bindings[i]
			label := bindingLabel(kind, i, b.Name)
			category := metadata.ClassifyBinding(b)
			if category == metadata.BindingCategoryInvalid {
				d.Errorf(source, "%s has an invalid combination of resource type %s and bind flags 0x%X, it will never be bound", label, b.Type, uint32(b.BindFlags))
				continue
			}
			claim(heap, category, b.Slot, label)
		}
	}
	check(desc.HeapBindings, "heap binding", true)
	check(desc.Bindings, "binding", false)
	for i := range desc.StaticSamplers {
		s := &desc.StaticSamplers[i]
		claim(false, metadata.BindingCategorySampler, s.Slot, bindingLabel("static sampler", i, s.Name))
	}

	if !desc.HasNamedBindings() {
		return
	}
	var unnamed []string
	for i, b := range desc.Bindings {
		if b.Name == "" {
			unnamed = append(unnamed, bindingLabel("binding", i, ""))
		}
	}
	for i, s := range desc.StaticSamplers {
		if s.Name == "" {
			unnamed = append(unnamed, bindingLabel("static sampler", i, ""))
		}
	}
	for _, label := range unnamed {
		if features.ResolvesBindingsByName {
			d.Errorf(source, "%s has no name, slots of this layout are resolved by name", label)
		} else {
			d.Warnf(source, "%s has no name while other bindings are named", label)
		}
	}
}
