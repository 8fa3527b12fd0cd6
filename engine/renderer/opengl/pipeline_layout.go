package opengl

import (
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// GLPipelineLayout is built once from a descriptor and immutable afterwards.
// Bindings are parallel to the dynamic bindings of the descriptor, static
// sampler slots are parallel to its static samplers.
type GLPipelineLayout struct {
	name             string
	heapBindings     []metadata.BindingDescriptor
	uniforms         []metadata.UniformDescriptor
	hasNamedBindings bool

	bindings []ResourceBinding
	// names of dynamic bindings followed by names of static samplers
	resourceNames []string
	resourceIndex map[string]int

	staticSamplerSlots []uint32
	staticSamplers     staticSamplerSet
}

func NewGLPipelineLayout(f Functions, caps *Capabilities, desc *metadata.PipelineLayoutDescriptor) *GLPipelineLayout {
	l := &GLPipelineLayout{
		name:             desc.Name,
		heapBindings:     append([]metadata.BindingDescriptor(nil), desc.HeapBindings...),
		uniforms:         append([]metadata.UniformDescriptor(nil), desc.Uniforms...),
		hasNamedBindings: desc.HasNamedBindings(),
		resourceNames:    make([]string, 0, len(desc.Bindings)+len(desc.StaticSamplers)),
		resourceIndex:    make(map[string]int),
	}
	l.buildDynamicResourceBindings(desc.Bindings, caps.NativeSamplers)
	l.buildStaticSamplers(f, desc.StaticSamplers, caps)
	return l
}

func (l *GLPipelineLayout) buildDynamicResourceBindings(bindings []metadata.BindingDescriptor, nativeSamplers bool) {
	l.bindings = make([]ResourceBinding, 0, len(bindings))
	for i := range bindings {
		rt := ResourceTypeFor(&bindings[i], nativeSamplers)
		if rt == ResourceTypeInvalid {
			core.LogDebug("pipeline layout `%s`: binding %d (%s) has no GL binding category", l.name, i, bindings[i].Name)
		}
		l.bindings = append(l.bindings, ResourceBinding{Type: rt, Slot: bindings[i].Slot})
		l.addResourceName(bindings[i].Name)
	}
}

func (l *GLPipelineLayout) buildStaticSamplers(f Functions, samplers []metadata.StaticSamplerDescriptor, caps *Capabilities) {
	l.staticSamplerSlots = make([]uint32, 0, len(samplers))
	l.staticSamplers = newStaticSamplerSet(f, caps, samplers)
	for _, s := range samplers {
		l.staticSamplerSlots = append(l.staticSamplerSlots, s.Slot)
		l.addResourceName(s.Name)
	}
}

func (l *GLPipelineLayout) addResourceName(name string) {
	if name != "" {
		if _, ok := l.resourceIndex[name]; !ok {
			l.resourceIndex[name] = len(l.resourceNames)
		}
	}
	l.resourceNames = append(l.resourceNames, name)
}

func (l *GLPipelineLayout) SetName(name string) {
	l.name = name
}

func (l *GLPipelineLayout) Name() string {
	return l.name
}

func (l *GLPipelineLayout) NumHeapBindings() uint32 {
	return uint32(len(l.heapBindings))
}

func (l *GLPipelineLayout) NumBindings() uint32 {
	return uint32(len(l.bindings))
}

func (l *GLPipelineLayout) NumStaticSamplers() uint32 {
	return uint32(len(l.staticSamplerSlots))
}

func (l *GLPipelineLayout) NumUniforms() uint32 {
	return uint32(len(l.uniforms))
}

func (l *GLPipelineLayout) HasNamedBindings() bool {
	return l.hasNamedBindings
}

func (l *GLPipelineLayout) HeapBindings() []metadata.BindingDescriptor {
	return l.heapBindings
}

func (l *GLPipelineLayout) Uniforms() []metadata.UniformDescriptor {
	return l.uniforms
}

func (l *GLPipelineLayout) Bindings() []ResourceBinding {
	return l.bindings
}

func (l *GLPipelineLayout) ResourceNames() []string {
	return l.resourceNames
}

func (l *GLPipelineLayout) StaticSamplerSlots() []uint32 {
	return l.staticSamplerSlots
}

// UsesNativeSamplers reports the static sampler strategy selected for this layout.
func (l *GLPipelineLayout) UsesNativeSamplers() bool {
	_, ok := l.staticSamplers.(*nativeStaticSamplers)
	return ok
}

// FindResource returns the index of the named resource in ResourceNames.
// Indices below NumBindings refer to dynamic bindings, the others to static samplers.
func (l *GLPipelineLayout) FindResource(name string) (int, bool) {
	i, ok := l.resourceIndex[name]
	return i, ok
}

// BindStaticSamplers binds all static samplers with the strategy chosen at creation.
func (l *GLPipelineLayout) BindStaticSamplers(sm *StateManager) {
	if len(l.staticSamplerSlots) > 0 {
		l.staticSamplers.Bind(sm, l.staticSamplerSlots)
	}
}

// BindResourceSlots assigns the binding slots of all named resources to the
// matching uniform blocks, storage blocks and sampler uniforms of the program.
// The StateManager skips programs that already carry this layout's slots.
func (l *GLPipelineLayout) BindResourceSlots(sm *StateManager, program Object) {
	f := sm.funcs
	sm.UseProgram(program)
	for i, name := range l.resourceNames {
		if name == "" {
			continue
		}
		if i >= len(l.bindings) {
			l.bindUniformSlot(f, program, name, l.staticSamplerSlots[i-len(l.bindings)])
			continue
		}
		binding := l.bindings[i]
		switch binding.Type {
		case ResourceTypeUBO:
			if idx := f.GetUniformBlockIndex(program, name); idx != INVALID_INDEX {
				f.UniformBlockBinding(program, idx, binding.Slot)
			}
		case ResourceTypeSSBO:
			if idx := f.GetProgramResourceIndex(program, SHADER_STORAGE_BLOCK, name); idx != INVALID_INDEX {
				f.ShaderStorageBlockBinding(program, idx, binding.Slot)
			}
		case ResourceTypeTexture, ResourceTypeImage, ResourceTypeSampler, ResourceTypeGL2XSampler:
			l.bindUniformSlot(f, program, name, binding.Slot)
		}
	}
}

func (l *GLPipelineLayout) bindUniformSlot(f Functions, program Object, name string, slot uint32) {
	if loc := f.GetUniformLocation(program, name); loc >= 0 {
		f.Uniform1i(loc, int(slot))
	}
}

// Release destroys the static samplers owned by the layout.
func (l *GLPipelineLayout) Release() {
	l.staticSamplers.Release()
}
