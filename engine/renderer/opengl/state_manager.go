package opengl

// Resource is a native object bound through a pipeline layout binding.
type Resource struct {
	ID Object
	// Target is the texture target of textures, TEXTURE_2D if zero.
	Target Enum
	// Format is the internal format of images, RGBA8 if zero.
	Format Enum
	// Sampler is used instead of ID for emulated sampler bindings.
	Sampler *GL2XSampler
}

type boundTexture struct {
	target Enum
	id     Object
}

type bufferKey struct {
	target Enum
	slot   uint32
}

// glstate mirrors the bindings of the native context so redundant calls can be skipped.
type glstate struct {
	program    Object
	activeUnit uint32
	textures   map[uint32]boundTexture
	samplers   map[uint32]Object
	images     map[uint32]Object
	buffers    map[bufferKey]Object
	// emulated samplers per texture unit
	gl2x map[uint32]*GL2XSampler
	// emulated sampler whose state each texture currently holds
	gl2xTextures map[boundTexture]*GL2XSampler
	// layout whose named slots were last assigned to each program
	programLayouts map[Object]*GLPipelineLayout
}

func newGLState() glstate {
	return glstate{
		activeUnit:     ^uint32(0),
		textures:       make(map[uint32]boundTexture),
		samplers:       make(map[uint32]Object),
		images:         make(map[uint32]Object),
		buffers:        make(map[bufferKey]Object),
		gl2x:           make(map[uint32]*GL2XSampler),
		gl2xTextures:   make(map[boundTexture]*GL2XSampler),
		programLayouts: make(map[Object]*GLPipelineLayout),
	}
}

// StateManager applies pipeline layouts and resources to the native context,
// issuing only the calls that change the current binding state.
type StateManager struct {
	funcs Functions
	state glstate
}

func NewStateManager(f Functions) *StateManager {
	return &StateManager{funcs: f, state: newGLState()}
}

// Reset forgets the cached state, for example after the context was used by
// code outside this back-end.
func (sm *StateManager) Reset() {
	sm.state = newGLState()
}

func (sm *StateManager) UseProgram(p Object) {
	if sm.state.program != p {
		sm.funcs.UseProgram(p)
		sm.state.program = p
	}
}

func (sm *StateManager) activeTexture(unit uint32) {
	if sm.state.activeUnit != unit {
		sm.funcs.ActiveTexture(TEXTURE0 + Enum(unit))
		sm.state.activeUnit = unit
	}
}

func (sm *StateManager) BindTexture(slot uint32, target Enum, id Object) {
	if target == 0 {
		target = TEXTURE_2D
	}
	tex := boundTexture{target: target, id: id}
	if sm.state.textures[slot] != tex {
		sm.activeTexture(slot)
		sm.funcs.BindTexture(target, id)
		sm.state.textures[slot] = tex
	}
	sm.applyGL2XSampler(slot)
}

func (sm *StateManager) BindSampler(slot uint32, id Object) {
	if cur, ok := sm.state.samplers[slot]; !ok || cur != id {
		sm.funcs.BindSampler(slot, id)
		sm.state.samplers[slot] = id
	}
}

// BindGL2XSampler records an emulated sampler for the slot and applies it to
// the texture bound there, now or when a texture is bound later. The state is
// texture state, so it is written again whenever the texture last received
// another sampler.
func (sm *StateManager) BindGL2XSampler(slot uint32, sampler *GL2XSampler) {
	sm.state.gl2x[slot] = sampler
	sm.applyGL2XSampler(slot)
}

func (sm *StateManager) applyGL2XSampler(slot uint32) {
	sampler := sm.state.gl2x[slot]
	tex, ok := sm.state.textures[slot]
	if sampler == nil || !ok || tex.id == 0 {
		return
	}
	if sm.state.gl2xTextures[tex] == sampler {
		return
	}
	sm.activeTexture(slot)
	sampler.Apply(sm.funcs, tex.target)
	sm.state.gl2xTextures[tex] = sampler
}

// ForgetTexture drops the cached state of a deleted texture so a new texture
// reusing its name is treated as unbound.
func (sm *StateManager) ForgetTexture(id Object) {
	for slot, tex := range sm.state.textures {
		if tex.id == id {
			delete(sm.state.textures, slot)
		}
	}
	for tex := range sm.state.gl2xTextures {
		if tex.id == id {
			delete(sm.state.gl2xTextures, tex)
		}
	}
}

func (sm *StateManager) BindBufferBase(target Enum, slot uint32, id Object) {
	key := bufferKey{target: target, slot: slot}
	if cur, ok := sm.state.buffers[key]; !ok || cur != id {
		sm.funcs.BindBufferBase(target, slot, id)
		sm.state.buffers[key] = id
	}
}

func (sm *StateManager) BindImageTexture(slot uint32, id Object, format Enum) {
	if format == 0 {
		format = RGBA8
	}
	if cur, ok := sm.state.images[slot]; !ok || cur != id {
		sm.funcs.BindImageTexture(slot, id, 0, false, 0, READ_WRITE, format)
		sm.state.images[slot] = id
	}
}

// BindResource binds a resource at a resolved binding. Invalid bindings are
// skipped and reported as not bound.
func (sm *StateManager) BindResource(binding ResourceBinding, res Resource) bool {
	switch binding.Type {
	case ResourceTypeUBO:
		sm.BindBufferBase(UNIFORM_BUFFER, binding.Slot, res.ID)
	case ResourceTypeSSBO:
		sm.BindBufferBase(SHADER_STORAGE_BUFFER, binding.Slot, res.ID)
	case ResourceTypeTexture:
		sm.BindTexture(binding.Slot, res.Target, res.ID)
	case ResourceTypeImage:
		sm.BindImageTexture(binding.Slot, res.ID, res.Format)
	case ResourceTypeSampler:
		sm.BindSampler(binding.Slot, res.ID)
	case ResourceTypeGL2XSampler:
		if res.Sampler == nil {
			return false
		}
		sm.BindGL2XSampler(binding.Slot, res.Sampler)
	default:
		return false
	}
	return true
}

// BindPipelineLayout makes the layout current for the program: named bindings
// are assigned their slots and static samplers are bound.
func (sm *StateManager) BindPipelineLayout(layout *GLPipelineLayout, program Object) {
	if program != 0 && layout.HasNamedBindings() && sm.state.programLayouts[program] != layout {
		layout.BindResourceSlots(sm, program)
		sm.state.programLayouts[program] = layout
	}
	layout.BindStaticSamplers(sm)
}

// DeleteProgram deletes the program and forgets its slot assignments, GL
// may hand the same name to the next program.
func (sm *StateManager) DeleteProgram(program Object) {
	sm.funcs.DeleteProgram(program)
	delete(sm.state.programLayouts, program)
	if sm.state.program == program {
		sm.state.program = 0
	}
}

// ForgetLayout drops the slot assignments made by a released layout.
func (sm *StateManager) ForgetLayout(layout *GLPipelineLayout) {
	for program, l := range sm.state.programLayouts {
		if l == layout {
			delete(sm.state.programLayouts, program)
		}
	}
}
