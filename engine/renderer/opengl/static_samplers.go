package opengl

import (
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// staticSamplerSet owns the static samplers of one pipeline layout. The
// implementation is chosen once per layout from the context capabilities, so
// native and emulated samplers never end up in the same layout.
type staticSamplerSet interface {
	Len() int
	// Bind binds every sampler at the slot with the same index.
	Bind(sm *StateManager, slots []uint32)
	Release()
}

func newStaticSamplerSet(f Functions, caps *Capabilities, descs []metadata.StaticSamplerDescriptor) staticSamplerSet {
	if !caps.NativeSamplers {
		set := &legacyStaticSamplers{samplers: make([]*GL2XSampler, 0, len(descs))}
		for i := range descs {
			set.samplers = append(set.samplers, NewGL2XSampler(&descs[i].Sampler, caps.Version.ES))
		}
		return set
	}
	set := &nativeStaticSamplers{samplers: make([]*GLSampler, 0, len(descs))}
	for i := range descs {
		set.samplers = append(set.samplers, NewGLSampler(f, &descs[i].Sampler, caps.Version.ES))
	}
	return set
}

type nativeStaticSamplers struct {
	samplers []*GLSampler
}

func (s *nativeStaticSamplers) Len() int {
	return len(s.samplers)
}

func (s *nativeStaticSamplers) Bind(sm *StateManager, slots []uint32) {
	for i, slot := range slots {
		sm.BindSampler(slot, s.samplers[i].ID())
	}
}

func (s *nativeStaticSamplers) Release() {
	for _, sampler := range s.samplers {
		sampler.Release()
	}
	s.samplers = nil
}

type legacyStaticSamplers struct {
	samplers []*GL2XSampler
}

func (s *legacyStaticSamplers) Len() int {
	return len(s.samplers)
}

func (s *legacyStaticSamplers) Bind(sm *StateManager, slots []uint32) {
	for i, slot := range slots {
		sm.BindGL2XSampler(slot, s.samplers[i])
	}
}

// Release drops the emulated samplers, they hold no native objects.
func (s *legacyStaticSamplers) Release() {
	s.samplers = nil
}
