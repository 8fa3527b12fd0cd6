package opengl

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const BackendName = "opengl"

func init() {
	renderer.Register(BackendName, func(cfg *renderer.RenderSystemConfig) (renderer.RenderSystem, error) {
		f, ok := cfg.NativeContext.(Functions)
		if !ok || f == nil {
			return nil, fmt.Errorf("%w: opengl needs an opengl.Functions, got %T", core.ErrNativeContextMissing, cfg.NativeContext)
		}
		return NewGLRenderSystem(f, cfg)
	})
}

// GLRenderTarget only tracks attachment state, framebuffer objects belong to the embedder.
type GLRenderTarget struct {
	*renderer.RenderTargetInfo
}

type GLRenderSystem struct {
	funcs   Functions
	caps    *Capabilities
	limits  metadata.RenderingLimits
	state   *StateManager
	objects map[renderer.RenderSystemChild]struct{}
}

func NewGLRenderSystem(f Functions, cfg *renderer.RenderSystemConfig) (*GLRenderSystem, error) {
	caps, err := NewCapabilities(f, cfg.NativeSamplers)
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}
	limits := caps.Limits
	renderer.ApplyLimitsOverride(&limits, cfg)

	rs := &GLRenderSystem{
		funcs:   f,
		caps:    caps,
		limits:  limits,
		state:   NewStateManager(f),
		objects: make(map[renderer.RenderSystemChild]struct{}),
	}
	strategy := "native"
	if !caps.NativeSamplers {
		strategy = "emulated"
	}
	core.LogInfo("%s context ready, %s samplers", caps.Version, strategy)
	return rs, nil
}

func (rs *GLRenderSystem) Name() string {
	return BackendName
}

func (rs *GLRenderSystem) Capabilities() *metadata.RenderingCapabilities {
	c := rs.caps.Rendering()
	c.Limits = rs.limits
	return c
}

func (rs *GLRenderSystem) Limits() metadata.RenderingLimits {
	return rs.limits
}

// GLCapabilities returns the capabilities queried from the context.
func (rs *GLRenderSystem) GLCapabilities() *Capabilities {
	return rs.caps
}

func (rs *GLRenderSystem) StateManager() *StateManager {
	return rs.state
}

func (rs *GLRenderSystem) CreateShader(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	s, err := NewGLShader(rs.funcs, desc)
	if err != nil {
		return nil, err
	}
	rs.objects[s] = struct{}{}
	return s, nil
}

func (rs *GLRenderSystem) CreatePipelineLayout(desc *metadata.PipelineLayoutDescriptor) (renderer.PipelineLayout, error) {
	l := NewGLPipelineLayout(rs.funcs, rs.caps, desc)
	rs.objects[l] = struct{}{}
	return l, nil
}

func (rs *GLRenderSystem) CreateRenderTarget(desc *metadata.RenderTargetDescriptor) (renderer.RenderTarget, error) {
	if n := renderer.NumActiveColorAttachments(desc); n > rs.limits.MaxColorAttachments {
		err := fmt.Errorf("opengl: render target `%s` has %d color attachments, the context supports %d", desc.Name, n, rs.limits.MaxColorAttachments)
		core.LogError("%s", err.Error())
		return nil, err
	}
	rt := &GLRenderTarget{RenderTargetInfo: renderer.NewRenderTargetInfo(&rs.limits, desc)}
	rs.objects[rt] = struct{}{}
	return rt, nil
}

func (rs *GLRenderSystem) Release(obj renderer.RenderSystemChild) error {
	if _, ok := rs.objects[obj]; !ok {
		return fmt.Errorf("%w: %T `%s`", core.ErrObjectNotOwned, obj, obj.Name())
	}
	delete(rs.objects, obj)

	switch o := obj.(type) {
	case *GLShader:
		o.Release()
	case *GLPipelineLayout:
		rs.state.ForgetLayout(o)
		o.Release()
	}
	return nil
}
