package debug

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief Decorates a render system with validation. Objects it returns are
 * wrapped in Dbg* decorators and must be released through it.
 */
type DbgRenderSystem struct {
	instance renderer.RenderSystem
	debugger *Debugger
	objects  map[renderer.RenderSystemChild]renderer.RenderSystemChild
}

func NewDbgRenderSystem(instance renderer.RenderSystem, debugger *Debugger) *DbgRenderSystem {
	if debugger == nil {
		debugger = NewDebugger()
	}
	return &DbgRenderSystem{
		instance: instance,
		debugger: debugger,
		objects:  make(map[renderer.RenderSystemChild]renderer.RenderSystemChild),
	}
}

func (rs *DbgRenderSystem) Instance() renderer.RenderSystem {
	return rs.instance
}

func (rs *DbgRenderSystem) Debugger() *Debugger {
	return rs.debugger
}

func (rs *DbgRenderSystem) Name() string {
	return rs.instance.Name()
}

func (rs *DbgRenderSystem) Capabilities() *metadata.RenderingCapabilities {
	return rs.instance.Capabilities()
}

func (rs *DbgRenderSystem) Limits() metadata.RenderingLimits {
	return rs.instance.Limits()
}

func labelOrNew(name, kind string) string {
	if name != "" {
		return name
	}
	return core.NewObjectLabel(kind)
}

func source(kind, label string) string {
	return fmt.Sprintf("%s `%s`", kind, label)
}

func (rs *DbgRenderSystem) CreateShader(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	label := labelOrNew(desc.Name, "shader")
	src := source("shader", label)
	if desc.Type == metadata.ShaderTypeUndefined {
		rs.debugger.Errorf(src, "shader type is undefined")
	}
	if len(desc.Source) == 0 {
		rs.debugger.Errorf(src, "shader source is empty")
	}

	instance, err := rs.instance.CreateShader(desc)
	if err != nil {
		rs.debugger.Errorf(src, "creation failed: %v", err)
		return nil, err
	}

	s := NewDbgShader(instance, desc)
	s.label = label
	s.id = core.IdentifierAquireNewID(s)

	switch report := instance.Report(); {
	case report == nil:
		rs.debugger.Warnf(src, "back-end returned no report, compile status is unknown")
	case report.HasErrors():
		rs.debugger.Errorf(src, "compilation failed: %s", strings.TrimSpace(report.Text()))
	case report.Text() != "":
		rs.debugger.Infof(src, "%s", strings.TrimSpace(report.Text()))
	}

	rs.objects[s] = instance
	return s, nil
}

func (rs *DbgRenderSystem) CreatePipelineLayout(desc *metadata.PipelineLayoutDescriptor) (renderer.PipelineLayout, error) {
	label := labelOrNew(desc.Name, "layout")
	src := source("pipeline layout", label)
	ValidatePipelineLayout(rs.debugger, src, desc, &rs.instance.Capabilities().Features)

	instance, err := rs.instance.CreatePipelineLayout(desc)
	if err != nil {
		rs.debugger.Errorf(src, "creation failed: %v", err)
		return nil, err
	}

	l := NewDbgPipelineLayout(instance, desc)
	l.label = label
	l.id = core.IdentifierAquireNewID(l)
	rs.objects[l] = instance
	return l, nil
}

func (rs *DbgRenderSystem) CreateRenderTarget(desc *metadata.RenderTargetDescriptor) (renderer.RenderTarget, error) {
	label := labelOrNew(desc.Name, "render-target")
	src := source("render target", label)
	limits := rs.instance.Limits()
	ValidateRenderTarget(rs.debugger, src, &limits, desc)

	instance, err := rs.instance.CreateRenderTarget(desc)
	if err != nil {
		rs.debugger.Errorf(src, "creation failed: %v", err)
		return nil, err
	}

	rt := NewDbgRenderTarget(instance, desc)
	rt.label = label
	rt.id = core.IdentifierAquireNewID(rt)
	rs.objects[rt] = instance
	return rt, nil
}

// Release unwraps a decorated object and releases the back-end instance.
func (rs *DbgRenderSystem) Release(obj renderer.RenderSystemChild) error {
	instance, ok := rs.objects[obj]
	if !ok {
		err := fmt.Errorf("%w: %T `%s`", core.ErrObjectNotOwned, obj, obj.Name())
		rs.debugger.Errorf(source("object", obj.Name()), "released by a render system that did not create it")
		return err
	}
	delete(rs.objects, obj)

	switch o := obj.(type) {
	case *DbgShader:
		_ = core.IdentifierReleaseID(o.id)
	case *DbgPipelineLayout:
		_ = core.IdentifierReleaseID(o.id)
	case *DbgRenderTarget:
		_ = core.IdentifierReleaseID(o.id)
	}
	return rs.instance.Release(instance)
}

// Unwrap returns the back-end instance behind a decorated object, or obj
// itself when it is not decorated.
func Unwrap(obj renderer.RenderSystemChild) renderer.RenderSystemChild {
	switch o := obj.(type) {
	case *DbgShader:
		return o.instance
	case *DbgPipelineLayout:
		return o.instance
	case *DbgRenderTarget:
		return o.instance
	default:
		return obj
	}
}
