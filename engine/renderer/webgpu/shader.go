package webgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/wgsl"
)

// WGSLShader is a validated WGSL module with a selected entry point. The
// embedder creates the native module from ModuleDescriptor.
type WGSLShader struct {
	name       string
	shaderType metadata.ShaderType
	entryPoint string
	source     string
	module     *ir.Module
	report     *metadata.Report
}

func NewWGSLShader(desc *metadata.ShaderDescriptor) (*WGSLShader, error) {
	switch desc.Type {
	case metadata.ShaderTypeVertex, metadata.ShaderTypeFragment, metadata.ShaderTypeCompute:
	default:
		err := fmt.Errorf("webgpu: shader `%s` has stage %s, WebGPU supports vertex, fragment and compute", desc.Name, desc.Type)
		core.LogError("%s", err.Error())
		return nil, err
	}

	source, err := wgsl.Source(desc)
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}

	s := &WGSLShader{
		name:       desc.Name,
		shaderType: desc.Type,
		entryPoint: desc.EntryPoint,
		source:     source,
	}

	module, report := wgsl.Compile(source)
	s.report = report
	if report.HasErrors() {
		return s, nil
	}
	ep, ok := wgsl.FindEntryPoint(module, desc.Type, desc.EntryPoint)
	if !ok {
		s.report.Errorf("no %s entry point `%s` in shader `%s`", desc.Type, desc.EntryPoint, desc.Name)
		return s, nil
	}
	s.entryPoint = ep.Name
	s.module = module
	return s, nil
}

func (s *WGSLShader) SetName(name string) {
	s.name = name
}

func (s *WGSLShader) Name() string {
	return s.name
}

func (s *WGSLShader) Type() metadata.ShaderType {
	return s.shaderType
}

func (s *WGSLShader) Report() *metadata.Report {
	return s.report
}

func (s *WGSLShader) EntryPoint() string {
	return s.entryPoint
}

// ModuleDescriptor returns the descriptor to create the native shader module with.
func (s *WGSLShader) ModuleDescriptor() gputypes.ShaderModuleDescriptor {
	return gputypes.ShaderModuleDescriptor{
		Label:  s.name,
		Source: gputypes.ShaderSourceWGSL{Code: s.source},
	}
}

// ProgrammableStage returns the stage description of the pipeline this
// shader is part of. module is the native handle created by the embedder.
func (s *WGSLShader) ProgrammableStage(module uintptr) gputypes.ProgrammableStage {
	return gputypes.ProgrammableStage{
		Module:     module,
		EntryPoint: s.entryPoint,
	}
}

func (s *WGSLShader) Reflect(out *metadata.ShaderReflection) bool {
	if s.module == nil {
		return false
	}
	return wgsl.Reflect(s.module, s.shaderType, s.entryPoint, out)
}

// FindUniformLocation always returns -1, WGSL has no loose uniforms.
func (s *WGSLShader) FindUniformLocation(name string) int32 {
	return -1
}

func (s *WGSLShader) IsPostTessellationVertex() bool {
	return false
}
