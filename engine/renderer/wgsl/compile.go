package wgsl

import (
	"fmt"
	"os"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Compile parses, lowers and validates WGSL source. Every diagnostic is
// appended to the returned report; the module is nil when the report has
// errors.
func Compile(source string) (*ir.Module, *metadata.Report) {
	report := metadata.NewReport("", false)

	ast, err := naga.Parse(source)
	if err != nil {
		report.Errorf("%v", err)
		return nil, report
	}

	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		report.Errorf("%v", err)
		return nil, report
	}

	validationErrors, err := naga.Validate(module)
	if err != nil {
		report.Errorf("%v", err)
		return nil, report
	}
	for _, verr := range validationErrors {
		report.Errorf("%s", verr.Error())
	}
	if report.HasErrors() {
		return nil, report
	}
	return module, report
}

// SPIRV generates a SPIR-V 1.3 binary from a validated module.
func SPIRV(module *ir.Module) ([]byte, error) {
	code, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("wgsl: %w", err)
	}
	return code, nil
}

// Source returns the WGSL text of a shader descriptor, reading it from disk
// for file sources.
func Source(desc *metadata.ShaderDescriptor) (string, error) {
	switch desc.SourceType {
	case metadata.ShaderSourceCodeString:
		return string(desc.Source), nil
	case metadata.ShaderSourceCodeFile:
		data, err := os.ReadFile(string(desc.Source))
		if err != nil {
			return "", fmt.Errorf("wgsl: unable to read shader `%s`: %w", desc.Source, err)
		}
		return string(data), nil
	default:
		err := fmt.Errorf("wgsl: shader `%s` is not a text source: %w", desc.Name, core.ErrUnsupportedShaderSource)
		return "", err
	}
}

func toStage(t metadata.ShaderType) (ir.ShaderStage, bool) {
	switch t {
	case metadata.ShaderTypeVertex:
		return ir.StageVertex, true
	case metadata.ShaderTypeFragment:
		return ir.StageFragment, true
	case metadata.ShaderTypeCompute:
		return ir.StageCompute, true
	default:
		return 0, false
	}
}

// FindEntryPoint returns the entry point of the given stage. An empty name
// selects the first entry point of that stage.
func FindEntryPoint(module *ir.Module, stage metadata.ShaderType, name string) (*ir.EntryPoint, bool) {
	irStage, ok := toStage(stage)
	if !ok || module == nil {
		return nil, false
	}
	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Stage != irStage {
			continue
		}
		if name == "" || ep.Name == name {
			return ep, true
		}
	}
	return nil, false
}
