package vulkan

import (
	"encoding/binary"
	"fmt"
	"os"

	vk "github.com/goki/vulkan"
	"github.com/gogpu/naga/ir"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/wgsl"
)

const spirvMagic uint32 = 0x07230203

/**
 * @brief A shader stage backed by a native shader module. SPIR-V binaries are
 * used as they are, WGSL sources are compiled to SPIR-V first.
 */
type VulkanShader struct {
	driver     driver
	name       string
	shaderType metadata.ShaderType
	entryPoint string
	report     *metadata.Report

	/** @brief IR of WGSL sources, used for reflection. Nil for SPIR-V binaries. */
	ir *ir.Module

	code      []uint32
	module    vk.ShaderModule
	hasModule bool
}

func NewVulkanShader(d driver, desc *metadata.ShaderDescriptor) (*VulkanShader, error) {
	if desc.Type == metadata.ShaderTypeUndefined {
		err := fmt.Errorf("vulkan: shader `%s` has no type", desc.Name)
		core.LogError("%s", err.Error())
		return nil, err
	}

	s := &VulkanShader{
		driver:     d,
		name:       desc.Name,
		shaderType: desc.Type,
		entryPoint: desc.EntryPoint,
		report:     metadata.NewReport("", false),
	}

	if desc.SourceType.IsBinary() {
		data, err := binarySource(desc)
		if err != nil {
			core.LogError("%s", err.Error())
			return nil, err
		}
		s.code, err = spirvWords(data)
		if err != nil {
			s.report.Errorf("%v", err)
			return s, nil
		}
		if s.entryPoint == "" {
			s.entryPoint = "main"
		}
	} else if !s.compileWGSL(desc) {
		return s, nil
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(s.code) * 4),
		PCode:    s.code,
	}
	module, err := d.CreateShaderModule(&createInfo)
	if err != nil {
		s.report.Errorf("%v", err)
		return s, nil
	}
	s.module = module
	s.hasModule = true
	return s, nil
}

func (s *VulkanShader) compileWGSL(desc *metadata.ShaderDescriptor) bool {
	source, err := wgsl.Source(desc)
	if err != nil {
		s.report.Errorf("%v", err)
		return false
	}

	module, report := wgsl.Compile(source)
	s.report = report
	if report.HasErrors() {
		return false
	}

	ep, ok := wgsl.FindEntryPoint(module, s.shaderType, s.entryPoint)
	if !ok {
		s.report.Errorf("no %s entry point `%s` in shader `%s`", s.shaderType, s.entryPoint, s.name)
		return false
	}
	s.entryPoint = ep.Name
	s.ir = module

	code, err := wgsl.SPIRV(module)
	if err != nil {
		s.report.Errorf("%v", err)
		return false
	}
	if s.code, err = spirvWords(code); err != nil {
		s.report.Errorf("%v", err)
		return false
	}
	return true
}

func binarySource(desc *metadata.ShaderDescriptor) ([]byte, error) {
	if desc.SourceType == metadata.ShaderSourceBinaryBuffer {
		return desc.Source, nil
	}
	data, err := os.ReadFile(string(desc.Source))
	if err != nil {
		return nil, fmt.Errorf("vulkan: unable to read shader module `%s`: %w", desc.Source, err)
	}
	return data, nil
}

// spirvWords checks the size and magic number of a SPIR-V binary and
// returns it as little-endian words.
func spirvWords(data []byte) ([]uint32, error) {
	if len(data) < 20 || len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid SPIR-V binary size %d", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("invalid SPIR-V magic number 0x%08X", words[0])
	}
	return words, nil
}

func (s *VulkanShader) SetName(name string) {
	s.name = name
}

func (s *VulkanShader) Name() string {
	return s.name
}

func (s *VulkanShader) Type() metadata.ShaderType {
	return s.shaderType
}

func (s *VulkanShader) Report() *metadata.Report {
	return s.report
}

// EntryPoint returns the name of the entry point the pipeline stage uses.
func (s *VulkanShader) EntryPoint() string {
	return s.entryPoint
}

func (s *VulkanShader) Module() vk.ShaderModule {
	return s.module
}

// Reflect fills out from the WGSL IR. SPIR-V binaries are not reflected.
func (s *VulkanShader) Reflect(out *metadata.ShaderReflection) bool {
	if s.ir == nil {
		return false
	}
	return wgsl.Reflect(s.ir, s.shaderType, s.entryPoint, out)
}

// FindUniformLocation always returns -1: uniforms live in push constants.
func (s *VulkanShader) FindUniformLocation(name string) int32 {
	return -1
}

func (s *VulkanShader) IsPostTessellationVertex() bool {
	return s.shaderType == metadata.ShaderTypeTessEvaluation
}

func (s *VulkanShader) Release() {
	if s.hasModule {
		s.driver.DestroyShaderModule(s.module)
		s.hasModule = false
	}
}
