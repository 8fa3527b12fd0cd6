package loaders

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

const spirvMagic uint32 = 0x07230203

// Stage suffixes, either as the extension itself (`sky.frag`) or in front of
// the language extension (`sky.frag.wgsl`).
var shaderStages = map[string]metadata.ShaderType{
	".vert": metadata.ShaderTypeVertex,
	".tesc": metadata.ShaderTypeTessControl,
	".tese": metadata.ShaderTypeTessEvaluation,
	".geom": metadata.ShaderTypeGeometry,
	".frag": metadata.ShaderTypeFragment,
	".comp": metadata.ShaderTypeCompute,
}

// ShaderExtensions lists the file extensions the shader loader accepts.
var ShaderExtensions = []string{".wgsl", ".glsl", ".spv", ".vert", ".tesc", ".tese", ".geom", ".frag", ".comp"}

/** @brief Reads shader sources (WGSL, GLSL) and SPIR-V modules into shader descriptors. */
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string) (*metadata.ShaderDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err := fmt.Errorf("failed to read shader file `%s`: %w", path, err)
		core.LogError("%s", err.Error())
		return nil, err
	}
	desc, err := NewShaderDescriptor(filepath.Base(path), data)
	if err != nil {
		core.LogError("%s", err.Error())
		return nil, err
	}
	return desc, nil
}

// ShaderName strips the language extension: `sky.frag.wgsl` is named `sky.frag`.
func ShaderName(file string) string {
	switch ext := filepath.Ext(file); ext {
	case ".wgsl", ".glsl", ".spv":
		return strings.TrimSuffix(file, ext)
	default:
		return file
	}
}

// ShaderStage returns the stage encoded in the file name, or
// ShaderTypeUndefined.
func ShaderStage(file string) metadata.ShaderType {
	name := ShaderName(file)
	return shaderStages[filepath.Ext(name)]
}

// NewShaderDescriptor builds the descriptor for the shader file named file
// with the given content.
func NewShaderDescriptor(file string, data []byte) (*metadata.ShaderDescriptor, error) {
	stage := ShaderStage(file)
	if stage == metadata.ShaderTypeUndefined {
		return nil, fmt.Errorf("%w: cannot tell the stage of shader `%s`, name it <name>.<vert|frag|comp|...>[.wgsl|.glsl|.spv]", core.ErrUnsupportedShaderSource, file)
	}
	desc := &metadata.ShaderDescriptor{
		Name:       ShaderName(file),
		Type:       stage,
		Source:     data,
		SourceType: metadata.ShaderSourceCodeString,
	}
	if filepath.Ext(file) == ".spv" {
		if len(data) < 20 || len(data)%4 != 0 || binary.LittleEndian.Uint32(data) != spirvMagic {
			return nil, fmt.Errorf("%w: `%s` is not a SPIR-V module", core.ErrUnsupportedShaderSource, file)
		}
		desc.SourceType = metadata.ShaderSourceBinaryBuffer
		desc.EntryPoint = "main"
	}
	return desc, nil
}
