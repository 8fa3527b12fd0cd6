package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

/**
 * @brief Reads pipeline layouts authored as TOML files.
 *
 * name = "scene"
 *
 * [[bindings]]
 * name = "albedo"
 * type = "texture"
 * bind_flags = ["sampled"]
 * stages = ["fragment"]
 * slot = 0
 */
type LayoutLoader struct{}

type layoutFile struct {
	Name           string              `toml:"name"`
	HeapBindings   []bindingEntry      `toml:"heap_bindings"`
	Bindings       []bindingEntry      `toml:"bindings"`
	StaticSamplers []staticSamplerEntry `toml:"static_samplers"`
	Uniforms       []uniformEntry      `toml:"uniforms"`
}

type bindingEntry struct {
	Name      string   `toml:"name"`
	Type      string   `toml:"type"`
	BindFlags []string `toml:"bind_flags"`
	Stages    []string `toml:"stages"`
	Slot      uint32   `toml:"slot"`
	ArraySize uint32   `toml:"array_size"`
}

type staticSamplerEntry struct {
	Name    string       `toml:"name"`
	Stages  []string     `toml:"stages"`
	Slot    uint32       `toml:"slot"`
	Sampler samplerEntry `toml:"sampler"`
}

// Fields left out keep the value of metadata.DefaultSamplerDescriptor.
type samplerEntry struct {
	AddressMode   string    `toml:"address_mode"`
	AddressModeU  string    `toml:"address_mode_u"`
	AddressModeV  string    `toml:"address_mode_v"`
	AddressModeW  string    `toml:"address_mode_w"`
	MinFilter     string    `toml:"min_filter"`
	MagFilter     string    `toml:"mag_filter"`
	MipMapFilter  string    `toml:"mipmap_filter"`
	MipMaps       *bool     `toml:"mipmaps"`
	LODBias       float32   `toml:"lod_bias"`
	MinLOD        *float32  `toml:"min_lod"`
	MaxLOD        *float32  `toml:"max_lod"`
	MaxAnisotropy uint32    `toml:"max_anisotropy"`
	Compare       string    `toml:"compare"`
	BorderColor   []float32 `toml:"border_color"`
}

type uniformEntry struct {
	Name      string `toml:"name"`
	Type      string `toml:"type"`
	ArraySize uint32 `toml:"array_size"`
}

var resourceTypes = map[string]metadata.ResourceType{
	"buffer":  metadata.ResourceTypeBuffer,
	"texture": metadata.ResourceTypeTexture,
	"sampler": metadata.ResourceTypeSampler,
}

var bindFlags = map[string]metadata.BindFlags{
	"vertex_buffer":            metadata.BindVertexBuffer,
	"index_buffer":             metadata.BindIndexBuffer,
	"constant_buffer":          metadata.BindConstantBuffer,
	"stream_output_buffer":     metadata.BindStreamOutputBuffer,
	"indirect_buffer":          metadata.BindIndirectBuffer,
	"sampled":                  metadata.BindSampled,
	"storage":                  metadata.BindStorage,
	"color_attachment":         metadata.BindColorAttachment,
	"depth_stencil_attachment": metadata.BindDepthStencilAttachment,
	"combined_sampler":         metadata.BindCombinedSampler,
	"copy_src":                 metadata.BindCopySrc,
	"copy_dst":                 metadata.BindCopyDst,
}

var stageFlags = map[string]metadata.StageFlags{
	"vertex":          metadata.StageVertex,
	"tess_control":    metadata.StageTessControl,
	"tess_evaluation": metadata.StageTessEvaluation,
	"geometry":        metadata.StageGeometry,
	"fragment":        metadata.StageFragment,
	"compute":         metadata.StageCompute,
	"all_tess":        metadata.StageAllTess,
	"all_graphics":    metadata.StageAllGraphics,
	"all":             metadata.StageAll,
}

var uniformTypes = map[string]metadata.UniformType{
	"float":    metadata.UniformTypeFloat1,
	"float2":   metadata.UniformTypeFloat2,
	"float3":   metadata.UniformTypeFloat3,
	"float4":   metadata.UniformTypeFloat4,
	"int":      metadata.UniformTypeInt1,
	"int2":     metadata.UniformTypeInt2,
	"int3":     metadata.UniformTypeInt3,
	"int4":     metadata.UniformTypeInt4,
	"uint":     metadata.UniformTypeUInt1,
	"uint2":    metadata.UniformTypeUInt2,
	"uint3":    metadata.UniformTypeUInt3,
	"uint4":    metadata.UniformTypeUInt4,
	"float3x3": metadata.UniformTypeFloat3x3,
	"float4x4": metadata.UniformTypeFloat4x4,
	"sampler":  metadata.UniformTypeSampler,
}

var addressModes = map[string]metadata.SamplerAddressMode{
	"repeat":      metadata.SamplerAddressModeRepeat,
	"mirror":      metadata.SamplerAddressModeMirror,
	"clamp":       metadata.SamplerAddressModeClamp,
	"border":      metadata.SamplerAddressModeBorder,
	"mirror_once": metadata.SamplerAddressModeMirrorOnce,
}

var samplerFilters = map[string]metadata.SamplerFilter{
	"nearest": metadata.SamplerFilterNearest,
	"linear":  metadata.SamplerFilterLinear,
}

var compareOps = map[string]metadata.CompareOp{
	"never":         metadata.CompareOpNeverPass,
	"less":          metadata.CompareOpLess,
	"equal":         metadata.CompareOpEqual,
	"less_equal":    metadata.CompareOpLessEqual,
	"greater":       metadata.CompareOpGreater,
	"not_equal":     metadata.CompareOpNotEqual,
	"greater_equal": metadata.CompareOpGreaterEqual,
	"always":        metadata.CompareOpAlwaysPass,
}

func lookup[T any](table map[string]T, what, value string) (T, error) {
	v, ok := table[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return v, fmt.Errorf("unknown %s `%s`", what, value)
	}
	return v, nil
}

func (ll *LayoutLoader) Load(path string) (*metadata.PipelineLayoutDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err := fmt.Errorf("failed to read layout file `%s`: %w", path, err)
		core.LogError("%s", err.Error())
		return nil, err
	}
	desc, err := ParseLayout(data)
	if err != nil {
		err := fmt.Errorf("layout file `%s`: %w", path, err)
		core.LogError("%s", err.Error())
		return nil, err
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// ParseLayout decodes a TOML pipeline layout. Unknown keys are rejected.
func ParseLayout(data []byte) (*metadata.PipelineLayoutDescriptor, error) {
	var file layoutFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d, column %d: %s", core.ErrInvalidConfig, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}

	desc := &metadata.PipelineLayoutDescriptor{Name: file.Name}
	var err error
	if desc.HeapBindings, err = convertBindings(file.HeapBindings, "heap_bindings"); err != nil {
		return nil, err
	}
	if desc.Bindings, err = convertBindings(file.Bindings, "bindings"); err != nil {
		return nil, err
	}
	for i, e := range file.StaticSamplers {
		stages, err := convertStages(e.Stages)
		if err != nil {
			return nil, fmt.Errorf("%w: static_samplers[%d]: %s", core.ErrInvalidConfig, i, err)
		}
		sampler, err := convertSampler(&e.Sampler)
		if err != nil {
			return nil, fmt.Errorf("%w: static_samplers[%d]: %s", core.ErrInvalidConfig, i, err)
		}
		desc.StaticSamplers = append(desc.StaticSamplers, metadata.StaticSamplerDescriptor{
			Name:       e.Name,
			StageFlags: stages,
			Slot:       e.Slot,
			Sampler:    sampler,
		})
	}
	for i, e := range file.Uniforms {
		t, err := lookup(uniformTypes, "uniform type", e.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: uniforms[%d]: %s", core.ErrInvalidConfig, i, err)
		}
		desc.Uniforms = append(desc.Uniforms, metadata.UniformDescriptor{Name: e.Name, Type: t, ArraySize: e.ArraySize})
	}
	return desc, nil
}

// convertBindings keeps invalid type and flag combinations, only unknown
// spellings are rejected.
func convertBindings(entries []bindingEntry, key string) ([]metadata.BindingDescriptor, error) {
	var out []metadata.BindingDescriptor
	for i, e := range entries {
		b := metadata.BindingDescriptor{Name: e.Name, Slot: e.Slot, ArraySize: e.ArraySize}
		var err error
		if e.Type != "" {
			if b.Type, err = lookup(resourceTypes, "resource type", e.Type); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %s", core.ErrInvalidConfig, key, i, err)
			}
		}
		for _, f := range e.BindFlags {
			flag, err := lookup(bindFlags, "bind flag", f)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %s", core.ErrInvalidConfig, key, i, err)
			}
			b.BindFlags |= flag
		}
		if b.StageFlags, err = convertStages(e.Stages); err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %s", core.ErrInvalidConfig, key, i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func convertStages(names []string) (metadata.StageFlags, error) {
	var flags metadata.StageFlags
	for _, n := range names {
		s, err := lookup(stageFlags, "stage", n)
		if err != nil {
			return 0, err
		}
		flags |= s
	}
	return flags, nil
}

func convertSampler(e *samplerEntry) (metadata.SamplerDescriptor, error) {
	d := metadata.DefaultSamplerDescriptor()
	var err error

	if e.AddressMode != "" {
		if d.AddressModeU, err = lookup(addressModes, "address mode", e.AddressMode); err != nil {
			return d, err
		}
		d.AddressModeV, d.AddressModeW = d.AddressModeU, d.AddressModeU
	}
	for _, m := range []struct {
		value string
		out   *metadata.SamplerAddressMode
	}{{e.AddressModeU, &d.AddressModeU}, {e.AddressModeV, &d.AddressModeV}, {e.AddressModeW, &d.AddressModeW}} {
		if m.value == "" {
			continue
		}
		if *m.out, err = lookup(addressModes, "address mode", m.value); err != nil {
			return d, err
		}
	}
	for _, f := range []struct {
		value string
		out   *metadata.SamplerFilter
	}{{e.MinFilter, &d.MinFilter}, {e.MagFilter, &d.MagFilter}, {e.MipMapFilter, &d.MipMapFilter}} {
		if f.value == "" {
			continue
		}
		if *f.out, err = lookup(samplerFilters, "filter", f.value); err != nil {
			return d, err
		}
	}

	if e.MipMaps != nil {
		d.MipMapEnabled = *e.MipMaps
	}
	d.MipMapLODBias = e.LODBias
	if e.MinLOD != nil {
		d.MinLOD = *e.MinLOD
	}
	if e.MaxLOD != nil {
		d.MaxLOD = *e.MaxLOD
	}
	if e.MaxAnisotropy != 0 {
		d.MaxAnisotropy = e.MaxAnisotropy
	}
	if e.Compare != "" {
		if d.CompareOp, err = lookup(compareOps, "compare op", e.Compare); err != nil {
			return d, err
		}
		d.CompareEnabled = true
	}
	switch len(e.BorderColor) {
	case 0:
	case 4:
		copy(d.BorderColor[:], e.BorderColor)
	default:
		return d, fmt.Errorf("border_color needs 4 components, got %d", len(e.BorderColor))
	}
	return d, nil
}
