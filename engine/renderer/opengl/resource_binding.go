package opengl

import (
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// ResourceType is the native binding category of a pipeline resource.
type ResourceType int

const (
	// ResourceTypeInvalid marks a binding whose kind and flags have no GL
	// equivalent. It is kept in the layout and skipped when bound.
	ResourceTypeInvalid ResourceType = iota
	ResourceTypeUBO
	ResourceTypeSSBO
	ResourceTypeTexture
	ResourceTypeImage
	ResourceTypeSampler
	ResourceTypeGL2XSampler
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeUBO:
		return "UBO"
	case ResourceTypeSSBO:
		return "SSBO"
	case ResourceTypeTexture:
		return "Texture"
	case ResourceTypeImage:
		return "Image"
	case ResourceTypeSampler:
		return "Sampler"
	case ResourceTypeGL2XSampler:
		return "GL2XSampler"
	default:
		return "Invalid"
	}
}

// ResourceBinding is a binding resolved for GL, parallel to the descriptor it came from.
type ResourceBinding struct {
	Type ResourceType
	Slot uint32
}

// ResourceTypeFor maps a binding descriptor to its GL binding category.
// Samplers become emulated GL2X samplers without nativeSamplers.
func ResourceTypeFor(desc *metadata.BindingDescriptor, nativeSamplers bool) ResourceType {
	switch metadata.ClassifyBinding(desc) {
	case metadata.BindingCategoryConstantBuffer:
		return ResourceTypeUBO
	case metadata.BindingCategoryStorageBuffer:
		return ResourceTypeSSBO
	case metadata.BindingCategoryTexture:
		return ResourceTypeTexture
	case metadata.BindingCategoryImage:
		return ResourceTypeImage
	case metadata.BindingCategorySampler:
		if !nativeSamplers {
			return ResourceTypeGL2XSampler
		}
		return ResourceTypeSampler
	default:
		return ResourceTypeInvalid
	}
}
