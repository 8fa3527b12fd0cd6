package opengl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type Version struct {
	Major int
	Minor int
	ES    bool
}

func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("OpenGL ES %d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("OpenGL %d.%d", v.Major, v.Minor)
}

// ParseGLVersion parses a GL_VERSION string such as "4.6.0 NVIDIA 535.54" or
// "OpenGL ES 3.2 Mesa 23.1".
func ParseGLVersion(s string) (Version, error) {
	var v Version
	rest := strings.TrimSpace(s)
	for _, prefix := range []string{"OpenGL ES-CM ", "OpenGL ES-CL ", "OpenGL ES "} {
		if strings.HasPrefix(rest, prefix) {
			v.ES = true
			rest = strings.TrimPrefix(rest, prefix)
			break
		}
	}
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		rest = rest[:i]
	}
	parts := strings.Split(rest, ".")
	if len(parts) < 2 {
		return v, fmt.Errorf("opengl: invalid version string %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return v, fmt.Errorf("opengl: invalid major version in %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return v, fmt.Errorf("opengl: invalid minor version in %q", s)
	}
	v.Major, v.Minor = major, minor
	return v, nil
}

// Capabilities is queried once per context and passed to everything that needs
// to branch on the GL generation.
type Capabilities struct {
	Version    Version
	Extensions []string
	// NativeSamplers selects the static sampler strategy of every pipeline layout
	// created on this context.
	NativeSamplers bool
	UniformBuffers bool
	StorageBuffers bool
	Images         bool
	Compute        bool
	Geometry       bool
	Tessellation   bool
	Limits         metadata.RenderingLimits
}

func NewCapabilities(f Functions, mode core.NativeSamplersMode) (*Capabilities, error) {
	ver, err := ParseGLVersion(f.GetString(VERSION))
	if err != nil {
		return nil, err
	}
	caps := &Capabilities{
		Version:    ver,
		Extensions: queryExtensions(f, ver),
	}

	gl := func(major, minor int) bool { return !ver.ES && ver.AtLeast(major, minor) }
	es := func(major, minor int) bool { return ver.ES && ver.AtLeast(major, minor) }

	caps.NativeSamplers = gl(3, 3) || es(3, 0) || caps.HasExtension("GL_ARB_sampler_objects")
	caps.UniformBuffers = gl(3, 1) || es(3, 0) || caps.HasExtension("GL_ARB_uniform_buffer_object")
	caps.StorageBuffers = gl(4, 3) || es(3, 1) || caps.HasExtension("GL_ARB_shader_storage_buffer_object")
	caps.Images = gl(4, 2) || es(3, 1) || caps.HasExtension("GL_ARB_shader_image_load_store")
	caps.Compute = gl(4, 3) || es(3, 1) || caps.HasExtension("GL_ARB_compute_shader")
	caps.Geometry = gl(3, 2) || es(3, 2)
	caps.Tessellation = gl(4, 0) || es(3, 2)

	switch mode {
	case core.NativeSamplersOff:
		caps.NativeSamplers = false
	case core.NativeSamplersOn:
		if !caps.NativeSamplers {
			core.LogWarn("native sampler objects requested but not supported by %s, using emulated samplers", ver)
		}
	}

	caps.Limits = queryLimits(f, caps)
	return caps, nil
}

func (c *Capabilities) HasExtension(name string) bool {
	for _, ext := range c.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// Rendering converts the GL capabilities into the back-end neutral form.
func (c *Capabilities) Rendering() *metadata.RenderingCapabilities {
	lang := metadata.ShadingLanguageGLSL
	if c.Version.ES {
		lang = metadata.ShadingLanguageESSL
	}
	return &metadata.RenderingCapabilities{
		APIVersion:       c.Version.String(),
		ShadingLanguages: []metadata.ShadingLanguage{lang},
		Formats: []metadata.Format{
			metadata.FormatRGBA8UNorm,
			metadata.FormatRGBA8UNormSRGB,
			metadata.FormatRGBA16Float,
			metadata.FormatRGBA32Float,
			metadata.FormatD16UNorm,
			metadata.FormatD24UNormS8UInt,
			metadata.FormatD32Float,
		},
		Features: metadata.RenderingFeatures{
			HasSamplers:        c.NativeSamplers,
			HasUniformBuffers:  c.UniformBuffers,
			HasStorageBuffers:  c.StorageBuffers,
			HasStorageImages:   c.Images,
			HasComputeShaders:  c.Compute,
			HasGeometryShaders: c.Geometry,
			HasTessellation:    c.Tessellation,

			ResolvesBindingsByName: true,
			HasPerCategorySlots:    true,
		},
		Limits: c.Limits,
	}
}

func queryExtensions(f Functions, ver Version) []string {
	if ver.AtLeast(3, 0) {
		n := f.GetInteger(NUM_EXTENSIONS)
		exts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			exts = append(exts, f.GetStringi(EXTENSIONS, uint32(i)))
		}
		return exts
	}
	return strings.Fields(f.GetString(EXTENSIONS))
}

func queryLimits(f Functions, caps *Capabilities) metadata.RenderingLimits {
	maxSamples := uint32(max(f.GetInteger(MAX_SAMPLES), 1))
	queryOr := func(pname Enum, fallback uint32) uint32 {
		if v := f.GetInteger(pname); v > 0 {
			return uint32(v)
		}
		return fallback
	}

	limits := metadata.RenderingLimits{
		MaxColorBufferSamples: queryOr(MAX_COLOR_TEXTURE_SAMPLES, maxSamples),
		MaxDepthBufferSamples: queryOr(MAX_DEPTH_TEXTURE_SAMPLES, maxSamples),
		MaxColorAttachments:   queryOr(MAX_COLOR_ATTACHMENTS, 1),
		MaxTextureSize:        queryOr(MAX_TEXTURE_SIZE, 64),
		MaxSamplerAnisotropy:  1,
	}
	limits.MaxStencilBufferSamples = limits.MaxDepthBufferSamples
	limits.MaxNoAttachmentSamples = queryOr(MAX_FRAMEBUFFER_SAMPLES, maxSamples)

	if caps.HasExtension("GL_EXT_texture_filter_anisotropic") || caps.HasExtension("GL_ARB_texture_filter_anisotropic") || (!caps.Version.ES && caps.Version.AtLeast(4, 6)) {
		if a := f.GetFloat(MAX_TEXTURE_MAX_ANISOTROPY); a > 1 {
			limits.MaxSamplerAnisotropy = a
		}
	}
	return limits
}
