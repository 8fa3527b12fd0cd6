package opengl

import (
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"4.6.0 NVIDIA 535.54", Version{Major: 4, Minor: 6}, false},
		{"3.3 (Core Profile) Mesa 23.1.0", Version{Major: 3, Minor: 3}, false},
		{"OpenGL ES 3.2 Mesa 23.1", Version{Major: 3, Minor: 2, ES: true}, false},
		{"OpenGL ES-CM 1.1", Version{Major: 1, Minor: 1, ES: true}, false},
		{"2.1 Metal - 83.1", Version{Major: 2, Minor: 1}, false},
		{"", Version{}, true},
		{"four.six", Version{}, true},
	}
	for _, tt := range tests {
		got, err := ParseGLVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGLVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseGLVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestNewCapabilitiesNativeSamplers(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		extensions []string
		mode       core.NativeSamplersMode
		want       bool
	}{
		{"GL 3.3", "3.3.0", nil, core.NativeSamplersAuto, true},
		{"GL 3.2", "3.2.0", nil, core.NativeSamplersAuto, false},
		{"GL 3.2 with extension", "3.2.0", []string{"GL_ARB_sampler_objects"}, core.NativeSamplersAuto, true},
		{"GL 2.1", "2.1 Mesa", nil, core.NativeSamplersAuto, false},
		{"GLES 3.0", "OpenGL ES 3.0", nil, core.NativeSamplersAuto, true},
		{"GLES 2.0", "OpenGL ES 2.0", nil, core.NativeSamplersAuto, false},
		{"forced off", "4.6.0", nil, core.NativeSamplersOff, false},
		{"forced on without support", "2.1", nil, core.NativeSamplersOn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, err := NewCapabilities(newFakeFunctions(tt.version, tt.extensions...), tt.mode)
			if err != nil {
				t.Fatalf("NewCapabilities() error = %v", err)
			}
			if caps.NativeSamplers != tt.want {
				t.Errorf("NativeSamplers = %v, want %v", caps.NativeSamplers, tt.want)
			}
		})
	}
}

func TestNewCapabilitiesLimits(t *testing.T) {
	f := newFakeFunctions("4.6.0", "GL_ARB_texture_filter_anisotropic")
	f.floats[MAX_TEXTURE_MAX_ANISOTROPY] = 16
	caps, err := NewCapabilities(f, core.NativeSamplersAuto)
	if err != nil {
		t.Fatal(err)
	}
	l := caps.Limits
	if l.MaxColorBufferSamples != 8 || l.MaxDepthBufferSamples != 4 || l.MaxStencilBufferSamples != 4 || l.MaxNoAttachmentSamples != 16 {
		t.Errorf("sample limits = %+v", l)
	}
	if l.MaxSamplerAnisotropy != 16 {
		t.Errorf("MaxSamplerAnisotropy = %v, want 16", l.MaxSamplerAnisotropy)
	}

	// Older contexts without the multisample texture queries fall back to MAX_SAMPLES.
	f = newFakeFunctions("3.0")
	delete(f.integers, MAX_COLOR_TEXTURE_SAMPLES)
	delete(f.integers, MAX_DEPTH_TEXTURE_SAMPLES)
	delete(f.integers, MAX_FRAMEBUFFER_SAMPLES)
	caps, err = NewCapabilities(f, core.NativeSamplersAuto)
	if err != nil {
		t.Fatal(err)
	}
	if caps.Limits.MaxColorBufferSamples != 8 || caps.Limits.MaxNoAttachmentSamples != 8 {
		t.Errorf("fallback sample limits = %+v", caps.Limits)
	}
	if caps.Rendering().Features.HasStorageBuffers {
		t.Error("GL 3.0 reported storage buffers")
	}
}

func TestNewCapabilitiesInvalidVersion(t *testing.T) {
	if _, err := NewCapabilities(newFakeFunctions("garbage"), core.NativeSamplersAuto); err == nil {
		t.Fatal("NewCapabilities() accepted an invalid version string")
	}
}
