package opengl

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func TestLoadOpenGLRenderSystem(t *testing.T) {
	if _, err := renderer.Load(BackendName, &renderer.RenderSystemConfig{}); !errors.Is(err, core.ErrNativeContextMissing) {
		t.Fatalf("Load() without context error = %v, want ErrNativeContextMissing", err)
	}

	f := newFakeFunctions("3.3.0")
	rs, err := renderer.Load(BackendName, &renderer.RenderSystemConfig{
		NativeContext:  Functions(f),
		NativeSamplers: core.NativeSamplersOff,
		LimitsOverride: core.LimitsConfig{MaxColorBufferSamples: 2},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rs.Name() != BackendName {
		t.Errorf("Name() = %q", rs.Name())
	}
	caps := rs.Capabilities()
	if caps.Features.HasSamplers {
		t.Error("native samplers reported although forced off")
	}
	if !caps.Features.ResolvesBindingsByName || !caps.Features.HasPerCategorySlots {
		t.Errorf("binding slot features = %+v", caps.Features)
	}
	if caps.Limits.MaxColorBufferSamples != 2 || rs.Limits().MaxColorBufferSamples != 2 {
		t.Errorf("limits override not applied: %+v", caps.Limits)
	}
	if !caps.SupportsLanguage(metadata.ShadingLanguageGLSL) {
		t.Error("GLSL not supported")
	}
}

func TestGLRenderSystemObjects(t *testing.T) {
	f := newFakeFunctions("4.6.0")
	rs, err := NewGLRenderSystem(f, &renderer.RenderSystemConfig{})
	if err != nil {
		t.Fatal(err)
	}

	layout, err := rs.CreatePipelineLayout(sceneLayoutDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	shader, err := rs.CreateShader(&metadata.ShaderDescriptor{Type: metadata.ShaderTypeFragment, Source: []byte("void main() {}")})
	if err != nil {
		t.Fatal(err)
	}

	desc := &metadata.RenderTargetDescriptor{Name: "hdr", Samples: 16}
	desc.ColorAttachments[0].Format = metadata.FormatRGBA16Float
	desc.DepthStencilAttachment.Format = metadata.FormatD32Float
	rt, err := rs.CreateRenderTarget(desc)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Samples() != 4 {
		t.Errorf("Samples() = %d, want 4 (depth limit)", rt.Samples())
	}
	if !rt.HasDepthAttachment() || rt.HasStencilAttachment() {
		t.Error("depth-only attachment reported wrong")
	}

	for _, obj := range []renderer.RenderSystemChild{layout, shader, rt} {
		if err := rs.Release(obj); err != nil {
			t.Errorf("Release(%T) error = %v", obj, err)
		}
	}
	if err := rs.Release(layout); !errors.Is(err, core.ErrObjectNotOwned) {
		t.Errorf("double Release() error = %v, want ErrObjectNotOwned", err)
	}
	if got := len(f.callsWithPrefix("DeleteSampler")); got != 2 {
		t.Errorf("DeleteSampler calls = %d, want 2", got)
	}
}

func TestGLRenderSystemTooManyAttachments(t *testing.T) {
	f := newFakeFunctions("4.6.0")
	f.integers[MAX_COLOR_ATTACHMENTS] = 2
	rs, err := NewGLRenderSystem(f, &renderer.RenderSystemConfig{})
	if err != nil {
		t.Fatal(err)
	}
	desc := &metadata.RenderTargetDescriptor{}
	for i := 0; i < 3; i++ {
		desc.ColorAttachments[i].Format = metadata.FormatRGBA8UNorm
	}
	if _, err := rs.CreateRenderTarget(desc); err == nil {
		t.Error("CreateRenderTarget() accepted more attachments than supported")
	}
}
