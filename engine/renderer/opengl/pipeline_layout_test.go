package opengl

import (
	"reflect"
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

func newTestCaps(t *testing.T, version string) (*fakeFunctions, *Capabilities) {
	t.Helper()
	f := newFakeFunctions(version)
	caps, err := NewCapabilities(f, core.NativeSamplersAuto)
	if err != nil {
		t.Fatalf("NewCapabilities(%q) error = %v", version, err)
	}
	f.calls = nil
	return f, caps
}

func sceneLayoutDescriptor() *metadata.PipelineLayoutDescriptor {
	return &metadata.PipelineLayoutDescriptor{
		Name: "scene",
		HeapBindings: []metadata.BindingDescriptor{
			{Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 0},
		},
		Bindings: []metadata.BindingDescriptor{
			{Name: "Scene", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 1},
			{Name: "Lights", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindStorage, Slot: 2},
			{Name: "colorMap", Type: metadata.ResourceTypeTexture, BindFlags: metadata.BindSampled, Slot: 3},
			{Name: "bogus", Type: metadata.ResourceTypeTexture, BindFlags: metadata.BindColorAttachment, Slot: 4},
		},
		StaticSamplers: []metadata.StaticSamplerDescriptor{
			{Name: "linearSampler", Slot: 3, Sampler: metadata.DefaultSamplerDescriptor()},
			{Name: "shadowSampler", Slot: 5, Sampler: metadata.SamplerDescriptor{CompareEnabled: true, CompareOp: metadata.CompareOpLessEqual}},
		},
		Uniforms: []metadata.UniformDescriptor{
			{Name: "tint", Type: metadata.UniformTypeFloat4},
		},
	}
}

func TestGLPipelineLayoutConstruction(t *testing.T) {
	f, caps := newTestCaps(t, "4.5.0")
	desc := sceneLayoutDescriptor()
	l := NewGLPipelineLayout(f, caps, desc)

	if l.NumHeapBindings() != 1 || l.NumBindings() != 4 || l.NumStaticSamplers() != 2 || l.NumUniforms() != 1 {
		t.Fatalf("counts = %d/%d/%d/%d, want 1/4/2/1", l.NumHeapBindings(), l.NumBindings(), l.NumStaticSamplers(), l.NumUniforms())
	}
	if !l.HasNamedBindings() {
		t.Error("HasNamedBindings() = false")
	}

	wantBindings := []ResourceBinding{
		{ResourceTypeUBO, 1},
		{ResourceTypeSSBO, 2},
		{ResourceTypeTexture, 3},
		{ResourceTypeInvalid, 4},
	}
	if !reflect.DeepEqual(l.Bindings(), wantBindings) {
		t.Errorf("Bindings() = %v, want %v", l.Bindings(), wantBindings)
	}
	if !reflect.DeepEqual(l.StaticSamplerSlots(), []uint32{3, 5}) {
		t.Errorf("StaticSamplerSlots() = %v, want [3 5]", l.StaticSamplerSlots())
	}
	wantNames := []string{"Scene", "Lights", "colorMap", "bogus", "linearSampler", "shadowSampler"}
	if !reflect.DeepEqual(l.ResourceNames(), wantNames) {
		t.Errorf("ResourceNames() = %v, want %v", l.ResourceNames(), wantNames)
	}
	if i, ok := l.FindResource("shadowSampler"); !ok || i != 5 {
		t.Errorf("FindResource(shadowSampler) = %d, %v; want 5, true", i, ok)
	}
	if _, ok := l.FindResource("missing"); ok {
		t.Error("FindResource(missing) found a resource")
	}
	if !l.UsesNativeSamplers() {
		t.Error("GL 4.5 layout does not use native samplers")
	}
	if got := len(f.callsWithPrefix("CreateSampler")); got != 2 {
		t.Errorf("CreateSampler calls = %d, want 2", got)
	}

	// The descriptor is not retained.
	desc.HeapBindings[0].Slot = 9
	if l.HeapBindings()[0].Slot != 0 {
		t.Error("layout aliases the descriptor heap bindings")
	}
}

func TestGLPipelineLayoutBindingCountMatchesInput(t *testing.T) {
	f, caps := newTestCaps(t, "3.3.0")
	for n := 0; n < 16; n++ {
		desc := &metadata.PipelineLayoutDescriptor{}
		for i := 0; i < n; i++ {
			desc.Bindings = append(desc.Bindings, metadata.BindingDescriptor{
				Type:      metadata.ResourceType(i % 5),
				BindFlags: metadata.BindFlags(1 << uint(i%12)),
				Slot:      uint32(i),
			})
		}
		l := NewGLPipelineLayout(f, caps, desc)
		if int(l.NumBindings()) != n || len(l.Bindings()) != n {
			t.Fatalf("%d bindings in, %d resolved", n, len(l.Bindings()))
		}
		for i, b := range l.Bindings() {
			if b.Slot != uint32(i) {
				t.Fatalf("binding %d has slot %d, order not preserved", i, b.Slot)
			}
		}
		if l.HasNamedBindings() {
			t.Fatal("HasNamedBindings() = true for unnamed bindings")
		}
	}
}

func TestGLPipelineLayoutLegacySamplers(t *testing.T) {
	f, caps := newTestCaps(t, "2.1 Mesa")
	l := NewGLPipelineLayout(f, caps, sceneLayoutDescriptor())

	if l.UsesNativeSamplers() {
		t.Fatal("GL 2.1 layout uses native samplers")
	}
	if got := len(f.callsWithPrefix("CreateSampler")); got != 0 {
		t.Errorf("legacy layout created %d native samplers", got)
	}
	if l.NumStaticSamplers() != 2 {
		t.Errorf("NumStaticSamplers() = %d, want 2", l.NumStaticSamplers())
	}

	sm := NewStateManager(f)
	sm.BindTexture(3, TEXTURE_2D, 42)
	f.calls = nil
	l.BindStaticSamplers(sm)
	if got := f.callsWithPrefix("BindSampler"); len(got) != 0 {
		t.Errorf("legacy layout issued native sampler binds: %v", got)
	}
	// Only slot 3 has a texture bound, so only its sampler state is written.
	if got := f.callsWithPrefix("TexParameteri 0xDE1 0x2802"); len(got) != 1 {
		t.Errorf("TEXTURE_WRAP_S writes = %v, want exactly one", got)
	}
}

func TestGLPipelineLayoutBindStaticSamplersNative(t *testing.T) {
	f, caps := newTestCaps(t, "4.6.0")
	l := NewGLPipelineLayout(f, caps, sceneLayoutDescriptor())
	sm := NewStateManager(f)

	f.calls = nil
	l.BindStaticSamplers(sm)
	want := []string{"BindSampler 3 1", "BindSampler 5 2"}
	if got := f.callsWithPrefix("BindSampler"); !reflect.DeepEqual(got, want) {
		t.Errorf("BindSampler calls = %v, want %v", got, want)
	}
	if got := f.callsWithPrefix("TexParameter"); len(got) != 0 {
		t.Errorf("native layout wrote texture parameters: %v", got)
	}

	f.calls = nil
	l.BindStaticSamplers(sm)
	if len(f.calls) != 0 {
		t.Errorf("rebinding the same samplers issued %v", f.calls)
	}

	f.calls = nil
	l.Release()
	want = []string{"DeleteSampler 1", "DeleteSampler 2"}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("Release() calls = %v, want %v", f.calls, want)
	}
}

func TestGLPipelineLayoutBindResourceSlots(t *testing.T) {
	f, caps := newTestCaps(t, "4.6.0")
	f.blocks = []string{"Scene"}
	f.ssbos["Lights"] = 0
	f.locations["colorMap"] = 7
	f.locations["shadowSampler"] = 8

	l := NewGLPipelineLayout(f, caps, sceneLayoutDescriptor())
	sm := NewStateManager(f)
	f.calls = nil
	sm.BindPipelineLayout(l, 100)

	want := []string{
		"UseProgram 100",
		"UniformBlockBinding 100 0 1",
		"ShaderStorageBlockBinding 100 0 2",
		"Uniform1i 7 3",
		"Uniform1i 8 5",
		"BindSampler 3 1",
		"BindSampler 5 2",
	}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("calls = %v\nwant %v", f.calls, want)
	}

	f.calls = nil
	sm.BindPipelineLayout(l, 100)
	if len(f.calls) != 0 {
		t.Errorf("second bind for the same program issued %v", f.calls)
	}
}

func TestStateManagerReassignsReusedProgram(t *testing.T) {
	f, caps := newTestCaps(t, "4.6.0")
	f.blocks = []string{"Scene"}

	l := NewGLPipelineLayout(f, caps, sceneLayoutDescriptor())
	other := NewGLPipelineLayout(f, caps, sceneLayoutDescriptor())
	sm := NewStateManager(f)
	sm.BindPipelineLayout(l, 100)

	assigned := func() int {
		return len(f.callsWithPrefix("UniformBlockBinding 100"))
	}

	// GL may hand the deleted name to the next program.
	sm.DeleteProgram(100)
	f.calls = nil
	sm.BindPipelineLayout(l, 100)
	if got := assigned(); got != 1 {
		t.Errorf("slot assignments after DeleteProgram = %d, want 1", got)
	}
	if got := f.callsWithPrefix("UseProgram 100"); len(got) != 1 {
		t.Errorf("UseProgram after DeleteProgram = %v, want one", got)
	}

	f.calls = nil
	sm.BindPipelineLayout(other, 100)
	sm.BindPipelineLayout(l, 100)
	if got := assigned(); got != 2 {
		t.Errorf("slot assignments when switching layouts = %d, want 2", got)
	}

	f.calls = nil
	sm.ForgetLayout(l)
	sm.BindPipelineLayout(l, 100)
	if got := assigned(); got != 1 {
		t.Errorf("slot assignments after ForgetLayout = %d, want 1", got)
	}
}
