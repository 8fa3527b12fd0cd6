package debug

import (
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

type fakeShader struct {
	name         string
	shaderType   metadata.ShaderType
	report       *metadata.Report
	reflection   metadata.ShaderReflection
	reflectCalls int
	// number of Reflect calls that fail before reflection succeeds
	reflectFails int
}

func (s *fakeShader) SetName(name string)            { s.name = name }
func (s *fakeShader) Name() string                   { return s.name }
func (s *fakeShader) Type() metadata.ShaderType      { return s.shaderType }
func (s *fakeShader) Report() *metadata.Report       { return s.report }
func (s *fakeShader) IsPostTessellationVertex() bool { return false }

func (s *fakeShader) FindUniformLocation(name string) int32 {
	return -1
}

func (s *fakeShader) Reflect(reflection *metadata.ShaderReflection) bool {
	s.reflectCalls++
	if s.reflectFails > 0 {
		s.reflectFails--
		return false
	}
	*reflection = s.reflection
	return true
}

type fakeLayout struct {
	name string
}

func (l *fakeLayout) SetName(name string)       { l.name = name }
func (l *fakeLayout) Name() string              { return l.name }
func (l *fakeLayout) NumHeapBindings() uint32   { return 0 }
func (l *fakeLayout) NumBindings() uint32       { return 0 }
func (l *fakeLayout) NumStaticSamplers() uint32 { return 0 }
func (l *fakeLayout) NumUniforms() uint32       { return 0 }
func (l *fakeLayout) HasNamedBindings() bool    { return false }

type fakeRenderSystem struct {
	name     string
	features metadata.RenderingFeatures
	shader   *fakeShader
	released []renderer.RenderSystemChild
}

func (rs *fakeRenderSystem) Name() string { return rs.name }

func (rs *fakeRenderSystem) Capabilities() *metadata.RenderingCapabilities {
	return &metadata.RenderingCapabilities{Features: rs.features, Limits: rs.Limits()}
}

func (rs *fakeRenderSystem) Limits() metadata.RenderingLimits {
	return metadata.DefaultRenderingLimits()
}

func (rs *fakeRenderSystem) CreateShader(desc *metadata.ShaderDescriptor) (renderer.Shader, error) {
	return rs.shader, nil
}

func (rs *fakeRenderSystem) CreatePipelineLayout(desc *metadata.PipelineLayoutDescriptor) (renderer.PipelineLayout, error) {
	return &fakeLayout{name: desc.Name}, nil
}

func (rs *fakeRenderSystem) CreateRenderTarget(desc *metadata.RenderTargetDescriptor) (renderer.RenderTarget, error) {
	limits := rs.Limits()
	return &fakeRenderTarget{RenderTargetInfo: renderer.NewRenderTargetInfo(&limits, desc)}, nil
}

func (rs *fakeRenderSystem) Release(obj renderer.RenderSystemChild) error {
	rs.released = append(rs.released, obj)
	return nil
}

type fakeRenderTarget struct {
	*renderer.RenderTargetInfo
}

func vertexShader(inputs ...metadata.VertexAttribute) *fakeShader {
	s := &fakeShader{shaderType: metadata.ShaderTypeVertex, report: metadata.NewReport("", false)}
	s.reflection.Vertex.InputAttribs = inputs
	return s
}

func TestDbgShaderIDs(t *testing.T) {
	tests := []struct {
		inputs         []metadata.VertexAttribute
		wantVertexID   string
		wantInstanceID string
	}{
		{[]metadata.VertexAttribute{{Name: "position"}, {Name: "SV_VertexID"}, {Name: "SV_InstanceID"}}, "SV_VertexID", "SV_InstanceID"},
		{[]metadata.VertexAttribute{{Name: "gl_VertexID"}, {Name: "gl_InstanceID"}}, "gl_VertexID", "gl_InstanceID"},
		{[]metadata.VertexAttribute{{Name: "gl_VertexIndex"}, {Name: "gl_InstanceIndex"}}, "gl_VertexIndex", "gl_InstanceIndex"},
		{[]metadata.VertexAttribute{{Name: "vid", SystemValue: metadata.SystemValueVertexID}}, "vid", ""},
		{[]metadata.VertexAttribute{{Name: "iid", SystemValue: metadata.SystemValueInstanceID}}, "", "iid"},
		{[]metadata.VertexAttribute{{Name: "position"}, {Name: "vertexID"}}, "", ""},
		{nil, "", ""},
	}
	for _, tt := range tests {
		s := NewDbgShader(vertexShader(tt.inputs...), &metadata.ShaderDescriptor{Type: metadata.ShaderTypeVertex})
		if got := s.VertexID(); got != tt.wantVertexID {
			t.Errorf("VertexID() = %q, want %q", got, tt.wantVertexID)
		}
		if got := s.InstanceID(); got != tt.wantInstanceID {
			t.Errorf("InstanceID() = %q, want %q", got, tt.wantInstanceID)
		}
	}
}

func TestDbgShaderRetriesFailedReflection(t *testing.T) {
	inner := vertexShader(metadata.VertexAttribute{Name: "gl_VertexID"}, metadata.VertexAttribute{Name: "gl_InstanceID"})
	inner.reflectFails = 1
	s := NewDbgShader(inner, &metadata.ShaderDescriptor{Name: "quad.vert", Type: metadata.ShaderTypeVertex})

	if got := s.VertexID(); got != "" {
		t.Fatalf("VertexID() after failed reflection = %q, want empty", got)
	}
	if got := s.VertexID(); got != "gl_VertexID" {
		t.Errorf("VertexID() after retry = %q, want gl_VertexID", got)
	}
	if got := s.InstanceID(); got != "gl_InstanceID" {
		t.Errorf("InstanceID() = %q, want gl_InstanceID", got)
	}
	if inner.reflectCalls != 2 {
		t.Errorf("reflect calls = %d, want 2", inner.reflectCalls)
	}

	// A failed explicit Reflect does not mark the IDs as resolved either.
	inner = vertexShader(metadata.VertexAttribute{Name: "SV_VertexID"})
	inner.reflectFails = 1
	s = NewDbgShader(inner, &metadata.ShaderDescriptor{Name: "quad.vert", Type: metadata.ShaderTypeVertex})
	var reflection metadata.ShaderReflection
	if s.Reflect(&reflection) {
		t.Fatal("first Reflect() = true, want false")
	}
	if !s.Reflect(&reflection) {
		t.Fatal("second Reflect() = false, want true")
	}
	if got := s.VertexID(); got != "SV_VertexID" {
		t.Errorf("VertexID() = %q, want SV_VertexID", got)
	}
	if inner.reflectCalls != 2 {
		t.Errorf("reflect calls = %d, want 2", inner.reflectCalls)
	}
}

func TestDbgShaderScanOnce(t *testing.T) {
	inner := vertexShader(metadata.VertexAttribute{Name: "gl_VertexID"})
	s := NewDbgShader(inner, &metadata.ShaderDescriptor{Name: "quad.vert", Type: metadata.ShaderTypeVertex})

	var reflection metadata.ShaderReflection
	if !s.Reflect(&reflection) {
		t.Fatal("Reflect() = false")
	}
	for i := 0; i < 3; i++ {
		if got := s.VertexID(); got != "gl_VertexID" {
			t.Fatalf("VertexID() = %q, want gl_VertexID", got)
		}
	}
	if inner.reflectCalls != 1 {
		t.Errorf("wrapped Reflect called %d times, want 1", inner.reflectCalls)
	}
	if len(reflection.Vertex.InputAttribs) != 1 {
		t.Errorf("reflection not forwarded: %+v", reflection)
	}
}

func TestDbgShaderName(t *testing.T) {
	inner := vertexShader()
	inner.name = "backend"
	s := NewDbgShader(inner, &metadata.ShaderDescriptor{Name: "blit.vert", Type: metadata.ShaderTypeVertex})

	if s.Name() != "blit.vert" {
		t.Errorf("Name() = %q, want blit.vert", s.Name())
	}
	s.SetName("renamed")
	if s.Name() != "renamed" || inner.name != "backend" {
		t.Errorf("Name() = %q, wrapped name = %q", s.Name(), inner.name)
	}
}

func TestDbgShaderIsCompiled(t *testing.T) {
	inner := vertexShader()
	s := NewDbgShader(inner, &metadata.ShaderDescriptor{Type: metadata.ShaderTypeVertex})
	if !s.IsCompiled() {
		t.Error("IsCompiled() = false for an empty report")
	}
	inner.report = nil
	if !s.IsCompiled() {
		t.Error("IsCompiled() = false without a report")
	}
	inner.report = metadata.NewReport("0:1: syntax error", true)
	if s.IsCompiled() {
		t.Error("IsCompiled() = true with errors")
	}
}

func TestDebugger(t *testing.T) {
	core.EventSystemInitialize()
	defer core.EventSystemShutdown()

	var fired []string
	listener := new(int)
	core.EventRegister(core.EVENT_CODE_VALIDATION_ERROR, listener, func(ctx core.EventContext) bool {
		fired = append(fired, ctx.Data.(string))
		return true
	})

	d := NewDebugger()
	d.Infof("shader `a`", "compiled")
	d.Warnf("shader `a`", "no report")
	d.Errorf("layout `b`", "binding %d is invalid", 2)

	if n := len(d.Messages()); n != 3 {
		t.Errorf("len(Messages()) = %d, want 3", n)
	}
	errs := d.Errors()
	if len(errs) != 1 || errs[0].Text != "binding 2 is invalid" || errs[0].Source != "layout `b`" {
		t.Errorf("Errors() = %v", errs)
	}
	if len(fired) != 1 || fired[0] != "error: layout `b`: binding 2 is invalid" {
		t.Errorf("fired events = %q", fired)
	}

	d.Reset()
	if d.HasErrors() || len(d.Messages()) != 0 {
		t.Error("Reset() kept messages")
	}
}

func texture(name string, slot uint32) metadata.BindingDescriptor {
	return metadata.BindingDescriptor{Name: name, Type: metadata.ResourceTypeTexture, BindFlags: metadata.BindSampled, StageFlags: metadata.StageFragment, Slot: slot}
}

var glFeatures = metadata.RenderingFeatures{ResolvesBindingsByName: true, HasPerCategorySlots: true}

func TestValidatePipelineLayout(t *testing.T) {
	desc := &metadata.PipelineLayoutDescriptor{
		HeapBindings: []metadata.BindingDescriptor{
			{Name: "Globals", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 0},
		},
		Bindings: []metadata.BindingDescriptor{
			texture("albedo", 0),
			texture("normals", 0),
			{Name: "Locals", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 0},
			{Name: "broken", Type: metadata.ResourceTypeTexture, BindFlags: metadata.BindCombinedSampler, Slot: 5},
		},
		StaticSamplers: []metadata.StaticSamplerDescriptor{
			{Name: "linear", Slot: 0, Sampler: metadata.DefaultSamplerDescriptor()},
			{Name: "point", Slot: 0, Sampler: metadata.DefaultSamplerDescriptor()},
		},
	}
	d := NewDebugger()
	ValidatePipelineLayout(d, "layout", desc, &glFeatures)

	errs := d.Errors()
	if len(errs) != 3 {
		t.Fatalf("Errors() = %v, want 3 errors", errs)
	}
	if !strings.Contains(errs[0].Text, "binding 1 (normals)") || !strings.Contains(errs[0].Text, "binding 0 (albedo)") {
		t.Errorf("duplicate texture slot message = %q", errs[0].Text)
	}
	if !strings.Contains(errs[1].Text, "binding 3 (broken)") {
		t.Errorf("invalid binding message = %q", errs[1].Text)
	}
	if !strings.Contains(errs[2].Text, "static sampler 1 (point)") {
		t.Errorf("duplicate sampler slot message = %q", errs[2].Text)
	}
}

func TestValidatePipelineLayoutSharedSlots(t *testing.T) {
	desc := &metadata.PipelineLayoutDescriptor{
		HeapBindings: []metadata.BindingDescriptor{
			{Name: "Globals", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 0},
		},
		Bindings: []metadata.BindingDescriptor{
			{Name: "Locals", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 0},
			texture("albedo", 0),
			texture("normals", 1),
		},
		StaticSamplers: []metadata.StaticSamplerDescriptor{
			{Name: "linear", Slot: 1, Sampler: metadata.DefaultSamplerDescriptor()},
		},
	}

	d := NewDebugger()
	ValidatePipelineLayout(d, "layout", desc, &glFeatures)
	if msgs := d.Messages(); len(msgs) != 0 {
		t.Errorf("messages = %v, want none with per-category slots", msgs)
	}

	d.Reset()
	ValidatePipelineLayout(d, "layout", desc, &metadata.RenderingFeatures{})
	errs := d.Errors()
	if len(errs) != 2 {
		t.Fatalf("Errors() = %v, want 2 errors", errs)
	}
	if !strings.Contains(errs[0].Text, "binding 1 (albedo)") || !strings.Contains(errs[0].Text, "binding 0 (Locals)") {
		t.Errorf("texture on the constant buffer slot message = %q", errs[0].Text)
	}
	if !strings.Contains(errs[1].Text, "static sampler 0 (linear)") || !strings.Contains(errs[1].Text, "binding 2 (normals)") {
		t.Errorf("static sampler on the texture slot message = %q", errs[1].Text)
	}
}

func TestValidatePipelineLayoutNames(t *testing.T) {
	desc := &metadata.PipelineLayoutDescriptor{
		Bindings: []metadata.BindingDescriptor{texture("albedo", 0), texture("", 1)},
	}

	d := NewDebugger()
	ValidatePipelineLayout(d, "layout", desc, &metadata.RenderingFeatures{})
	if msgs := d.Messages(); len(msgs) != 1 || msgs[0].Severity != SeverityWarning {
		t.Errorf("messages = %v, want one warning", msgs)
	}

	d.Reset()
	ValidatePipelineLayout(d, "layout", desc, &glFeatures)
	if errs := d.Errors(); len(errs) != 1 || !strings.Contains(errs[0].Text, "binding 1") {
		t.Errorf("Errors() = %v, want one error for binding 1", errs)
	}

	d.Reset()
	desc.Bindings[0].Name = ""
	ValidatePipelineLayout(d, "layout", desc, &glFeatures)
	if msgs := d.Messages(); len(msgs) != 0 {
		t.Errorf("messages = %v, want none for a fully unnamed layout", msgs)
	}
}

func TestValidateRenderTarget(t *testing.T) {
	limits := metadata.DefaultRenderingLimits()

	tests := []struct {
		name       string
		setup      func(desc *metadata.RenderTargetDescriptor)
		wantErrors int
		wantWarns  int
	}{
		{"valid", func(desc *metadata.RenderTargetDescriptor) {
			desc.ColorAttachments[0].Format = metadata.FormatRGBA8UNorm
			desc.DepthStencilAttachment.Format = metadata.FormatD24UNormS8UInt
		}, 0, 0},
		{"gap", func(desc *metadata.RenderTargetDescriptor) {
			desc.ColorAttachments[0].Format = metadata.FormatRGBA8UNorm
			desc.ColorAttachments[2].Format = metadata.FormatRGBA8UNorm
		}, 1, 0},
		{"depth as color", func(desc *metadata.RenderTargetDescriptor) {
			desc.ColorAttachments[0].Format = metadata.FormatD32Float
		}, 1, 0},
		{"color as depth", func(desc *metadata.RenderTargetDescriptor) {
			desc.DepthStencilAttachment.Format = metadata.FormatRGBA8UNorm
		}, 1, 0},
		{"resolve without multi-sampling", func(desc *metadata.RenderTargetDescriptor) {
			desc.ColorAttachments[0].Format = metadata.FormatRGBA8UNorm
			desc.ResolveAttachments[0].Format = metadata.FormatRGBA8UNorm
		}, 1, 0},
		{"resolve without color", func(desc *metadata.RenderTargetDescriptor) {
			desc.Samples = 4
			desc.ColorAttachments[0].Format = metadata.FormatRGBA8UNorm
			desc.ResolveAttachments[1].Format = metadata.FormatRGBA8UNorm
		}, 0, 1},
		{"clamped samples", func(desc *metadata.RenderTargetDescriptor) {
			desc.Samples = 16
			desc.ColorAttachments[0].Format = metadata.FormatRGBA8UNorm
		}, 0, 1},
	}
	for _, tt := range tests {
		desc := &metadata.RenderTargetDescriptor{Resolution: metadata.Extent2D{Width: 256, Height: 256}}
		tt.setup(desc)
		d := NewDebugger()
		ValidateRenderTarget(d, "rt", &limits, desc)

		warns := 0
		for _, m := range d.Messages() {
			if m.Severity == SeverityWarning {
				warns++
			}
		}
		if got := len(d.Errors()); got != tt.wantErrors {
			t.Errorf("%s: %d errors, want %d: %v", tt.name, got, tt.wantErrors, d.Messages())
		}
		if warns != tt.wantWarns {
			t.Errorf("%s: %d warnings, want %d: %v", tt.name, warns, tt.wantWarns, d.Messages())
		}
	}
}

func TestDbgRenderSystem(t *testing.T) {
	inner := &fakeRenderSystem{name: "opengl", features: glFeatures, shader: vertexShader(metadata.VertexAttribute{Name: "gl_InstanceID"})}
	rs := NewDbgRenderSystem(inner, nil)

	shader, err := rs.CreateShader(&metadata.ShaderDescriptor{Type: metadata.ShaderTypeVertex, Source: []byte("void main() {}")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(shader.Name(), "shader-") {
		t.Errorf("Name() = %q, want a generated label", shader.Name())
	}
	if dbg, ok := shader.(*DbgShader); !ok || dbg.InstanceID() != "gl_InstanceID" {
		t.Errorf("shader = %T, want *DbgShader with an instance ID", shader)
	}
	if len(rs.Debugger().Messages()) != 0 {
		t.Errorf("messages = %v, want none", rs.Debugger().Messages())
	}

	inner.shader = vertexShader()
	inner.shader.report = nil
	if _, err := rs.CreateShader(&metadata.ShaderDescriptor{Name: "noreport", Type: metadata.ShaderTypeVertex, Source: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if msgs := rs.Debugger().Messages(); len(msgs) != 1 || msgs[0].Severity != SeverityWarning {
		t.Errorf("messages = %v, want a warning for the missing report", msgs)
	}

	rs.Debugger().Reset()
	inner.shader = vertexShader()
	inner.shader.report = metadata.NewReport("0:1: error", true)
	if _, err := rs.CreateShader(&metadata.ShaderDescriptor{Name: "broken", Type: metadata.ShaderTypeVertex, Source: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	if errs := rs.Debugger().Errors(); len(errs) != 1 || !strings.Contains(errs[0].Text, "0:1: error") {
		t.Errorf("Errors() = %v", errs)
	}

	rs.Debugger().Reset()
	layout, err := rs.CreatePipelineLayout(&metadata.PipelineLayoutDescriptor{
		Name:     "named",
		Bindings: []metadata.BindingDescriptor{texture("albedo", 0), texture("", 1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if errs := rs.Debugger().Errors(); len(errs) != 1 {
		t.Errorf("Errors() = %v, want the unnamed binding on a name-resolved back-end", errs)
	}

	if err := rs.Release(shader); err != nil {
		t.Fatal(err)
	}
	if err := rs.Release(layout); err != nil {
		t.Fatal(err)
	}
	if len(inner.released) != 2 || inner.released[0] != renderer.RenderSystemChild(Unwrap(shader)) {
		t.Errorf("released = %v, want the unwrapped instances", inner.released)
	}
	if _, ok := inner.released[1].(*fakeLayout); !ok {
		t.Errorf("released[1] = %T, want *fakeLayout", inner.released[1])
	}
	if err := rs.Release(shader); !errors.Is(err, core.ErrObjectNotOwned) {
		t.Errorf("second Release() error = %v, want ErrObjectNotOwned", err)
	}
}

func TestDbgRenderSystemRenderTarget(t *testing.T) {
	rs := NewDbgRenderSystem(&fakeRenderSystem{name: "vulkan"}, NewDebugger())

	desc := &metadata.RenderTargetDescriptor{Name: "msaa", Resolution: metadata.Extent2D{Width: 64, Height: 64}, Samples: 8}
	desc.ColorAttachments[0].Format = metadata.FormatRGBA8UNorm
	rt, err := rs.CreateRenderTarget(desc)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Samples() != 4 || rt.NumColorAttachments() != 1 {
		t.Errorf("Samples() = %d, NumColorAttachments() = %d", rt.Samples(), rt.NumColorAttachments())
	}
	if msgs := rs.Debugger().Messages(); len(msgs) != 1 || !strings.Contains(msgs[0].Text, "clamped to 4") {
		t.Errorf("messages = %v, want the clamp warning", msgs)
	}
}

func TestDbgRenderSystemSharedSlots(t *testing.T) {
	rs := NewDbgRenderSystem(&fakeRenderSystem{name: "vulkan"}, NewDebugger())

	_, err := rs.CreatePipelineLayout(&metadata.PipelineLayoutDescriptor{
		Name: "shared",
		Bindings: []metadata.BindingDescriptor{
			{Name: "Locals", Type: metadata.ResourceTypeBuffer, BindFlags: metadata.BindConstantBuffer, Slot: 0},
			texture("albedo", 0),
			{Type: metadata.ResourceTypeTexture, BindFlags: metadata.BindSampled | metadata.BindStorage, Slot: 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	errs := rs.Debugger().Errors()
	if len(errs) != 1 || !strings.Contains(errs[0].Text, "already taken") {
		t.Errorf("Errors() = %v, want the reused slot", errs)
	}
	for _, m := range rs.Debugger().Messages() {
		if m.Severity == SeverityWarning && !strings.Contains(m.Text, "binding 2 has no name") {
			t.Errorf("unexpected warning %q", m.Text)
		}
	}
}
