package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spaghettifunk/prism/engine/renderer"
	"github.com/spaghettifunk/prism/engine/renderer/debug"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/opengl"
	"github.com/spaghettifunk/prism/engine/renderer/vulkan"
	"github.com/spaghettifunk/prism/engine/renderer/webgpu"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Faint(true)
)

// resolveBinding names the native binding the back-end chose for dynamic
// binding i of the layout.
func resolveBinding(layout renderer.PipelineLayout, desc *metadata.PipelineLayoutDescriptor, i int) string {
	switch l := debug.Unwrap(layout).(type) {
	case *opengl.GLPipelineLayout:
		return l.Bindings()[i].Type.String()
	case *vulkan.VulkanPipelineLayout:
		t, ok := vulkan.DescriptorTypeFor(&desc.Bindings[i])
		if !ok {
			return "skipped"
		}
		return vulkan.DescriptorTypeName(t)
	case *webgpu.WebGPUPipelineLayout:
		return webgpu.DescribeEntry(l.Entries()[i])
	default:
		return "-"
	}
}

func stageNames(f metadata.StageFlags) string {
	var names []string
	for _, s := range []metadata.ShaderType{
		metadata.ShaderTypeVertex,
		metadata.ShaderTypeTessControl,
		metadata.ShaderTypeTessEvaluation,
		metadata.ShaderTypeGeometry,
		metadata.ShaderTypeFragment,
		metadata.ShaderTypeCompute,
	} {
		if f.Has(s.Stage()) {
			names = append(names, s.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

func printLayout(w io.Writer, layout renderer.PipelineLayout) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("pipeline layout `%s`", layout.Name())))
	fmt.Fprintf(w, "  heap bindings: %d, bindings: %d, static samplers: %d, uniforms: %d, named: %v\n",
		layout.NumHeapBindings(), layout.NumBindings(), layout.NumStaticSamplers(), layout.NumUniforms(), layout.HasNamedBindings())

	dbg, ok := layout.(*debug.DbgPipelineLayout)
	if !ok {
		return
	}
	desc := dbg.Descriptor()
	for i := range desc.Bindings {
		b := &desc.Bindings[i]
		fmt.Fprintf(w, "  [%d] %-16q slot %-2d %-8s flags %#05x stages %-20s -> %s\n",
			i, b.Name, b.Slot, b.Type, uint32(b.BindFlags), stageNames(b.StageFlags), resolveBinding(layout, desc, i))
	}
	for i := range desc.StaticSamplers {
		s := &desc.StaticSamplers[i]
		fmt.Fprintf(w, "  static sampler %-16q slot %-2d stages %s\n", s.Name, s.Slot, stageNames(s.StageFlags))
	}
	for _, u := range desc.Uniforms {
		fmt.Fprintf(w, "  uniform %-16q %d bytes\n", u.Name, u.Size())
	}
}

func printShader(w io.Writer, shader renderer.Shader) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s shader `%s`", shader.Type(), shader.Name())))
	if text := strings.TrimSpace(shader.Report().Text()); text != "" {
		style := infoStyle
		if shader.Report().HasErrors() {
			style = errorStyle
		}
		for _, line := range strings.Split(text, "\n") {
			fmt.Fprintln(w, "  "+style.Render(line))
		}
	}

	var refl metadata.ShaderReflection
	if !shader.Reflect(&refl) {
		fmt.Fprintln(w, "  no reflection available")
		return
	}
	for _, a := range refl.Vertex.InputAttribs {
		fmt.Fprintf(w, "  input  %-16q location %d\n", a.Name, a.Location)
	}
	for _, r := range refl.Resources {
		fmt.Fprintf(w, "  resource %-14q %s slot %d (group %d)", r.Binding.Name, r.Binding.Type, r.Binding.Slot, r.Group)
		if r.ConstantBufferSize > 0 {
			fmt.Fprintf(w, ", %d bytes", r.ConstantBufferSize)
		}
		fmt.Fprintln(w)
	}
	if s, ok := shader.(*debug.DbgShader); ok && shader.Type() == metadata.ShaderTypeVertex {
		fmt.Fprintf(w, "  vertex id: %q, instance id: %q\n", s.VertexID(), s.InstanceID())
	}
}

func printMessages(w io.Writer, messages []debug.Message) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render("validation"))
	for _, m := range messages {
		style := infoStyle
		switch m.Severity {
		case debug.SeverityError:
			style = errorStyle
		case debug.SeverityWarning:
			style = warningStyle
		}
		fmt.Fprintln(w, "  "+style.Render(m.String()))
	}
}
