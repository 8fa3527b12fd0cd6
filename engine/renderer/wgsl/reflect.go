package wgsl

import (
	"github.com/gogpu/naga/ir"

	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Reflect fills out with the interface of an entry point: its stage inputs
// and outputs, the module resources bound with @group/@binding, and the
// workgroup size of compute entry points. It returns false when the module
// has no matching entry point.
func Reflect(module *ir.Module, stage metadata.ShaderType, entryPoint string, out *metadata.ShaderReflection) bool {
	ep, ok := FindEntryPoint(module, stage, entryPoint)
	if !ok || out == nil {
		return false
	}

	r := reflector{module: module, stage: stage}
	switch stage {
	case metadata.ShaderTypeVertex:
		for _, arg := range ep.Function.Arguments {
			r.vertexInputs(arg.Name, arg.Type, arg.Binding, out)
		}
		if res := ep.Function.Result; res != nil {
			r.vertexOutputs("", res.Type, res.Binding, out)
		}
	case metadata.ShaderTypeFragment:
		if res := ep.Function.Result; res != nil {
			r.fragmentOutputs("", res.Type, res.Binding, out)
		}
	case metadata.ShaderTypeCompute:
		out.Compute.WorkGroupSize = ep.Workgroup
	}

	r.resources(out)
	return true
}

type reflector struct {
	module *ir.Module
	stage  metadata.ShaderType
}

func (r *reflector) typeInner(h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(r.module.Types) {
		return nil
	}
	return r.module.Types[h].Inner
}

// members returns the members of a struct type, or nil for any other type.
func (r *reflector) members(h ir.TypeHandle) []ir.StructMember {
	if st, ok := r.typeInner(h).(ir.StructType); ok {
		return st.Members
	}
	return nil
}

func (r *reflector) vertexInputs(name string, ty ir.TypeHandle, binding *ir.Binding, out *metadata.ShaderReflection) {
	if binding == nil {
		for _, m := range r.members(ty) {
			r.vertexInputs(m.Name, m.Type, m.Binding, out)
		}
		return
	}
	attr := metadata.VertexAttribute{Name: name, Format: r.format(ty)}
	switch b := (*binding).(type) {
	case ir.LocationBinding:
		attr.Location = b.Location
	case ir.BuiltinBinding:
		switch b.Builtin {
		case ir.BuiltinVertexIndex:
			attr.SystemValue = metadata.SystemValueVertexID
		case ir.BuiltinInstanceIndex:
			attr.SystemValue = metadata.SystemValueInstanceID
		default:
			return
		}
	default:
		return
	}
	out.Vertex.InputAttribs = append(out.Vertex.InputAttribs, attr)
}

func (r *reflector) vertexOutputs(name string, ty ir.TypeHandle, binding *ir.Binding, out *metadata.ShaderReflection) {
	if binding == nil {
		for _, m := range r.members(ty) {
			r.vertexOutputs(m.Name, m.Type, m.Binding, out)
		}
		return
	}
	attr := metadata.VertexAttribute{Name: name, Format: r.format(ty)}
	switch b := (*binding).(type) {
	case ir.LocationBinding:
		attr.Location = b.Location
	case ir.BuiltinBinding:
		switch b.Builtin {
		case ir.BuiltinPosition:
			attr.SystemValue = metadata.SystemValuePosition
		case ir.BuiltinClipDistance:
			attr.SystemValue = metadata.SystemValueClipDistance
		default:
			return
		}
	default:
		return
	}
	out.Vertex.OutputAttribs = append(out.Vertex.OutputAttribs, attr)
}

func (r *reflector) fragmentOutputs(name string, ty ir.TypeHandle, binding *ir.Binding, out *metadata.ShaderReflection) {
	if binding == nil {
		for _, m := range r.members(ty) {
			r.fragmentOutputs(m.Name, m.Type, m.Binding, out)
		}
		return
	}
	attr := metadata.FragmentAttribute{Name: name, Format: r.format(ty)}
	switch b := (*binding).(type) {
	case ir.LocationBinding:
		attr.Location = b.Location
		attr.SystemValue = metadata.SystemValueColor
	case ir.BuiltinBinding:
		if b.Builtin != ir.BuiltinFragDepth {
			return
		}
		attr.SystemValue = metadata.SystemValueDepth
	default:
		return
	}
	out.Fragment.OutputAttribs = append(out.Fragment.OutputAttribs, attr)
}

func (r *reflector) resources(out *metadata.ShaderReflection) {
	for _, gv := range r.module.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		ty := gv.Type
		arraySize := uint32(1)
		if ba, ok := r.typeInner(ty).(ir.BindingArrayType); ok {
			ty = ba.Base
			arraySize = 0
			if ba.Size != nil {
				arraySize = *ba.Size
			}
		}

		res := metadata.ShaderResourceReflection{
			Binding: metadata.BindingDescriptor{
				Name:       gv.Name,
				StageFlags: r.stage.Stage(),
				Slot:       gv.Binding.Binding,
				ArraySize:  arraySize,
			},
			Group: gv.Binding.Group,
		}

		switch gv.Space {
		case ir.SpaceUniform:
			res.Binding.Type = metadata.ResourceTypeBuffer
			res.Binding.BindFlags = metadata.BindConstantBuffer
			res.ConstantBufferSize = r.size(ty)
		case ir.SpaceStorage:
			res.Binding.Type = metadata.ResourceTypeBuffer
			res.Binding.BindFlags = metadata.BindStorage
		case ir.SpaceHandle:
			switch inner := r.typeInner(ty).(type) {
			case ir.SamplerType:
				res.Binding.Type = metadata.ResourceTypeSampler
			case ir.ImageType:
				res.Binding.Type = metadata.ResourceTypeTexture
				if inner.Class == ir.ImageClassStorage {
					res.Binding.BindFlags = metadata.BindStorage
				} else {
					res.Binding.BindFlags = metadata.BindSampled
				}
			default:
				continue
			}
		default:
			continue
		}
		out.Resources = append(out.Resources, res)
	}
}

var vectorFormats = map[ir.ScalarKind][4]metadata.Format{
	ir.ScalarFloat: {metadata.FormatR32Float, metadata.FormatRG32Float, metadata.FormatRGB32Float, metadata.FormatRGBA32Float},
	ir.ScalarSint:  {metadata.FormatR32SInt, metadata.FormatRG32SInt, metadata.FormatRGB32SInt, metadata.FormatRGBA32SInt},
	ir.ScalarUint:  {metadata.FormatR32UInt, metadata.FormatRG32UInt, metadata.FormatRGB32UInt, metadata.FormatRGBA32UInt},
}

func (r *reflector) format(h ir.TypeHandle) metadata.Format {
	var (
		scalar ir.ScalarType
		count  int
	)
	switch inner := r.typeInner(h).(type) {
	case ir.ScalarType:
		scalar, count = inner, 1
	case ir.VectorType:
		scalar, count = inner.Scalar, int(inner.Size)
	default:
		return metadata.FormatUndefined
	}
	formats, ok := vectorFormats[scalar.Kind]
	if !ok || scalar.Width != 4 || count < 1 || count > 4 {
		return metadata.FormatUndefined
	}
	return formats[count-1]
}
