package wgsl

import (
	"github.com/gogpu/naga/ir"

	"github.com/spaghettifunk/prism/engine/math"
)

// size returns the host-shareable size of a type in bytes following the
// WGSL memory layout rules, 0 for runtime-sized or opaque types.
func (r *reflector) size(h ir.TypeHandle) uint32 {
	size, _ := r.layout(h)
	return size
}

// layout returns the size and alignment of a type.
func (r *reflector) layout(h ir.TypeHandle) (uint32, uint32) {
	switch inner := r.typeInner(h).(type) {
	case ir.ScalarType:
		w := uint32(inner.Width)
		return w, w
	case ir.VectorType:
		return vectorLayout(inner.Size, inner.Scalar)
	case ir.MatrixType:
		colSize, colAlign := vectorLayout(inner.Rows, inner.Scalar)
		stride := math.AlignUp(colSize, colAlign)
		return stride * uint32(inner.Columns), colAlign
	case ir.ArrayType:
		elemSize, elemAlign := r.layout(inner.Base)
		if inner.Size.Constant == nil {
			return 0, elemAlign
		}
		stride := inner.Stride
		if stride == 0 {
			stride = math.AlignUp(elemSize, elemAlign)
		}
		return stride * *inner.Size.Constant, elemAlign
	case ir.StructType:
		var offset, align uint32 = 0, 1
		for _, m := range inner.Members {
			size, a := r.layout(m.Type)
			if a == 0 {
				a = 1
			}
			offset = math.AlignUp(offset, a) + size
			align = maxOf(a, align)
		}
		return math.AlignUp(offset, align), align
	default:
		return 0, 0
	}
}

func maxOf(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func vectorLayout(n ir.VectorSize, scalar ir.ScalarType) (uint32, uint32) {
	w := uint32(scalar.Width)
	size := uint32(n) * w
	if n == ir.Vec3 {
		return size, 4 * w
	}
	return size, size
}
