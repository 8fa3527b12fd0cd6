package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// MinOf returns the smallest of the given values.
func MinOf[T constraints.Ordered](first T, rest ...T) T {
	m := first
	for _, v := range rest {
		if v < m {
			m = v
		}
	}
	return m
}

// AlignUp rounds `v` up to the next multiple of `alignment`, which must be a power of two.
func AlignUp[T constraints.Unsigned](v, alignment T) T {
	if alignment == 0 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}

func IsPowerOfTwo[T constraints.Unsigned](v T) bool {
	return v != 0 && v&(v-1) == 0
}

// FloorPowerOfTwo returns the largest power of two less than or equal to `v`, 0 for 0.
func FloorPowerOfTwo(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	r := uint32(1)
	for r <= v>>1 {
		r <<= 1
	}
	return r
}
