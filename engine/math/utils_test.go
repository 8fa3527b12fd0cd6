package math

import "testing"

func TestMinOf(t *testing.T) {
	if got := MinOf[uint32](8, 4, 16); got != 4 {
		t.Errorf("MinOf(8, 4, 16) = %d, want 4", got)
	}
	if got := MinOf(3.5); got != 3.5 {
		t.Errorf("MinOf(3.5) = %v, want 3.5", got)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		v, align, want uint32
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{13, 16, 16},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := AlignUp(tt.v, tt.align); got != tt.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", tt.v, tt.align, got, tt.want)
		}
	}
}

func TestFloorPowerOfTwo(t *testing.T) {
	tests := map[uint32]uint32{0: 0, 1: 1, 3: 2, 4: 4, 6: 4, 17: 16}
	for v, want := range tests {
		if got := FloorPowerOfTwo(v); got != want {
			t.Errorf("FloorPowerOfTwo(%d) = %d, want %d", v, got, want)
		}
		if want != 0 && !IsPowerOfTwo(want) {
			t.Errorf("IsPowerOfTwo(%d) = false", want)
		}
	}
}
