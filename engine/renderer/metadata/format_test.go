package metadata

import "testing"

func TestGetFormatBits(t *testing.T) {
	tests := []struct {
		format    Format
		want      FormatBits
		wantTotal uint32
	}{
		{FormatD16UNorm, FormatBits{Depth: 16}, 16},
		{FormatD24UNormS8UInt, FormatBits{Depth: 24, Stencil: 8}, 32},
		{FormatD32Float, FormatBits{Depth: 32}, 32},
		{FormatD32FloatS8X24UInt, FormatBits{Depth: 32, Stencil: 8}, 64},
		{FormatRGBA8UNorm, FormatBits{Color: 32}, 32},
		{FormatRGBA32Float, FormatBits{Color: 128}, 128},
		{FormatR11G11B10Float, FormatBits{Color: 32}, 32},
		{FormatUndefined, FormatBits{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got, total := GetFormatBits(tt.format)
			if got != tt.want {
				t.Errorf("GetFormatBits(%v) bits = %+v, want %+v", tt.format, got, tt.want)
			}
			if total != tt.wantTotal {
				t.Errorf("GetFormatBits(%v) total = %d, want %d", tt.format, total, tt.wantTotal)
			}
		})
	}
}

func TestFormatPredicates(t *testing.T) {
	tests := []struct {
		format                         Format
		depth, stencil, color, compres bool
	}{
		{FormatD16UNorm, true, false, false, false},
		{FormatD24UNormS8UInt, true, true, false, false},
		{FormatD32FloatS8X24UInt, true, true, false, false},
		{FormatBGRA8UNormSRGB, false, false, true, false},
		{FormatBC3UNorm, false, false, true, true},
		{FormatUndefined, false, false, false, false},
		{Format(-1), false, false, false, false},
	}
	for _, tt := range tests {
		if got := IsDepthFormat(tt.format); got != tt.depth {
			t.Errorf("IsDepthFormat(%v) = %v, want %v", tt.format, got, tt.depth)
		}
		if got := IsStencilFormat(tt.format); got != tt.stencil {
			t.Errorf("IsStencilFormat(%v) = %v, want %v", tt.format, got, tt.stencil)
		}
		if got := IsColorFormat(tt.format); got != tt.color {
			t.Errorf("IsColorFormat(%v) = %v, want %v", tt.format, got, tt.color)
		}
		if got := IsCompressedFormat(tt.format); got != tt.compres {
			t.Errorf("IsCompressedFormat(%v) = %v, want %v", tt.format, got, tt.compres)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for f := FormatUndefined; f < formatCount; f++ {
		got, ok := ParseFormat(f.String())
		if !ok || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", f.String(), got, ok, f)
		}
	}
	if _, ok := ParseFormat("RGB565"); ok {
		t.Error("ParseFormat accepted an unknown name")
	}
}

func TestFormats(t *testing.T) {
	formats := Formats()
	if len(formats) != int(formatCount)-1 {
		t.Fatalf("len(Formats()) = %d, want %d", len(formats), formatCount-1)
	}
	for _, f := range formats {
		if f == FormatUndefined || f.String() == "Unknown" {
			t.Errorf("Formats() contains %v", f)
		}
	}
}
