package colour

import (
	"image/color"
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "green",
			color: color.RGBA{R: 0, G: 255, B: 0, A: 255},
			want:  RGB{R: 0, G: 255, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{R: 0, G: 0, B: 0, A: 255},
			want:  RGB{R: 0, G: 0, B: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConvertRGBToHex(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    string
	}{
		{name: "black", r: 0, g: 0, b: 0, want: "#000000"},
		{name: "white", r: 255, g: 255, b: 255, want: "#FFFFFF"},
		{name: "single digit channels", r: 1, g: 2, b: 15, want: "#01020F"},
		{name: "channel order", r: 0x12, g: 0x34, b: 0x56, want: "#123456"},
		{name: "digits are not reversed", r: 0xAB, g: 0xCD, b: 0xEF, want: "#ABCDEF"},
		{name: "red too large", r: 256, g: 0, b: 0, want: InvalidHex},
		{name: "green negative", r: 0, g: -1, b: 0, want: InvalidHex},
		{name: "blue too large", r: 0, g: 0, b: 1000, want: InvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertRGBToHex(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("ConvertRGBToHex(%d, %d, %d) = %q, want %q", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestConvertRGBToHexProperty(t *testing.T) {
	// Every channel value appears on each axis; the other axes step through
	// a coprime stride so the grid still touches both edges.
	for v := 0; v <= 255; v++ {
		for _, other := range []int{0, 1, 127, 128, 254, 255, (v * 7) % 256} {
			triples := [][3]int{{v, other, 255 - other}, {other, v, other}, {255 - other, other, v}}
			for _, tr := range triples {
				got := ConvertRGBToHex(tr[0], tr[1], tr[2])
				if len(got) != 7 || !hexPattern.MatchString(got) {
					t.Fatalf("ConvertRGBToHex(%v) = %q, not a #RRGGBB string", tr, got)
				}
				back, err := ParseHex(got)
				if err != nil {
					t.Fatalf("ParseHex(%q) error: %v", got, err)
				}
				if int(back.R) != tr[0] || int(back.G) != tr[1] || int(back.B) != tr[2] {
					t.Fatalf("ConvertRGBToHex(%v) = %q, decodes to %+v", tr, got, back)
				}
			}
		}
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{R: 0xaa, G: 0xbb, B: 0xcc}).Hex(); got != "#AABBCC" {
		t.Errorf("Hex() = %q, want %q", got, "#AABBCC")
	}
}

func TestCopyText(t *testing.T) {
	tests := []struct {
		name          string
		hex           string
		includeMarker bool
		want          string
	}{
		{name: "keep marker", hex: "#AABBCC", includeMarker: true, want: "#AABBCC"},
		{name: "strip marker", hex: "#AABBCC", includeMarker: false, want: "AABBCC"},
		{name: "no marker to strip", hex: "AABBCC", includeMarker: false, want: "AABBCC"},
		{name: "sentinel untouched", hex: InvalidHex, includeMarker: false, want: InvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CopyText(tt.hex, tt.includeMarker); got != tt.want {
				t.Errorf("CopyText(%q, %v) = %q, want %q", tt.hex, tt.includeMarker, got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{input: "#FF8000", want: RGB{R: 255, G: 128}},
		{input: "ff8000", want: RGB{R: 255, G: 128}},
		{input: "#12", wantErr: true},
		{input: "#GGGGGG", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
