package colour

import (
	"bytes"
	"strings"
	"testing"
)

func TestContrastText(t *testing.T) {
	tests := []struct {
		name string
		bg   RGB
		want RGB
	}{
		{name: "black background", bg: RGB{}, want: RGB{R: 255, G: 255, B: 255}},
		{name: "navy background", bg: RGB{B: 128}, want: RGB{R: 255, G: 255, B: 255}},
		{name: "white background", bg: RGB{R: 255, G: 255, B: 255}, want: RGB{}},
		{name: "yellow background", bg: RGB{R: 255, G: 255}, want: RGB{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contrastText(tt.bg); got != tt.want {
				t.Errorf("contrastText(%s) = %s, want %s", tt.bg.Hex(), got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestFormatThemePreview(t *testing.T) {
	out := FormatThemePreview(testThemePalette(), 9)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), out)
	}
	for _, hex := range testThemePalette().Hex() {
		if !strings.Contains(out, hex) {
			t.Errorf("preview missing %s", hex)
		}
	}
	if !strings.HasPrefix(lines[1], "complementary") {
		t.Errorf("row 2 = %q, want complementary row", lines[1])
	}
}

func TestSupportsANSIColoursNonFile(t *testing.T) {
	if SupportsANSIColours(&bytes.Buffer{}) {
		t.Error("SupportsANSIColours(buffer) = true")
	}
}
