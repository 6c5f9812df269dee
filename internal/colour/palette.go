// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// IsGrey reports whether all three channels are equal.
func (rgb RGB) IsGrey() bool {
	return rgb.R == rgb.G && rgb.G == rgb.B
}

// ToRGB converts a color.Color to RGB, dropping alpha.
func ToRGB(c color.Color) RGB {
	// Non-premultiplied so translucent pixels keep their colour.
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (either case).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Centroid is one cluster centre produced by an Extractor.
type Centroid struct {
	RGB RGB
	// Brightness is the mean of the three channels.
	Brightness float64
	// Index is the order the extractor produced this centre in. Used to break
	// brightness ties.
	Index int
	// Size is the number of pixels assigned to the cluster.
	Size int
}

// ThemePalette is the final output of the palette pipeline: the retained base
// colours plus one complementary and one monochromatic variant per base colour.
// Consumers map position to UI role, so order matters.
type ThemePalette struct {
	Base          []RGB
	Complementary []RGB
	Monochromatic []RGB
}

// Len returns the number of colours in the full sequence.
func (p *ThemePalette) Len() int {
	return len(p.Base) + len(p.Complementary) + len(p.Monochromatic)
}

// Sequence returns base colours, then complements, then monochromes.
func (p *ThemePalette) Sequence() []RGB {
	seq := make([]RGB, 0, p.Len())
	seq = append(seq, p.Base...)
	seq = append(seq, p.Complementary...)
	seq = append(seq, p.Monochromatic...)
	return seq
}

// Hex returns the sequence as uppercase hex strings.
func (p *ThemePalette) Hex() []string {
	return hexAll(p.Sequence())
}

// String joins the hex sequence with ", ".
func (p *ThemePalette) String() string {
	return strings.Join(p.Hex(), ", ")
}

// ThemePaletteDoc is the structured (JSON/YAML) form of a ThemePalette.
type ThemePaletteDoc struct {
	Count         int      `json:"count" yaml:"count"`
	Base          []string `json:"base" yaml:"base"`
	Complementary []string `json:"complementary" yaml:"complementary"`
	Monochromatic []string `json:"monochromatic" yaml:"monochromatic"`
	Colours       []string `json:"colours" yaml:"colours"`
}

// Doc converts the palette to its structured form.
func (p *ThemePalette) Doc() ThemePaletteDoc {
	return ThemePaletteDoc{
		Count:         p.Len(),
		Base:          hexAll(p.Base),
		Complementary: hexAll(p.Complementary),
		Monochromatic: hexAll(p.Monochromatic),
		Colours:       p.Hex(),
	}
}

// ToJSON converts the palette to indented JSON.
func (p *ThemePalette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.Doc(), "", "  ")
}

// ToYAML converts the palette to YAML.
func (p *ThemePalette) ToYAML() ([]byte, error) {
	return yaml.Marshal(p.Doc())
}

func hexAll(colours []RGB) []string {
	out := make([]string, len(colours))
	for i, c := range colours {
		out[i] = c.Hex()
	}
	return out
}
