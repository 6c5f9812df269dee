// Package colour provides harmonic colour generation.
package colour

import (
	"math"
)

const (
	// MonochromaticOffset is added to saturation and removed from luminance
	// when deriving a monochromatic variant.
	MonochromaticOffset = 0.10

	// SaturationCeiling is the upper bound for a derived saturation.
	SaturationCeiling = 1.0

	// LegacySaturationCeiling reproduces the historical clamp of saturation
	// against the 8-bit channel maximum instead of 1.0. With it, saturation
	// can exceed 1 and the inverse conversion relies on channel clamping.
	LegacySaturationCeiling = 255.0
)

// HarmonyOptions controls the monochromatic generator.
type HarmonyOptions struct {
	// Offset is the saturation increase and luminance decrease. Zero means
	// MonochromaticOffset.
	Offset float64
	// Ceiling bounds the derived saturation. Zero means SaturationCeiling.
	Ceiling float64
}

// DefaultHarmonyOptions returns the default harmony options.
func DefaultHarmonyOptions() HarmonyOptions {
	return HarmonyOptions{
		Offset:  MonochromaticOffset,
		Ceiling: SaturationCeiling,
	}
}

// LegacyHarmonyOptions returns options that keep the 255 saturation ceiling.
func LegacyHarmonyOptions() HarmonyOptions {
	return HarmonyOptions{
		Offset:  MonochromaticOffset,
		Ceiling: LegacySaturationCeiling,
	}
}

func (o HarmonyOptions) withDefaults() HarmonyOptions {
	if o.Offset == 0 {
		o.Offset = MonochromaticOffset
	}
	if o.Ceiling == 0 {
		o.Ceiling = SaturationCeiling
	}
	return o
}

// Complementary rotates the hue of rgb by 180 degrees, keeping saturation and
// luminance.
func Complementary(rgb RGB) RGB {
	hue := math.Mod(Hue(rgb)+180, 360)
	return HSLToRGB(HSL{H: hue, S: Saturation(rgb), L: Luminance(rgb)})
}

// Monochromatic raises saturation and lowers luminance of rgb by opts.Offset,
// keeping the hue. Greys stay grey: their hue is undefined, so raising their
// saturation would tint them red.
func Monochromatic(rgb RGB, opts HarmonyOptions) RGB {
	opts = opts.withDefaults()

	s := Saturation(rgb)
	if Chroma(rgb) != 0 {
		s = math.Min(s+opts.Offset, opts.Ceiling)
	}
	l := math.Max(Luminance(rgb)-opts.Offset, 0)

	return HSLToRGB(HSL{H: Hue(rgb), S: s, L: l})
}

// Harmonise derives the complementary and monochromatic variant of every base
// colour, preserving order.
func Harmonise(base []RGB, opts HarmonyOptions) *ThemePalette {
	p := &ThemePalette{
		Base:          make([]RGB, len(base)),
		Complementary: make([]RGB, len(base)),
		Monochromatic: make([]RGB, len(base)),
	}
	copy(p.Base, base)
	for i, c := range base {
		p.Complementary[i] = Complementary(c)
		p.Monochromatic[i] = Monochromatic(c, opts)
	}
	return p
}
