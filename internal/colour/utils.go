// Package colour provides utility functions for colour model conversion.
package colour

import (
	"math"
)

// HSL is a colour in hue/saturation/luminance form.
// H is in degrees [0, 360), S and L are in [0, 1].
type HSL struct {
	H float64
	S float64
	L float64
}

// normalise returns the channels scaled to [0, 1] with their max and min.
func (rgb RGB) normalise() (r, g, b, maxVal, minVal float64) {
	r = float64(rgb.R) / 255.0
	g = float64(rgb.G) / 255.0
	b = float64(rgb.B) / 255.0
	maxVal = math.Max(r, math.Max(g, b))
	minVal = math.Min(r, math.Min(g, b))
	return
}

// Chroma returns max-channel minus min-channel in normalised RGB.
func Chroma(rgb RGB) float64 {
	_, _, _, maxVal, minVal := rgb.normalise()
	return maxVal - minVal
}

// Hue returns the hue of rgb in degrees. Achromatic colours have hue 0.
func Hue(rgb RGB) float64 {
	r, g, b, maxVal, minVal := rgb.normalise()
	chroma := maxVal - minVal
	if chroma == 0 {
		return 0
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / chroma
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/chroma + 2
	default:
		h = (r-g)/chroma + 4
	}
	return h * 60
}

// Saturation returns the HSL saturation of rgb in [0, 1].
func Saturation(rgb RGB) float64 {
	_, _, _, maxVal, minVal := rgb.normalise()
	chroma := maxVal - minVal
	if chroma == 0 {
		return 0
	}
	if Luminance(rgb) <= 0.5 {
		return chroma / (maxVal + minVal)
	}
	return chroma / (2.0 - maxVal - minVal)
}

// Luminance returns the HSL luminance (mid-range of max and min) in [0, 1].
func Luminance(rgb RGB) float64 {
	_, _, _, maxVal, minVal := rgb.normalise()
	return (maxVal + minVal) / 2.0
}

// RGBToHSL converts RGB to HSL colour space.
func RGBToHSL(rgb RGB) HSL {
	return HSL{H: Hue(rgb), S: Saturation(rgb), L: Luminance(rgb)}
}

// HSLToRGB converts HSL to RGB colour space.
// Each channel is rounded and clamped to [0, 255], so out-of-range S or L
// still produce a valid colour.
func HSLToRGB(hsl HSL) RGB {
	if hsl.S == 0 {
		// Achromatic.
		v := toChannel(hsl.L)
		return RGB{R: v, G: v, B: v}
	}

	l, s := hsl.L, hsl.S
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	t := hsl.H / 360.0

	return RGB{
		R: toChannel(hueToRGB(p, q, t+1.0/3.0)),
		G: toChannel(hueToRGB(p, q, t)),
		B: toChannel(hueToRGB(p, q, t-1.0/3.0)),
	}
}

// hueToRGB evaluates one channel of the HSL inverse. t is a hue fraction and
// is wrapped into [0, 1] once.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// toChannel scales v in [0, 1] to a rounded, clamped 8-bit channel.
func toChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v*255))))
}
