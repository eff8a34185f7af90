package render

import (
	"image/color"
	"math"
)

// Plot colors shared by the 2D views.
var (
	ColorBackground = color.RGBA{16, 18, 24, 255}
	ColorGrid       = color.RGBA{90, 95, 110, 255}
	ColorAxis       = color.RGBA{160, 165, 180, 255}
	ColorText       = color.RGBA{230, 230, 235, 255}
	ColorTextDim    = color.RGBA{150, 150, 160, 255}
	ColorCurve      = color.RGBA{80, 170, 255, 255}
	ColorMarker     = color.RGBA{255, 120, 80, 255}
	ColorError      = color.RGBA{240, 90, 90, 255}
)

// Gray returns an opaque gray level, v in 0..255 on all three channels.
func Gray(v uint8) color.RGBA {
	return color.RGBA{v, v, v, 255}
}

// HSL converts hue/saturation/lightness (each in [0, 1]) to an opaque RGBA
// color. Magnitude colormaps use hue = 0.6*(1-m): high magnitude maps to
// blue, low to red.
func HSL(h, s, l float64) color.RGBA {
	h = h - math.Floor(h) // wrap into [0,1)

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return color.RGBA{v, v, v, 255}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToRGB(p, q, h+1.0/3.0)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3.0)

	return color.RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 255,
	}
}

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
	default:
		return p
	}
}

// Shade scales the RGB channels of a color by f (clamped to [0, 1]),
// keeping alpha. The software 3D renderer uses it for diffuse lighting.
func Shade(col color.RGBA, f float64) color.RGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float64(col.R) * f),
		G: uint8(float64(col.G) * f),
		B: uint8(float64(col.B) * f),
		A: col.A,
	}
}
