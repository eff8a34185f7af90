package geom

import "math"

// WrapDegrees wraps an angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rotate2D rotates the point (x, y) about (cx, cy) by the given angle in
// degrees, counter-clockwise in a y-down pixel space.
func Rotate2D(x, y, cx, cy, deg float64) (float64, float64) {
	rad := Radians(deg)
	s, c := math.Sin(rad), math.Cos(rad)
	dx, dy := x-cx, y-cy
	return cx + dx*c - dy*s, cy + dx*s + dy*c
}
