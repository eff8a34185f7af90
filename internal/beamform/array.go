// Package beamform synthesizes pattern payloads for a phased antenna
// array: element geometry, azimuth cut, spatial interference grid and
// full 3D radiation pattern. It exists so the viewer can run without an
// external payload file.
package beamform

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/Faultbox/beamscope/internal/pattern"
)

// SpeedOfLight in meters per second.
const SpeedOfLight = 3e8

// Array kinds.
const (
	KindLinear = "linear"
	KindCurved = "curved"
)

// Params configures an array. Zero values fall back to an 8-element
// half-wavelength linear array at 1 GHz.
type Params struct {
	Elements  int
	Spacing   float64 // element spacing in wavelengths
	Frequency float64 // Hz
	Kind      string
	Curvature float64 // radians per element, curved arrays only
}

// Array is a phased antenna array with fixed element positions.
type Array struct {
	params     Params
	wavelength float64
	positions  [][3]float64 // meters
}

// New builds an array from params, filling in defaults for zero fields.
func New(p Params) (*Array, error) {
	if p.Elements == 0 {
		p.Elements = 8
	}
	if p.Spacing == 0 {
		p.Spacing = 0.5
	}
	if p.Frequency == 0 {
		p.Frequency = 1e9
	}
	if p.Kind == "" {
		p.Kind = KindLinear
	}
	if p.Elements < 1 {
		return nil, fmt.Errorf("beamform: need at least one element, got %d", p.Elements)
	}
	if p.Kind != KindLinear && p.Kind != KindCurved {
		return nil, fmt.Errorf("beamform: unknown array kind %q", p.Kind)
	}

	a := &Array{
		params:     p,
		wavelength: SpeedOfLight / p.Frequency,
	}
	a.positions = a.calculatePositions()
	return a, nil
}

// Wavelength returns the operating wavelength in meters.
func (a *Array) Wavelength() float64 { return a.wavelength }

// Params returns the array configuration.
func (a *Array) Params() Params { return a.params }

func (a *Array) calculatePositions() [][3]float64 {
	n := a.params.Elements
	spacing := a.params.Spacing * a.wavelength
	positions := make([][3]float64, n)

	if a.params.Kind == KindLinear || a.params.Curvature == 0 {
		for i := range positions {
			positions[i][0] = float64(i) * spacing
		}
		return positions
	}

	// Curved array: elements placed along an arc. The curvature is the
	// angular step between adjacent elements.
	curv := a.params.Curvature
	totalAngle := curv * float64(n-1)
	radius := spacing / (2 * math.Sin(curv/2))

	for i := range positions {
		var angle float64
		if n > 1 {
			angle = -totalAngle/2 + totalAngle*float64(i)/float64(n-1)
		}
		positions[i][0] = radius * math.Sin(angle)
		positions[i][1] = radius * (1 - math.Cos(angle))
	}
	return positions
}

// Geometry returns the element positions for the layout view.
func (a *Array) Geometry() *pattern.ArrayGeometry {
	g := &pattern.ArrayGeometry{Elements: make([]pattern.Element, len(a.positions))}
	for i, p := range a.positions {
		g.Elements[i] = pattern.Element{X: p[0], Y: p[1]}
	}
	return g
}

// steeringVector returns the complex phase vector for a look direction.
// Theta is the azimuth and phi the elevation, both in degrees.
func (a *Array) steeringVector(thetaDeg, phiDeg float64) []complex128 {
	theta := thetaDeg * math.Pi / 180
	phi := phiDeg * math.Pi / 180

	k := 2 * math.Pi / a.wavelength
	kVec := [3]float64{
		k * math.Sin(theta) * math.Cos(phi),
		k * math.Sin(theta) * math.Sin(phi),
		k * math.Cos(theta),
	}

	v := make([]complex128, len(a.positions))
	for i, pos := range a.positions {
		phase := pos[0]*kVec[0] + pos[1]*kVec[1] + pos[2]*kVec[2]
		v[i] = cmplx.Exp(complex(0, phase))
	}
	return v
}

// arrayFactor returns |w . s(theta, phi)| for one look direction.
func (a *Array) arrayFactor(weights []complex128, thetaDeg, phiDeg float64) float64 {
	sv := a.steeringVector(thetaDeg, phiDeg)
	var sum complex128
	for i, w := range weights {
		sum += w * sv[i]
	}
	return cmplx.Abs(sum)
}

// AzimuthPattern computes the far-field azimuth cut for a steering angle.
// The cut covers the forward hemisphere, -90 to 90 degrees, and the
// magnitudes are normalized to a 0 dB peak.
func (a *Array) AzimuthPattern(steeringDeg float64) *pattern.AzimuthPattern {
	weights := a.steeringVector(steeringDeg, 0)
	angles := linspace(-90, 90, 361)

	af := make([]float64, len(angles))
	maxAF := 0.0
	for i, ang := range angles {
		af[i] = a.arrayFactor(weights, ang, 0)
		if af[i] > maxAF {
			maxAF = af[i]
		}
	}

	db := make([]float64, len(af))
	for i, v := range af {
		db[i] = 20 * math.Log10(v/maxAF+1e-10)
	}

	return &pattern.AzimuthPattern{
		Angles:        angles,
		Magnitudes:    db,
		SteeringAngle: steeringDeg,
	}
}

// Pattern3D computes the full radiation pattern on a 72x36 spherical
// grid, normalized to a unit peak.
func (a *Array) Pattern3D(steeringAz, steeringEl float64) *pattern.Pattern3D {
	weights := a.steeringVector(steeringAz, steeringEl)
	thetaRange := linspace(0, 360, 72)
	phiRange := linspace(0, 180, 36)

	rows, cols := len(phiRange), len(thetaRange)
	theta := make([][]float64, rows)
	phi := make([][]float64, rows)
	mag := make([][]float64, rows)

	maxMag := 0.0
	for i := 0; i < rows; i++ {
		theta[i] = make([]float64, cols)
		phi[i] = make([]float64, cols)
		mag[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			theta[i][j] = thetaRange[j]
			phi[i][j] = phiRange[i]
			mag[i][j] = a.arrayFactor(weights, thetaRange[j], phiRange[i])
			if mag[i][j] > maxMag {
				maxMag = mag[i][j]
			}
		}
	}
	if maxMag > 0 {
		for i := range mag {
			for j := range mag[i] {
				mag[i][j] /= maxMag
			}
		}
	}

	return &pattern.Pattern3D{
		Theta:             theta,
		Phi:               phi,
		Magnitude:         mag,
		SteeringAzimuth:   steeringAz,
		SteeringElevation: steeringEl,
	}
}

// Interference computes the spatial field-intensity grid on the z=0
// observation plane. Grid coordinates are in wavelengths; the x range is
// auto-scaled to twice the array span and the y range shows the field
// propagating forward. Magnitude is normalized to [0, 1].
func (a *Array) Interference(steeringAz, steeringEl float64, resolution int) *pattern.InterferenceGrid {
	if resolution <= 0 {
		resolution = 100
	}
	weights := a.steeringVector(steeringAz, steeringEl)

	// x range in wavelengths, centered on the array.
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range a.positions {
		x := p[0] / a.wavelength
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	span := math.Max(maxX-minX, 1.0)
	center := (maxX + minX) / 2
	xs := linspace(center-span*2, center+span*2, resolution)
	ys := linspace(-3.0, 8.0, resolution)

	k := 2 * math.Pi / a.wavelength
	minDist := a.wavelength / 100

	xGrid := make([][]float64, resolution)
	yGrid := make([][]float64, resolution)
	mag := make([][]float64, resolution)

	maxVal := 0.0
	for i := 0; i < resolution; i++ {
		xGrid[i] = make([]float64, resolution)
		yGrid[i] = make([]float64, resolution)
		mag[i] = make([]float64, resolution)
		for j := 0; j < resolution; j++ {
			xGrid[i][j] = xs[j]
			yGrid[i][j] = ys[i]

			xPhys := xs[j] * a.wavelength
			yPhys := ys[i] * a.wavelength

			var field complex128
			for e, pos := range a.positions {
				dx := xPhys - pos[0]
				dy := yPhys - pos[1]
				dz := -pos[2]
				dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if dist < minDist {
					dist = minDist
				}
				// Plane-wave phase only. Dropping the 1/r falloff keeps
				// the interference fringes visible across the grid.
				field += weights[e] * cmplx.Exp(complex(0, -k*dist))
			}

			// Intensity rather than amplitude, for contrast.
			v := cmplx.Abs(field)
			mag[i][j] = v * v
			if mag[i][j] > maxVal {
				maxVal = mag[i][j]
			}
		}
	}
	if maxVal > 0 {
		for i := range mag {
			for j := range mag[i] {
				mag[i][j] /= maxVal
			}
		}
	}

	return &pattern.InterferenceGrid{
		XGrid:           xGrid,
		YGrid:           yGrid,
		Magnitude:       mag,
		SteeringAzimuth: steeringAz,
	}
}

// Set computes every view's payload at once.
func (a *Array) Set(steeringAz, steeringEl float64) *pattern.Set {
	return &pattern.Set{
		ArrayGeometry:       a.Geometry(),
		AzimuthPattern:      a.AzimuthPattern(steeringAz),
		InterferencePattern: a.Interference(steeringAz, steeringEl, 100),
		Pattern3D:           a.Pattern3D(steeringAz, steeringEl),
	}
}

// linspace returns n evenly spaced samples over [start, stop], inclusive.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
