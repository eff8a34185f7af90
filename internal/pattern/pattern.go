// Package pattern defines the pattern-data payload consumed by the
// visualization views: array geometry, azimuth cut, spatial interference
// grid and full 3D radiation pattern. A payload is immutable once decoded
// and is replaced wholesale by the next one.
package pattern

import (
	"encoding/json"
	"fmt"
	"io"
)

// Element is a single array element position in physical units (meters).
type Element struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ArrayGeometry holds the ordered element positions. Order defines the
// 1-based display index.
type ArrayGeometry struct {
	Elements []Element `json:"elements"`
}

// AzimuthPattern is a far-field cut: co-indexed angles (degrees) and
// magnitudes (dB, unbounded below).
type AzimuthPattern struct {
	Angles        []float64 `json:"angles"`
	Magnitudes    []float64 `json:"magnitudes"`
	SteeringAngle float64   `json:"steering_angle"`
}

// InterferenceGrid is a spatial field-strength grid. All three matrices
// share the same [rows][cols] shape and magnitude is pre-normalized to
// [0, 1] by the producer.
type InterferenceGrid struct {
	XGrid           [][]float64 `json:"x_grid"`
	YGrid           [][]float64 `json:"y_grid"`
	Magnitude       [][]float64 `json:"magnitude"`
	SteeringAzimuth float64     `json:"steering_azimuth,omitempty"`
}

// Pattern3D is a full radiation pattern sampled on a spherical grid,
// addressed as [phiSteps][thetaSteps]. Theta is the polar angle from +Z,
// phi the azimuth in the XY plane, both in degrees. Magnitude is
// normalized to [0, 1].
type Pattern3D struct {
	Theta             [][]float64 `json:"theta"`
	Phi               [][]float64 `json:"phi"`
	Magnitude         [][]float64 `json:"magnitude"`
	SteeringAzimuth   float64     `json:"steering_azimuth"`
	SteeringElevation float64     `json:"steering_elevation"`
}

// Set is one complete payload as produced by a calculate-all response.
// Any slice may be nil when the producer omitted that view's data.
type Set struct {
	ArrayGeometry       *ArrayGeometry    `json:"array_geometry,omitempty"`
	AzimuthPattern      *AzimuthPattern   `json:"azimuth_pattern,omitempty"`
	InterferencePattern *InterferenceGrid `json:"interference_pattern,omitempty"`
	Pattern3D           *Pattern3D        `json:"pattern_3d,omitempty"`
}

// Decode reads a JSON payload set from r.
func Decode(r io.Reader) (*Set, error) {
	var s Set
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding pattern payload: %w", err)
	}
	return &s, nil
}

// Validate checks that the geometry has at least one element.
func (g *ArrayGeometry) Validate() error {
	if g == nil || len(g.Elements) == 0 {
		return fmt.Errorf("array geometry: no elements")
	}
	return nil
}

// Validate checks that angles and magnitudes are co-indexed and non-empty.
func (p *AzimuthPattern) Validate() error {
	if p == nil || len(p.Angles) == 0 {
		return fmt.Errorf("azimuth pattern: no samples")
	}
	if len(p.Angles) != len(p.Magnitudes) {
		return fmt.Errorf("azimuth pattern: %d angles vs %d magnitudes",
			len(p.Angles), len(p.Magnitudes))
	}
	return nil
}

// Validate checks that all three matrices share one rectangular shape.
func (g *InterferenceGrid) Validate() error {
	if g == nil {
		return fmt.Errorf("interference grid: missing")
	}
	rows, cols, err := gridShape(g.Magnitude)
	if err != nil {
		return fmt.Errorf("interference grid magnitude: %w", err)
	}
	for _, m := range []struct {
		name string
		grid [][]float64
	}{
		{"x_grid", g.XGrid},
		{"y_grid", g.YGrid},
	} {
		r, c, err := gridShape(m.grid)
		if err != nil {
			return fmt.Errorf("interference grid %s: %w", m.name, err)
		}
		if r != rows || c != cols {
			return fmt.Errorf("interference grid %s: shape %dx%d, want %dx%d",
				m.name, r, c, rows, cols)
		}
	}
	return nil
}

// Rows returns the grid row count (0 when empty).
func (g *InterferenceGrid) Rows() int { return len(g.Magnitude) }

// Cols returns the grid column count (0 when empty).
func (g *InterferenceGrid) Cols() int {
	if len(g.Magnitude) == 0 {
		return 0
	}
	return len(g.Magnitude[0])
}

// Validate checks that theta, phi and magnitude are co-shaped.
func (p *Pattern3D) Validate() error {
	if p == nil {
		return fmt.Errorf("3d pattern: missing")
	}
	rows, cols, err := gridShape(p.Magnitude)
	if err != nil {
		return fmt.Errorf("3d pattern magnitude: %w", err)
	}
	for _, m := range []struct {
		name string
		grid [][]float64
	}{
		{"theta", p.Theta},
		{"phi", p.Phi},
	} {
		r, c, err := gridShape(m.grid)
		if err != nil {
			return fmt.Errorf("3d pattern %s: %w", m.name, err)
		}
		if r != rows || c != cols {
			return fmt.Errorf("3d pattern %s: shape %dx%d, want %dx%d",
				m.name, r, c, rows, cols)
		}
	}
	return nil
}

// PhiSteps returns the number of phi rows.
func (p *Pattern3D) PhiSteps() int { return len(p.Magnitude) }

// ThetaSteps returns the number of theta columns.
func (p *Pattern3D) ThetaSteps() int {
	if len(p.Magnitude) == 0 {
		return 0
	}
	return len(p.Magnitude[0])
}

// gridShape returns the dimensions of a rectangular matrix, or an error
// when the matrix is empty or ragged.
func gridShape(m [][]float64) (rows, cols int, err error) {
	if len(m) == 0 {
		return 0, 0, fmt.Errorf("empty matrix")
	}
	cols = len(m[0])
	if cols == 0 {
		return 0, 0, fmt.Errorf("empty rows")
	}
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	return len(m), cols, nil
}
