package pattern

import (
	"strings"
	"testing"
)

func TestDecodeSet(t *testing.T) {
	payload := `{
		"array_geometry": {"elements": [{"x": -0.5, "y": 0}, {"x": 0.5, "y": 0}]},
		"azimuth_pattern": {"angles": [-90, 0, 90], "magnitudes": [-30, 0, -30], "steering_angle": 15},
		"interference_pattern": {
			"x_grid": [[0, 1], [0, 1]],
			"y_grid": [[0, 0], [1, 1]],
			"magnitude": [[0, 0.5], [0.5, 1]],
			"steering_azimuth": 15
		},
		"pattern_3d": {
			"theta": [[0, 90], [0, 90]],
			"phi": [[0, 0], [180, 180]],
			"magnitude": [[1, 0.5], [1, 0.5]],
			"steering_azimuth": 15,
			"steering_elevation": 0
		}
	}`

	set, err := Decode(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if set.ArrayGeometry == nil || len(set.ArrayGeometry.Elements) != 2 {
		t.Errorf("expected 2 geometry elements, got %+v", set.ArrayGeometry)
	}
	if set.AzimuthPattern == nil || set.AzimuthPattern.SteeringAngle != 15 {
		t.Errorf("expected steering angle 15, got %+v", set.AzimuthPattern)
	}
	if set.InterferencePattern.Rows() != 2 || set.InterferencePattern.Cols() != 2 {
		t.Errorf("expected 2x2 interference grid, got %dx%d",
			set.InterferencePattern.Rows(), set.InterferencePattern.Cols())
	}
	if set.Pattern3D.PhiSteps() != 2 || set.Pattern3D.ThetaSteps() != 2 {
		t.Errorf("expected 2x2 3d pattern, got %dx%d",
			set.Pattern3D.PhiSteps(), set.Pattern3D.ThetaSteps())
	}

	for _, v := range []interface{ Validate() error }{
		set.ArrayGeometry, set.AzimuthPattern, set.InterferencePattern, set.Pattern3D,
	} {
		if err := v.Validate(); err != nil {
			t.Errorf("Validate() error: %v", err)
		}
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Error("expected error decoding invalid JSON, got nil")
	}
}

func TestAzimuthPatternValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       *AzimuthPattern
		wantErr bool
	}{
		{"valid", &AzimuthPattern{Angles: []float64{0, 1}, Magnitudes: []float64{0, -3}}, false},
		{"empty", &AzimuthPattern{}, true},
		{"length mismatch", &AzimuthPattern{Angles: []float64{0, 1}, Magnitudes: []float64{0}}, true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInterferenceGridValidate(t *testing.T) {
	valid := &InterferenceGrid{
		XGrid:     [][]float64{{0, 1}, {0, 1}},
		YGrid:     [][]float64{{0, 0}, {1, 1}},
		Magnitude: [][]float64{{0, 1}, {1, 0}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid grid: %v", err)
	}

	ragged := &InterferenceGrid{
		XGrid:     [][]float64{{0, 1}, {0, 1}},
		YGrid:     [][]float64{{0, 0}, {1, 1}},
		Magnitude: [][]float64{{0, 1}, {1}},
	}
	if err := ragged.Validate(); err == nil {
		t.Error("expected error for ragged magnitude, got nil")
	}

	mismatched := &InterferenceGrid{
		XGrid:     [][]float64{{0, 1, 2}, {0, 1, 2}},
		YGrid:     [][]float64{{0, 0}, {1, 1}},
		Magnitude: [][]float64{{0, 1}, {1, 0}},
	}
	if err := mismatched.Validate(); err == nil {
		t.Error("expected error for mismatched x_grid shape, got nil")
	}
}

func TestPattern3DValidate(t *testing.T) {
	p := &Pattern3D{
		Theta:     [][]float64{{0, 90}},
		Phi:       [][]float64{{0, 0}},
		Magnitude: [][]float64{{1, 1}},
	}
	if err := p.Validate(); err != nil {
		t.Errorf("valid pattern: %v", err)
	}

	p.Phi = [][]float64{{0}}
	if err := p.Validate(); err == nil {
		t.Error("expected error for mis-shaped phi, got nil")
	}

	var nilPattern *Pattern3D
	if err := nilPattern.Validate(); err == nil {
		t.Error("expected error for nil pattern, got nil")
	}
}
