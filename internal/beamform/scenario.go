package beamform

import (
	"fmt"
	"sort"
)

// Scenario is a named array preset for a real-world application.
type Scenario struct {
	Name        string
	Description string
	Params      Params
}

var presets = map[string]Scenario{
	"5g": {
		Name:        "5G Communications",
		Description: "5G mmWave base station with 64-element array at 28 GHz, beamforming to multiple users",
		Params: Params{
			Elements:  64,
			Spacing:   0.5,
			Frequency: 28e9,
			Kind:      KindLinear,
		},
	},
	"ultrasound": {
		Name:        "Ultrasound Imaging",
		Description: "Medical ultrasound with 128-element linear array at 5 MHz for diagnostic imaging",
		Params: Params{
			Elements:  128,
			Spacing:   0.5,
			Frequency: 5e6,
			Kind:      KindLinear,
		},
	},
	"tumor_ablation": {
		Name:        "Tumor Ablation",
		Description: "Focused ultrasound surgery with 256-element curved array at 1 MHz for non-invasive tumor ablation",
		Params: Params{
			Elements:  256,
			Spacing:   0.5,
			Frequency: 1e6,
			Kind:      KindCurved,
			Curvature: 0.2,
		},
	},
}

// Preset returns the scenario registered under name.
func Preset(name string) (Scenario, error) {
	s, ok := presets[name]
	if !ok {
		return Scenario{}, fmt.Errorf("beamform: unknown preset %q, available: %v", name, PresetNames())
	}
	return s, nil
}

// PresetNames returns the registered preset keys in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
