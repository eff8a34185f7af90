// Package config handles application configuration loading and management.
package config

// Config holds all beamscope settings.
type Config struct {
	Display Display `yaml:"display"`
	Camera  Camera  `yaml:"camera"`
	Array   Array   `yaml:"array"`
	Logging Logging `yaml:"logging"`
}

// Display holds window and plot layout settings. These used to be fixed
// literals in the views; they are configuration now.
type Display struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Margin     int  `yaml:"margin"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// Camera holds the 3D orbit camera limits.
type Camera struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Damping     float64 `yaml:"damping"`
}

// Array holds the default phased-array configuration used when no payload
// file is supplied and patterns are synthesized locally.
type Array struct {
	Elements          int     `yaml:"elements"`
	SpacingWavelength float64 `yaml:"spacing_wavelengths"`
	FrequencyHz       float64 `yaml:"frequency_hz"`
	Kind              string  `yaml:"kind"` // "linear" or "curved"
	Curvature         float64 `yaml:"curvature"`
	SteeringAzimuth   float64 `yaml:"steering_azimuth"`
	SteeringElevation float64 `yaml:"steering_elevation"`
}

// Logging holds logging settings.
type Logging struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: Display{
			Width:      800,
			Height:     600,
			Margin:     50,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: Camera{
			MinDistance: 2.0,
			MaxDistance: 10.0,
			Damping:     0.05,
		},
		Array: Array{
			Elements:          8,
			SpacingWavelength: 0.5,
			FrequencyHz:       1e9,
			Kind:              "linear",
			Curvature:         0,
			SteeringAzimuth:   0,
			SteeringElevation: 0,
		},
		Logging: Logging{
			Level:   "info",
			LogFile: "",
		},
	}
}
