package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test display defaults
	if cfg.Display.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Display.Height)
	}
	if cfg.Display.Margin != 50 {
		t.Errorf("expected margin 50, got %d", cfg.Display.Margin)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Display.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test camera defaults
	if cfg.Camera.MinDistance != 2.0 {
		t.Errorf("expected min distance 2.0, got %f", cfg.Camera.MinDistance)
	}
	if cfg.Camera.MaxDistance != 10.0 {
		t.Errorf("expected max distance 10.0, got %f", cfg.Camera.MaxDistance)
	}
	if cfg.Camera.Damping != 0.05 {
		t.Errorf("expected damping 0.05, got %f", cfg.Camera.Damping)
	}

	// Test array defaults
	if cfg.Array.Elements != 8 {
		t.Errorf("expected 8 elements, got %d", cfg.Array.Elements)
	}
	if cfg.Array.SpacingWavelength != 0.5 {
		t.Errorf("expected spacing 0.5, got %f", cfg.Array.SpacingWavelength)
	}
	if cfg.Array.Kind != "linear" {
		t.Errorf("expected kind 'linear', got %s", cfg.Array.Kind)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1280
  height: 720
  margin: 40
  fullscreen: true
  vsync: false

camera:
  min_distance: 1.5
  max_distance: 20.0
  damping: 0.1

array:
  elements: 16
  spacing_wavelengths: 0.25
  frequency_hz: 3.5e9
  kind: "curved"
  curvature: 0.3
  steering_azimuth: 30
  steering_elevation: 10

logging:
  level: "debug"
  log_file: "beamscope.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Display.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Display.Height)
	}
	if cfg.Display.Margin != 40 {
		t.Errorf("expected margin 40, got %d", cfg.Display.Margin)
	}
	if !cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Display.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Camera.MaxDistance != 20.0 {
		t.Errorf("expected max distance 20.0, got %f", cfg.Camera.MaxDistance)
	}

	if cfg.Array.Elements != 16 {
		t.Errorf("expected 16 elements, got %d", cfg.Array.Elements)
	}
	if cfg.Array.Kind != "curved" {
		t.Errorf("expected kind 'curved', got %s", cfg.Array.Kind)
	}
	if cfg.Array.SteeringAzimuth != 30 {
		t.Errorf("expected steering azimuth 30, got %f", cfg.Array.SteeringAzimuth)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "beamscope.log" {
		t.Errorf("expected log file 'beamscope.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("display:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
			},
			verify: func(cfg *Config) {
				if cfg.Display.Width != 1920 {
					t.Errorf("expected width 1920, got %d", cfg.Display.Width)
				}
				if cfg.Display.Height != 1080 {
					t.Errorf("expected height 1080, got %d", cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Display.Width = 1024
	cfg.Array.Elements = 64
	cfg.Array.Kind = "curved"
	cfg.Array.Curvature = 0.2

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}

	if loaded.Display.Width != 1024 {
		t.Errorf("expected width 1024 after round trip, got %d", loaded.Display.Width)
	}
	if loaded.Array.Elements != 64 {
		t.Errorf("expected 64 elements after round trip, got %d", loaded.Array.Elements)
	}
	if loaded.Array.Kind != "curved" {
		t.Errorf("expected kind 'curved' after round trip, got %s", loaded.Array.Kind)
	}
	if loaded.Array.Curvature != 0.2 {
		t.Errorf("expected curvature 0.2 after round trip, got %f", loaded.Array.Curvature)
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
display:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Display.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Display.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Display.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Display.Height)
	}
}
