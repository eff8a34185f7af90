// Package main is the entry point for the interactive beamscope viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/beamscope/internal/beamform"
	"github.com/Faultbox/beamscope/internal/config"
	"github.com/Faultbox/beamscope/internal/logger"
	"github.com/Faultbox/beamscope/internal/pattern"
	"github.com/Faultbox/beamscope/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("=== beamscope ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfig() {
		if err := cfg.Save(); err != nil {
			logger.Log.Error("failed to write config", zap.Error(err))
			os.Exit(1)
		}
		logger.Log.Info("config written", zap.String("dir", config.ConfigDir()))
		return
	}

	set, err := loadPatterns(cfg)
	if err != nil {
		logger.Log.Error("failed to load patterns", zap.Error(err))
		os.Exit(1)
	}

	if err := viewer.Run(cfg, set); err != nil {
		logger.Log.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Log.Info("viewer closed normally")
}

// loadPatterns reads a payload file when one was given, otherwise
// synthesizes patterns from the configured array (or a named preset).
func loadPatterns(cfg *config.Config) (*pattern.Set, error) {
	if path := config.PayloadPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening payload: %w", err)
		}
		defer f.Close()

		set, err := pattern.Decode(f)
		if err != nil {
			return nil, err
		}
		logger.Log.Info("payload loaded", zap.String("path", path))
		return set, nil
	}

	params := beamform.Params{
		Elements:  cfg.Array.Elements,
		Spacing:   cfg.Array.SpacingWavelength,
		Frequency: cfg.Array.FrequencyHz,
		Kind:      cfg.Array.Kind,
		Curvature: cfg.Array.Curvature,
	}
	if name := config.Scenario(); name != "" {
		preset, err := beamform.Preset(name)
		if err != nil {
			return nil, err
		}
		params = preset.Params
		logger.Log.Info("scenario preset loaded",
			zap.String("name", preset.Name),
			zap.Int("elements", params.Elements))
	}

	arr, err := beamform.New(params)
	if err != nil {
		return nil, err
	}
	return arr.Set(cfg.Array.SteeringAzimuth, cfg.Array.SteeringElevation), nil
}
