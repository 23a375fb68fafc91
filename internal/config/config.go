// Package config loads optional analysis settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vocalab/vocaldose/internal/analysis"
	"github.com/vocalab/vocaldose/internal/mains"
)

// File mirrors the YAML configuration document. Every field is optional;
// zero values fall back to the analysis defaults.
type File struct {
	Analysis struct {
		SilenceThresholdDBA float64 `yaml:"silence_threshold_dba"`
		VoicingThreshold    float64 `yaml:"voicing_threshold"`
		MinPitchRMS         float64 `yaml:"min_pitch_rms"`
		F0Min               float64 `yaml:"f0_min"`
		F0Max               float64 `yaml:"f0_max"`
		ClipLevel           float64 `yaml:"clip_level"`
		CalibrationDropDB   float64 `yaml:"calibration_drop_db"`
	} `yaml:"analysis"`

	CPPS struct {
		// Pointer so an absent key keeps cepstral analysis enabled.
		Enabled   *bool   `yaml:"enabled"`
		WindowSec float64 `yaml:"window_sec"`
	} `yaml:"cpps"`

	HumFilter struct {
		Enabled   bool    `yaml:"enabled"`
		Frequency float64 `yaml:"frequency"` // Hz; 0 means detect from locale
		Harmonics int     `yaml:"harmonics"`
	} `yaml:"hum_filter"`
}

// Load reads and validates a configuration file. Unknown keys are rejected
// so typos fail loudly instead of silently keeping a default.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg File
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *File) validate() error {
	a := c.Analysis
	if a.F0Min < 0 || a.F0Max < 0 {
		return fmt.Errorf("pitch bounds must be positive")
	}
	if a.F0Min > 0 && a.F0Max > 0 && a.F0Min >= a.F0Max {
		return fmt.Errorf("f0_min (%.1f) must be below f0_max (%.1f)", a.F0Min, a.F0Max)
	}
	if a.VoicingThreshold < 0 || a.VoicingThreshold > 1 {
		return fmt.Errorf("voicing_threshold must be in [0, 1], got %.2f", a.VoicingThreshold)
	}
	if a.MinPitchRMS < 0 {
		return fmt.Errorf("min_pitch_rms must not be negative")
	}
	if a.ClipLevel < 0 || a.ClipLevel > 1 {
		return fmt.Errorf("clip_level must be in [0, 1], got %.2f", a.ClipLevel)
	}
	if a.CalibrationDropDB < 0 {
		return fmt.Errorf("calibration_drop_db must not be negative")
	}
	if c.CPPS.WindowSec < 0 {
		return fmt.Errorf("cpps window_sec must not be negative")
	}
	if c.HumFilter.Frequency < 0 || c.HumFilter.Harmonics < 0 {
		return fmt.Errorf("hum_filter values must not be negative")
	}
	return nil
}

// Apply overlays the file's non-zero settings on an analysis configuration.
func (c *File) Apply(cfg analysis.Config) analysis.Config {
	a := c.Analysis
	if a.SilenceThresholdDBA != 0 {
		cfg.SilenceThresholdDBA = a.SilenceThresholdDBA
	}
	if a.VoicingThreshold != 0 {
		cfg.VoicingThreshold = a.VoicingThreshold
	}
	if a.MinPitchRMS != 0 {
		cfg.MinPitchRMS = a.MinPitchRMS
	}
	if a.F0Min != 0 {
		cfg.F0Min = a.F0Min
	}
	if a.F0Max != 0 {
		cfg.F0Max = a.F0Max
	}
	if a.ClipLevel != 0 {
		cfg.ClipLevel = a.ClipLevel
	}
	if a.CalibrationDropDB != 0 {
		cfg.CalibrationDropDB = a.CalibrationDropDB
	}

	if c.CPPS.Enabled != nil {
		cfg.CPPSEnabled = *c.CPPS.Enabled
	}
	if c.CPPS.WindowSec != 0 {
		cfg.CPPSWindowSec = c.CPPS.WindowSec
	}

	cfg.HumFilterEnabled = c.HumFilter.Enabled
	if c.HumFilter.Enabled {
		cfg.HumFrequency = c.HumFilter.Frequency
		if cfg.HumFrequency == 0 {
			cfg.HumFrequency = mains.Detect()
		}
		if c.HumFilter.Harmonics != 0 {
			cfg.HumHarmonics = c.HumFilter.Harmonics
		}
	}
	return cfg
}
