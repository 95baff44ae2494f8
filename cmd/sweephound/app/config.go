package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/locate"
	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/track"
)

// Config represents the main application configuration.
type Config struct {
	Settings Settings        `yaml:"settings"`
	Analysis AnalysisConfig  `yaml:"analysis"`
	Storage  StorageConfig   `yaml:"storage"`
	Vantages []VantageConfig `yaml:"vantages"`
}

// Settings represents global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// AnalysisConfig carries every threshold the analysis honors. Zero
// values are replaced by defaults; explicit invalid values fail
// validation before any file is read.
type AnalysisConfig struct {
	Bands                 []BandConfig `yaml:"bands"`
	TrackedFrequenciesMHz []float64    `yaml:"trackedFrequenciesMHz"`

	BinToleranceHz    float64  `yaml:"binToleranceHz"`
	DeltaThresholdDB  float64  `yaml:"deltaThresholdDB"`
	SignalFloorDBm    *float64 `yaml:"signalFloorDBm"`
	TxPowerDBm        float64  `yaml:"txPowerDBm"`
	StableVarianceDB2 float64  `yaml:"stableVarianceDB2"`
	DriftSlopeDB      float64  `yaml:"driftSlopeDB"`
	MultipathMultiple float64  `yaml:"multipathMultiple"`
	Unit              string   `yaml:"unit"`
}

// BandConfig is a named frequency band of interest.
type BandConfig struct {
	Name    string  `yaml:"name"`
	LowMHz  float64 `yaml:"lowMHz"`
	HighMHz float64 `yaml:"highMHz"`
}

// StorageConfig represents archive settings.
type StorageConfig struct {
	DataDirectory string `yaml:"dataDirectory"`
}

// VantageConfig describes an observation location and where its
// directional captures live.
type VantageConfig struct {
	Name              string  `yaml:"name"`
	NorthFeet         float64 `yaml:"northFeet"`
	EastFeet          float64 `yaml:"eastFeet"`
	AntennaHeightFeet float64 `yaml:"antennaHeightFeet"`
	Directory         string  `yaml:"directory"`
}

// DefaultConfig returns a configuration with every threshold at its
// documented default and a single band covering the 700 MHz public
// safety block the original investigation focused on.
func DefaultConfig() *Config {
	floor := float64(detect.DefaultFloorDBm)
	return &Config{
		Settings: Settings{LogLevel: "info"},
		Analysis: AnalysisConfig{
			Bands: []BandConfig{
				{Name: "700 MHz block", LowMHz: 758, HighMHz: 768},
			},
			TrackedFrequenciesMHz: []float64{760, 763, 766, 851},
			BinToleranceHz:        spectrum.DefaultTolerance,
			DeltaThresholdDB:      detect.DefaultThresholdDB,
			SignalFloorDBm:        &floor,
			TxPowerDBm:            locate.DefaultTxPowerDBm,
			StableVarianceDB2:     track.DefaultStableVarianceDB2,
			DriftSlopeDB:          track.DefaultDriftSlopeDB,
			MultipathMultiple:     detect.DefaultVarianceMultiple,
			Unit:                  string(locate.Feet),
		},
	}
}

// LoadConfig reads and validates a YAML configuration file. An empty
// path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	applyDefaults(config)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyDefaults(c *Config) {
	d := DefaultConfig()
	if c.Analysis.BinToleranceHz == 0 {
		c.Analysis.BinToleranceHz = d.Analysis.BinToleranceHz
	}
	if c.Analysis.DeltaThresholdDB == 0 {
		c.Analysis.DeltaThresholdDB = d.Analysis.DeltaThresholdDB
	}
	if c.Analysis.SignalFloorDBm == nil {
		c.Analysis.SignalFloorDBm = d.Analysis.SignalFloorDBm
	}
	if c.Analysis.TxPowerDBm == 0 {
		c.Analysis.TxPowerDBm = d.Analysis.TxPowerDBm
	}
	if c.Analysis.StableVarianceDB2 == 0 {
		c.Analysis.StableVarianceDB2 = d.Analysis.StableVarianceDB2
	}
	if c.Analysis.DriftSlopeDB == 0 {
		c.Analysis.DriftSlopeDB = d.Analysis.DriftSlopeDB
	}
	if c.Analysis.MultipathMultiple == 0 {
		c.Analysis.MultipathMultiple = d.Analysis.MultipathMultiple
	}
	if c.Analysis.Unit == "" {
		c.Analysis.Unit = d.Analysis.Unit
	}
	if len(c.Analysis.Bands) == 0 {
		c.Analysis.Bands = d.Analysis.Bands
	}
	if len(c.Analysis.TrackedFrequenciesMHz) == 0 {
		c.Analysis.TrackedFrequenciesMHz = d.Analysis.TrackedFrequenciesMHz
	}
}

// Validate rejects configurations that would silently corrupt the
// analysis. It runs before any capture file is opened.
func (c *Config) Validate() error {
	a := &c.Analysis
	switch {
	case a.BinToleranceHz < 0:
		return fmt.Errorf("configuration: binToleranceHz must not be negative, got %f", a.BinToleranceHz)
	case a.DeltaThresholdDB < 0:
		return fmt.Errorf("configuration: deltaThresholdDB must not be negative, got %f", a.DeltaThresholdDB)
	case a.StableVarianceDB2 < 0:
		return fmt.Errorf("configuration: stableVarianceDB2 must not be negative, got %f", a.StableVarianceDB2)
	case a.DriftSlopeDB < 0:
		return fmt.Errorf("configuration: driftSlopeDB must not be negative, got %f", a.DriftSlopeDB)
	case a.MultipathMultiple <= 0:
		return fmt.Errorf("configuration: multipathMultiple must be positive, got %f", a.MultipathMultiple)
	case !locate.Unit(a.Unit).Valid():
		return fmt.Errorf("configuration: unit must be %q or %q, got %q", locate.Feet, locate.Meters, a.Unit)
	}

	for _, b := range a.Bands {
		if b.LowMHz >= b.HighMHz {
			return fmt.Errorf("configuration: band %q has invalid range %f-%f MHz", b.Name, b.LowMHz, b.HighMHz)
		}
	}

	seen := make(map[string]bool)
	for _, v := range c.Vantages {
		if v.Name == "" {
			return fmt.Errorf("configuration: vantage with empty name")
		}
		if seen[v.Name] {
			return fmt.Errorf("configuration: duplicate vantage %q", v.Name)
		}
		seen[v.Name] = true
	}

	return nil
}

// Band returns the configured band by name, or the first band when name
// is empty.
func (c *Config) Band(name string) (spectrum.Band, error) {
	if name == "" && len(c.Analysis.Bands) > 0 {
		return c.Analysis.Bands[0].toBand(), nil
	}
	for _, b := range c.Analysis.Bands {
		if b.Name == name {
			return b.toBand(), nil
		}
	}
	return spectrum.Band{}, fmt.Errorf("band %q is not configured", name)
}

func (b BandConfig) toBand() spectrum.Band {
	return spectrum.Band{Name: b.Name, LowHz: b.LowMHz * 1e6, HighHz: b.HighMHz * 1e6}
}

// TrackedHz returns the tracked frequencies converted to Hz.
func (c *Config) TrackedHz() []float64 {
	out := make([]float64, len(c.Analysis.TrackedFrequenciesMHz))
	for i, f := range c.Analysis.TrackedFrequenciesMHz {
		out[i] = f * 1e6
	}
	return out
}
