package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/track"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if config.Analysis.DeltaThresholdDB != detect.DefaultThresholdDB {
		t.Errorf("Expected default threshold %d, got %f",
			detect.DefaultThresholdDB, config.Analysis.DeltaThresholdDB)
	}
	if config.Analysis.DriftSlopeDB != track.DefaultDriftSlopeDB {
		t.Errorf("Expected default drift slope %d, got %f",
			track.DefaultDriftSlopeDB, config.Analysis.DriftSlopeDB)
	}
	if len(config.Analysis.Bands) == 0 {
		t.Fatalf("Expected a default band")
	}

	band, err := config.Band("")
	if err != nil {
		t.Fatalf("Failed to resolve default band: %v", err)
	}
	if band.LowHz != 758e6 || band.HighHz != 768e6 {
		t.Errorf("Expected default band 758-768 MHz, got %f-%f", band.LowHz, band.HighHz)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
settings:
  logLevel: debug
analysis:
  deltaThresholdDB: 40
  trackedFrequenciesMHz: [851]
  bands:
    - name: "LTE Band 13"
      lowMHz: 746
      highMHz: 756
vantages:
  - name: front-yard
    antennaHeightFeet: 2.5
    directory: /data/front
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Settings.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", config.Settings.LogLevel)
	}
	if config.Analysis.DeltaThresholdDB != 40 {
		t.Errorf("Expected threshold 40, got %f", config.Analysis.DeltaThresholdDB)
	}

	// Unset thresholds still come from the defaults.
	if config.Analysis.StableVarianceDB2 != track.DefaultStableVarianceDB2 {
		t.Errorf("Expected default stable variance, got %f", config.Analysis.StableVarianceDB2)
	}

	if hz := config.TrackedHz(); len(hz) != 1 || hz[0] != 851e6 {
		t.Errorf("Expected tracked frequency 851 MHz, got %v", hz)
	}

	band, err := config.Band("LTE Band 13")
	if err != nil {
		t.Fatalf("Failed to resolve band: %v", err)
	}
	if band.LowHz != 746e6 {
		t.Errorf("Expected band low 746 MHz, got %f", band.LowHz)
	}

	if _, err := config.Band("no-such-band"); err == nil {
		t.Errorf("Expected an error for an unknown band")
	}

	if len(config.Vantages) != 1 || config.Vantages[0].Name != "front-yard" {
		t.Errorf("Expected the front-yard vantage, got %+v", config.Vantages)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"negative threshold",
			"analysis:\n  deltaThresholdDB: -10\n",
		},
		{
			"bad unit",
			"analysis:\n  unit: furlongs\n",
		},
		{
			"inverted band",
			"analysis:\n  bands:\n    - name: bad\n      lowMHz: 800\n      highMHz: 700\n",
		},
		{
			"duplicate vantage",
			"vantages:\n  - name: a\n  - name: a\n",
		},
		{
			"unnamed vantage",
			"vantages:\n  - directory: /data\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("Expected validation to fail")
			}
		})
	}
}
