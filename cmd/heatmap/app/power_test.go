package app

import (
	"testing"
	"time"

	"github.com/sweephound/sweephound/internal/storage"
)

func TestPercentileBounds_TooFewSamples(t *testing.T) {
	got := percentileBounds([]float64{-50, -60})
	want := defaultPowerBounds()
	if got != want {
		t.Errorf("Expected default bounds %+v, got %+v", want, got)
	}
}

func TestPercentileBounds_MinimumRange(t *testing.T) {
	powers := make([]float64, 100)
	for i := range powers {
		powers[i] = -50
	}

	got := percentileBounds(powers)

	// A flat capture expands to the 30 dB minimum range plus margin.
	if got.Min != -68 || got.Max != -32 {
		t.Errorf("Expected bounds -68..-32, got %f..%f", got.Min, got.Max)
	}
}

func TestPercentileBounds_ClipsOutliers(t *testing.T) {
	// 98 readings around the noise floor plus two extreme outliers.
	powers := make([]float64, 0, 100)
	for i := 0; i < 49; i++ {
		powers = append(powers, -90)
	}
	for i := 0; i < 49; i++ {
		powers = append(powers, -40)
	}
	powers = append(powers, -200, 0)

	got := percentileBounds(powers)
	if got.Min < -120 {
		t.Errorf("Expected the -200 outlier to be clipped, got min %f", got.Min)
	}
	if got.Max > -20 {
		t.Errorf("Expected the 0 dBm outlier to be clipped, got max %f", got.Max)
	}
}

func TestColorMapper_Clamping(t *testing.T) {
	cm := NewColorMapper(ClassicTheme, PowerBounds{Min: -100, Max: -20})

	if cm.GetColor(-500) != cm.GetColor(-100) {
		t.Errorf("Expected powers below the bounds to clamp to the minimum color")
	}
	if cm.GetColor(100) != cm.GetColor(-20) {
		t.Errorf("Expected powers above the bounds to clamp to the maximum color")
	}
	if cm.GetColor(-100) == cm.GetColor(-20) {
		t.Errorf("Expected distinct colors across the power range")
	}
}

func TestSpectrumData_Update(t *testing.T) {
	spec := NewSpectrumData()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	spec.Update(&storage.Span{
		Timestamp:      base,
		FrequencyStart: 758e6,
		FrequencyEnd:   761e6,
		Points: []storage.Point{
			{Frequency: 758e6, BinWidth: 1e6, Power: -80},
			{Frequency: 759e6, BinWidth: 1e6, Power: -70},
			{Frequency: 760e6, BinWidth: 1e6, Power: -60},
		},
	})
	spec.Update(&storage.Span{
		Timestamp:      base.Add(time.Second),
		FrequencyStart: 758e6,
		FrequencyEnd:   760e6,
		Points: []storage.Point{
			{Frequency: 758e6, BinWidth: 1e6, Power: -81},
			{Frequency: 759e6, BinWidth: 1e6, Power: -71},
		},
	})

	if spec.Width != 3 {
		t.Errorf("Expected width 3, got %d", spec.Width)
	}
	if spec.Height != 2 {
		t.Errorf("Expected height 2, got %d", spec.Height)
	}
	if spec.FrequencyMin != 758e6 || spec.FrequencyMax != 761e6 {
		t.Errorf("Expected frequency range 758-761 MHz, got %f-%f", spec.FrequencyMin, spec.FrequencyMax)
	}
	if !spec.TimestampEnd.After(spec.TimestampStart) {
		t.Errorf("Expected timestamps in order, got %v..%v", spec.TimestampStart, spec.TimestampEnd)
	}
	if len(spec.Rows) != 2 || len(spec.Rows[0]) != 3 || len(spec.Rows[1]) != 2 {
		t.Errorf("Expected ragged rows preserved, got %v", spec.Rows)
	}
}
