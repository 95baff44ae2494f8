package sweep

import (
	"errors"
	"strings"
	"testing"
)

const sampleCapture = `2024-01-15, 10:30:00, 758000000, 768000000, 1000000, 20, -80.5, -79.2, -81.0
2024-01-15, 10:30:01, 758000000, 768000000, 1000000, 20, -80.1, bad, -79.9
not-a-date, 10:30:02, 758000000, 768000000, 1000000, 20, -80.0
2024-01-15, 10:30:03, 758000000
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleCapture))
	if err != nil {
		t.Fatalf("Failed to parse capture: %v", err)
	}

	if len(c.Samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(c.Samples))
	}
	if c.SkippedRows != 2 {
		t.Errorf("Expected 2 skipped rows, got %d", c.SkippedRows)
	}
	if c.SkippedReadings != 1 {
		t.Errorf("Expected 1 skipped reading, got %d", c.SkippedReadings)
	}

	first := c.Samples[0]
	if first.FreqLow != 758_000_000 {
		t.Errorf("Expected freq low 758000000, got %f", first.FreqLow)
	}
	if first.FreqHigh != 768_000_000 {
		t.Errorf("Expected freq high 768000000, got %f", first.FreqHigh)
	}
	if first.BinWidth != 1_000_000 {
		t.Errorf("Expected bin width 1000000, got %f", first.BinWidth)
	}
	if len(first.Readings) != 3 {
		t.Errorf("Expected 3 readings, got %d", len(first.Readings))
	}
	if first.Readings[0] != -80.5 {
		t.Errorf("Expected first reading -80.5, got %f", first.Readings[0])
	}

	// The row with the bad reading keeps its remaining values.
	second := c.Samples[1]
	if len(second.Readings) != 2 {
		t.Errorf("Expected 2 readings in second sample, got %d", len(second.Readings))
	}

	if got := c.ReadingCount(); got != 5 {
		t.Errorf("Expected 5 total readings, got %d", got)
	}
}

func TestParse_EmptyCapture(t *testing.T) {
	for _, input := range []string{"", "\n\n", "garbage row\nanother one\n"} {
		_, err := Parse(strings.NewReader(input))
		if !errors.Is(err, ErrEmptyCapture) {
			t.Errorf("Expected ErrEmptyCapture for %q, got %v", input, err)
		}
	}
}

func TestBinFrequency(t *testing.T) {
	sample := SweepSample{FreqLow: 758_000_000, BinWidth: 1_000_000}

	if got := sample.BinFrequency(0); got != 758_000_000 {
		t.Errorf("Expected bin 0 at 758000000, got %f", got)
	}
	if got := sample.BinFrequency(2); got != 760_000_000 {
		t.Errorf("Expected bin 2 at 760000000, got %f", got)
	}
}
