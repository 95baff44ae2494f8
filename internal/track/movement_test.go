package track

import (
	"testing"
	"time"

	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
)

// scanSummaries builds one summary per scan, each with a single bin at
// 760 MHz carrying the given power.
func scanSummaries(powers ...float64) []*spectrum.Summary {
	summaries := make([]*spectrum.Summary, len(powers))
	for i, power := range powers {
		c := sweep.Capture{
			Source: "scan",
			Samples: []sweep.SweepSample{{
				Timestamp: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
				FreqLow:   760e6,
				FreqHigh:  761e6,
				BinWidth:  1e6,
				Readings:  []float64{power},
			}},
		}
		summaries[i] = spectrum.NewSummarizer().Summarize(&c)
	}
	return summaries
}

func TestClassify_Stationary(t *testing.T) {
	summaries := scanSummaries(-50, -50, -50, -50)

	assessments := Classify(summaries, []float64{760e6})
	if len(assessments) != 1 {
		t.Fatalf("Expected 1 assessment, got %d", len(assessments))
	}

	a := assessments[0]
	if a.Class != Stationary {
		t.Errorf("Expected STATIONARY, got %s", a.Class)
	}
	if a.VarianceDB2 != 0 {
		t.Errorf("Expected zero variance, got %f", a.VarianceDB2)
	}
	if a.ScanCount != 4 {
		t.Errorf("Expected 4 scans, got %d", a.ScanCount)
	}
}

func TestClassify_Mobile(t *testing.T) {
	// Steady 10 dB per scan rise: something is approaching.
	summaries := scanSummaries(-50, -40, -30, -20)

	a := Classify(summaries, []float64{760e6})[0]
	if a.Class != Mobile {
		t.Errorf("Expected MOBILE, got %s", a.Class)
	}
	if a.TrendSlope != 10 {
		t.Errorf("Expected slope 10 dB per scan, got %f", a.TrendSlope)
	}
	if a.NetChangeDB() != 30 {
		t.Errorf("Expected net change 30 dB, got %f", a.NetChangeDB())
	}
}

func TestClassify_Fluctuating(t *testing.T) {
	// Large swings with no sustained direction: a fixed source in a
	// noisy channel, not movement.
	summaries := scanSummaries(-50, -30, -50, -30)

	a := Classify(summaries, []float64{760e6})[0]
	if a.Class != Fluctuating {
		t.Errorf("Expected FLUCTUATING, got %s", a.Class)
	}
	if a.VarianceDB2 != 100 {
		t.Errorf("Expected variance 100, got %f", a.VarianceDB2)
	}
}

func TestClassify_InsufficientData(t *testing.T) {
	summaries := scanSummaries(-50, -50)

	a := Classify(summaries, []float64{760e6})[0]
	if a.Class != InsufficientData {
		t.Errorf("Expected INSUFFICIENT_DATA from 2 scans, got %s", a.Class)
	}

	// A frequency never observed at all is reported, not dropped.
	a = Classify(summaries, []float64{900e6})[0]
	if a.Class != InsufficientData || a.ScanCount != 0 {
		t.Errorf("Expected INSUFFICIENT_DATA with 0 scans, got %s with %d", a.Class, a.ScanCount)
	}
}

func TestClassify_SkipsMissingScans(t *testing.T) {
	summaries := scanSummaries(-50, -50, -50, -50)
	// A scan where the tracked frequency fell below coverage.
	summaries[2] = nil

	a := Classify(summaries, []float64{760e6})[0]
	if a.ScanCount != 3 {
		t.Errorf("Expected 3 observed scans, got %d", a.ScanCount)
	}
	if a.Class != Stationary {
		t.Errorf("Expected STATIONARY, got %s", a.Class)
	}
}

func TestClassify_Thresholds(t *testing.T) {
	summaries := scanSummaries(-50, -44, -50, -44)

	// Variance 9 is stationary under a loosened threshold.
	a := Classify(summaries, []float64{760e6}, WithStableVariance(10))[0]
	if a.Class != Stationary {
		t.Errorf("Expected STATIONARY with loose variance threshold, got %s", a.Class)
	}

	// And fluctuating under a strict one.
	a = Classify(summaries, []float64{760e6}, WithStableVariance(1))[0]
	if a.Class != Fluctuating {
		t.Errorf("Expected FLUCTUATING with strict variance threshold, got %s", a.Class)
	}
}
