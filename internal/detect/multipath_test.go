package detect

import (
	"testing"
	"time"

	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
)

// repeatedCapture builds one capture of four 1 MHz bins starting at
// 759 MHz with the given readings.
func repeatedCapture(readings ...float64) *sweep.Capture {
	return &sweep.Capture{
		Source: "test",
		Samples: []sweep.SweepSample{{
			Timestamp: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			FreqLow:   759e6,
			FreqHigh:  763e6,
			BinWidth:  1e6,
			Readings:  readings,
		}},
	}
}

var testBand = spectrum.Band{Name: "700 MHz block", LowHz: 758e6, HighHz: 768e6}

func TestAnalyzeMultipath(t *testing.T) {
	// Bin 760 MHz swings wildly across the three sweeps while every
	// other bin holds steady.
	summary := spectrum.NewSummarizer().Summarize(
		repeatedCapture(-70, -50, -40, -70),
		repeatedCapture(-70, -50, -40, -70),
		repeatedCapture(-70, -20, -40, -70),
	)

	report := AnalyzeMultipath(summary, testBand)

	if len(report.SuspectBins) != 1 {
		t.Fatalf("Expected 1 suspect bin, got %d", len(report.SuspectBins))
	}
	if report.SuspectBins[0].Frequency != 760e6 {
		t.Errorf("Expected suspect bin at 760 MHz, got %f", report.SuspectBins[0].Frequency)
	}
	if !report.ReflectionLikely {
		t.Errorf("Expected reflection likely for an in-band suspect bin")
	}

	// 759 MHz (-70) next to 760 MHz (-40) is a 30 dB step.
	if !report.SelectiveFading {
		t.Errorf("Expected selective fading, max adjacent delta %f", report.MaxAdjacentDeltaDB)
	}
	if report.MaxAdjacentDeltaDB != 30 {
		t.Errorf("Expected max adjacent delta 30 dB, got %f", report.MaxAdjacentDeltaDB)
	}

	if penalty := report.ConfidencePenalty(); penalty != 0.6 {
		t.Errorf("Expected confidence penalty 0.6, got %f", penalty)
	}
}

func TestAnalyzeMultipath_CleanCapture(t *testing.T) {
	summary := spectrum.NewSummarizer().Summarize(
		repeatedCapture(-70, -70, -70, -70),
		repeatedCapture(-70, -70, -70, -70),
	)

	report := AnalyzeMultipath(summary, testBand)

	if len(report.SuspectBins) != 0 {
		t.Errorf("Expected no suspect bins, got %d", len(report.SuspectBins))
	}
	if report.ReflectionLikely || report.SelectiveFading {
		t.Errorf("Expected a clean report, got reflection=%v fading=%v",
			report.ReflectionLikely, report.SelectiveFading)
	}
	if penalty := report.ConfidencePenalty(); penalty != 1 {
		t.Errorf("Expected no confidence penalty, got %f", penalty)
	}
}

func TestConfidencePenalty_NilReport(t *testing.T) {
	var report *MultipathReport
	if penalty := report.ConfidencePenalty(); penalty != 1 {
		t.Errorf("Expected nil report penalty 1, got %f", penalty)
	}
}
