package bearing

import (
	"math"
	"testing"
	"time"

	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
)

var testBand = spectrum.Band{Name: "700 MHz block", LowHz: 758e6, HighHz: 768e6}

// summaryAt builds a summary with a single in-band bin at the given
// power.
func summaryAt(power float64) *spectrum.Summary {
	c := sweep.Capture{
		Source: "test",
		Samples: []sweep.SweepSample{{
			Timestamp: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			FreqLow:   763e6,
			FreqHigh:  764e6,
			BinWidth:  1e6,
			Readings:  []float64{power},
		}},
	}
	return spectrum.NewSummarizer().Summarize(&c)
}

func TestSessionEstimate(t *testing.T) {
	session := Session{
		sweep.North:     summaryAt(-70),
		sweep.Northeast: summaryAt(-45),
		sweep.East:      summaryAt(-40),
		sweep.Southeast: summaryAt(-60),
		sweep.South:     summaryAt(-70),
		sweep.Southwest: summaryAt(-70),
		sweep.West:      summaryAt(-70),
		sweep.Northwest: summaryAt(-70),
	}

	est := session.Estimate(testBand)

	if est.InsufficientData {
		t.Fatalf("Expected a bearing from 8 headings")
	}
	if est.Primary != sweep.East {
		t.Errorf("Expected east as primary heading, got %s", est.Primary)
	}
	if len(est.Ranking) != 8 {
		t.Errorf("Expected 8 ranked headings, got %d", len(est.Ranking))
	}
	if est.Ranking[0].Heading != sweep.East || est.Ranking[1].Heading != sweep.Northeast {
		t.Errorf("Expected east then northeast leading, got %s then %s",
			est.Ranking[0].Heading, est.Ranking[1].Heading)
	}

	// East leads northeast by 5 dB: half confidence.
	if math.Abs(est.Confidence-0.5) > 1e-9 {
		t.Errorf("Expected confidence 0.5, got %f", est.Confidence)
	}

	// Adjacent top two: the bearing is pulled from east toward
	// northeast, weighted by power above the weakest heading.
	if !est.Blended {
		t.Fatalf("Expected a blended bearing for adjacent top headings")
	}
	want := 90 - 45*(25.0/55.0)
	if math.Abs(est.BearingDegrees-want) > 0.01 {
		t.Errorf("Expected bearing %f, got %f", want, est.BearingDegrees)
	}

	if power, ok := est.StrongestPower(); !ok || power != -40 {
		t.Errorf("Expected strongest power -40, got %f (ok=%v)", power, ok)
	}
}

func TestSessionEstimate_NonAdjacentPeaks(t *testing.T) {
	session := Session{
		sweep.North: summaryAt(-40),
		sweep.South: summaryAt(-45),
		sweep.East:  summaryAt(-70),
		sweep.West:  summaryAt(-70),
	}

	est := session.Estimate(testBand)

	if est.Blended {
		t.Errorf("Expected no blending for opposite peaks")
	}
	if est.BearingDegrees != 0 {
		t.Errorf("Expected bearing 0 from north, got %f", est.BearingDegrees)
	}
}

func TestSessionEstimate_FlatField(t *testing.T) {
	session := Session{}
	for _, h := range sweep.CompassHeadings {
		session[h] = summaryAt(-60)
	}

	est := session.Estimate(testBand)

	if est.InsufficientData {
		t.Fatalf("Expected an estimate from a flat field")
	}
	if est.Confidence != 0 {
		t.Errorf("Expected zero confidence with no power gap, got %f", est.Confidence)
	}
}

func TestSessionEstimate_InsufficientData(t *testing.T) {
	session := Session{
		sweep.North: summaryAt(-40),
		sweep.East:  summaryAt(-50),
	}

	est := session.Estimate(testBand)

	if !est.InsufficientData {
		t.Fatalf("Expected insufficient data from 2 headings")
	}
	if len(est.Ranking) != 2 {
		t.Errorf("Expected the partial ranking to be kept, got %d entries", len(est.Ranking))
	}
}

func TestSessionEstimate_VerticalTrend(t *testing.T) {
	base := Session{
		sweep.North: summaryAt(-40),
		sweep.East:  summaryAt(-50),
		sweep.South: summaryAt(-60),
	}

	tests := []struct {
		up, down float64
		want     VerticalTrend
	}{
		{-50, -40, BelowAntenna},  // stronger below
		{-40, -50, AboveAntenna},  // stronger above
		{-45, -44, AtAntennaLevel}, // within the 3 dB dead zone
	}

	for _, tt := range tests {
		session := Session{sweep.Up: summaryAt(tt.up), sweep.Down: summaryAt(tt.down)}
		for h, s := range base {
			session[h] = s
		}

		est := session.Estimate(testBand)
		if est.VerticalTrend != tt.want {
			t.Errorf("up=%f down=%f: expected %s, got %s", tt.up, tt.down, tt.want, est.VerticalTrend)
		}
	}
}

func TestSessionEstimate_MissingVerticalCaptures(t *testing.T) {
	session := Session{
		sweep.North: summaryAt(-40),
		sweep.East:  summaryAt(-50),
		sweep.South: summaryAt(-60),
	}

	est := session.Estimate(testBand)
	if est.VerticalTrend != VerticalUnknown {
		t.Errorf("Expected unknown vertical trend without up/down captures, got %s", est.VerticalTrend)
	}
}
