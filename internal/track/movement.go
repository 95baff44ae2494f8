// Package track classifies tracked frequencies as stationary, mobile or
// fluctuating from the power trend across a time-ordered scan session.
package track

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sweephound/sweephound/internal/spectrum"
)

// Classification is the movement verdict for one tracked frequency.
type Classification string

const (
	Stationary       Classification = "STATIONARY"
	Fluctuating      Classification = "FLUCTUATING"
	Mobile           Classification = "MOBILE"
	InsufficientData Classification = "INSUFFICIENT_DATA"
)

const (
	// DefaultStableVarianceDB2 is the mean-power variance (dB²) below
	// which a source is considered stationary.
	DefaultStableVarianceDB2 = 5

	// DefaultDriftSlopeDB is the power trend magnitude (dB per scan)
	// above which sustained change reads as an approaching or receding
	// source rather than fixed-source fluctuation.
	DefaultDriftSlopeDB = 5

	// minScans is the fewest time points that support any verdict.
	minScans = 3
)

// Assessment is the movement classification of one tracked frequency
// over a session.
type Assessment struct {
	FrequencyHz float64
	Class       Classification
	VarianceDB2 float64 // Variance of mean power across scans
	TrendSlope  float64 // Least-squares slope, dB per scan index
	ScanCount   int     // Scans in which the frequency was observed

	FirstPowerDBm float64
	LastPowerDBm  float64
}

// NetChangeDB is the overall power change from the first to the last
// scan the frequency appeared in.
func (a *Assessment) NetChangeDB() float64 {
	return a.LastPowerDBm - a.FirstPowerDBm
}

// Option configures Classify.
type Option func(*classifier)

// WithStableVariance overrides the stationary variance threshold (dB²).
func WithStableVariance(db2 float64) Option {
	return func(c *classifier) { c.stableVariance = db2 }
}

// WithDriftSlope overrides the mobility slope threshold (dB per scan).
func WithDriftSlope(db float64) Option {
	return func(c *classifier) { c.driftSlope = db }
}

type classifier struct {
	stableVariance float64
	driftSlope     float64
}

// Classify assesses each tracked frequency against a time-ordered
// sequence of scan summaries. Scans in which a frequency has no nearby
// bin simply contribute no point; a frequency seen in fewer than three
// scans is reported as INSUFFICIENT_DATA rather than guessed at.
//
// The summaries are read only; sessions can be re-run or re-ordered and
// classified again without interference.
func Classify(summaries []*spectrum.Summary, trackedHz []float64, opts ...Option) []Assessment {
	c := classifier{
		stableVariance: DefaultStableVarianceDB2,
		driftSlope:     DefaultDriftSlopeDB,
	}
	for _, opt := range opts {
		opt(&c)
	}

	assessments := make([]Assessment, 0, len(trackedHz))
	for _, freq := range trackedHz {
		var xs, powers []float64
		for i, summary := range summaries {
			if summary == nil {
				continue
			}
			if bin, ok := summary.Nearest(freq); ok {
				xs = append(xs, float64(i))
				powers = append(powers, bin.Mean)
			}
		}

		a := Assessment{FrequencyHz: freq, ScanCount: len(powers)}
		if len(powers) < minScans {
			a.Class = InsufficientData
			assessments = append(assessments, a)
			continue
		}

		a.FirstPowerDBm = powers[0]
		a.LastPowerDBm = powers[len(powers)-1]
		a.VarianceDB2 = stat.PopVariance(powers, nil)
		_, a.TrendSlope = stat.LinearRegression(xs, powers, nil, false)

		switch {
		case a.VarianceDB2 < c.stableVariance:
			a.Class = Stationary
		case math.Abs(a.TrendSlope) >= c.driftSlope:
			a.Class = Mobile
		default:
			a.Class = Fluctuating
		}

		assessments = append(assessments, a)
	}

	return assessments
}
