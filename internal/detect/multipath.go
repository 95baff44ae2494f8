package detect

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sweephound/sweephound/internal/spectrum"
)

const (
	// DefaultVarianceMultiple flags a bin as multipath-suspect when its
	// variance exceeds this multiple of the capture-wide median
	// variance. A relative test, because ambient noise floors differ by
	// environment.
	DefaultVarianceMultiple = 3

	// DefaultFadingDeltaDB is the mean-power step between adjacent bins
	// that indicates frequency-selective fading within the band of
	// interest.
	DefaultFadingDeltaDB = 5
)

// MultipathReport captures the reflection indicators found in one
// summary.
type MultipathReport struct {
	SuspectBins        []spectrum.BinStats // Bins with outlier variance, sorted by frequency
	MedianVariance     float64             // Median variance across all bins, dB²
	ReflectionLikely   bool                // A suspect bin falls inside the band of interest
	SelectiveFading    bool                // Adjacent in-band bins differ by more than the fading threshold
	MaxAdjacentDeltaDB float64             // Largest adjacent-bin mean delta inside the band
}

// MultipathOption configures AnalyzeMultipath.
type MultipathOption func(*multipathConfig)

// WithVarianceMultiple sets the suspect-variance multiple.
func WithVarianceMultiple(m float64) MultipathOption {
	return func(c *multipathConfig) { c.multiple = m }
}

// WithFadingDelta sets the adjacent-bin fading threshold in dB.
func WithFadingDelta(db float64) MultipathOption {
	return func(c *multipathConfig) { c.fadingDelta = db }
}

type multipathConfig struct {
	multiple    float64
	fadingDelta float64
}

// AnalyzeMultipath inspects the variance profile of repeated readings
// in a summary taken at a fixed heading and location. High variance
// relative to the rest of the capture, or large power swings between
// adjacent bins of the band under investigation, point at reflections
// rather than a clean line-of-sight path.
func AnalyzeMultipath(summary *spectrum.Summary, band spectrum.Band, opts ...MultipathOption) *MultipathReport {
	cfg := multipathConfig{
		multiple:    DefaultVarianceMultiple,
		fadingDelta: DefaultFadingDeltaDB,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bins := summary.Bins()
	report := MultipathReport{}
	if len(bins) == 0 {
		return &report
	}

	variances := make([]float64, len(bins))
	for i := range bins {
		variances[i] = bins[i].Variance
	}
	sort.Float64s(variances)
	report.MedianVariance = stat.Quantile(0.5, stat.Empirical, variances, nil)

	for i := range bins {
		if bins[i].Variance > cfg.multiple*report.MedianVariance {
			report.SuspectBins = append(report.SuspectBins, bins[i])
			if band.Contains(bins[i].Frequency) {
				report.ReflectionLikely = true
			}
		}
	}

	var prev *spectrum.BinStats
	for i := range bins {
		if !band.Contains(bins[i].Frequency) {
			continue
		}
		if prev != nil {
			delta := math.Abs(bins[i].Mean - prev.Mean)
			if delta > report.MaxAdjacentDeltaDB {
				report.MaxAdjacentDeltaDB = delta
			}
		}
		prev = &bins[i]
	}
	report.SelectiveFading = report.MaxAdjacentDeltaDB > cfg.fadingDelta

	return &report
}

// ConfidencePenalty returns a multiplier in (0, 1] applied to position
// confidence. Reflections stretch the apparent path length, so distance
// estimates from a contaminated capture deserve less trust.
func (r *MultipathReport) ConfidencePenalty() float64 {
	switch {
	case r == nil:
		return 1
	case r.ReflectionLikely:
		return 0.6
	case r.SelectiveFading:
		return 0.8
	default:
		return 1
	}
}
