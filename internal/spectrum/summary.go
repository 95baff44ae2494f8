// Package spectrum reduces raw sweep captures to per-frequency summary
// statistics that the detection and location code operates on.
package spectrum

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sweephound/sweephound/internal/sweep"
)

// DefaultTolerance is the nearest-bin matching tolerance in Hz used
// when correlating frequencies across sweeps with different bin edges.
const DefaultTolerance = 1e6

// BinStats holds the aggregate statistics for a single frequency bin.
type BinStats struct {
	Frequency   float64 // Bin frequency in Hz
	Mean        float64 // Mean power in dBm
	Max         float64 // Strongest reading in dBm
	Min         float64 // Weakest reading in dBm
	Variance    float64 // Population variance in dB²
	SampleCount int     // Number of readings aggregated into this bin
}

// Summary is an immutable per-frequency statistical reduction of one or
// more captures. Bins are kept sorted by frequency; a bin is present
// only if at least one reading mapped to it.
type Summary struct {
	bins      []BinStats
	tolerance float64

	sources         []string
	skippedRows     int
	skippedReadings int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithRange restricts summarization to readings within [lowHz, highHz].
func WithRange(lowHz, highHz float64) Option {
	return func(s *Summarizer) {
		s.lowHz = lowHz
		s.highHz = highHz
	}
}

// WithTolerance sets the nearest-bin matching tolerance in Hz.
func WithTolerance(hz float64) Option {
	return func(s *Summarizer) {
		s.tolerance = hz
	}
}

// Summarizer accumulates capture readings into frequency bins.
type Summarizer struct {
	tolerance    float64
	lowHz, highHz float64
}

// NewSummarizer creates a Summarizer with the default 1 MHz tolerance
// and no frequency restriction.
func NewSummarizer(opts ...Option) *Summarizer {
	s := Summarizer{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

type binAcc struct {
	frequency float64
	powers    []float64
}

// Summarize reduces the given captures to a Summary. Readings from
// different captures are merged into the same bin when their
// frequencies fall within the matching tolerance, so summaries remain
// comparable across capture runs with slightly different bin edges.
func (s *Summarizer) Summarize(captures ...*sweep.Capture) *Summary {
	sum := Summary{tolerance: s.tolerance}

	var freqs []float64
	var accs []*binAcc

	add := func(freq, power float64) {
		i := sort.SearchFloat64s(freqs, freq)

		// The nearest existing bin is either at the insertion point or
		// just before it.
		best := -1
		bestDiff := s.tolerance
		if i < len(freqs) {
			if d := math.Abs(freqs[i] - freq); d <= bestDiff {
				best, bestDiff = i, d
			}
		}
		if i > 0 {
			if d := math.Abs(freqs[i-1] - freq); d < bestDiff {
				best = i - 1
			}
		}

		if best >= 0 {
			accs[best].powers = append(accs[best].powers, power)
			return
		}

		freqs = append(freqs, 0)
		copy(freqs[i+1:], freqs[i:])
		freqs[i] = freq

		accs = append(accs, nil)
		copy(accs[i+1:], accs[i:])
		accs[i] = &binAcc{frequency: freq, powers: []float64{power}}
	}

	for _, c := range captures {
		if c == nil {
			continue
		}

		sum.sources = append(sum.sources, c.Source)
		sum.skippedRows += c.SkippedRows
		sum.skippedReadings += c.SkippedReadings

		for i := range c.Samples {
			sample := &c.Samples[i]
			for k, power := range sample.Readings {
				freq := sample.BinFrequency(k)
				if s.highHz > 0 && (freq < s.lowHz || freq > s.highHz) {
					continue
				}
				add(freq, power)
			}
		}
	}

	sum.bins = make([]BinStats, len(accs))
	for i, acc := range accs {
		mean := stat.Mean(acc.powers, nil)
		sum.bins[i] = BinStats{
			Frequency:   acc.frequency,
			Mean:        mean,
			Max:         maxOf(acc.powers),
			Min:         minOf(acc.powers),
			Variance:    stat.PopVariance(acc.powers, nil),
			SampleCount: len(acc.powers),
		}
	}

	return &sum
}

func maxOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Len returns the number of bins present in the summary.
func (s *Summary) Len() int { return len(s.bins) }

// Bins returns the summary's bins sorted by frequency. The returned
// slice is shared; callers must not modify it.
func (s *Summary) Bins() []BinStats { return s.bins }

// Tolerance returns the nearest-bin matching tolerance the summary was
// built with.
func (s *Summary) Tolerance() float64 { return s.tolerance }

// Sources returns the captures that contributed to the summary.
func (s *Summary) Sources() []string { return s.sources }

// SkippedRows returns the number of malformed rows dropped from the
// contributing captures.
func (s *Summary) SkippedRows() int { return s.skippedRows }

// SkippedReadings returns the number of individual readings dropped
// from the contributing captures.
func (s *Summary) SkippedReadings() int { return s.skippedReadings }

// FrequencyRange returns the lowest and highest bin frequency present.
func (s *Summary) FrequencyRange() (low, high float64) {
	if len(s.bins) == 0 {
		return 0, 0
	}
	return s.bins[0].Frequency, s.bins[len(s.bins)-1].Frequency
}

// Nearest returns the bin closest to freq within the summary's
// tolerance. The second return value is false when no bin is close
// enough.
func (s *Summary) Nearest(freq float64) (BinStats, bool) {
	if len(s.bins) == 0 {
		return BinStats{}, false
	}

	i := sort.Search(len(s.bins), func(i int) bool {
		return s.bins[i].Frequency >= freq
	})

	best := -1
	bestDiff := s.tolerance
	if i < len(s.bins) {
		if d := math.Abs(s.bins[i].Frequency - freq); d <= bestDiff {
			best, bestDiff = i, d
		}
	}
	if i > 0 {
		if d := math.Abs(s.bins[i-1].Frequency - freq); d < bestDiff {
			best = i - 1
		}
	}

	if best < 0 {
		return BinStats{}, false
	}
	return s.bins[best], true
}

// MeanPower returns the mean of the bin means within [lowHz, highHz]
// and the number of bins contributing. A zero count means the band is
// not covered by this summary.
func (s *Summary) MeanPower(lowHz, highHz float64) (float64, int) {
	var total float64
	var count int
	for i := range s.bins {
		if s.bins[i].Frequency < lowHz {
			continue
		}
		if s.bins[i].Frequency > highHz {
			break
		}
		total += s.bins[i].Mean
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return total / float64(count), count
}

// TopN returns the n strongest bins ordered by mean power descending,
// ties broken by lower frequency first. n larger than the bin count
// returns the full ranked list.
func (s *Summary) TopN(n int) []BinStats {
	ranked := make([]BinStats, len(s.bins))
	copy(ranked, s.bins)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Mean != ranked[j].Mean {
			return ranked[i].Mean > ranked[j].Mean
		}
		return ranked[i].Frequency < ranked[j].Frequency
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
