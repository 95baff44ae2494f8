// Package bearing derives a compass bearing toward an emitter from the
// per-heading signal strengths of a directional capture session.
package bearing

import (
	"math"
	"sort"

	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
)

// MinBearingHeadings is the minimum number of horizontal headings
// required before a bearing is estimated. With fewer, the estimate
// degrades to an insufficient-data result instead of fabricating an
// angle.
const MinBearingHeadings = 3

// fullConfidenceGapDB is the power lead of the strongest heading over
// the runner-up that maps to confidence 1.0. A heuristic scale, not a
// physical constant.
const fullConfidenceGapDB = 10

// Session maps each scanned heading to the spectrum summary of its
// capture. Missing headings are tolerated.
type Session map[sweep.Heading]*spectrum.Summary

// HeadingPower is the aggregate band power observed at one heading.
type HeadingPower struct {
	Heading  sweep.Heading
	PowerDBm float64
	BinCount int
}

// VerticalTrend classifies where the emitter sits relative to the
// antenna, derived from the Up/Down capture differential.
type VerticalTrend string

const (
	VerticalUnknown VerticalTrend = "UNKNOWN"
	AboveAntenna    VerticalTrend = "ABOVE_ANTENNA"
	AtAntennaLevel  VerticalTrend = "AT_ANTENNA_LEVEL"
	BelowAntenna    VerticalTrend = "BELOW_ANTENNA"
)

// Estimate is the bearing derived from one directional session.
type Estimate struct {
	InsufficientData bool // Fewer than MinBearingHeadings horizontal headings

	BearingDegrees float64 // Compass bearing toward the emitter
	Confidence     float64 // [0,1], from the power gap between the two strongest headings
	Primary        sweep.Heading
	Blended        bool // Bearing interpolated between two adjacent headings

	Ranking []HeadingPower // Horizontal headings, strongest first

	VerticalTrend  VerticalTrend
	VerticalDeltaDB float64 // Down power minus Up power; positive means stronger below
}

// StrongestPower returns the band power at the primary heading.
func (e *Estimate) StrongestPower() (float64, bool) {
	if len(e.Ranking) == 0 {
		return 0, false
	}
	return e.Ranking[0].PowerDBm, true
}

// Estimate ranks the session's horizontal headings by mean band power
// and derives a bearing. When the two strongest headings are adjacent
// compass points the bearing is interpolated between them, weighted by
// relative power; signal peaks rarely line up exactly with one of 8
// discrete headings.
func (s Session) Estimate(band spectrum.Band) *Estimate {
	est := Estimate{VerticalTrend: VerticalUnknown}

	for _, heading := range sweep.CompassHeadings {
		summary, ok := s[heading]
		if !ok || summary == nil {
			continue
		}
		power, count := summary.MeanPower(band.LowHz, band.HighHz)
		if count == 0 {
			continue
		}
		est.Ranking = append(est.Ranking, HeadingPower{
			Heading:  heading,
			PowerDBm: power,
			BinCount: count,
		})
	}

	sort.SliceStable(est.Ranking, func(i, j int) bool {
		return est.Ranking[i].PowerDBm > est.Ranking[j].PowerDBm
	})

	s.estimateVertical(band, &est)

	if len(est.Ranking) < MinBearingHeadings {
		est.InsufficientData = true
		return &est
	}

	top := est.Ranking[0]
	second := est.Ranking[1]
	est.Primary = top.Heading

	gap := top.PowerDBm - second.PowerDBm
	est.Confidence = clamp01(gap / fullConfidenceGapDB)

	deg, _ := top.Heading.Degrees()
	est.BearingDegrees = deg

	if adjacent(top.Heading, second.Heading) {
		est.BearingDegrees = blendBearing(top, second, weakestPower(est.Ranking))
		est.Blended = true
	}

	return &est
}

func (s Session) estimateVertical(band spectrum.Band, est *Estimate) {
	up, upOK := s[sweep.Up]
	down, downOK := s[sweep.Down]
	if !upOK || !downOK || up == nil || down == nil {
		return
	}

	upPower, upCount := up.MeanPower(band.LowHz, band.HighHz)
	downPower, downCount := down.MeanPower(band.LowHz, band.HighHz)
	if upCount == 0 || downCount == 0 {
		return
	}

	est.VerticalDeltaDB = downPower - upPower
	switch {
	case est.VerticalDeltaDB > 3:
		est.VerticalTrend = BelowAntenna
	case est.VerticalDeltaDB < -3:
		est.VerticalTrend = AboveAntenna
	default:
		est.VerticalTrend = AtAntennaLevel
	}
}

// adjacent reports whether two compass headings are 45 degrees apart.
func adjacent(a, b sweep.Heading) bool {
	da, aOK := a.Degrees()
	db, bOK := b.Degrees()
	if !aOK || !bOK {
		return false
	}
	diff := math.Abs(angleDiff(da, db))
	return diff > 44 && diff < 46
}

// blendBearing interpolates between two adjacent headings, weighting
// each by its power lead over the session's weakest heading. dB values
// are negative, so the shift puts both weights on a positive scale.
func blendBearing(top, second HeadingPower, floor float64) float64 {
	w1 := top.PowerDBm - floor
	w2 := second.PowerDBm - floor
	if w1+w2 <= 0 {
		w1, w2 = 1, 1
	}

	d1, _ := top.Heading.Degrees()
	d2, _ := second.Heading.Degrees()

	bearing := d1 + angleDiff(d1, d2)*(w2/(w1+w2))
	return math.Mod(bearing+360, 360)
}

func weakestPower(ranking []HeadingPower) float64 {
	return ranking[len(ranking)-1].PowerDBm
}

// angleDiff returns the signed shortest angular distance from a to b in
// degrees, in (-180, 180].
func angleDiff(a, b float64) float64 {
	d := math.Mod(b-a+540, 360) - 180
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
