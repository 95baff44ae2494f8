package app

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	defaultMinPower = -120.0 // dBm
	defaultMaxPower = -20.0  // dBm

	// Below this, percentiles are too noisy to bother with.
	minimumSampleCount = 20

	// Keep at least this much dynamic range on screen so a quiet
	// capture does not blow up into pure noise colors.
	minimumRangeDB = 30.0
)

// PowerBounds is the display power range the color map is stretched over.
type PowerBounds struct {
	Min float64 // dBm, low end of the color scale
	Max float64 // dBm, high end of the color scale
}

func defaultPowerBounds() PowerBounds {
	return PowerBounds{Min: defaultMinPower, Max: defaultMaxPower}
}

// percentileBounds clips the color scale to the 5th..95th percentile of
// the observed powers, so isolated spikes and dropouts do not wash out
// the rest of the waterfall.
func percentileBounds(powers []float64) PowerBounds {
	if len(powers) < minimumSampleCount {
		return defaultPowerBounds()
	}

	sorted := slices.Clone(powers)
	slices.Sort(sorted)

	lo := stat.Quantile(0.05, stat.Empirical, sorted, nil)
	hi := stat.Quantile(0.95, stat.Empirical, sorted, nil)

	if hi-lo < minimumRangeDB {
		center := (hi + lo) / 2
		lo = center - minimumRangeDB/2
		hi = center + minimumRangeDB/2
	}

	margin := (hi - lo) / 10
	return PowerBounds{Min: lo - margin, Max: hi + margin}
}
