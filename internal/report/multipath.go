package report

import (
	"fmt"
	"strings"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/spectrum"
)

// Multipath renders a reflection analysis of a single-location capture.
func Multipath(r *detect.MultipathReport, band spectrum.Band) string {
	var sb strings.Builder
	NewMeta("Multipath Analysis").writeHeader(&sb)

	fmt.Fprintf(&sb, "Band of interest: %s (%s - %s MHz)\n", band.Name, mhz(band.LowHz), mhz(band.HighHz))
	fmt.Fprintf(&sb, "Median bin variance: %.2f dB2\n\n", r.MedianVariance)

	if len(r.SuspectBins) > 0 {
		fmt.Fprintf(&sb, "Multipath-suspect bins (variance outliers):\n")
		fmt.Fprintf(&sb, "%-16s %-12s %-12s %s\n", "Frequency (MHz)", "Variance", "Mean (dBm)", "Range (dB)")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, bin := range r.SuspectBins {
			fmt.Fprintf(&sb, "%-16s %-12.2f %-12.2f %.2f\n",
				mhz(bin.Frequency), bin.Variance, bin.Mean, bin.Max-bin.Min)
		}
		sb.WriteString("\n")
	}

	switch {
	case r.ReflectionLikely:
		sb.WriteString("Reflection LIKELY: the band under investigation shows outlier variance.\n")
		sb.WriteString("Distance and bearing estimates from this location carry reduced confidence.\n")
	case r.SelectiveFading:
		fmt.Fprintf(&sb, "Frequency-selective fading detected (max adjacent-bin delta %.2f dB):\n", r.MaxAdjacentDeltaDB)
		sb.WriteString("possible multipath from a nearby structure.\n")
	default:
		sb.WriteString("No significant multipath indicators: direct line-of-sight likely dominates.\n")
	}

	return sb.String()
}
