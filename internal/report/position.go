package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/locate"
)

// Position renders a position estimate with its offsets in the
// requested unit.
func Position(est *locate.Estimate, unit locate.Unit, freqMHz float64, multipath *detect.MultipathReport) string {
	var sb strings.Builder
	NewMeta("Position Estimate").writeHeader(&sb)

	fmt.Fprintf(&sb, "Band center frequency: %.2f MHz\n", freqMHz)
	fmt.Fprintf(&sb, "Vantage points used:   %s\n\n", strings.Join(est.VantagesUsed, ", "))

	abbr := unit.Abbrev()
	writeOffset(&sb, "north", "south", unit.FromFeet(est.NorthFeet), abbr)
	writeOffset(&sb, "east", "west", unit.FromFeet(est.EastFeet), abbr)
	fmt.Fprintf(&sb, "  Horizontal distance: %.1f %s\n", unit.FromFeet(est.DistanceFeet), abbr)

	if est.SingleVantage {
		fmt.Fprintf(&sb, "  Height: at antenna height (%.1f %s); a single vantage point cannot\n",
			unit.FromFeet(est.HeightFeet), abbr)
		sb.WriteString("  resolve elevation beyond the up/down trend noted below.\n")
	} else {
		fmt.Fprintf(&sb, "  Height above ground: %.1f %s (%s)\n",
			unit.FromFeet(est.HeightFeet), abbr, locate.HeightInterpretation(est.HeightFeet))
	}

	fmt.Fprintf(&sb, "\nConfidence: %.2f\n", est.Confidence)
	if multipath != nil && multipath.ReflectionLikely {
		sb.WriteString("Multipath: reflections likely at the investigated frequencies; the distance\n")
		sb.WriteString("estimate may be stretched and confidence has been reduced accordingly.\n")
	}

	fmt.Fprintf(&sb, "\nDistance sensitivity to the transmit-power assumption (%.0f dBm assumed):\n", est.TxPowerDBm)
	fmt.Fprintf(&sb, "%-14s %s\n", "TX power", "Distance")
	sb.WriteString(strings.Repeat("-", 30) + "\n")
	for _, s := range est.Sensitivity {
		fmt.Fprintf(&sb, "%-14s %.1f %s\n", fmt.Sprintf("%.0f dBm", s.TxPowerDBm),
			unit.FromFeet(s.DistanceFeet), abbr)
	}

	sb.WriteString("\nAccuracy notes:\n")
	sb.WriteString("  The distance is derived from a free-space path-loss model and an ASSUMED\n")
	sb.WriteString("  transmit power; it is an estimate, not a measurement. Reflections and\n")
	sb.WriteString("  obstructions shorten the real distance relative to the model. Direction\n")
	sb.WriteString("  is more reliable than distance.\n")

	return sb.String()
}

func writeOffset(sb *strings.Builder, positive, negative string, value float64, abbr string) {
	direction := positive
	if value < 0 {
		direction = negative
	}
	fmt.Fprintf(sb, "  Offset %s: %.1f %s\n", direction, math.Abs(value), abbr)
}
