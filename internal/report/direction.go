package report

import (
	"fmt"
	"strings"

	"github.com/sweephound/sweephound/internal/bearing"
	"github.com/sweephound/sweephound/internal/spectrum"
)

// Direction renders a bearing estimate from a directional session.
func Direction(est *bearing.Estimate, band spectrum.Band) string {
	var sb strings.Builder
	NewMeta("Directional Analysis").writeHeader(&sb)

	fmt.Fprintf(&sb, "Band of interest: %s (%s - %s MHz)\n\n",
		band.Name, mhz(band.LowHz), mhz(band.HighHz))

	if len(est.Ranking) > 0 {
		fmt.Fprintf(&sb, "%-12s %s\n", "Heading", "Band power (dBm)")
		sb.WriteString(strings.Repeat("-", 32) + "\n")
		for _, hp := range est.Ranking {
			fmt.Fprintf(&sb, "%-12s %.2f\n", strings.ToUpper(hp.Heading.String()), hp.PowerDBm)
		}
		sb.WriteString("\n")
	}

	if est.InsufficientData {
		fmt.Fprintf(&sb, "Result: INSUFFICIENT_DATA (%d of %d minimum headings scanned).\n",
			len(est.Ranking), bearing.MinBearingHeadings)
		sb.WriteString("A bearing requires at least three horizontal headings; scan more directions.\n")
	} else {
		fmt.Fprintf(&sb, "Bearing:    %.1f degrees (strongest heading: %s", est.BearingDegrees,
			strings.ToUpper(est.Primary.String()))
		if est.Blended {
			sb.WriteString(", blended with adjacent heading")
		}
		sb.WriteString(")\n")
		fmt.Fprintf(&sb, "Confidence: %.2f\n", est.Confidence)
		if est.Confidence == 0 {
			sb.WriteString("All headings report equal power; the bearing is not usable.\n")
		}
	}

	if est.VerticalTrend != bearing.VerticalUnknown {
		fmt.Fprintf(&sb, "\nVertical: %s (down-up differential %+.2f dB)\n",
			verticalLabel(est.VerticalTrend), est.VerticalDeltaDB)
	}

	return sb.String()
}

func verticalLabel(t bearing.VerticalTrend) string {
	switch t {
	case bearing.AboveAntenna:
		return "source above antenna level"
	case bearing.BelowAntenna:
		return "source below antenna level"
	case bearing.AtAntennaLevel:
		return "source approximately at antenna level"
	default:
		return "unknown"
	}
}
