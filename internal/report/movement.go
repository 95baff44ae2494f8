package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sweephound/sweephound/internal/track"
)

// Movement renders the movement assessments of a tracking session.
func Movement(assessments []track.Assessment, scanCount int) string {
	var sb strings.Builder
	NewMeta("Movement Analysis").writeHeader(&sb)

	fmt.Fprintf(&sb, "Scans analyzed: %s\n\n", humanize.Comma(int64(scanCount)))

	fmt.Fprintf(&sb, "%-16s %-12s %-12s %-12s %-10s %s\n",
		"Frequency (MHz)", "Variance", "Slope", "Net change", "Scans", "Classification")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range assessments {
		a := &assessments[i]
		if a.Class == track.InsufficientData {
			fmt.Fprintf(&sb, "%-16s %-12s %-12s %-12s %-10d %s\n",
				mhz(a.FrequencyHz), "-", "-", "-", a.ScanCount, a.Class)
			continue
		}
		fmt.Fprintf(&sb, "%-16s %-12.2f %-+12.2f %-+12.2f %-10d %s\n",
			mhz(a.FrequencyHz), a.VarianceDB2, a.TrendSlope, a.NetChangeDB(), a.ScanCount, a.Class)
	}
	sb.WriteString("\n")

	writeMovementAssessment(&sb, assessments)
	return sb.String()
}

func writeMovementAssessment(sb *strings.Builder, assessments []track.Assessment) {
	var mobile, fluctuating, stationary, insufficient int
	for i := range assessments {
		switch assessments[i].Class {
		case track.Mobile:
			mobile++
		case track.Fluctuating:
			fluctuating++
		case track.Stationary:
			stationary++
		case track.InsufficientData:
			insufficient++
		}
	}

	sb.WriteString("Assessment:\n")
	switch {
	case mobile > 0:
		sb.WriteString("  Sustained power trend on tracked frequencies: consistent with a MOBILE\n")
		sb.WriteString("  source approaching or receding. Continue monitoring to confirm the pattern.\n")
	case fluctuating > 0:
		sb.WriteString("  Power fluctuates without a sustained trend: consistent with a fixed source\n")
		sb.WriteString("  subject to power cycling or multipath. Environmental factors cannot be ruled out.\n")
	case stationary > 0:
		sb.WriteString("  All tracked signals stable: consistent with a STATIONARY installation.\n")
	}
	if insufficient > 0 {
		fmt.Fprintf(sb, "  %d frequency(ies) had too few observations to classify; conclusions for\n", insufficient)
		sb.WriteString("  those are withheld rather than guessed.\n")
	}
}
