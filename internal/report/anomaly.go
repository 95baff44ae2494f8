package report

import (
	"fmt"
	"strings"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/spectrum"
)

// Anomalies renders the baseline comparison result. The record list is
// already ordered by |delta| descending.
func Anomalies(records []detect.AnomalyRecord, thresholdDB float64, reference, current *spectrum.Summary) string {
	var sb strings.Builder
	NewMeta("Baseline Comparison").writeHeader(&sb)

	if len(reference.Sources()) > 0 {
		fmt.Fprintf(&sb, "Baseline: %s\n", strings.Join(reference.Sources(), ", "))
	}
	if len(current.Sources()) > 0 {
		fmt.Fprintf(&sb, "Current:  %s\n", strings.Join(current.Sources(), ", "))
	}
	fmt.Fprintf(&sb, "Power-delta threshold: %.1f dB (inclusive)\n\n", thresholdDB)

	writeSkipNotes(&sb, reference, current)

	if len(records) == 0 {
		sb.WriteString("No anomalies detected: current scan matches baseline within threshold.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "%-16s %-12s %-12s %-10s %-16s %s\n",
		"Frequency (MHz)", "Baseline", "Current", "Delta", "Classification", "Band")
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	for _, r := range records {
		fmt.Fprintf(&sb, "%-16s %-12.2f %-12.2f %-+10.2f %-16s %s\n",
			mhz(r.Frequency), r.BaselinePower, r.CurrentPower, r.DeltaDB, r.Class,
			spectrum.IdentifyBand(r.Frequency))
	}
	sb.WriteString("\n")

	writeThreatAssessment(&sb, records)
	return sb.String()
}

func writeThreatAssessment(sb *strings.Builder, records []detect.AnomalyRecord) {
	var hasNew, hasChanged, hasVanished bool
	for _, r := range records {
		switch r.Class {
		case detect.NewSignal:
			hasNew = true
		case detect.PowerIncrease, detect.PowerDecrease:
			hasChanged = true
		case detect.VanishedSignal:
			hasVanished = true
		}
	}

	sb.WriteString("Assessment:\n")
	switch {
	case hasNew:
		sb.WriteString("  HIGH: new signal(s) not present at baseline. Investigate these frequencies\n")
		sb.WriteString("  first; verify persistence with a follow-up scan before drawing conclusions.\n")
	case hasChanged:
		sb.WriteString("  MODERATE: signal strength changed beyond threshold. Monitor for continued change.\n")
	case hasVanished:
		sb.WriteString("  INFO: signal(s) present at baseline have disappeared. Re-scan to verify.\n")
	}
}
