package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sweephound/sweephound/internal/spectrum"
)

// Spectrum renders the strongest signals of a summarized capture.
func Spectrum(summary *spectrum.Summary, topN int) string {
	var sb strings.Builder
	NewMeta("Spectrum Analysis").writeHeader(&sb)

	for _, src := range summary.Sources() {
		fmt.Fprintf(&sb, "Capture: %s\n", src)
	}

	low, high := summary.FrequencyRange()
	fmt.Fprintf(&sb, "Frequency bins: %s\n", humanize.Comma(int64(summary.Len())))
	fmt.Fprintf(&sb, "Frequency range: %s - %s\n\n", siHz(low), siHz(high))

	writeSkipNotes(&sb, summary)

	fmt.Fprintf(&sb, "Top %d strongest signals:\n", topN)
	fmt.Fprintf(&sb, "%-16s %-14s %-10s %s\n", "Frequency (MHz)", "Power (dBm)", "Samples", "Band")
	sb.WriteString(strings.Repeat("-", 70) + "\n")

	for _, bin := range summary.TopN(topN) {
		fmt.Fprintf(&sb, "%-16s %-14.2f %-10d %s\n",
			mhz(bin.Frequency), bin.Mean, bin.SampleCount, spectrum.IdentifyBand(bin.Frequency))
	}
	sb.WriteString("\n")

	return sb.String()
}
