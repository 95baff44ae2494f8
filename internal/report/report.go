// Package report renders analysis results as human-readable text
// suitable for inclusion in an evidence document. Machine consumers
// should use the typed results directly instead.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/sweephound/sweephound/internal/spectrum"
)

// Meta identifies one analysis run. Every report carries a unique run
// ID so results can be referenced unambiguously.
type Meta struct {
	Title       string
	RunID       string
	GeneratedAt time.Time
}

// NewMeta stamps a report title with a fresh run ID.
func NewMeta(title string) Meta {
	return Meta{
		Title:       title,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

func (m Meta) writeHeader(sb *strings.Builder) {
	fmt.Fprintf(sb, "=== %s ===\n", m.Title)
	fmt.Fprintf(sb, "Run ID:    %s\n", m.RunID)
	fmt.Fprintf(sb, "Generated: %s\n\n", m.GeneratedAt.Format(time.DateTime))
}

// mhz formats a frequency in MHz with two decimal places.
func mhz(freqHz float64) string {
	return fmt.Sprintf("%.2f", freqHz/1e6)
}

// siHz formats a frequency with an SI suffix (e.g. "851 MHz").
func siHz(freqHz float64) string {
	value, suffix := humanize.ComputeSI(freqHz)
	return fmt.Sprintf("%.4g %sHz", value, suffix)
}

// writeSkipNotes discloses parse defects of the contributing captures
// so conclusions are never presented as more certain than the data
// supports.
func writeSkipNotes(sb *strings.Builder, summaries ...*spectrum.Summary) {
	var rows, readings int
	for _, s := range summaries {
		if s == nil {
			continue
		}
		rows += s.SkippedRows()
		readings += s.SkippedReadings()
	}
	if rows == 0 && readings == 0 {
		return
	}

	sb.WriteString("Input quality:\n")
	if rows > 0 {
		fmt.Fprintf(sb, "  %s malformed row(s) skipped during parsing\n", humanize.Comma(int64(rows)))
	}
	if readings > 0 {
		fmt.Fprintf(sb, "  %s unreadable power value(s) dropped\n", humanize.Comma(int64(readings)))
	}
	sb.WriteString("  Skipped input lowers the effective sample count and may reduce confidence.\n\n")
}
