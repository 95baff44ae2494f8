// Package detect compares spectrum summaries against a baseline and
// inspects reading spread for multipath contamination.
package detect

import (
	"math"
	"sort"

	"github.com/sweephound/sweephound/internal/spectrum"
)

// AnomalyClass labels how a frequency bin changed relative to the
// baseline.
type AnomalyClass string

const (
	NewSignal      AnomalyClass = "NEW_SIGNAL"
	VanishedSignal AnomalyClass = "VANISHED_SIGNAL"
	PowerIncrease  AnomalyClass = "POWER_INCREASE"
	PowerDecrease  AnomalyClass = "POWER_DECREASE"
)

// AnomalyRecord describes one frequency bin whose power changed beyond
// the configured threshold between baseline and current scans.
type AnomalyRecord struct {
	Frequency     float64 // Bin frequency in Hz
	BaselinePower float64 // Mean power in the reference scan, dBm
	CurrentPower  float64 // Mean power in the current scan, dBm
	DeltaDB       float64 // CurrentPower - BaselinePower
	Class         AnomalyClass
}

const (
	// DefaultThresholdDB is the power delta required before a bin that
	// exists in both scans is reported. The boundary is inclusive.
	DefaultThresholdDB = 50

	// DefaultFloorDBm is the strong-signal floor: a bin counts as
	// "present" for new/vanished classification only when its mean
	// power clears this level. Without a floor every bin of a full
	// sweep exists in both summaries and appearance changes could
	// never be detected.
	DefaultFloorDBm = -60
)

// CompareOption configures Compare.
type CompareOption func(*comparer)

// WithThreshold sets the inclusive power-delta threshold in dB.
func WithThreshold(db float64) CompareOption {
	return func(c *comparer) { c.threshold = db }
}

// WithFloor sets the strong-signal presence floor in dBm.
func WithFloor(dbm float64) CompareOption {
	return func(c *comparer) { c.floor = dbm }
}

type comparer struct {
	threshold float64
	floor     float64
}

// Compare diffs the current summary against a reference summary and
// returns anomaly records ordered by |delta| descending. Bins are
// matched across the two summaries by nearest frequency within the
// current summary's tolerance. A signal that is strong in both scans
// but unchanged produces no record: only deviation from the baseline
// is anomalous, not strength itself.
func Compare(reference, current *spectrum.Summary, opts ...CompareOption) []AnomalyRecord {
	c := comparer{threshold: DefaultThresholdDB, floor: DefaultFloorDBm}
	for _, opt := range opts {
		opt(&c)
	}

	var records []AnomalyRecord
	matched := make(map[float64]bool)

	for _, cur := range current.Bins() {
		ref, ok := reference.Nearest(cur.Frequency)
		if ok {
			matched[ref.Frequency] = true
		}

		curPresent := cur.Mean >= c.floor
		refPresent := ok && ref.Mean >= c.floor

		switch {
		case curPresent && refPresent:
			delta := cur.Mean - ref.Mean
			if math.Abs(delta) < c.threshold {
				continue
			}
			class := PowerIncrease
			if delta < 0 {
				class = PowerDecrease
			}
			records = append(records, AnomalyRecord{
				Frequency:     cur.Frequency,
				BaselinePower: ref.Mean,
				CurrentPower:  cur.Mean,
				DeltaDB:       delta,
				Class:         class,
			})

		case curPresent && !refPresent:
			baseline := c.floor
			if ok {
				baseline = ref.Mean
			}
			records = append(records, AnomalyRecord{
				Frequency:     cur.Frequency,
				BaselinePower: baseline,
				CurrentPower:  cur.Mean,
				DeltaDB:       cur.Mean - baseline,
				Class:         NewSignal,
			})

		case !curPresent && refPresent:
			records = append(records, AnomalyRecord{
				Frequency:     cur.Frequency,
				BaselinePower: ref.Mean,
				CurrentPower:  cur.Mean,
				DeltaDB:       cur.Mean - ref.Mean,
				Class:         VanishedSignal,
			})
		}
	}

	// Reference bins with no counterpart in the current scan at all.
	for _, ref := range reference.Bins() {
		if matched[ref.Frequency] || ref.Mean < c.floor {
			continue
		}
		records = append(records, AnomalyRecord{
			Frequency:     ref.Frequency,
			BaselinePower: ref.Mean,
			CurrentPower:  c.floor,
			DeltaDB:       c.floor - ref.Mean,
			Class:         VanishedSignal,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		di, dj := math.Abs(records[i].DeltaDB), math.Abs(records[j].DeltaDB)
		if di != dj {
			return di > dj
		}
		return records[i].Frequency < records[j].Frequency
	})

	return records
}
