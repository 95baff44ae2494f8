package sweep

import "time"

// SweepSample represents one row of a sweep capture: a contiguous chunk
// of frequency bins measured at a single point in time.
type SweepSample struct {
	Timestamp time.Time // When this chunk was measured
	FreqLow   float64   // Start frequency of the chunk in Hz
	FreqHigh  float64   // End frequency of the chunk in Hz
	BinWidth  float64   // Width of each frequency bin in Hz
	Readings  []float64 // Ordered power readings in dBm, one per bin
}

// BinFrequency returns the frequency of the k-th reading in the sample.
func (s *SweepSample) BinFrequency(k int) float64 {
	return s.FreqLow + float64(k)*s.BinWidth
}

// Capture is the parsed content of a single sweep capture file.
// Malformed rows and readings are counted rather than failing the
// parse; Samples holds only what survived.
type Capture struct {
	Source          string        // Origin of the capture (file path or label)
	Samples         []SweepSample // Valid rows in file order
	SkippedRows     int           // Rows dropped (wrong field count, bad header fields)
	SkippedReadings int           // Individual power readings dropped (non-numeric)
}

// ReadingCount returns the total number of valid power readings across
// all samples in the capture.
func (c *Capture) ReadingCount() int {
	var n int
	for i := range c.Samples {
		n += len(c.Samples[i].Readings)
	}
	return n
}
