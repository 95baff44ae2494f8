package sweep

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyCapture is returned when a capture contains no valid rows at
// all. It is fatal for that file but callers processing a batch should
// continue with the remaining files.
var ErrEmptyCapture = errors.New("no valid sweep rows in capture")

const timestampLayout = "2006-01-02 15:04:05"

// minRowFields is the smallest row that still carries the sweep header:
// date, time, hz_low, hz_high, hz_bin_width, num_samples.
const minRowFields = 6

// ParseFile parses a sweep capture file produced by rtl_power or
// hackrf_sweep.
func ParseFile(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	c.Source = path
	return c, nil
}

// Parse decodes comma-delimited sweep rows from r. Rows with too few
// fields or unparseable header fields are skipped and counted;
// non-numeric power readings are skipped individually. Parse fails only
// when no valid row remains.
func Parse(r io.Reader) (*Capture, error) {
	var c Capture

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sample, skippedReadings, ok := parseRow(line)
		if !ok {
			c.SkippedRows++
			continue
		}

		c.SkippedReadings += skippedReadings
		c.Samples = append(c.Samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}

	if len(c.Samples) == 0 {
		return nil, ErrEmptyCapture
	}

	return &c, nil
}

// parseRow decodes a single sweep row of the form:
//
//	date, time, hz_low, hz_high, hz_bin_width, num_samples, dB, dB, ...
//
// The second return value is the number of power readings dropped from
// an otherwise valid row.
func parseRow(line string) (SweepSample, int, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < minRowFields {
		return SweepSample{}, 0, false
	}

	dateTime := strings.TrimSpace(fields[0]) + " " + strings.TrimSpace(fields[1])
	timestamp, err := time.Parse(timestampLayout, dateTime)
	if err != nil {
		return SweepSample{}, 0, false
	}

	freqLow, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return SweepSample{}, 0, false
	}

	freqHigh, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return SweepSample{}, 0, false
	}

	binWidth, err := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
	if err != nil || binWidth <= 0 {
		return SweepSample{}, 0, false
	}

	sample := SweepSample{
		Timestamp: timestamp,
		FreqLow:   freqLow,
		FreqHigh:  freqHigh,
		BinWidth:  binWidth,
	}

	var skipped int
	for _, field := range fields[minRowFields:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		power, err := strconv.ParseFloat(field, 64)
		if err != nil {
			skipped++
			continue
		}

		sample.Readings = append(sample.Readings, power)
	}
	if len(sample.Readings) == 0 {
		return SweepSample{}, 0, false
	}

	return sample, skipped, true
}
