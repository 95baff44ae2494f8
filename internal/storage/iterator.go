package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sweephound/sweephound/internal/sweep"
)

// IteratorOption restricts the samples a SpanIterator visits.
type IteratorOption func(*SpanIterator)

// WithMinFreq skips samples below minFreq Hz.
func WithMinFreq(minFreq float64) IteratorOption {
	return func(i *SpanIterator) {
		i.minFreq = &minFreq
	}
}

// WithMaxFreq skips samples above maxFreq Hz.
func WithMaxFreq(maxFreq float64) IteratorOption {
	return func(i *SpanIterator) {
		i.maxFreq = &maxFreq
	}
}

// WithTimeRange restricts iteration to [startTime, endTime].
func WithTimeRange(startTime, endTime time.Time) IteratorOption {
	return func(i *SpanIterator) {
		i.startTime = &startTime
		i.endTime = &endTime
	}
}

// SpanIterator provides buffered iteration over a session's
// measurements grouped into time-ordered spans. Each instance must be
// used from a single goroutine and closed after use.
type SpanIterator struct {
	rows *sql.Rows

	minFreq   *float64
	maxFreq   *float64
	startTime *time.Time
	endTime   *time.Time

	currentSpan *Span
	pending     *row
	err         error
	done        bool
}

type row struct {
	timestamp time.Time
	frequency float64
	binWidth  float64
	power     float64
}

// IterateSpans returns a SpanIterator over the session's samples in
// (timestamp, frequency) order.
func (s *Store) IterateSpans(ctx context.Context, sessionID int64, opts ...IteratorOption) (*SpanIterator, error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	it := SpanIterator{}
	for _, opt := range opts {
		opt(&it)
	}

	var sb strings.Builder
	sb.WriteString(selectSamplesSQL)

	args := []any{sessionID}
	if it.minFreq != nil {
		sb.WriteString(" AND frequency >= ?")
		args = append(args, *it.minFreq)
	}
	if it.maxFreq != nil {
		sb.WriteString(" AND frequency <= ?")
		args = append(args, *it.maxFreq)
	}
	if it.startTime != nil {
		sb.WriteString(" AND timestamp >= ?")
		args = append(args, it.startTime.UTC())
	}
	if it.endTime != nil {
		sb.WriteString(" AND timestamp <= ?")
		args = append(args, it.endTime.UTC())
	}
	sb.WriteString(" ORDER BY timestamp, frequency")

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}

	it.rows = rows
	return &it, nil
}

// Next advances to the next span. It returns false when iteration is
// exhausted or an error occurred; check Err afterwards.
func (it *SpanIterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}

	var span *Span
	if it.pending != nil {
		span = newSpan(it.pending)
		it.pending = nil
	}

	for it.rows.Next() {
		var r row
		if err := it.rows.Scan(&r.timestamp, &r.frequency, &r.binWidth, &r.power); err != nil {
			it.err = fmt.Errorf("scanning sample: %w", err)
			return false
		}

		if span == nil {
			span = newSpan(&r)
			continue
		}

		if !r.timestamp.Equal(span.Timestamp) {
			it.pending = &r
			it.currentSpan = span
			return true
		}

		appendPoint(span, &r)
	}

	if err := it.rows.Err(); err != nil {
		it.err = fmt.Errorf("iterating samples: %w", err)
		return false
	}

	it.done = true
	if span == nil {
		return false
	}

	it.currentSpan = span
	return true
}

// Span returns the span advanced to by the last successful Next call.
func (it *SpanIterator) Span() *Span {
	return it.currentSpan
}

// Err returns the first error encountered during iteration.
func (it *SpanIterator) Err() error {
	return it.err
}

// Close releases the underlying rows.
func (it *SpanIterator) Close() error {
	return it.rows.Close()
}

func newSpan(r *row) *Span {
	span := Span{Timestamp: r.timestamp}
	appendPoint(&span, r)
	return &span
}

func appendPoint(span *Span, r *row) {
	if len(span.Points) == 0 || r.frequency < span.FrequencyStart {
		span.FrequencyStart = r.frequency
	}
	if end := r.frequency + r.binWidth; end > span.FrequencyEnd {
		span.FrequencyEnd = end
	}
	span.Points = append(span.Points, Point{
		Frequency: r.frequency,
		BinWidth:  r.binWidth,
		Power:     r.power,
	})
}

// ReadCapture reconstructs a sweep.Capture from a stored session so the
// analysis pipeline can run against the archive instead of the original
// CSV. Rows sharing a timestamp are regrouped into contiguous sweep
// chunks; the session's skip counts are restored onto the capture.
func (s *Store) ReadCapture(ctx context.Context, sessionID int64, opts ...IteratorOption) (*sweep.Capture, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %d not found", sessionID)
	}

	it, err := s.IterateSpans(ctx, sessionID, opts...)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	c := sweep.Capture{
		Source:          session.Source,
		SkippedRows:     session.SkippedRows,
		SkippedReadings: session.SkippedReadings,
	}

	for it.Next() {
		span := it.Span()

		var current *sweep.SweepSample
		for _, p := range span.Points {
			// Start a new chunk when the frequency step breaks
			// contiguity or the bin width changes.
			if current == nil || p.BinWidth != current.BinWidth ||
				math.Abs(current.BinFrequency(len(current.Readings))-p.Frequency) > p.BinWidth/100 {
				c.Samples = append(c.Samples, sweep.SweepSample{
					Timestamp: span.Timestamp,
					FreqLow:   p.Frequency,
					BinWidth:  p.BinWidth,
				})
				current = &c.Samples[len(c.Samples)-1]
			}
			current.Readings = append(current.Readings, p.Power)
			current.FreqHigh = p.Frequency + p.BinWidth
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	if len(c.Samples) == 0 {
		return nil, sweep.ErrEmptyCapture
	}
	return &c, nil
}
