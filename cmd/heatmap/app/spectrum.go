package app

import (
	"math"
	"time"

	"github.com/sweephound/sweephound/internal/storage"
)

// SpectrumData accumulates stored spans into a waterfall grid, one row
// per span, one column per frequency bin.
type SpectrumData struct {
	Width, Height                int
	FrequencyMin, FrequencyMax   float64
	TimestampStart, TimestampEnd time.Time
	Rows                         [][]float64

	powers []float64
}

func NewSpectrumData() *SpectrumData {
	return &SpectrumData{
		FrequencyMin: math.MaxFloat64,
	}
}

func (s *SpectrumData) Update(span *storage.Span) {
	s.Width = max(s.Width, len(span.Points))
	s.Height++

	s.FrequencyMin = min(s.FrequencyMin, span.FrequencyStart)
	s.FrequencyMax = max(s.FrequencyMax, span.FrequencyEnd)

	if s.TimestampStart.IsZero() || s.TimestampStart.After(span.Timestamp) {
		s.TimestampStart = span.Timestamp
	}
	if s.TimestampEnd.IsZero() || s.TimestampEnd.Before(span.Timestamp) {
		s.TimestampEnd = span.Timestamp
	}

	row := make([]float64, len(span.Points))
	for i, p := range span.Points {
		row[i] = p.Power
		s.powers = append(s.powers, p.Power)
	}
	s.Rows = append(s.Rows, row)
}

// Bounds returns display power bounds over everything accumulated so far.
func (s *SpectrumData) Bounds() PowerBounds {
	return percentileBounds(s.powers)
}
