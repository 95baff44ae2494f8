package storage

import (
	"database/sql"
	"time"
)

// Session is one imported capture.
type Session struct {
	ID              int64
	StartTime       time.Time
	Label           string         // Session role: "baseline", "scan", "directional", ...
	Heading         sql.NullString // Antenna heading for directional captures
	Source          string         // Original capture file path
	SkippedRows     int
	SkippedReadings int
}

// VantageRecord is a stored vantage point definition.
type VantageRecord struct {
	ID                int64
	Name              string
	NorthFeet         float64
	EastFeet          float64
	AntennaHeightFeet float64
}

// Point is a single stored power measurement.
type Point struct {
	Frequency float64 // Hz
	BinWidth  float64 // Hz
	Power     float64 // dBm
}

// Span is all measurements of a session that share one timestamp,
// ordered by frequency.
type Span struct {
	Timestamp      time.Time
	FrequencyStart float64
	FrequencyEnd   float64
	Points         []Point
}
