// Package app wires the sweephound subcommands: configuration loading,
// capture parsing and the analysis pipeline behind each command.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
)

// SetLogLevel applies the configured log level to the process-wide
// level var. Unknown levels fall back to info.
func SetLogLevel(level *slog.LevelVar, name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// newSummarizer builds a summarizer with the configured tolerance,
// optionally restricted to a band.
func (c *Config) newSummarizer(band *spectrum.Band) *spectrum.Summarizer {
	opts := []spectrum.Option{spectrum.WithTolerance(c.Analysis.BinToleranceHz)}
	if band != nil {
		opts = append(opts, spectrum.WithRange(band.LowHz, band.HighHz))
	}
	return spectrum.NewSummarizer(opts...)
}

// loadCaptures parses each file, skipping files that contain no valid
// rows: a dead capture must not abort the rest of a batch. It fails
// only when nothing parses at all.
func loadCaptures(paths []string, logger *slog.Logger) ([]*sweep.Capture, error) {
	var captures []*sweep.Capture
	for _, path := range paths {
		c, err := sweep.ParseFile(path)
		if err != nil {
			if errors.Is(err, sweep.ErrEmptyCapture) {
				logger.Warn("skipping capture with no valid rows", slog.String("path", path))
				continue
			}
			return nil, err
		}

		if c.SkippedRows > 0 || c.SkippedReadings > 0 {
			logger.Debug("capture parsed with defects",
				slog.String("path", path),
				slog.Int("skippedRows", c.SkippedRows),
				slog.Int("skippedReadings", c.SkippedReadings))
		}
		captures = append(captures, c)
	}

	if len(captures) == 0 {
		return nil, fmt.Errorf("no usable captures among %d file(s)", len(paths))
	}
	return captures, nil
}
