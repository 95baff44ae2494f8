package app

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sweephound/sweephound/internal/report"
	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
	"github.com/sweephound/sweephound/internal/track"
)

// RunMovement classifies the tracked frequencies of a tracking session
// (time-ordered scan_*.csv files) as stationary, fluctuating or mobile.
func RunMovement(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("movement", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	dir := fs.String("dir", "", "Tracking session directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("usage: sweephound movement -dir <session directory> [flags]")
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	SetLogLevel(level, config.Settings.LogLevel)

	files, err := sweep.TrackingFiles(*dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no scan files found in %s", *dir)
	}

	summarizer := config.newSummarizer(nil)

	// One summary per scan, in time order. A scan that fails to parse
	// is dropped; the classifier tolerates gaps.
	var summaries []*spectrum.Summary
	for _, path := range files {
		c, err := sweep.ParseFile(path)
		if err != nil {
			if errors.Is(err, sweep.ErrEmptyCapture) {
				logger.Warn("dropping empty scan", slog.String("path", path))
				continue
			}
			return err
		}
		summaries = append(summaries, summarizer.Summarize(c))
	}
	if len(summaries) == 0 {
		return fmt.Errorf("no usable scans in %s", *dir)
	}

	assessments := track.Classify(summaries, config.TrackedHz(),
		track.WithStableVariance(config.Analysis.StableVarianceDB2),
		track.WithDriftSlope(config.Analysis.DriftSlopeDB))

	fmt.Fprint(os.Stdout, report.Movement(assessments, len(summaries)))
	return nil
}
