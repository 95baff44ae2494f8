package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/report"
	"github.com/sweephound/sweephound/internal/sweep"
)

// RunCompare diffs a current scan against a baseline scan and prints
// the anomaly report.
func RunCompare(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	threshold := fs.Float64("threshold", 0, "Power-delta threshold in dB (overrides configuration)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: sweephound compare [flags] <baseline.csv> <current.csv>")
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	SetLogLevel(level, config.Settings.LogLevel)

	thresholdDB := config.Analysis.DeltaThresholdDB
	if *threshold > 0 {
		thresholdDB = *threshold
	}

	baseline, err := sweep.ParseFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	current, err := sweep.ParseFile(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("current: %w", err)
	}

	summarizer := config.newSummarizer(nil)
	refSummary := summarizer.Summarize(baseline)
	curSummary := summarizer.Summarize(current)

	records := detect.Compare(refSummary, curSummary,
		detect.WithThreshold(thresholdDB),
		detect.WithFloor(*config.Analysis.SignalFloorDBm))

	logger.Info("comparison complete",
		slog.Int("anomalies", len(records)),
		slog.Float64("thresholdDB", thresholdDB))

	fmt.Fprint(os.Stdout, report.Anomalies(records, thresholdDB, refSummary, curSummary))
	return nil
}
