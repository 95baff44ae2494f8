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

// RunMultipath inspects a single capture for reflection indicators.
func RunMultipath(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("multipath", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	bandName := fs.String("band", "", "Configured band of interest (defaults to the first band)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: sweephound multipath [flags] <capture.csv>")
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	SetLogLevel(level, config.Settings.LogLevel)

	band, err := config.Band(*bandName)
	if err != nil {
		return err
	}

	c, err := sweep.ParseFile(fs.Arg(0))
	if err != nil {
		return err
	}

	summary := config.newSummarizer(nil).Summarize(c)
	result := detect.AnalyzeMultipath(summary, band,
		detect.WithVarianceMultiple(config.Analysis.MultipathMultiple))

	logger.Info("multipath analysis complete",
		slog.Int("suspectBins", len(result.SuspectBins)),
		slog.Bool("reflectionLikely", result.ReflectionLikely))

	fmt.Fprint(os.Stdout, report.Multipath(result, band))
	return nil
}
