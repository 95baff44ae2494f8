package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sweephound/sweephound/internal/report"
)

// RunAnalyze summarizes one or more captures and prints the strongest
// signals.
func RunAnalyze(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	topN := fs.Int("top", 20, "Number of strongest signals to report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: sweephound analyze [flags] <capture.csv>...")
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	SetLogLevel(level, config.Settings.LogLevel)

	captures, err := loadCaptures(fs.Args(), logger)
	if err != nil {
		return err
	}

	summary := config.newSummarizer(nil).Summarize(captures...)

	fmt.Fprint(os.Stdout, report.Spectrum(summary, *topN))
	return nil
}
