package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sweephound/sweephound/internal/bearing"
	"github.com/sweephound/sweephound/internal/report"
	"github.com/sweephound/sweephound/internal/spectrum"
	"github.com/sweephound/sweephound/internal/sweep"
)

// RunDirection estimates a bearing from a directory of directional
// captures (one capture per antenna heading, heading taken from the
// filename).
func RunDirection(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("direction", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	dir := fs.String("dir", "", "Directory holding the directional captures")
	bandName := fs.String("band", "", "Configured band of interest (defaults to the first band)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" {
		return fmt.Errorf("usage: sweephound direction -dir <session directory> [flags]")
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

	session, err := loadDirectionalSession(*dir, config, band, logger)
	if err != nil {
		return err
	}

	est := session.Estimate(band)
	fmt.Fprint(os.Stdout, report.Direction(est, band))
	return nil
}

// loadDirectionalSession parses the newest capture per heading found in
// dir. Headings whose capture fails to parse are dropped with a
// warning; missing headings degrade the estimate, they do not fail it.
func loadDirectionalSession(dir string, config *Config, band spectrum.Band, logger *slog.Logger) (bearing.Session, error) {
	files, err := sweep.DirectionalFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no directional captures found in %s", dir)
	}

	summarizer := config.newSummarizer(&band)

	session := make(bearing.Session)
	for heading, path := range files {
		c, err := sweep.ParseFile(path)
		if err != nil {
			logger.Warn("dropping heading capture",
				slog.String("heading", heading.String()),
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		session[heading] = summarizer.Summarize(c)
		logger.Debug("loaded heading", slog.String("heading", heading.String()), slog.String("path", path))
	}

	if len(session) == 0 {
		return nil, fmt.Errorf("no usable directional captures in %s", dir)
	}
	return session, nil
}
