package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sweephound/sweephound/internal/storage"
	"github.com/sweephound/sweephound/internal/sweep"
)

// RunImport parses capture files and archives them as sessions in a
// sqlite file, one session per capture. Directional headings are taken
// from the filenames.
func RunImport(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	dbPath := fs.String("db", "", "Archive database path (defaults to a timestamped file in the data directory)")
	label := fs.String("label", "scan", "Session label (baseline, scan, directional, ...)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: sweephound import [flags] <capture.csv>...")
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	SetLogLevel(level, config.Settings.LogLevel)

	path := *dbPath
	if path == "" {
		dir := config.Storage.DataDirectory
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, fmt.Sprintf("sweep_archive_%s.sqlite", time.Now().UTC().Format("20060102_150405")))
	}

	store := storage.New(path)
	defer store.Close()

	ctx := context.Background()
	var imported int
	for _, capturePath := range fs.Args() {
		c, err := sweep.ParseFile(capturePath)
		if err != nil {
			if errors.Is(err, sweep.ErrEmptyCapture) {
				logger.Warn("skipping capture with no valid rows", slog.String("path", capturePath))
				continue
			}
			return err
		}

		heading, _ := sweep.HeadingFromFilename(capturePath)
		sessionID, err := store.ImportCapture(ctx, *label, heading, c)
		if err != nil {
			return fmt.Errorf("importing %s: %w", capturePath, err)
		}

		logger.Info("capture imported",
			slog.String("path", capturePath),
			slog.Int64("sessionID", sessionID),
			slog.Int("rows", len(c.Samples)),
			slog.Int("readings", c.ReadingCount()))
		imported++
	}

	if imported == 0 {
		return fmt.Errorf("no captures imported")
	}

	fmt.Fprintf(os.Stdout, "Imported %d capture(s) into %s\n", imported, path)
	return nil
}
