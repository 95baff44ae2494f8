package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/sweephound/sweephound/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.New(config.DBPath)
	defer store.Close()

	return renderSession(ctx, store, config, logger)
}

func renderSession(ctx context.Context, store *storage.Store, config *Config, logger *slog.Logger) error {
	var opts []storage.IteratorOption
	var filters []any
	if config.MinFrequency != nil {
		opts = append(opts, storage.WithMinFreq(*config.MinFrequency))
		filters = append(filters, slog.String("minFreq", fmt.Sprintf("%0.2fHz", *config.MinFrequency)))
	}
	if config.MaxFrequency != nil {
		opts = append(opts, storage.WithMaxFreq(*config.MaxFrequency))
		filters = append(filters, slog.String("maxFreq", fmt.Sprintf("%0.2fHz", *config.MaxFrequency)))
	}

	logger.Info("iterator configuration", filters...)

	iter, err := store.IterateSpans(ctx, config.SessionID, opts...)
	if err != nil {
		return err
	}
	defer iter.Close()

	logger.Info("reading data points, hold on tight, it will take a while")

	spec := NewSpectrumData()
	for iter.Next() {
		spec.Update(iter.Span())
	}
	if err = iter.Err(); err != nil {
		return err
	}
	if spec.Height == 0 {
		return fmt.Errorf("session %d has no samples in the selected range", config.SessionID)
	}

	bounds := spec.Bounds()

	logger.Info("finished reading data points",
		slog.Group("stats",
			slog.String("minTimestamp", spec.TimestampStart.Local().Format(time.DateTime)),
			slog.String("maxTimestamp", spec.TimestampEnd.Local().Format(time.DateTime)),
			slog.String("minFreq", fmt.Sprintf("%0.2fHz", spec.FrequencyMin)),
			slog.String("maxFreq", fmt.Sprintf("%0.2fHz", spec.FrequencyMax)),
			slog.String("minPower", fmt.Sprintf("%0.2fdB", bounds.Min)),
			slog.String("maxPower", fmt.Sprintf("%0.2fdB", bounds.Max)),
		))

	renderer := NewSpectrumRenderer(RenderConfig{
		Location:   config.TimeZone,
		FontPath:   config.FontPath,
		ColorTheme: config.Theme,
	})

	logger.Info("rendering spectrum",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Theme)),
			slog.Int("width", spec.Width),
			slog.Int("height", spec.Height),
		))

	img, err := renderer.Render(spec)
	if err != nil {
		return fmt.Errorf("rendering spectrum: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
