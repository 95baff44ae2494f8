package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sweephound/sweephound/internal/detect"
	"github.com/sweephound/sweephound/internal/locate"
	"github.com/sweephound/sweephound/internal/report"
)

// RunPosition estimates the emitter position. Vantage points come from
// the configuration; with none configured, -dir runs a single-vantage
// estimate from one directional session at the reference point.
func RunPosition(args []string, logger *slog.Logger, level *slog.LevelVar) error {
	fs := flag.NewFlagSet("position", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to the configuration file")
	dir := fs.String("dir", "", "Directional session directory for a single-vantage estimate")
	bandName := fs.String("band", "", "Configured band of interest (defaults to the first band)")
	antennaHeight := fs.Float64("antenna-height", 2.5, "Antenna height in feet for the single-vantage case")
	unitName := fs.String("unit", "", "Length unit for the report: feet or meters")
	if err := fs.Parse(args); err != nil {
		return err
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

	unit := locate.Unit(config.Analysis.Unit)
	if *unitName != "" {
		unit = locate.Unit(*unitName)
		if !unit.Valid() {
			return fmt.Errorf("invalid unit %q", *unitName)
		}
	}

	vantages := config.Vantages
	if len(vantages) == 0 {
		if *dir == "" {
			return fmt.Errorf("no vantages configured and no -dir given")
		}
		vantages = []VantageConfig{{
			Name:              "observer",
			AntennaHeightFeet: *antennaHeight,
			Directory:         *dir,
		}}
	}

	var observations []locate.Observation
	var multipath *detect.MultipathReport

	for _, v := range vantages {
		session, err := loadDirectionalSession(v.Directory, config, band, logger)
		if err != nil {
			logger.Warn("skipping vantage", slog.String("vantage", v.Name), slog.String("error", err.Error()))
			continue
		}

		est := session.Estimate(band)
		if est.InsufficientData {
			logger.Warn("vantage has too few headings for a bearing",
				slog.String("vantage", v.Name), slog.Int("headings", len(est.Ranking)))
			continue
		}

		power, _ := est.StrongestPower()
		observations = append(observations, locate.Observation{
			Vantage: locate.Vantage{
				Name:              v.Name,
				NorthFeet:         v.NorthFeet,
				EastFeet:          v.EastFeet,
				AntennaHeightFeet: v.AntennaHeightFeet,
			},
			PowerDBm:          power,
			BearingDegrees:    est.BearingDegrees,
			BearingConfidence: est.Confidence,
			VerticalTrend:     est.VerticalTrend,
			VerticalDeltaDB:   est.VerticalDeltaDB,
		})

		// Multipath is judged at the strongest heading: reflections
		// there contaminate the distance estimate the most.
		if summary, ok := session[est.Primary]; ok {
			r := detect.AnalyzeMultipath(summary, band,
				detect.WithVarianceMultiple(config.Analysis.MultipathMultiple))
			if multipath == nil || r.ReflectionLikely {
				multipath = r
			}
		}
	}

	if len(observations) == 0 {
		return fmt.Errorf("no vantage produced a usable bearing; cannot estimate position")
	}

	est := locate.EstimatePosition(observations, band.CenterHz()/1e6,
		locate.WithTxPower(config.Analysis.TxPowerDBm),
		locate.WithMultipath(multipath))

	logger.Info("position estimated",
		slog.Int("vantages", len(observations)),
		slog.Float64("confidence", est.Confidence))

	fmt.Fprint(os.Stdout, report.Position(est, unit, band.CenterHz()/1e6, multipath))
	return nil
}
