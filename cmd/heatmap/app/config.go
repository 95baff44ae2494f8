package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"
)

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"
)

type ImageFormat string

type Config struct {
	DBPath     string
	SessionID  int64
	OutputFile string
	Format     ImageFormat
	Theme      ColorTheme
	FontPath   string
	TimeZone   *time.Location

	MinFrequency *float64
	MaxFrequency *float64

	Verbose bool
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

func NewConfig() *Config {
	return &Config{
		Format:   ImagePNG,
		Theme:    ClassicTheme,
		TimeZone: time.Local,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat, theme, timeZone string
	var minFreq, maxFreq float64
	flag.StringVar(&c.DBPath, "db", "", "Path to the session database file")
	flag.Int64Var(&c.SessionID, "s", 1, "Session ID")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file, without extension")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.StringVar(&theme, "theme", string(ClassicTheme), "Color theme. [classic, grayscale, jungle, thermal, marine]")
	flag.StringVar(&c.FontPath, "font", "", "Path to a TTF font used for scales and labels; omit to render without annotations")
	flag.StringVar(&timeZone, "tz", "", "Timezone for time labels, e.g. Australia/Sydney")
	flag.Float64Var(&minFreq, "min-freq", 0, "Skip readings below this frequency, Hz")
	flag.Float64Var(&maxFreq, "max-freq", 0, "Skip readings above this frequency, Hz")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	imageFormat = strings.ToLower(imageFormat)

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-freq" {
			c.MinFrequency = &minFreq
		}
		if f.Name == "max-freq" {
			c.MaxFrequency = &maxFreq
		}
	})

	var err error
	if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if c.SessionID <= 0 {
		err = errors.New("session id is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if _, ok := validImageFormats[ImageFormat(imageFormat)]; !ok {
		err = fmt.Errorf("invalid image format: %s", imageFormat)
	} else if _, ok := colorThemes[ColorTheme(theme)]; !ok {
		err = fmt.Errorf("invalid color theme: %s", theme)
	}
	if err != nil {
		flag.Usage()
		return nil, err
	}

	if timeZone != "" {
		if c.TimeZone, err = time.LoadLocation(timeZone); err != nil {
			return nil, fmt.Errorf("loading timezone: %w", err)
		}
	}

	c.Format = ImageFormat(imageFormat)
	c.Theme = ColorTheme(theme)
	c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	return c, nil
}
