package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strings"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	dpi            = 120.0
	fontSize       = 12.0
	tickMarkHeight = 5
	pixelsPerLabel = 150.0

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 80
	defaultBottomBorder = 40
	defaultRightBorder  = 40

	defaultTimeFormat     = "15:04"
	defaultDatetimeFormat = time.DateTime
)

// BorderConfig defines the sizes of white space around the spectrum
type BorderConfig struct {
	Top    int // Space for frequency scale
	Left   int // Space for time scale
	Bottom int // Space for information bar
	Right  int // Right padding
}

// RenderConfig holds all configuration options for spectrum visualization
type RenderConfig struct {
	TimeFormat     string         // Format string for time display (e.g. "15:04")
	DatetimeFormat string         // Format string for date/time display
	Location       *time.Location // Timezone for time display

	FontPath   string     // TTF font file; empty renders without annotations
	FontSize   float64    // Font size in points
	ColorTheme ColorTheme // Color scheme for power values

	BorderConfig BorderConfig
}

// SpectrumRenderer handles the visualization of radio spectrum data
type SpectrumRenderer struct {
	config RenderConfig
}

// NewSpectrumRenderer creates a new spectrum renderer with the given configuration
func NewSpectrumRenderer(config RenderConfig) *SpectrumRenderer {
	if config.TimeFormat == "" {
		config.TimeFormat = defaultTimeFormat
	}
	if config.DatetimeFormat == "" {
		config.DatetimeFormat = defaultDatetimeFormat
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.FontPath == "" {
		// No font, no room needed for scales.
		config.BorderConfig = BorderConfig{}
	} else {
		if config.BorderConfig.Top == 0 {
			config.BorderConfig.Top = defaultTopBorder
		}
		if config.BorderConfig.Left == 0 {
			config.BorderConfig.Left = defaultLeftBorder
		}
		if config.BorderConfig.Bottom == 0 {
			config.BorderConfig.Bottom = defaultBottomBorder
		}
		if config.BorderConfig.Right == 0 {
			config.BorderConfig.Right = defaultRightBorder
		}
	}

	return &SpectrumRenderer{config: config}
}

// Render creates an image of the spectrum data with annotations
func (r *SpectrumRenderer) Render(spec *SpectrumData) (*image.RGBA, error) {
	fullWidth := spec.Width + r.config.BorderConfig.Left + r.config.BorderConfig.Right
	fullHeight := spec.Height + r.config.BorderConfig.Top + r.config.BorderConfig.Bottom
	img := image.NewRGBA(image.Rect(0, 0, fullWidth, fullHeight))

	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Spectrum area, 1:1 pixel mapping
	spectrumArea := image.Rect(
		r.config.BorderConfig.Left,
		r.config.BorderConfig.Top,
		r.config.BorderConfig.Left+spec.Width,
		r.config.BorderConfig.Top+spec.Height,
	)

	if r.config.FontPath != "" {
		ann, err := newAnnotator(annotatorConfig{
			TimeFormat:     r.config.TimeFormat,
			DatetimeFormat: r.config.DatetimeFormat,
			Location:       r.config.Location,
			FontPath:       r.config.FontPath,
			FontSize:       r.config.FontSize,
			Borders:        r.config.BorderConfig,
		})
		if err != nil {
			return nil, fmt.Errorf("creating annotator: %w", err)
		}
		defer ann.Close()

		if err = ann.annotate(img, spec); err != nil {
			return nil, fmt.Errorf("drawing annotations: %w", err)
		}
	}

	colorMap := NewColorMapper(r.config.ColorTheme, spec.Bounds())
	r.renderSpectrum(img, spectrumArea, spec, colorMap)

	return img, nil
}

// renderSpectrum draws the actual spectrum data using the color map
func (r *SpectrumRenderer) renderSpectrum(img *image.RGBA, area image.Rectangle, spec *SpectrumData, colorMap *ColorMapper) {
	for y, row := range spec.Rows {
		imgY := area.Min.Y + y
		for x, power := range row {
			img.Set(area.Min.X+x, imgY, colorMap.GetColor(power))
		}
	}
}

// Internal annotator implementation
type annotatorConfig struct {
	TimeFormat     string
	DatetimeFormat string
	Location       *time.Location
	FontPath       string
	FontSize       float64
	Borders        BorderConfig
}

type annotator struct {
	context  *freetype.Context
	config   annotatorConfig
	fontFace font.Face
}

func newAnnotator(config annotatorConfig) (*annotator, error) {
	fontBytes, err := os.ReadFile(config.FontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}

	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		config:  config,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, spec *SpectrumData) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	if err := a.drawFrequencyScale(img, spec); err != nil {
		return fmt.Errorf("drawing frequency scale: %w", err)
	}
	if err := a.drawTimeScale(img, spec); err != nil {
		return fmt.Errorf("drawing time scale: %w", err)
	}
	if err := a.drawInfoBar(img, spec); err != nil {
		return fmt.Errorf("drawing info bar: %w", err)
	}

	return nil
}

func (a *annotator) drawFrequencyScale(img *image.RGBA, spec *SpectrumData) error {
	freqStep := calculateNiceFrequencyStep(spec.FrequencyMax-spec.FrequencyMin, spec.Width)
	startFreq := math.Floor(spec.FrequencyMin/freqStep) * freqStep

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	textY := a.config.Borders.Top - fontHeight/2

	for freq := startFreq; freq <= spec.FrequencyMax; freq += freqStep {
		xRatio := (freq - spec.FrequencyMin) / (spec.FrequencyMax - spec.FrequencyMin)
		x := a.config.Borders.Left + int(xRatio*float64(spec.Width))

		for y := a.config.Borders.Top - tickMarkHeight; y < a.config.Borders.Top; y++ {
			img.Set(x, y, color.Black)
		}

		label := formatFrequency(freq)
		width := font.MeasureString(a.fontFace, label)
		pt := freetype.Pt(x-(width.Round()/2), textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing frequency label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawTimeScale(img *image.RGBA, spec *SpectrumData) error {
	duration := spec.TimestampEnd.Sub(spec.TimestampStart)
	timeStep := calculateNiceTimeStep(duration)

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	currentTime := spec.TimestampStart
	for y := 0; y < spec.Height; y += int(timeStep.Seconds()) {
		imgY := y + a.config.Borders.Top

		for x := a.config.Borders.Left - tickMarkHeight; x < a.config.Borders.Left; x++ {
			img.Set(x, imgY, color.Black)
		}

		textY := imgY + fontHeight/2 - metrics.Descent.Round()

		label := currentTime.In(a.config.Location).Format(a.config.TimeFormat)
		pt := freetype.Pt(10, textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing time label: %w", err)
		}

		currentTime = currentTime.Add(timeStep)
	}
	return nil
}

func (a *annotator) drawInfoBar(img *image.RGBA, spec *SpectrumData) error {
	var sb strings.Builder

	sb.WriteString(formatFrequencyRange(spec.FrequencyMin, spec.FrequencyMax))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("Time: %s - %s",
		spec.TimestampStart.In(a.config.Location).Format(a.config.DatetimeFormat),
		spec.TimestampEnd.In(a.config.Location).Format(a.config.DatetimeFormat)))

	freqPerPixel := (spec.FrequencyMax - spec.FrequencyMin) / float64(spec.Width)

	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("1px = %s", formatFrequency(freqPerPixel)))

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	textY := img.Bounds().Max.Y - (a.config.Borders.Bottom-fontHeight)/2 - metrics.Descent.Round()

	pt := freetype.Pt(a.config.Borders.Left, textY)
	if _, err := a.context.DrawString(sb.String(), pt); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}

	return nil
}

// Helper functions

func calculateNiceFrequencyStep(range_ float64, width int) float64 {
	// Standard step sizes in Hz
	steps := []float64{
		1,
		10,
		100,
		1_000,
		10_000,
		100_000,
		1_000_000,
		10_000_000,
		100_000_000,
		1_000_000_000,
	}

	desiredSteps := float64(width) / pixelsPerLabel
	targetStep := range_ / desiredSteps

	for _, step := range steps {
		if step >= targetStep {
			// Needs to produce at least 2 labels to be useful
			if range_/step >= 2 {
				return step
			}
			break
		}
	}

	// Fall back to half the range to show at least the center frequency
	return range_ / 2
}

func formatFrequency(freq float64) string {
	switch {
	case freq >= 1e9:
		return fmt.Sprintf("%.1f GHz", freq/1e9)
	case freq >= 1e6:
		return fmt.Sprintf("%.1f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%.1f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%.0f Hz", freq)
	}
}

func formatFrequencyRange(min, max float64) string {
	return fmt.Sprintf("Freq: %s - %s", formatFrequency(min), formatFrequency(max))
}

func calculateNiceTimeStep(duration time.Duration) time.Duration {
	seconds := duration.Seconds()
	roughStep := seconds / 8 // Aim for about 8 time labels

	niceIntervals := []float64{
		60,
		300,
		600,
		900,
		1800,
		3600,
		7200,
		14400,
	}

	for _, interval := range niceIntervals {
		if roughStep <= interval {
			return time.Duration(interval) * time.Second
		}
	}

	return time.Hour * 6
}
