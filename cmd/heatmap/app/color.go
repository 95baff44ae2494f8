package app

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorTheme selects a power-to-color gradient:
//   - ClassicTheme: traditional spectrum display (blue to red)
//   - GrayscaleTheme: monochrome
//   - JungleTheme: dark green to yellow
//   - ThermalTheme: black to red to yellow to white
//   - MarineTheme: deep blue to cyan to white
type ColorTheme string

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
	JungleTheme    ColorTheme = "jungle"
	ThermalTheme   ColorTheme = "thermal"
	MarineTheme    ColorTheme = "marine"

	colorMapSize = 256
)

var colorThemes = map[ColorTheme]func(float64) color.Color{
	ClassicTheme: func(power float64) color.Color {
		return colorful.Hsv(240-(power*240), 0.9+(power*0.1), math.Pow(power, 0.7))
	},

	GrayscaleTheme: func(power float64) color.Color {
		v := uint8(math.Pow(power, 0.7) * 255)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	},

	JungleTheme: func(power float64) color.Color {
		return colorful.Hsv(120-(power*60), 1, 0.3+(math.Pow(power, 0.6)*0.7))
	},

	ThermalTheme: func(power float64) color.Color {
		switch {
		case power < 0.33:
			return color.RGBA{R: uint8(power * 3 * 255), A: 255}
		case power < 0.66:
			return color.RGBA{R: 255, G: uint8((power - 0.33) * 3 * 255), A: 255}
		default:
			return color.RGBA{R: 255, G: 255, B: uint8((power - 0.66) * 3 * 255), A: 255}
		}
	},

	MarineTheme: func(power float64) color.Color {
		return colorful.Hsv(240-(power*60), 1-(power*0.8), 0.3+(math.Pow(power, 0.6)*0.7))
	},
}

// ColorMapper maps power readings onto a pre-computed gradient
// stretched over the current display bounds.
type ColorMapper struct {
	colorMap      []color.Color
	boundsMin     float64
	powerPerIndex float64
}

func NewColorMapper(theme ColorTheme, bounds PowerBounds) *ColorMapper {
	themeFn, ok := colorThemes[theme]
	if !ok {
		themeFn = colorThemes[ClassicTheme]
	}

	cm := ColorMapper{
		colorMap:      make([]color.Color, colorMapSize),
		boundsMin:     bounds.Min,
		powerPerIndex: (bounds.Max - bounds.Min) / float64(colorMapSize-1),
	}
	for i := range cm.colorMap {
		cm.colorMap[i] = themeFn(float64(i) / float64(colorMapSize-1))
	}
	return &cm
}

// GetColor returns the gradient color for a power reading, clamping
// values outside the display bounds.
func (cm *ColorMapper) GetColor(power float64) color.Color {
	index := int((power - cm.boundsMin) / cm.powerPerIndex)
	if index < 0 {
		return cm.colorMap[0]
	}
	if index >= len(cm.colorMap) {
		return cm.colorMap[len(cm.colorMap)-1]
	}
	return cm.colorMap[index]
}
