package sweep

import (
	"path/filepath"
	"strings"
)

// Heading identifies the antenna orientation of a directional capture.
// The eight compass points map to compass degrees; Up and Down are
// vertical orientations with no compass angle.
type Heading string

const (
	North     Heading = "north"
	Northeast Heading = "northeast"
	East      Heading = "east"
	Southeast Heading = "southeast"
	South     Heading = "south"
	Southwest Heading = "southwest"
	West      Heading = "west"
	Northwest Heading = "northwest"
	Up        Heading = "up"
	Down      Heading = "down"
)

// CompassHeadings lists the eight horizontal headings in clockwise
// order starting from North.
var CompassHeadings = []Heading{
	North, Northeast, East, Southeast, South, Southwest, West, Northwest,
}

// AllHeadings lists every recognized heading, horizontal and vertical.
var AllHeadings = append(append([]Heading{}, CompassHeadings...), Up, Down)

var headingDegrees = map[Heading]float64{
	North:     0,
	Northeast: 45,
	East:      90,
	Southeast: 135,
	South:     180,
	Southwest: 225,
	West:      270,
	Northwest: 315,
}

// Degrees returns the compass angle of the heading. The second return
// value is false for Up and Down, which have no horizontal angle.
func (h Heading) Degrees() (float64, bool) {
	deg, ok := headingDegrees[h]
	return deg, ok
}

// IsCompass reports whether the heading is one of the eight horizontal
// compass points.
func (h Heading) IsCompass() bool {
	_, ok := headingDegrees[h]
	return ok
}

func (h Heading) String() string {
	return string(h)
}

// HeadingFromFilename extracts the heading from a directional capture
// filename such as "southwest_20250101_120000.csv". The second return
// value is false when the filename does not start with a recognized
// heading.
func HeadingFromFilename(path string) (Heading, bool) {
	name := strings.ToLower(filepath.Base(path))
	for _, h := range AllHeadings {
		if strings.HasPrefix(name, string(h)+"_") || name == string(h)+".csv" {
			return h, true
		}
	}
	return "", false
}
