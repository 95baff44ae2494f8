// Package locate converts observed signal strength and bearings into an
// estimated emitter position using a free-space path-loss model.
package locate

import "math"

// DefaultTxPowerDBm is the assumed emitter transmit power used to
// invert the path-loss model. True transmit power is unknown; portable
// emitters typically run 10-40 dBm and 25 dBm is the working midpoint.
// This is a tunable assumption, not a measurement, and every estimate
// derived from it is tagged accordingly.
const DefaultTxPowerDBm = 25

// TxPowerScenarios are the transmit powers used for the distance
// sensitivity table included with every position report.
var TxPowerScenarios = []float64{10, 20, 30, 40}

const metersPerFoot = 0.3048

// PathLossDB returns the free-space path loss in dB for a distance in
// meters at the given frequency:
//
//	FSPL(dB) = 20·log10(d_km) + 20·log10(f_MHz) + 32.45
func PathLossDB(distanceMeters, freqMHz float64) float64 {
	return 20*math.Log10(distanceMeters/1000) + 20*math.Log10(freqMHz) + 32.45
}

// DistanceMeters inverts the free-space path-loss model, solving for
// the distance at which a transmitter of txPowerDBm would be received
// at rxPowerDBm.
func DistanceMeters(rxPowerDBm, txPowerDBm, freqMHz float64) float64 {
	pathLoss := txPowerDBm - rxPowerDBm
	logDKm := (pathLoss - 20*math.Log10(freqMHz) - 32.45) / 20
	return math.Pow(10, logDKm) * 1000
}

// DistanceFeet is DistanceMeters converted to feet.
func DistanceFeet(rxPowerDBm, txPowerDBm, freqMHz float64) float64 {
	return DistanceMeters(rxPowerDBm, txPowerDBm, freqMHz) / metersPerFoot
}

// Unit selects the length unit for reported offsets and distances.
type Unit string

const (
	Feet   Unit = "feet"
	Meters Unit = "meters"
)

// Valid reports whether the unit is one of the supported values.
func (u Unit) Valid() bool {
	return u == Feet || u == Meters
}

// FromFeet converts a length in feet to the unit.
func (u Unit) FromFeet(ft float64) float64 {
	if u == Meters {
		return ft * metersPerFoot
	}
	return ft
}

// Abbrev returns the short unit label used in reports.
func (u Unit) Abbrev() string {
	if u == Meters {
		return "m"
	}
	return "ft"
}
