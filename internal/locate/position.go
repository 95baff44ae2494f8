package locate

import (
	"math"

	"github.com/sweephound/sweephound/internal/bearing"
	"github.com/sweephound/sweephound/internal/detect"
)

// Vantage describes a known observation location. Coordinates are in
// feet relative to the session's reference point (positive north and
// east), heights above ground.
type Vantage struct {
	Name              string
	NorthFeet         float64
	EastFeet          float64
	AntennaHeightFeet float64
}

// Observation pairs a vantage point with what was measured there: the
// band power and the bearing estimated from that point's directional
// session.
type Observation struct {
	Vantage           Vantage
	PowerDBm          float64
	BearingDegrees    float64
	BearingConfidence float64

	VerticalTrend   bearing.VerticalTrend
	VerticalDeltaDB float64
}

// DistanceScenario is one row of the transmit-power sensitivity table.
type DistanceScenario struct {
	TxPowerDBm   float64
	DistanceFeet float64
}

// Estimate is the computed emitter position. All lengths are stored in
// feet; reports convert on output. An Estimate is never mutated after
// construction.
type Estimate struct {
	NorthFeet    float64 // Offset north (negative = south) of the reference point
	EastFeet     float64 // Offset east (negative = west) of the reference point
	HeightFeet   float64 // Estimated height above ground
	DistanceFeet float64 // Horizontal distance from the reference point

	Confidence float64 // [0,1]

	VantagesUsed  []string // Names of the vantage points combined
	SingleVantage bool     // Height is pinned to antenna height in this case
	VerticalTrend bearing.VerticalTrend

	TxPowerDBm  float64            // The transmit-power assumption behind DistanceFeet
	Sensitivity []DistanceScenario // Distance under alternative assumptions
}

// Option configures the estimator.
type Option func(*estimator)

// WithTxPower overrides the assumed transmit power in dBm.
func WithTxPower(dbm float64) Option {
	return func(e *estimator) { e.txPower = dbm }
}

// WithMultipath feeds a multipath report into the confidence score.
func WithMultipath(r *detect.MultipathReport) Option {
	return func(e *estimator) { e.multipath = r }
}

type estimator struct {
	txPower   float64
	multipath *detect.MultipathReport
}

// projection is an observation's ray projected to a Cartesian point.
type projection struct {
	north, east float64
	slantFeet   float64
}

// vantage-count confidence factors: a single point fixes only a ray,
// two points a crossing, three or more start to average out model
// error.
func countFactor(n int) float64 {
	switch {
	case n <= 1:
		return 0.5
	case n == 2:
		return 0.8
	default:
		return 1
	}
}

// EstimatePosition combines one or more observations into a position
// estimate. With a single observation only distance and bearing are
// resolved and the height is pinned to the antenna height. With two or
// more, each observation is projected to a Cartesian point and the
// points are averaged; height is solved from the slant distances and
// each vantage's antenna elevation.
//
// The returned estimate is nil when observations is empty.
func EstimatePosition(observations []Observation, freqMHz float64, opts ...Option) *Estimate {
	if len(observations) == 0 {
		return nil
	}

	e := estimator{txPower: DefaultTxPowerDBm}
	for _, opt := range opts {
		opt(&e)
	}

	projections := make([]projection, len(observations))
	est := Estimate{TxPowerDBm: e.txPower, VerticalTrend: bearing.VerticalUnknown}

	var confidenceSum float64
	for i, obs := range observations {
		slant := DistanceFeet(obs.PowerDBm, e.txPower, freqMHz)
		rad := obs.BearingDegrees * math.Pi / 180

		projections[i] = projection{
			north:     obs.Vantage.NorthFeet + slant*math.Cos(rad),
			east:      obs.Vantage.EastFeet + slant*math.Sin(rad),
			slantFeet: slant,
		}

		est.VantagesUsed = append(est.VantagesUsed, obs.Vantage.Name)
		confidenceSum += obs.BearingConfidence

		if obs.VerticalTrend != bearing.VerticalUnknown && est.VerticalTrend == bearing.VerticalUnknown {
			est.VerticalTrend = obs.VerticalTrend
		}
	}

	for _, p := range projections {
		est.NorthFeet += p.north
		est.EastFeet += p.east
	}
	est.NorthFeet /= float64(len(projections))
	est.EastFeet /= float64(len(projections))
	est.DistanceFeet = math.Hypot(est.NorthFeet, est.EastFeet)

	if len(observations) == 1 {
		est.SingleVantage = true
		est.HeightFeet = observations[0].Vantage.AntennaHeightFeet
	} else {
		est.HeightFeet = solveHeight(observations, projections, est.NorthFeet, est.EastFeet)
	}

	confidence := confidenceSum / float64(len(observations))
	confidence *= countFactor(len(observations))
	confidence *= bearingAgreement(observations)
	confidence *= e.multipath.ConfidencePenalty()
	est.Confidence = clamp01(confidence)

	for _, tx := range TxPowerScenarios {
		est.Sensitivity = append(est.Sensitivity, DistanceScenario{
			TxPowerDBm:   tx,
			DistanceFeet: DistanceFeet(strongestPower(observations), tx, freqMHz),
		})
	}

	return &est
}

// solveHeight resolves the vertical component that best explains each
// observation's slant distance given its vantage elevation. Each
// observation contributes one candidate height: the vantage's antenna
// height offset by the vertical leg of its slant triangle, signed by
// the observation's up/down differential. Candidates are averaged.
func solveHeight(observations []Observation, projections []projection, emitterNorth, emitterEast float64) float64 {
	var total float64
	for i, obs := range observations {
		horiz := math.Hypot(emitterNorth-obs.Vantage.NorthFeet, emitterEast-obs.Vantage.EastFeet)

		verticalSq := projections[i].slantFeet*projections[i].slantFeet - horiz*horiz
		var vertical float64
		if verticalSq > 0 {
			vertical = math.Sqrt(verticalSq)
		}

		candidate := obs.Vantage.AntennaHeightFeet
		switch obs.VerticalTrend {
		case bearing.BelowAntenna:
			candidate -= vertical
		case bearing.AboveAntenna:
			candidate += vertical
		}
		if candidate < 0 {
			candidate = 0
		}

		total += candidate
	}
	return total / float64(len(observations))
}

// bearingAgreement scales confidence down as the bearings from
// different vantage points diverge. Fully aligned rays score 1; a
// 90-degree spread zeroes the factor.
func bearingAgreement(observations []Observation) float64 {
	if len(observations) < 2 {
		return 1
	}

	// Circular mean of the bearings, then the mean absolute deviation
	// from it.
	var sinSum, cosSum float64
	for _, obs := range observations {
		rad := obs.BearingDegrees * math.Pi / 180
		sinSum += math.Sin(rad)
		cosSum += math.Cos(rad)
	}
	mean := math.Atan2(sinSum, cosSum) * 180 / math.Pi

	var spread float64
	for _, obs := range observations {
		spread += math.Abs(angleDiff(mean, obs.BearingDegrees))
	}
	spread /= float64(len(observations))

	return clamp01(1 - spread/90)
}

func strongestPower(observations []Observation) float64 {
	best := observations[0].PowerDBm
	for _, obs := range observations[1:] {
		if obs.PowerDBm > best {
			best = obs.PowerDBm
		}
	}
	return best
}

func angleDiff(a, b float64) float64 {
	return math.Mod(b-a+540, 360) - 180
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// HeightInterpretation describes the installation type suggested by an
// estimated height above ground.
func HeightInterpretation(heightFeet float64) string {
	switch {
	case heightFeet < 3:
		return "ground-level installation (utility box, base of pole)"
	case heightFeet < 10:
		return "pole-mounted or building-mounted equipment"
	default:
		return "elevated installation (rooftop, top of pole)"
	}
}
