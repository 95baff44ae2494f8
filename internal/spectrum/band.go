package spectrum

// Band is a named frequency range of interest, such as a cellular
// downlink allocation.
type Band struct {
	Name   string
	LowHz  float64
	HighHz float64
}

// Contains reports whether freq falls inside the band.
func (b Band) Contains(freq float64) bool {
	return freq >= b.LowHz && freq <= b.HighHz
}

// CenterHz returns the band's center frequency.
func (b Band) CenterHz() float64 {
	return (b.LowHz + b.HighHz) / 2
}

// cellularBands maps US cellular allocations to human-readable labels.
// Ranges overlap in places (shared spectrum between GSM and LTE); the
// first match wins.
var cellularBands = []Band{
	{"GSM-850 (downlink)", 824e6, 849e6},
	{"GSM-850 (uplink)", 869e6, 894e6},
	{"GSM-900 (downlink)", 890e6, 915e6},
	{"GSM-900 (uplink)", 925e6, 960e6},
	{"LTE Band 12/17 (uplink)", 698e6, 716e6},
	{"LTE Band 12/17 (downlink)", 728e6, 746e6},
	{"LTE Band 13 (downlink)", 746e6, 756e6},
	{"LTE Band 13 (uplink)", 777e6, 787e6},
	{"GSM-1800 (downlink)", 1710e6, 1785e6},
	{"GSM-1800 (uplink)", 1805e6, 1880e6},
	{"GSM-1900 (downlink)", 1850e6, 1910e6},
	{"GSM-1900 (uplink)", 1930e6, 1990e6},
	{"LTE Band 4 (downlink)", 2110e6, 2155e6},
	{"5G n77 (C-band)", 3700e6, 3980e6},
	{"5G n258 (mmWave)", 24250e6, 24450e6},
}

// IdentifyBand returns the cellular band label for a frequency, or
// "Other" when the frequency is outside known allocations.
func IdentifyBand(freqHz float64) string {
	for _, b := range cellularBands {
		if b.Contains(freqHz) {
			return b.Name
		}
	}
	return "Other"
}
