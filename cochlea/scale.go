// SPDX-License-Identifier: EPL-2.0

package cochlea

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Frequency range covered by the bank, in Hz.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
)

// ERBRate maps a frequency in Hz to the equivalent-rectangular-bandwidth
// number scale (Glasberg & Moore 1990).
func ERBRate(hz float64) float64 {
	return 21.4 * math.Log10(1+0.00437*hz)
}

// ERBRateToHz is the inverse of ERBRate.
func ERBRateToHz(erbs float64) float64 {
	return (math.Pow(10, erbs/21.4) - 1) / 0.00437
}

// ERB is the equivalent rectangular bandwidth of the auditory filter
// centered at hz.
func ERB(hz float64) float64 {
	return 24.7 * (0.00437*hz + 1)
}

// centerFrequencies spaces n channels evenly on the ERB-rate scale between
// MinFrequency and MaxFrequency, so low frequencies get denser coverage.
func centerFrequencies(n int) []float64 {
	if n == 1 {
		return []float64{ERBRateToHz((ERBRate(MinFrequency) + ERBRate(MaxFrequency)) / 2)}
	}

	freqs := floats.Span(make([]float64, n), ERBRate(MinFrequency), ERBRate(MaxFrequency))
	for i, e := range freqs {
		freqs[i] = ERBRateToHz(e)
	}

	return freqs
}
