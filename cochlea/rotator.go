// SPDX-License-Identifier: EPL-2.0

package cochlea

import "math"

// rotator is one cochlear channel. The input is shifted down by the
// channel's center frequency with a rotating phasor, then smoothed by a
// cascade of three complex one-pole low-pass sections. The squared
// magnitude of the result is the channel's energy envelope.
type rotator struct {
	frequency float64
	bandwidth float64

	// phasor increment per sample
	cos, sin float64

	// one-pole smoothing gain, 1 - exp(-2*pi*fc/rate)
	gain float64
}

// cascadeWidening converts the desired -3 dB cutoff of the three-stage
// cascade into the cutoff of each single stage: fc / sqrt(2^(1/3) - 1).
var cascadeWidening = 1 / math.Sqrt(math.Cbrt(2)-1)

func newRotator(frequency, sampleRate float64) rotator {
	bandwidth := ERB(frequency)
	omega := 2 * math.Pi * frequency / sampleRate

	// The band-pass of width ERB becomes a low-pass of half that width
	// after the frequency shift.
	stageCutoff := bandwidth / 2 * cascadeWidening

	return rotator{
		frequency: frequency,
		bandwidth: bandwidth,
		cos:       math.Cos(omega),
		sin:       math.Sin(omega),
		gain:      1 - math.Exp(-2*math.Pi*stageCutoff/sampleRate),
	}
}

// energies runs signal through the rotator and writes one mean energy per
// perceptual step to out[step*stride]. Samples past the end of signal are
// treated as silence so the last step always has a full hop of input.
//
// Energies are scaled so a full-scale sine at the center frequency yields 1.
func (r *rotator) energies(signal []float32, hop float64, steps int, out []float32, stride int, toLevel func(float64) float32) {
	var (
		pr, pi     = 1.0, 0.0
		s1r, s1i   float64
		s2r, s2i   float64
		s3r, s3i   float64
		g          = r.gain
		cosw, sinw = r.cos, r.sin
		n          = len(signal)
	)

	for step := range steps {
		start := int(math.Round(float64(step) * hop))
		end := max(int(math.Round(float64(step+1)*hop)), start+1)

		var energy float64
		for i := start; i < end; i++ {
			var x float64
			if i < n {
				x = float64(signal[i])
			}

			// x * conj(phasor)
			re, im := x*pr, -x*pi

			s1r += g * (re - s1r)
			s1i += g * (im - s1i)
			s2r += g * (s1r - s2r)
			s2i += g * (s1i - s2i)
			s3r += g * (s2r - s3r)
			s3i += g * (s2i - s3i)

			energy += s3r*s3r + s3i*s3i

			pr, pi = pr*cosw-pi*sinw, pr*sinw+pi*cosw
		}

		// Keep the phasor on the unit circle.
		norm := math.Hypot(pr, pi)
		pr /= norm
		pi /= norm

		// A sine of amplitude A demodulates to magnitude A/2.
		out[step*stride] = toLevel(4 * energy / float64(end-start))
	}
}
