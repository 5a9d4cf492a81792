// SPDX-License-Identifier: EPL-2.0

// Package cochlea implements the rotator bank: a set of resonant band-pass
// channels, spaced like the frequency selectivity of the ear, that turns a
// mono signal into a perceptual spectrogram.
//
// Each channel demodulates the signal around its center frequency, smooths
// the result with a three-stage low-pass whose width follows the channel's
// equivalent rectangular bandwidth, and averages the energy envelope over
// every perceptual step. Energies are reported in calibrated decibels: a
// full-scale sine at a channel's center frequency reads as the full-scale
// sine level in that channel, and anything below 0 dB is clamped to 0.
package cochlea

import (
	"fmt"
	"math"

	"github.com/ik5/zimtohrli/spectrogram"
	"github.com/ik5/zimtohrli/utils"
)

// Bank is an immutable rotator bank for one input sample rate. It keeps no
// per-signal state, so a Bank may be shared between goroutines.
type Bank struct {
	sampleRate float64
	rotators   []rotator
}

// New designs a bank of channels rotators for signals at sampleRate Hz.
func New(channels int, sampleRate float64) (*Bank, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}
	if !(sampleRate > 2*MaxFrequency) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v Hz", ErrSampleRate, sampleRate)
	}

	freqs := centerFrequencies(channels)
	rotators := make([]rotator, channels)
	for i, f := range freqs {
		rotators[i] = newRotator(f, sampleRate)
	}

	return &Bank{sampleRate: sampleRate, rotators: rotators}, nil
}

// Channels is the number of rotators, i.e. the spectrogram width.
func (b *Bank) Channels() int { return len(b.rotators) }

// SampleRate is the input rate the bank was designed for.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// Frequencies returns the channel center frequencies in ascending order.
func (b *Bank) Frequencies() []float64 {
	out := make([]float64, len(b.rotators))
	for i := range b.rotators {
		out[i] = b.rotators[i].frequency
	}
	return out
}

// Bandwidths returns the equivalent rectangular bandwidth of each channel.
func (b *Bank) Bandwidths() []float64 {
	out := make([]float64, len(b.rotators))
	for i := range b.rotators {
		out[i] = b.rotators[i].bandwidth
	}
	return out
}

// Steps returns how many perceptual steps a signal of numSamples samples
// produces: round(numSamples * perceptualRate / sampleRate).
func Steps(numSamples int, sampleRate, perceptualRate float64) int {
	if numSamples <= 0 {
		return 0
	}

	return int(math.Round(float64(numSamples) * perceptualRate / sampleRate))
}

// Steps is the package-level Steps for this bank's sample rate.
func (b *Bank) Steps(numSamples int, perceptualRate float64) int {
	return Steps(numSamples, b.sampleRate, perceptualRate)
}

// Analyze converts signal into a spectrogram with one row per perceptual
// step and one column per channel. fullScaleSineDB is the level assigned to
// a sine of amplitude 1.
//
// An empty signal yields a zero-step spectrogram and silence yields all
// zeros; neither is an error.
func (b *Bank) Analyze(signal []float32, perceptualRate, fullScaleSineDB float64) (*spectrogram.Spectrogram, error) {
	if !(perceptualRate > 0) || perceptualRate > b.sampleRate {
		return nil, fmt.Errorf("%w: %v Hz", ErrPerceptualRate, perceptualRate)
	}
	if math.IsNaN(fullScaleSineDB) || math.IsInf(fullScaleSineDB, 0) {
		return nil, fmt.Errorf("%w: %v", ErrLevel, fullScaleSineDB)
	}

	steps := b.Steps(len(signal), perceptualRate)
	dims := len(b.rotators)
	values := make([]float32, steps*dims)
	if steps == 0 {
		return spectrogram.FromValues(0, dims, values)
	}

	toLevel := func(power float64) float32 {
		return float32(max(0, fullScaleSineDB+utils.PowerToDB(power)))
	}

	hop := b.sampleRate / perceptualRate
	for c := range b.rotators {
		b.rotators[c].energies(signal, hop, steps, values[c:], dims, toLevel)
	}

	return spectrogram.FromValues(steps, dims, values)
}
