// SPDX-License-Identifier: EPL-2.0

// Package spectrogram holds the dense time-by-channel energy matrix produced
// by the cochlear filter bank.
//
// Values are stored row-major, one row per time step:
//
//	[
//	  [step0_ch0, step0_ch1, ..., step0_chN],
//	  [step1_ch0, step1_ch1, ..., step1_chN],
//	  ...
//	]
//
// The shape is fixed at creation. The only mutation offered besides direct
// cell access is Rescale.
package spectrogram

import (
	"fmt"
	"math"
)

// Spectrogram is a steps x dims matrix of non-negative energies.
//
// A Spectrogram is not safe for concurrent mutation; Rescale and Set require
// exclusive access to the instance.
type Spectrogram struct {
	steps  int
	dims   int
	values []float32
}

// New returns a zeroed spectrogram with the given shape.
func New(steps, dims int) (*Spectrogram, error) {
	if steps < 0 || dims <= 0 {
		return nil, fmt.Errorf("%w: steps=%d dims=%d", ErrShape, steps, dims)
	}

	return &Spectrogram{
		steps:  steps,
		dims:   dims,
		values: make([]float32, steps*dims),
	}, nil
}

// FromValues wraps values as a spectrogram. The slice is owned by the
// returned spectrogram afterwards.
func FromValues(steps, dims int, values []float32) (*Spectrogram, error) {
	if steps < 0 || dims <= 0 || len(values) != steps*dims {
		return nil, fmt.Errorf("%w: steps=%d dims=%d len=%d", ErrShape, steps, dims, len(values))
	}

	return &Spectrogram{steps: steps, dims: dims, values: values}, nil
}

// Steps is the number of time steps (rows).
func (s *Spectrogram) Steps() int { return s.steps }

// Dims is the number of channels (columns).
func (s *Spectrogram) Dims() int { return s.dims }

// Size is Steps() * Dims().
func (s *Spectrogram) Size() int { return len(s.values) }

// Max returns the largest absolute value, or 0 for an empty spectrogram.
func (s *Spectrogram) Max() float32 {
	var m float32
	for _, v := range s.values {
		if a := float32(math.Abs(float64(v))); a > m {
			m = a
		}
	}

	return m
}

// Rescale multiplies every value by f in place.
func (s *Spectrogram) Rescale(f float32) {
	if f == 1 {
		return
	}

	for i := range s.values {
		s.values[i] *= f
	}
}

// Values exposes the flat row-major buffer. Writes through the returned
// slice modify the spectrogram.
func (s *Spectrogram) Values() []float32 { return s.values }

// Row returns the channel vector of one step. It panics if step is out of
// range, like slice indexing does.
func (s *Spectrogram) Row(step int) []float32 {
	if step < 0 || step >= s.steps {
		panic(fmt.Sprintf("spectrogram: step %d out of range [0, %d)", step, s.steps))
	}

	return s.values[step*s.dims : (step+1)*s.dims : (step+1)*s.dims]
}

// At returns the value at (step, channel).
func (s *Spectrogram) At(step, channel int) float32 {
	return s.Row(step)[channel]
}

// Set stores v at (step, channel).
func (s *Spectrogram) Set(step, channel int, v float32) {
	s.Row(step)[channel] = v
}

// Clone returns a deep copy.
func (s *Spectrogram) Clone() *Spectrogram {
	values := make([]float32, len(s.values))
	copy(values, s.values)

	return &Spectrogram{steps: s.steps, dims: s.dims, values: values}
}

// String implements fmt.Stringer.
func (s *Spectrogram) String() string {
	return fmt.Sprintf("Spectrogram{steps: %d, dims: %d, size: %d, max: %g}", s.steps, s.dims, s.Size(), s.Max())
}
