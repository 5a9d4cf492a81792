// SPDX-License-Identifier: EPL-2.0

// Package nsim computes the normalized structural similarity of two aligned
// spectrograms: a structural similarity statistic over small time x channel
// windows, averaged over the whole grid.
//
// For every cell (step, channel) a window of Window.Steps x Window.Channels
// cells is anchored at that cell and extends towards later steps and higher
// channels. Windows that run past the end of the grid are clipped to the
// cells that exist, so every cell contributes exactly one window. For the
// two patches the local score is
//
//	l = (2*meanA*meanB + C1) / (meanA^2 + meanB^2 + C1)
//	c = (2*sdA*sdB + C2)     / (varA + varB + C2)
//	s = (cov + C3)           / (sdA*sdB + C3)
//
// and the similarity is the mean of l*c*s over all windows, clamped to
// [0, 1]. The constants assume values normalized to a peak of 1.
//
// An all-zero grid is only similar to another all-zero grid: against
// anything else it scores 0, however quiet the other side is.
package nsim

import (
	"fmt"
	"math"

	"github.com/ik5/zimtohrli/spectrogram"
)

// Stabilizing constants of the luminance, contrast and structure terms.
const (
	C1 = 0.01 * 0.01
	C2 = 0.03 * 0.03
	C3 = C2 / 2
)

// Window is the size of the local statistics window.
type Window struct {
	Steps    int
	Channels int
}

// Validate reports an error for empty windows.
func (w Window) Validate() error {
	if w.Steps <= 0 || w.Channels <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrWindow, w.Steps, w.Channels)
	}
	return nil
}

// Score returns the similarity of a and b, which must have the same shape.
// Two all-zero inputs score 1, one all-zero input scores 0 and an empty grid
// scores 0.
func Score(a, b *spectrogram.Spectrogram, w Window) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	if a.Steps() != b.Steps() || a.Dims() != b.Dims() {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShape, a.Steps(), a.Dims(), b.Steps(), b.Dims())
	}

	steps, dims := a.Steps(), a.Dims()
	if steps == 0 {
		return 0, nil
	}

	silentA, silentB := a.Max() == 0, b.Max() == 0
	switch {
	case silentA && silentB:
		return 1, nil
	case silentA || silentB:
		return 0, nil
	}

	var total float64
	for t := range steps {
		for c := range dims {
			total += local(a, b, t, min(t+w.Steps, steps), c, min(c+w.Channels, dims))
		}
	}

	return clamp01(total / float64(steps*dims)), nil
}

// local scores the patch [t0, t1) x [c0, c1).
func local(a, b *spectrogram.Spectrogram, t0, t1, c0, c1 int) float64 {
	n := float64((t1 - t0) * (c1 - c0))

	var sumA, sumB float64
	for t := t0; t < t1; t++ {
		ra, rb := a.Row(t)[c0:c1], b.Row(t)[c0:c1]
		for i := range ra {
			sumA += float64(ra[i])
			sumB += float64(rb[i])
		}
	}
	meanA, meanB := sumA/n, sumB/n

	var varA, varB, cov float64
	for t := t0; t < t1; t++ {
		ra, rb := a.Row(t)[c0:c1], b.Row(t)[c0:c1]
		for i := range ra {
			da := float64(ra[i]) - meanA
			db := float64(rb[i]) - meanB
			varA += da * da
			varB += db * db
			cov += da * db
		}
	}
	varA /= n
	varB /= n
	cov /= n

	sdAB := math.Sqrt(varA) * math.Sqrt(varB)

	luminance := (2*meanA*meanB + C1) / (meanA*meanA + meanB*meanB + C1)
	contrast := (2*sdAB + C2) / (varA + varB + C2)
	structure := (cov + C3) / (sdAB + C3)

	return luminance * contrast * structure
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
