// SPDX-License-Identifier: EPL-2.0

package zimtohrli

import (
	"fmt"

	"github.com/ik5/zimtohrli/dtw"
	"github.com/ik5/zimtohrli/nsim"
)

// Distance returns the perceptual distance between two spectrograms, from 0
// for identical to 1 for maximally different.
//
// Both spectrograms are normalized in place to a peak of 1 before they are
// compared (an all-zero spectrogram is left alone), so callers that need the
// original levels should pass clones. The time axes are aligned with dynamic
// time warping, and the distance is 1 minus the windowed structural
// similarity of the aligned pair. If either spectrogram has no steps the
// distance is 1.
//
// Spectrograms with different channel counts fail with ErrInvalidInput.
// On error neither input is modified.
func (z *Analyzer) Distance(a, b *Spectrogram) (float32, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: nil spectrogram", ErrInvalidInput)
	}
	if a.Dims() != b.Dims() {
		return 0, fmt.Errorf("%w: spectrograms have %d and %d channels", ErrInvalidInput, a.Dims(), b.Dims())
	}
	if err := z.cfg.Validate(); err != nil {
		return 0, err
	}

	window := nsim.Window{Steps: z.cfg.StepWindow, Channels: z.cfg.ChannelWindow}

	// Everything past this point cannot fail on validated input, so the
	// normalization below is never left half done.
	normalize(a)
	normalize(b)

	if a.Steps() == 0 || b.Steps() == 0 {
		return 1, nil
	}

	path, _, err := dtw.Align(a, b, dtw.Options{Band: z.cfg.AlignmentBand})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	alignedA, alignedB, err := path.Apply(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	similarity, err := nsim.Score(alignedA, alignedB, window)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return float32(min(max(1-similarity, 0), 1)), nil
}

func normalize(s *Spectrogram) {
	if m := s.Max(); m > 0 {
		s.Rescale(1 / m)
	}
}
