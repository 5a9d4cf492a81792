// SPDX-License-Identifier: EPL-2.0

package zimtohrli

import (
	"fmt"

	"github.com/ik5/zimtohrli/audio"
)

// AnalyzeSource mixes src to mono, resamples it to SampleRate when needed,
// and analyzes the result. The source is read to the end but not closed.
func (z *Analyzer) AnalyzeSource(src audio.Source) (*Spectrogram, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidInput)
	}

	samples, err := audio.ToMono(src, int(SampleRate))
	if err != nil {
		return nil, fmt.Errorf("prepare source: %w", err)
	}

	return z.Analyze(samples)
}

// CompareSources returns the distance between a reference and a degraded
// source, both prepared as in AnalyzeSource.
func (z *Analyzer) CompareSources(reference, degraded audio.Source) (float32, error) {
	ref, err := z.AnalyzeSource(reference)
	if err != nil {
		return 0, fmt.Errorf("reference: %w", err)
	}

	deg, err := z.AnalyzeSource(degraded)
	if err != nil {
		return 0, fmt.Errorf("degraded: %w", err)
	}

	return z.Distance(ref, deg)
}
