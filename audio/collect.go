// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const minReadSize = 4096

// ReadAll reads src until io.EOF and returns every sample it produced,
// interleaved as the source delivers them. It does not close src.
func ReadAll(src Source) ([]float32, error) {
	size := max(src.BufSize(), minReadSize)
	if ch := src.Channels(); ch > 1 {
		size -= size % ch
	}

	out := make([]float32, 0, size)
	for {
		if cap(out)-len(out) < size {
			grown := make([]float32, len(out), 2*cap(out)+size)
			copy(grown, out)
			out = grown
		}

		n, err := src.ReadSamples(out[len(out) : len(out)+size])
		out = out[:len(out)+n]

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read samples: %w", err)
		}
		if n == 0 {
			return out, nil
		}
	}
}

// ToMono mixes src down to one channel, resamples it to rate when the rates
// differ, and reads the whole stream. It does not close src.
func ToMono(src Source, rate int) ([]float32, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}

	var s Source = NewMonoMixer(src)
	if s.SampleRate() != rate {
		s = NewResampler(s, rate)
	}

	return ReadAll(s)
}
