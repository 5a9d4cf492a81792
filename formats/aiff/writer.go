// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/zimtohrli/utils"
)

// Write encodes interleaved samples in [-1, 1] as 16-bit big-endian AIFF.
func Write(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if sampleRate <= 0 || channels <= 0 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples, %d Hz, %d channels",
			ErrUnsupportedAiffLayout, len(samples), sampleRate, channels)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	enc := aiff.NewEncoder(w, sampleRate, 16, channels)
	err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return fmt.Errorf("encode aiff: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish aiff: %w", err)
	}
	return nil
}
