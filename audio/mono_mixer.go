// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages the channels of each frame of src into one sample.
//
// Samples of a frame split across two reads of src are held until the frame
// is complete.
type MonoMixer struct {
	src     Source
	tmp     []float32
	pending []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("mono mixer: %w", err)
	}
	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	channels := m.src.Channels()
	if channels <= 0 {
		return 0, ErrInvalidDstSize
	}
	if channels == 1 || len(dst) == 0 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	tmp := m.tmp[:need]

	// A partial frame left by the previous read goes first.
	have := copy(tmp, m.pending)
	m.pending = m.pending[:0]

	var err error
	for have < channels {
		var n int
		n, err = m.src.ReadSamples(tmp[have:])
		have += n
		if err != nil || n == 0 {
			break
		}
	}

	frames := have / channels
	m.pending = append(m.pending, tmp[frames*channels:have]...)
	scale := 1 / float32(channels)

	for f := range frames {
		var sum float32
		for _, v := range tmp[f*channels : (f+1)*channels] {
			sum += v
		}
		dst[f] = sum * scale
	}

	return frames, err
}
