// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/zimtohrli/utils"
)

// readFrames is how many source frames the Resampler pulls per read.
const readFrames = 1024

// Resampler streams src at another sample rate using cubic interpolation.
// It preserves the channel count. When downsampling, a one-pole lowpass at
// 45% of the target rate runs ahead of the interpolator.
//
// For n source frames the output has ceil(n*dstRate/srcRate) frames. The
// first output frame sits on the first source frame; positions past the
// last source frame repeat it.
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	channels int

	// frames[1] is the source frame at the integer part of the read
	// position, frames[0] precedes it and frames[2..3] follow it.
	// real marks frames that came from the source rather than edge padding.
	frames [4][]float32
	real   [4]bool
	base   int // source index of frames[1]

	emitted int // output frames produced so far

	started bool
	done    bool
	srcEOF  bool
	srcErr  error

	buf    []float32
	bufPos int
	bufLen int

	alpha  float32
	filter []float32
	warm   bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	srcRate := src.SampleRate()

	r := &Resampler{
		src:      src,
		srcRate:  srcRate,
		dstRate:  dstRate,
		channels: channels,
		buf:      make([]float32, readFrames*channels),
		filter:   make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	if dstRate > 0 && dstRate < srcRate {
		cutoff := 0.45 * float64(dstRate)
		r.alpha = float32(1 - math.Exp(-2*math.Pi*cutoff/float64(srcRate)))
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.dstRate <= 0 || r.srcRate <= 0 {
		return 0, ErrInvalidRate
	}
	if r.channels <= 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.started {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		// Output frame k sits at source position k*srcRate/dstRate.
		num := int64(r.emitted) * int64(r.srcRate)
		whole := int(num / int64(r.dstRate))
		for r.base < whole {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			r.done = true
			return written * r.channels, io.EOF
		}

		x := float32(num%int64(r.dstRate)) / float32(r.dstRate)
		out := dst[written*r.channels : (written+1)*r.channels]
		for ch := range out {
			out[ch] = utils.CubicInterpolate(
				r.frames[0][ch], r.frames[1][ch], r.frames[2][ch], r.frames[3][ch], x)
		}

		written++
		r.emitted++
	}

	return written * r.channels, nil
}

// prime loads the first source frame and the two after it. The frame
// before the first one is a copy of it.
func (r *Resampler) prime() error {
	r.started = true

	ok, err := r.pull(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return io.EOF
	}
	r.real[1] = true
	copy(r.frames[0], r.frames[1])

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}
	return nil
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() error {
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.real[:], r.real[1:])
	r.frames[3] = first
	r.base++

	return r.fill(3)
}

// fill loads frames[i] from the source or, past the end, repeats frames[i-1].
func (r *Resampler) fill(i int) error {
	ok, err := r.pull(r.frames[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[i], r.frames[i-1])
	}
	r.real[i] = ok
	return nil
}

// pull copies the next source frame into frame, applying the lowpass.
// It reports false once the source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	for r.bufPos >= r.bufLen {
		if r.srcErr != nil {
			return false, r.srcErr
		}
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.buf)
		r.bufPos, r.bufLen = 0, n-n%r.channels

		switch {
		case err == io.EOF:
			r.srcEOF = true
		case err != nil:
			// Deliver what was read before reporting the error.
			r.srcErr = fmt.Errorf("resampler: %w", err)
		case n == 0:
			r.srcEOF = true
		}
	}

	copy(frame, r.buf[r.bufPos:r.bufPos+r.channels])
	r.bufPos += r.channels

	if r.alpha > 0 {
		if !r.warm {
			copy(r.filter, frame)
			r.warm = true
		}
		for ch, v := range frame {
			r.filter[ch] += r.alpha * (v - r.filter[ch])
			frame[ch] = r.filter[ch]
		}
	}
	return true, nil
}
