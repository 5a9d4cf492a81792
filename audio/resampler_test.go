// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/zimtohrli/internal/audiotest"
)

func TestResampler_FrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		srcRate, dstRate, frames, want int
	}{
		{srcRate: 44100, dstRate: 8000, frames: 44100, want: 8000},
		{srcRate: 16000, dstRate: 48000, frames: 16000, want: 48000},
		{srcRate: 44100, dstRate: 48000, frames: 44100, want: 48000},
		{srcRate: 48000, dstRate: 48000, frames: 1234, want: 1234},
		{srcRate: 8000, dstRate: 48000, frames: 1, want: 6},
		{srcRate: 48000, dstRate: 16000, frames: 10, want: 4},
		{srcRate: 22050, dstRate: 48000, frames: 0, want: 0},
	}

	for _, tt := range tests {
		src := audiotest.NewSilentSource(tt.srcRate, 1, tt.frames)
		got, err := ReadAll(NewResampler(src, tt.dstRate))
		if err != nil {
			t.Fatalf("%d->%d: ReadAll() error = %v", tt.srcRate, tt.dstRate, err)
		}
		if len(got) != tt.want {
			t.Errorf("%d->%d with %d frames: got %d, want %d",
				tt.srcRate, tt.dstRate, tt.frames, len(got), tt.want)
		}
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	in := audiotest.Noise(3, 0.8, 500)
	got, err := ReadAll(NewResampler(audiotest.NewSliceSource(48000, in), 48000))
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestResampler_PreservesSine(t *testing.T) {
	t.Parallel()

	const (
		srcRate = 16000
		dstRate = 48000
		freq    = 440.0
	)

	src := audiotest.NewSliceSource(srcRate, audiotest.Sine(srcRate, freq, 1, srcRate))
	got, err := ReadAll(NewResampler(src, dstRate))
	if err != nil {
		t.Fatal(err)
	}

	want := audiotest.Sine(dstRate, freq, 1, len(got))
	var worst float64
	// The edge frames are padded by repetition, so skip both ends.
	for i := 6; i < len(got)-12; i++ {
		worst = max(worst, math.Abs(float64(got[i]-want[i])))
	}
	if worst > 0.01 {
		t.Errorf("max deviation from ideal sine = %v", worst)
	}
}

func TestResampler_DownsampleAttenuatesAboveNyquist(t *testing.T) {
	t.Parallel()

	const srcRate = 48000
	rms := func(x []float32) float64 {
		var sum float64
		for _, v := range x {
			sum += float64(v) * float64(v)
		}
		return math.Sqrt(sum / float64(len(x)))
	}

	low, _ := ReadAll(NewResampler(
		audiotest.NewSliceSource(srcRate, audiotest.Sine(srcRate, 200, 1, srcRate)), 8000))
	high, _ := ReadAll(NewResampler(
		audiotest.NewSliceSource(srcRate, audiotest.Sine(srcRate, 15000, 1, srcRate)), 8000))

	if !(rms(high) < rms(low)/2) {
		t.Errorf("15 kHz rms %v not well below 200 Hz rms %v", rms(high), rms(low))
	}
}

func TestResampler_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 800, func(_ int, ch int) float32 {
		if ch == 0 {
			return 0.5
		}
		return -0.5
	})
	r := NewResampler(src, 16000)
	if r.Channels() != 2 || r.SampleRate() != 16000 {
		t.Fatalf("Channels() = %d, SampleRate() = %d", r.Channels(), r.SampleRate())
	}

	got, err := ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3200 {
		t.Fatalf("got %d values, want 3200", len(got))
	}
	for i := 0; i < len(got); i += 2 {
		if math.Abs(float64(got[i]-0.5)) > 1e-6 || math.Abs(float64(got[i+1]+0.5)) > 1e-6 {
			t.Fatalf("frame %d = (%v, %v), channels mixed", i/2, got[i], got[i+1])
		}
	}
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst: error = %v, want ErrInvalidDstSize", err)
	}

	r = NewResampler(audiotest.NewSilentSource(8000, 1, 10), 0)
	if _, err := r.ReadSamples(make([]float32, 4)); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("zero rate: error = %v, want ErrInvalidRate", err)
	}
}

func TestResampler_SmallReads(t *testing.T) {
	t.Parallel()

	in := audiotest.Noise(5, 0.5, 3000)
	whole, _ := ReadAll(NewResampler(audiotest.NewSliceSource(44100, in), 48000))

	r := NewResampler(audiotest.NewSliceSource(44100, in), 48000)
	var pieces []float32
	buf := make([]float32, 7)
	for {
		n, err := r.ReadSamples(buf)
		pieces = append(pieces, buf[:n]...)
		if err != nil {
			break
		}
	}

	if len(pieces) != len(whole) {
		t.Fatalf("small reads gave %d samples, one read gave %d", len(pieces), len(whole))
	}
	for i := range whole {
		if pieces[i] != whole[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, pieces[i], whole[i])
		}
	}
}

func BenchmarkResampler(b *testing.B) {
	src := audiotest.NewSineSource(44100, 1, 1<<30, 440)
	r := NewResampler(src, 48000)
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = r.ReadSamples(buf)
	}
}
