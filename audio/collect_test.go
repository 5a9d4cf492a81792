// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	"github.com/ik5/zimtohrli/internal/audiotest"
)

type failingSource struct {
	*audiotest.MockSource
	after int
	err   error
}

func (f *failingSource) ReadSamples(dst []float32) (int, error) {
	if f.after <= 0 {
		return 0, f.err
	}
	n, err := f.MockSource.ReadSamples(dst[:min(len(dst), f.after)])
	f.after -= n
	return n, err
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	in := audiotest.Noise(9, 1, 20000)
	got, err := ReadAll(audiotest.NewSliceSource(8000, in))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("ReadAll() returned %d samples, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestReadAll_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &failingSource{
		MockSource: audiotest.NewSilentSource(8000, 1, 100000),
		after:      5000,
		err:        boom,
	}

	got, err := ReadAll(src)
	if !errors.Is(err, boom) {
		t.Fatalf("ReadAll() error = %v, want %v", err, boom)
	}
	if len(got) != 5000 {
		t.Errorf("ReadAll() kept %d samples before the error, want 5000", len(got))
	}
}

func TestToMono(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     Source
		rate    int
		wantLen int
	}{
		{name: "stereo 44.1k", src: audiotest.NewSineSource(44100, 2, 44100, 440), rate: 48000, wantLen: 48000},
		{name: "mono 48k", src: audiotest.NewSineSource(48000, 1, 4800, 440), rate: 48000, wantLen: 4800},
		{name: "quad 16k", src: audiotest.NewSilentSource(16000, 4, 1600), rate: 48000, wantLen: 4800},
		{name: "empty", src: audiotest.NewSilentSource(22050, 2, 0), rate: 48000, wantLen: 0},
	}

	for _, tt := range tests {
		got, err := ToMono(tt.src, tt.rate)
		if err != nil {
			t.Fatalf("%s: ToMono() error = %v", tt.name, err)
		}
		if len(got) != tt.wantLen {
			t.Errorf("%s: ToMono() = %d samples, want %d", tt.name, len(got), tt.wantLen)
		}
	}
}

func TestToMono_InvalidRate(t *testing.T) {
	t.Parallel()

	if _, err := ToMono(audiotest.NewSilentSource(8000, 1, 10), 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("ToMono(rate 0) error = %v, want ErrInvalidRate", err)
	}
}
