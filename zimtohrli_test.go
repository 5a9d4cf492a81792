// SPDX-License-Identifier: EPL-2.0

package zimtohrli

import (
	"errors"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/zimtohrli/internal/audiotest"
)

const (
	rate = int(SampleRate)
	fs   = float64(SampleRate)
)

func analyze(t testing.TB, z *Analyzer, signal []float32) *Spectrogram {
	t.Helper()

	s, err := z.Analyze(signal)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return s
}

func TestConstants(t *testing.T) {
	t.Parallel()

	if SampleRate != 48000 {
		t.Errorf("SampleRate = %v, want 48000", SampleRate)
	}
	if NumChannels != 128 {
		t.Errorf("NumChannels = %d, want 128", NumChannels)
	}
}

func TestNewAnalyzer_Defaults(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()

	if z.StepWindow() != 8 || z.ChannelWindow() != 5 {
		t.Errorf("windows = %d x %d, want 8 x 5", z.StepWindow(), z.ChannelWindow())
	}
	if z.PerceptualSampleRate() != 85 {
		t.Errorf("PerceptualSampleRate() = %v, want 85", z.PerceptualSampleRate())
	}
	if math.Abs(float64(z.FullScaleSineDB())-78.3) > 1e-5 {
		t.Errorf("FullScaleSineDB() = %v, want 78.3", z.FullScaleSineDB())
	}
	if z.AlignmentBand() != 0 {
		t.Errorf("AlignmentBand() = %d, want 0", z.AlignmentBand())
	}
	if z.Config() != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", z.Config())
	}

	freqs := z.ChannelFrequencies()
	if len(freqs) != NumChannels || !slices.IsSorted(freqs) {
		t.Errorf("ChannelFrequencies() has %d ascending=%v entries", len(freqs), slices.IsSorted(freqs))
	}
}

func TestNewAnalyzerWithConfig_Invalid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ChannelWindow = 0

	if _, err := NewAnalyzerWithConfig(cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewAnalyzerWithConfig() error = %v, want ErrConfiguration", err)
	}
}

func TestSpectrogramSteps(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()

	tests := []struct {
		samples, want int
	}{
		{samples: -5, want: 0},
		{samples: 0, want: 0},
		{samples: 1, want: 0},
		{samples: 4800, want: 9},
		{samples: 12000, want: 21},
		{samples: 48000, want: 85},
		{samples: 480000, want: 850},
	}

	for _, tt := range tests {
		if got := z.SpectrogramSteps(tt.samples); got != tt.want {
			t.Errorf("SpectrogramSteps(%d) = %d, want %d", tt.samples, got, tt.want)
		}
	}

	prev := 0
	for n := 0; n <= 20000; n += 37 {
		got := z.SpectrogramSteps(n)
		if got < prev {
			t.Fatalf("SpectrogramSteps(%d) = %d, below %d", n, got, prev)
		}
		prev = got
	}
}

func TestAnalyze_Shape(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()

	for _, n := range []int{0, 100, 4800, rate} {
		s := analyze(t, z, audiotest.Sine(fs, 1000, 0.5, n))

		if s.Steps() != z.SpectrogramSteps(n) {
			t.Errorf("%d samples: Steps() = %d, want %d", n, s.Steps(), z.SpectrogramSteps(n))
		}
		if s.Dims() != NumChannels {
			t.Errorf("%d samples: Dims() = %d, want %d", n, s.Dims(), NumChannels)
		}
		if s.Size() != s.Steps()*s.Dims() {
			t.Errorf("%d samples: Size() = %d, want %d", n, s.Size(), s.Steps()*s.Dims())
		}
	}
}

func TestAnalyze_ShortSilence(t *testing.T) {
	t.Parallel()

	s := analyze(t, NewAnalyzer(), audiotest.Silence(rate/10))

	if s.Steps() == 0 || s.Dims() != NumChannels {
		t.Fatalf("Steps() = %d, Dims() = %d", s.Steps(), s.Dims())
	}
	if s.Max() != 0 {
		t.Errorf("silence Max() = %v, want 0", s.Max())
	}
}

func TestAnalyze_Loudness(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()
	full := analyze(t, z, audiotest.Sine(fs, 1000, 1, rate/2))
	half := analyze(t, z, audiotest.Sine(fs, 1000, 0.5, rate/2))

	// 6 dB per halving, within the tolerance of the channel grid.
	if diff := full.Max() - half.Max(); math.Abs(float64(diff)-6.02) > 0.5 {
		t.Errorf("full %v dB, half %v dB, difference %v", full.Max(), half.Max(), diff)
	}
	if full.Max() > z.FullScaleSineDB()+1 {
		t.Errorf("full-scale sine peaks at %v dB, above %v", full.Max(), z.FullScaleSineDB())
	}
}

func TestAnalyze_OutOfRangeSamples(t *testing.T) {
	t.Parallel()

	s := analyze(t, NewAnalyzer(), audiotest.Sine(fs, 500, 4, rate/4))
	for _, v := range s.Values() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) || v < 0 {
			t.Fatalf("out-of-range input produced %v", v)
		}
	}
}

func TestSetters(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()

	invalid := []struct {
		name string
		set  func() error
	}{
		{name: "step window 0", set: func() error { return z.SetStepWindow(0) }},
		{name: "channel window -1", set: func() error { return z.SetChannelWindow(-1) }},
		{name: "perceptual rate 0", set: func() error { return z.SetPerceptualSampleRate(0) }},
		{name: "perceptual rate NaN", set: func() error { return z.SetPerceptualSampleRate(float32(math.NaN())) }},
		{name: "perceptual rate above input", set: func() error { return z.SetPerceptualSampleRate(96000) }},
		{name: "level +Inf", set: func() error { return z.SetFullScaleSineDB(float32(math.Inf(1))) }},
		{name: "band -1", set: func() error { return z.SetAlignmentBand(-1) }},
	}

	for _, tt := range invalid {
		if err := tt.set(); !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: error = %v, want ErrConfiguration", tt.name, err)
		}
	}
	if z.Config() != DefaultConfig() {
		t.Fatalf("rejected setters changed the config to %+v", z.Config())
	}

	for _, err := range []error{
		z.SetStepWindow(4),
		z.SetChannelWindow(3),
		z.SetPerceptualSampleRate(100),
		z.SetFullScaleSineDB(90),
		z.SetAlignmentBand(20),
	} {
		if err != nil {
			t.Fatalf("valid setter failed: %v", err)
		}
	}

	want := Config{StepWindow: 4, ChannelWindow: 3, PerceptualSampleRate: 100, FullScaleSineDB: 90, AlignmentBand: 20}
	if z.Config() != want {
		t.Errorf("Config() = %+v, want %+v", z.Config(), want)
	}
}

func TestConfigChangeLeavesSpectrogramsAlone(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()
	signal := audiotest.Sine(fs, 1000, 0.5, rate)

	before := analyze(t, z, signal)
	snapshot := before.Clone()

	if err := z.SetPerceptualSampleRate(100); err != nil {
		t.Fatal(err)
	}
	after := analyze(t, z, signal)

	if before.Steps() != 85 || after.Steps() != 100 {
		t.Errorf("steps before/after = %d/%d, want 85/100", before.Steps(), after.Steps())
	}
	if !slices.Equal(before.Values(), snapshot.Values()) {
		t.Error("existing spectrogram changed after reconfiguration")
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	t.Parallel()

	z := NewAnalyzer()
	signal := audiotest.Mix(
		audiotest.Sine(fs, 700, 0.3, rate/4),
		audiotest.Noise(42, 0.05, rate/4),
	)
	want := analyze(t, z, signal)

	var wg sync.WaitGroup
	results := make([]*Spectrogram, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = z.Analyze(signal)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if got == nil || !slices.Equal(got.Values(), want.Values()) {
			t.Errorf("goroutine %d produced a different spectrogram", i)
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	z := NewAnalyzer()
	signal := audiotest.Noise(1, 0.5, rate)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = z.Analyze(signal)
	}
}
