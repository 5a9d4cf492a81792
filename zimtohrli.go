// SPDX-License-Identifier: EPL-2.0

package zimtohrli

import (
	"fmt"

	"github.com/ik5/zimtohrli/cochlea"
	"github.com/ik5/zimtohrli/spectrogram"
)

const (
	// SampleRate is the only input rate the engine accepts, in Hz.
	SampleRate float32 = 48000

	// NumChannels is the number of rotators, i.e. spectrogram dimensions.
	NumChannels = 128
)

// Spectrogram is the perceptual time x channel energy matrix.
type Spectrogram = spectrogram.Spectrogram

// Analyzer turns signals into spectrograms and spectrograms into distances.
//
// Analyze and Distance only read the configuration, but setters write it:
// an Analyzer must not be reconfigured while another goroutine uses it.
type Analyzer struct {
	cfg  Config
	bank *cochlea.Bank
}

// NewAnalyzer returns an Analyzer with DefaultConfig.
func NewAnalyzer() *Analyzer {
	z, err := NewAnalyzerWithConfig(DefaultConfig())
	if err != nil {
		// The defaults and the fixed bank layout are always valid.
		panic(err)
	}
	return z
}

// NewAnalyzerWithConfig returns an Analyzer using cfg.
func NewAnalyzerWithConfig(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bank, err := cochlea.New(NumChannels, float64(SampleRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return &Analyzer{cfg: cfg, bank: bank}, nil
}

// Config returns a copy of the current configuration.
func (z *Analyzer) Config() Config { return z.cfg }

// StepWindow returns the time-axis size of the similarity window.
func (z *Analyzer) StepWindow() int { return z.cfg.StepWindow }

// ChannelWindow returns the frequency-axis size of the similarity window.
func (z *Analyzer) ChannelWindow() int { return z.cfg.ChannelWindow }

// PerceptualSampleRate returns the spectrogram step rate in Hz.
func (z *Analyzer) PerceptualSampleRate() float32 { return z.cfg.PerceptualSampleRate }

// FullScaleSineDB returns the level assigned to a sine of amplitude 1.
func (z *Analyzer) FullScaleSineDB() float32 { return z.cfg.FullScaleSineDB }

// AlignmentBand returns the time warping limit in steps; 0 means unlimited.
func (z *Analyzer) AlignmentBand() int { return z.cfg.AlignmentBand }

// ChannelFrequencies returns the center frequency of each channel in Hz,
// lowest first.
func (z *Analyzer) ChannelFrequencies() []float64 { return z.bank.Frequencies() }

// SetStepWindow sets the time-axis similarity window.
func (z *Analyzer) SetStepWindow(v int) error {
	return z.update(func(c *Config) { c.StepWindow = v })
}

// SetChannelWindow sets the frequency-axis similarity window.
func (z *Analyzer) SetChannelWindow(v int) error {
	return z.update(func(c *Config) { c.ChannelWindow = v })
}

// SetPerceptualSampleRate sets the spectrogram step rate. Spectrograms that
// already exist keep their step count.
func (z *Analyzer) SetPerceptualSampleRate(v float32) error {
	return z.update(func(c *Config) { c.PerceptualSampleRate = v })
}

// SetFullScaleSineDB sets the loudness calibration level.
func (z *Analyzer) SetFullScaleSineDB(v float32) error {
	return z.update(func(c *Config) { c.FullScaleSineDB = v })
}

// SetAlignmentBand limits time warping; 0 removes the limit.
func (z *Analyzer) SetAlignmentBand(v int) error {
	return z.update(func(c *Config) { c.AlignmentBand = v })
}

// update applies set to a copy and keeps it only if it validates.
func (z *Analyzer) update(set func(*Config)) error {
	next := z.cfg
	set(&next)

	if err := next.Validate(); err != nil {
		return err
	}

	z.cfg = next
	return nil
}

// SpectrogramSteps returns the number of steps Analyze produces for
// numSamples samples under the current configuration.
func (z *Analyzer) SpectrogramSteps(numSamples int) int {
	return z.bank.Steps(numSamples, float64(z.cfg.PerceptualSampleRate))
}

// Analyze converts a mono signal at SampleRate, nominally in [-1, 1], into a
// spectrogram with NumChannels dimensions. Values outside [-1, 1] are
// processed as they are. An empty signal gives a zero-step spectrogram.
func (z *Analyzer) Analyze(signal []float32) (*Spectrogram, error) {
	spec, err := z.bank.Analyze(signal, float64(z.cfg.PerceptualSampleRate), float64(z.cfg.FullScaleSineDB))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return spec, nil
}
