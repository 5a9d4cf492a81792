// SPDX-License-Identifier: EPL-2.0

package zimtohrli

import (
	"fmt"
	"math"
)

// Default configuration values.
const (
	DefaultStepWindow           = 8
	DefaultChannelWindow        = 5
	DefaultPerceptualSampleRate = 85.0
	DefaultFullScaleSineDB      = 78.3
)

// Config holds the tunable parameters of an Analyzer.
type Config struct {
	// StepWindow is the time-axis size of the similarity window.
	StepWindow int `yaml:"step_window" json:"step_window"`
	// ChannelWindow is the frequency-axis size of the similarity window.
	ChannelWindow int `yaml:"channel_window" json:"channel_window"`
	// PerceptualSampleRate is the spectrogram step rate in Hz.
	PerceptualSampleRate float32 `yaml:"perceptual_sample_rate" json:"perceptual_sample_rate"`
	// FullScaleSineDB is the level assigned to a sine of amplitude 1.
	FullScaleSineDB float32 `yaml:"full_scale_sine_db" json:"full_scale_sine_db"`
	// AlignmentBand limits time warping to this many steps around the
	// diagonal. Zero disables the limit.
	AlignmentBand int `yaml:"alignment_band" json:"alignment_band"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		StepWindow:           DefaultStepWindow,
		ChannelWindow:        DefaultChannelWindow,
		PerceptualSampleRate: DefaultPerceptualSampleRate,
		FullScaleSineDB:      DefaultFullScaleSineDB,
	}
}

// Validate reports the first invalid field, wrapped in ErrConfiguration.
func (c Config) Validate() error {
	if c.StepWindow <= 0 {
		return fmt.Errorf("%w: step window %d must be positive", ErrConfiguration, c.StepWindow)
	}
	if c.ChannelWindow <= 0 {
		return fmt.Errorf("%w: channel window %d must be positive", ErrConfiguration, c.ChannelWindow)
	}
	if !(c.PerceptualSampleRate > 0) || c.PerceptualSampleRate > SampleRate {
		return fmt.Errorf("%w: perceptual sample rate %v must be in (0, %v]", ErrConfiguration, c.PerceptualSampleRate, SampleRate)
	}
	if f := float64(c.FullScaleSineDB); math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: full-scale sine level %v must be finite", ErrConfiguration, c.FullScaleSineDB)
	}
	if c.AlignmentBand < 0 {
		return fmt.Errorf("%w: alignment band %d must not be negative", ErrConfiguration, c.AlignmentBand)
	}
	return nil
}
