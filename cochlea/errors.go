// SPDX-License-Identifier: EPL-2.0

package cochlea

import "errors"

var (
	// ErrChannels indicates a bank without channels.
	ErrChannels = errors.New("channel count must be positive")

	// ErrSampleRate indicates an input rate that cannot represent the
	// bank's frequency range.
	ErrSampleRate = errors.New("sample rate must exceed twice the highest channel frequency")

	// ErrPerceptualRate indicates a step rate outside (0, sample rate].
	ErrPerceptualRate = errors.New("perceptual sample rate out of range")

	// ErrLevel indicates a non-finite full-scale sine level.
	ErrLevel = errors.New("full-scale sine level must be finite")
)
