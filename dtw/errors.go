// SPDX-License-Identifier: EPL-2.0

package dtw

import "errors"

var (
	// ErrDimensionMismatch indicates spectrograms with different channel counts.
	ErrDimensionMismatch = errors.New("spectrogram dimensions differ")

	// ErrBand indicates a negative band width.
	ErrBand = errors.New("band must not be negative")
)
