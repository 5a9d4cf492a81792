// SPDX-License-Identifier: EPL-2.0

package spectrogram

import "errors"

var (
	// ErrShape indicates dimensions that cannot describe a spectrogram.
	ErrShape = errors.New("invalid spectrogram shape")
)
