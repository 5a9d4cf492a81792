// SPDX-License-Identifier: EPL-2.0

package zimtohrli

import "errors"

var (
	// ErrInvalidInput indicates arguments that cannot be compared, such as
	// spectrograms with different channel counts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates an out-of-range configuration value.
	ErrConfiguration = errors.New("invalid configuration")
)
