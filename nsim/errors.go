// SPDX-License-Identifier: EPL-2.0

package nsim

import "errors"

var (
	// ErrWindow indicates a window with a zero or negative side.
	ErrWindow = errors.New("window sides must be positive")

	// ErrShape indicates spectrograms that are not aligned to the same grid.
	ErrShape = errors.New("spectrograms differ in shape")
)
