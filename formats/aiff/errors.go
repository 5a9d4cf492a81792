// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates a missing or malformed FORM header.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout indicates a channel or rate layout that
	// cannot be represented.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
