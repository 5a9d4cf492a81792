// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes and encodes Audio Interchange File Format files
// through go-audio/aiff.
//
// Decoder handles uncompressed AIFF at 16, 24 or 32 bits per sample. AIFF
// stores big-endian samples; the returned source yields float32 in [-1, 1)
// like every other decoder here.
package aiff
