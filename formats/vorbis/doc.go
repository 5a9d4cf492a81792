// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through jfreymuth/oggvorbis. Samples
// are already float32, so the source passes them through unchanged.
package vorbis
