// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 layer III audio through hajimehoshi/go-mp3.
//
// The decoder always yields two channels; mono files are duplicated onto
// both. Mix them back down with audio.NewMonoMixer.
package mp3
