// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/zimtohrli/audio"
	"github.com/ik5/zimtohrli/formats/aiff"
	"github.com/ik5/zimtohrli/formats/mp3"
	"github.com/ik5/zimtohrli/formats/vorbis"
	"github.com/ik5/zimtohrli/formats/wav"
)

// NewRegistry returns a registry with the wav, aiff, mp3 and vorbis
// decoders mapped to their usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, ".wav", ".wave")
	reg.Register("aiff", aiff.Decoder{}, ".aiff", ".aif")
	reg.Register("mp3", mp3.Decoder{}, ".mp3")
	reg.Register("vorbis", vorbis.Decoder{}, ".ogg", ".oga")
	return reg
}
