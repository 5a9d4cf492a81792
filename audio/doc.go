// SPDX-License-Identifier: EPL-2.0

// Package audio streams decoded PCM into the form the perceptual model
// consumes.
//
// Every decoder in the formats tree returns a Source: interleaved float32
// samples in [-1, 1] at the file's native rate and channel count. The
// model needs mono samples at 48 kHz, so sources are chained:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	samples, err := audio.ToMono(src, 48000)
//
// ToMono is a MonoMixer followed, when the rates differ, by a Resampler,
// drained with ReadAll. Both stages can also be used on their own.
//
// # Registry
//
// A Registry picks a decoder by format name or file extension:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{}, ".wav", ".wave")
//	dec, format, err := reg.ForPath("ref.WAV")
//
// Unknown extensions fail with ErrUnknownFormat.
//
// # End of stream
//
// ReadSamples may return data together with io.EOF. Callers must consume
// n values before looking at the error.
package audio
