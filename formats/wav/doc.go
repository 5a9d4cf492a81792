// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files through go-audio/wav.
//
// Decoder accepts integer PCM at 16, 24 or 32 bits with any channel count
// and sample rate, and yields float32 samples in [-1, 1):
//
//	f, _ := os.Open("ref.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	defer src.Close() // closes f
//
// Write stores float32 samples as 16-bit PCM:
//
//	out, _ := os.Create("tone.wav")
//	err := wav.Write(out, 48000, 1, samples)
package wav
