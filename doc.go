// SPDX-License-Identifier: EPL-2.0

// Package zimtohrli estimates how different two sounds are to a human
// listener.
//
// An Analyzer turns 48 kHz mono samples into a perceptual spectrogram: a
// bank of NumChannels resonators spaced on the ERB-rate scale, each
// reporting the loudness in its band at PerceptualSampleRate steps per
// second. Two spectrograms are compared by aligning their time axes with
// dynamic time warping and scoring the aligned pair with a windowed
// structural similarity. Distance returns 1 minus that similarity.
//
//	z := zimtohrli.NewAnalyzer()
//	ref, _ := z.Analyze(reference)
//	deg, _ := z.Analyze(degraded)
//	d, err := z.Distance(ref, deg)
//
// # Input
//
// Analyze only accepts mono samples at SampleRate, nominally in [-1, 1].
// Decoded files at other rates or channel counts go through AnalyzeSource,
// which uses the audio package to mix and resample:
//
//	f, _ := os.Open("degraded.ogg")
//	src, _ := vorbis.Decoder{}.Decode(f)
//	deg, err := z.AnalyzeSource(src)
//
// # Levels
//
// A full-scale sine (amplitude 1) centered on a channel reads
// FullScaleSineDB in that channel; halving the amplitude lowers it by about
// 6 dB. Levels are clamped at 0, so digital silence is all zeros.
//
// # Distance
//
// Distance rescales both inputs so that their loudest cell is 1 before
// comparing them. Clone spectrograms that are needed at their original
// level afterwards. A spectrogram with no steps is maximally distant from
// anything.
//
// # Concurrency
//
// Analyze and Distance may run concurrently on one Analyzer as long as no
// setter is called at the same time. Spectrograms are not safe for
// concurrent mutation.
package zimtohrli
