// SPDX-License-Identifier: EPL-2.0

package zimtohrli_test

import (
	"fmt"
	"math"

	"github.com/ik5/zimtohrli"
)

func sine(freq, amp float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(zimtohrli.SampleRate)))
	}
	return out
}

// Example compares a tone with a slightly quieter copy and with a tone an
// octave higher.
func Example() {
	z := zimtohrli.NewAnalyzer()

	ref, _ := z.Analyze(sine(1000, 0.5, 48000))
	quieter, _ := z.Analyze(sine(1000, 0.4, 48000))
	octave, _ := z.Analyze(sine(2000, 0.5, 48000))

	fmt.Println(ref.Steps(), "steps x", ref.Dims(), "channels")

	// Distance normalizes its inputs, so pass clones to reuse ref.
	dq, _ := z.Distance(ref.Clone(), quieter)
	do, _ := z.Distance(ref.Clone(), octave)

	fmt.Println("quieter copy is closer:", dq < do)
	// Output:
	// 85 steps x 128 channels
	// quieter copy is closer: true
}

// ExampleAnalyzer_SpectrogramSteps shows how the step count follows the
// perceptual sample rate.
func ExampleAnalyzer_SpectrogramSteps() {
	z := zimtohrli.NewAnalyzer()
	fmt.Println(z.SpectrogramSteps(48000))

	if err := z.SetPerceptualSampleRate(100); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(z.SpectrogramSteps(48000))

	err := z.SetPerceptualSampleRate(0)
	fmt.Println(err)
	// Output:
	// 85
	// 100
	// invalid configuration: perceptual sample rate 0 must be in (0, 48000]
}
