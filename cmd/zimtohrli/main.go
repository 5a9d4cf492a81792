// SPDX-License-Identifier: EPL-2.0

// zimtohrli compares audio files the way a listener would.
//
// Usage:
//
//	zimtohrli compare ref.wav degraded.mp3     # perceptual distance
//	zimtohrli compare ref.wav a.ogg b.ogg -j 4 # several files in parallel
//	zimtohrli analyze ref.wav --json           # spectrogram summary
//	zimtohrli steps 48000                      # steps for a sample count
//	zimtohrli tone --freq 1000 tone.wav        # calibration sine
//	zimtohrli config show                      # effective settings
package main

import (
	"fmt"
	"os"

	"github.com/ik5/zimtohrli/cmd/zimtohrli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
