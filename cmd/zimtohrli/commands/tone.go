// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/zimtohrli"
	"github.com/ik5/zimtohrli/formats/aiff"
	"github.com/ik5/zimtohrli/formats/wav"
	"github.com/ik5/zimtohrli/utils"
)

var (
	toneFreq    float64
	toneAmp     float64
	toneSeconds float64
	toneLevel   float64
)

var toneCmd = &cobra.Command{
	Use:   "tone <output.wav|output.aiff>",
	Short: "Write a 48 kHz mono calibration sine",
	Long: `Write a 48 kHz mono calibration sine as 16-bit PCM.

An amplitude of 1 is the full-scale sine whose level in the channel at
--freq is the configured full-scale level. --db picks the amplitude that
reads as the given level instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runTone,
}

func init() {
	toneCmd.Flags().Float64Var(&toneFreq, "freq", 1000, "frequency in Hz")
	toneCmd.Flags().Float64Var(&toneAmp, "amp", 0.5, "peak amplitude, 0 to 1")
	toneCmd.Flags().Float64Var(&toneSeconds, "seconds", 1, "duration in seconds")
	toneCmd.Flags().Float64Var(&toneLevel, "db", 0, "target level in dB; overrides --amp")
}

func runTone(cmd *cobra.Command, args []string) error {
	rate := float64(zimtohrli.SampleRate)

	if cmd.Flags().Changed("db") {
		cfg, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		// Power scales with amplitude squared.
		toneAmp = math.Sqrt(utils.DBToPower(toneLevel - float64(cfg.FullScaleSineDB)))
	}

	if !(toneFreq > 0) || toneFreq >= rate/2 {
		return fmt.Errorf("frequency %v Hz outside (0, %v)", toneFreq, rate/2)
	}
	if toneAmp < 0 || toneAmp > 1 {
		return fmt.Errorf("amplitude %v outside [0, 1]", toneAmp)
	}
	if !(toneSeconds > 0) {
		return fmt.Errorf("duration %v must be positive", toneSeconds)
	}

	samples := make([]float32, int(math.Round(toneSeconds*rate)))
	for i := range samples {
		samples[i] = float32(toneAmp * math.Sin(2*math.Pi*toneFreq*float64(i)/rate))
	}

	path := args[0]
	write := wav.Write
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		write = aiff.Write
	case ".wav", ".wave":
	default:
		return fmt.Errorf("unsupported output %q: use .wav or .aiff", path)
	}

	if err := writeFile(path, func(w io.WriteSeeker) error {
		return write(w, int(rate), 1, samples)
	}); err != nil {
		return err
	}

	slog.Info("wrote tone", "path", path, "freq", toneFreq, "amp", toneAmp, "samples", len(samples))
	return nil
}

func writeFile(path string, write func(io.WriteSeeker) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
