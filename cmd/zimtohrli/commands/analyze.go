// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ik5/zimtohrli"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Summarize the perceptual spectrogram of each file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

// summary describes one spectrogram.
type summary struct {
	Path       string    `json:"path"`
	Steps      int       `json:"steps"`
	Dims       int       `json:"dims"`
	Seconds    float64   `json:"seconds"`
	Max        float64   `json:"max_db"`
	Mean       float64   `json:"mean_db"`
	StdDev     float64   `json:"stddev_db"`
	Loudest    float64   `json:"loudest_channel_hz"`
	ChannelAvg []float64 `json:"channel_mean_db,omitempty"`
}

var analyzeChannels bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeChannels, "channels", false, "include the per-channel mean level")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	z, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	summaries := make([]summary, 0, len(args))
	for _, path := range args {
		spec, err := analyzeFile(z, path)
		if err != nil {
			return err
		}
		summaries = append(summaries, summarize(z, path, spec, analyzeChannels))
	}

	if outputJSON {
		return writeJSON(cmd.OutOrStdout(), summaries)
	}

	for _, s := range summaries {
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s: %d steps x %d channels (%.2fs), max %.1f dB, mean %.1f dB, stddev %.1f dB, loudest %.0f Hz\n",
			s.Path, s.Steps, s.Dims, s.Seconds, s.Max, s.Mean, s.StdDev, s.Loudest)
	}
	return nil
}

func summarize(z *zimtohrli.Analyzer, path string, spec *zimtohrli.Spectrogram, perChannel bool) summary {
	s := summary{
		Path:    path,
		Steps:   spec.Steps(),
		Dims:    spec.Dims(),
		Seconds: float64(spec.Steps()) / float64(z.PerceptualSampleRate()),
	}
	if spec.Size() == 0 {
		return s
	}

	values := make([]float64, spec.Size())
	for i, v := range spec.Values() {
		values[i] = float64(v)
	}
	s.Max = floats.Max(values)
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)

	channelMeans := make([]float64, spec.Dims())
	column := make([]float64, spec.Steps())
	for c := range channelMeans {
		for step := range column {
			column[step] = float64(spec.At(step, c))
		}
		channelMeans[c] = stat.Mean(column, nil)
	}
	s.Loudest = z.ChannelFrequencies()[floats.MaxIdx(channelMeans)]

	if perChannel {
		s.ChannelAvg = channelMeans
	}
	return s
}
