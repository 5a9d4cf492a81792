// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/zimtohrli"
)

var (
	cfgFile    string
	outputJSON bool
	verbose    bool

	// Analyzer overrides; applied only when set on the command line.
	stepWindow     int
	channelWindow  int
	perceptualRate float32
	fullScaleDB    float32
	alignmentBand  int
)

var rootCmd = &cobra.Command{
	Use:   "zimtohrli",
	Short: "Perceptual audio distance",
	Long: `zimtohrli estimates how different two recordings sound.

Files are decoded (wav, aiff, mp3, ogg vorbis), mixed to mono, resampled to
48 kHz and turned into perceptual spectrograms. The distance between two
spectrograms is 0 for identical sounds and approaches 1 as they diverge.

Settings come from the defaults, then the --config file (YAML or JSON), then
individual flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	flags.BoolVar(&outputJSON, "json", false, "output as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	flags.IntVar(&stepWindow, "step-window", zimtohrli.DefaultStepWindow, "similarity window along time, in steps")
	flags.IntVar(&channelWindow, "channel-window", zimtohrli.DefaultChannelWindow, "similarity window along frequency, in channels")
	flags.Float32Var(&perceptualRate, "perceptual-rate", zimtohrli.DefaultPerceptualSampleRate, "spectrogram steps per second")
	flags.Float32Var(&fullScaleDB, "full-scale-db", zimtohrli.DefaultFullScaleSineDB, "level of a full-scale sine, in dB")
	flags.IntVar(&alignmentBand, "band", 0, "limit time warping to this many steps (0 = unlimited)")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(toneCmd)
	rootCmd.AddCommand(configCmd)
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// effectiveConfig layers the config file and the flags that were set over
// the defaults.
func effectiveConfig(cmd *cobra.Command) (zimtohrli.Config, error) {
	cfg := zimtohrli.DefaultConfig()

	if cfgFile != "" {
		if err := loadFile(cfgFile, &cfg); err != nil {
			return cfg, err
		}
		slog.Debug("loaded config", "path", cfgFile)
	}

	flags := cmd.Flags()
	if flags.Changed("step-window") {
		cfg.StepWindow = stepWindow
	}
	if flags.Changed("channel-window") {
		cfg.ChannelWindow = channelWindow
	}
	if flags.Changed("perceptual-rate") {
		cfg.PerceptualSampleRate = perceptualRate
	}
	if flags.Changed("full-scale-db") {
		cfg.FullScaleSineDB = fullScaleDB
	}
	if flags.Changed("band") {
		cfg.AlignmentBand = alignmentBand
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newAnalyzer(cmd *cobra.Command) (*zimtohrli.Analyzer, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	z, err := zimtohrli.NewAnalyzerWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}
	return z, nil
}
