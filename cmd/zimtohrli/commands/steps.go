// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps <num_samples>",
	Short: "Print how many spectrogram steps a 48 kHz signal of that length yields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid sample count %q: %w", args[0], err)
		}

		z, err := newAnalyzer(cmd)
		if err != nil {
			return err
		}

		steps := z.SpectrogramSteps(n)
		if outputJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]int{"samples": n, "steps": steps})
		}
		fmt.Fprintln(cmd.OutOrStdout(), steps)
		return nil
	},
}
