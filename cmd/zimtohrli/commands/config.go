// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect analyzer settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings after the config file and flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}

		if outputJSON {
			return writeJSON(cmd.OutOrStdout(), cfg)
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var configFormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the audio formats that can be decoded",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range registry.Formats() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configFormatsCmd)
}
