package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/fuel-sim/sim"
)

var validateConfigPath string

// validateCmd checks a scenario file and prints the effective configuration.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file and print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := sim.DefaultConfig()
		if validateConfigPath != "" {
			loaded, err := sim.LoadConfig(validateConfigPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		return encoder.Close()
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateConfigPath, "config", "", "YAML scenario file (empty: defaults)")
	rootCmd.AddCommand(validateCmd)
}
