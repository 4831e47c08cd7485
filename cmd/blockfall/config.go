package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order and flags are applied.
The output is valid YAML and can be saved as ~/.blockfall/config.yaml.

Search order:
  1. --config <path>
  2. ~/.blockfall/config.yaml
  3. ./configs/blockfall.yaml
  4. built-in defaults`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}
