package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/supplyrun/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Resolve supplyrun.yaml the same way the game does and print the result.

Search order:
  1. --config <path>
  2. ~/.supplyrun/configs/supplyrun.yaml
  3. ./configs/supplyrun.yaml
  4. built-in defaults

Redirect the output to start a custom config:
  supplyrun config > ~/.supplyrun/configs/supplyrun.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadSupplyRun(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (showing defaults)\n", err)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
