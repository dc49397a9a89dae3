// supplyrun is a single-screen reflex runner for the terminal.
//
// Usage:
//
//	supplyrun play [variant]  - Play a variant (default: supplyrun)
//	supplyrun list            - List available variants
//	supplyrun menu            - Pick variants interactively
//	supplyrun serve           - Serve the game over SSH
//	supplyrun config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Custom supplyrun.yaml
//	--log-file <path>     - Write logs to a file (default: discard)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its variants
	_ "github.com/vovakirdan/supplyrun/internal/games/supplyrun"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "supplyrun",
	Short: "Supply Run - jump the obstacle, grab the supply",
	Long: `Supply Run is a single-screen reflex game for the terminal.

An obstacle sweeps toward the runner every few seconds; jump over it to
score a point. A supply crate drifts past on its own slower cycle and can
only be grabbed mid-jump, for ten points. Touch the obstacle on the ground
and the run is over.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Serve the game over SSH
  config   - Print the effective configuration

Examples:
  supplyrun play
  supplyrun play supplyrun_classic --sound
  supplyrun menu --fps 30
  supplyrun serve --ssh :2222 --log-file serve.log`,
	// main reports errors once, without the usage dump
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom supplyrun.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded when empty)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
