package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/supplyrun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Press B during a game to return to the menu.`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume (0-1)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	player := openAudio(logger)
	defer player.Close()

	return tui.RunSession(terminalConfig(), tui.Options{Logger: logger, Audio: player})
}
