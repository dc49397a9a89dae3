package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/supplyrun/internal/audio"
	"github.com/vovakirdan/supplyrun/internal/core"
	"github.com/vovakirdan/supplyrun/internal/games/supplyrun"
	"github.com/vovakirdan/supplyrun/internal/platform/tui"
	"github.com/vovakirdan/supplyrun/internal/registry"
)

var (
	flagSound  bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Supply Run",
	Long: `Start playing the given variant (default: supplyrun).

Variants:
  supplyrun          - collisions are checked every frame
  supplyrun_classic  - collisions are checked only when an entity finishes its pass

Controls:
  Space/Up/W  - Jump
  P/Esc       - Pause
  R/Enter     - Restart (after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Examples:
  supplyrun play
  supplyrun play supplyrun_classic
  supplyrun play --sound --volume 0.5
  supplyrun play --config ./my-supplyrun.yaml`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeVariants,
	RunE:              runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume (0-1)")
}

// completeVariants offers registered variant IDs for shell completion.
func completeVariants(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return registry.IDs(), cobra.ShellCompDirectiveNoFileComp
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// openAudio starts the speaker when --sound is set. Failure leaves the
// game silent.
func openAudio(logger *log.Logger) *audio.Player {
	if !flagSound {
		return nil
	}
	p, err := audio.NewPlayer(flagVolume, logger)
	if err != nil {
		logger.Warn("sound disabled", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	return p
}

// runPlay starts a single variant in the current terminal.
func runPlay(_ *cobra.Command, args []string) error {
	gameID := supplyrun.IDFrame
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'supplyrun list' to see available variants)", gameID)
	}

	logger, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	player := openAudio(logger)
	defer player.Close()

	return tui.Run(game, terminalConfig(), tui.Options{
		Logger: logger,
		Audio:  player,
	})
}
