package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/supplyrun/internal/games/supplyrun"
)

// newLogger builds the process logger from --log-file and --log-level and
// hands it to the game package. Without a log file, output goes to fallback;
// a nil fallback discards it so the alternate screen stays clean.
// The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closer = func() { f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "supplyrun",
		Level:           level,
	})

	supplyrun.SetLogger(logger)
	supplyrun.SetConfigPath(flagConfig)
	return logger, closer, nil
}
