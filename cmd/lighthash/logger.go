package main

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newLogger builds the logger from the log flags. Logs go to stderr so that
// stdout only carries the command output.
func newLogger(cmd *cobra.Command) (log.Logger, error) {
	levelStr, err := cmd.Flags().GetString(FlagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("error reading %s flag: %w", FlagLogLevel, err)
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", FlagLogLevel, levelStr, err)
	}

	format, err := cmd.Flags().GetString(FlagLogFormat)
	if err != nil {
		return nil, fmt.Errorf("error reading %s flag: %w", FlagLogFormat, err)
	}

	opts := []log.Option{log.LevelOption(level), log.ColorOption(false)}
	switch format {
	case "text":
	case "json":
		opts = append(opts, log.OutputJSONOption())
	default:
		return nil, fmt.Errorf("invalid %s %q: expected text or json", FlagLogFormat, format)
	}

	return log.NewLogger(cmd.ErrOrStderr(), opts...).With("module", "lighthash"), nil
}
