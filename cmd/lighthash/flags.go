package main

import (
	"github.com/spf13/cobra"
)

const (
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagComet     = "comet"
	FlagUpdates   = "updates"
)

// AddLogFlags adds the logging options shared by every subcommand.
func AddLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagLogLevel, "info", "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String(FlagLogFormat, "text", "log format (text, json)")
}

// AddCometFlag adds the flag that also prints the CometBFT hash.
func AddCometFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(FlagComet, false, "also print the hash CometBFT computes for the same input")
}
