package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recordio",
	Short: "RecordIO - block-aligned record log tooling",
	Long: `RecordIO reads and writes checksummed, block-aligned record logs
(leveldb log format). Subcommands append records to a log file, dump or
verify an existing one, and serve a set of logs over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
