package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvasirdb/recordio/pkg/recordio"
	"github.com/kvasirdb/recordio/pkg/stream"
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write <file> [record...]",
	Short: "Append records to a log file",
	Long: `Append records to a log file, creating it if needed. Each argument
becomes one logical record; with no record arguments, standard input is
appended as a single record.

Example:
  recordio write events.rlog "first record" "second record"
  tar cz ./dir | recordio write backups.rlog`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sink, err := stream.NewFileSink(stream.FileSinkConfig{FilePath: args[0]})
		if err != nil {
			fmt.Printf("Error opening log: %v\n", err)
			os.Exit(1)
		}

		writer := recordio.NewWriter(sink)
		records := 0

		if len(args) > 1 {
			for _, arg := range args[1:] {
				if _, err := writer.WriteRecord([]byte(arg)); err != nil {
					fmt.Printf("Error writing record: %v\n", err)
					os.Exit(1)
				}
				records++
			}
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Printf("Error reading stdin: %v\n", err)
				os.Exit(1)
			}
			if _, err := writer.WriteRecord(data); err != nil {
				fmt.Printf("Error writing record: %v\n", err)
				os.Exit(1)
			}
			records++
		}

		if err := writer.Close(); err != nil {
			fmt.Printf("Error closing log: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Appended %d record(s) to %s\n", records, args[0])
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
