package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvasirdb/recordio/pkg/recordio"
	"github.com/kvasirdb/recordio/pkg/stream"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print the records of a log file",
	Long: `Print every logical record in a log file to standard output, in
write order. Corrupted regions are skipped and reported on stderr.

Example:
  recordio cat events.rlog --from 32768`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetInt64("from")
		showOffsets, _ := cmd.Flags().GetBool("offsets")

		source, err := stream.OpenFileSource(args[0], 0)
		if err != nil {
			fmt.Printf("Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer source.Close()

		reader, err := recordio.NewReader(source, recordio.ReaderConfig{
			StartOffset: from,
			Reporter: recordio.ReporterFunc(func(offset int64, err error) {
				fmt.Fprintf(os.Stderr, "corruption near offset %d: %v\n", offset, err)
			}),
		})
		if err != nil {
			fmt.Printf("Error reading log: %v\n", err)
			os.Exit(1)
		}

		for {
			offset := reader.Position()
			record, err := reader.ReadRecord()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				fmt.Printf("Error reading log: %v\n", err)
				os.Exit(1)
			}
			if showOffsets {
				fmt.Printf("%d\t", offset)
			}
			os.Stdout.Write(record)
			fmt.Println()
		}
	},
}

func init() {
	catCmd.Flags().Int64("from", 0, "Stream offset to start reading from")
	catCmd.Flags().Bool("offsets", false, "Prefix each record with its stream offset")
	rootCmd.AddCommand(catCmd)
}
