package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvasirdb/recordio/pkg/api"
	"github.com/kvasirdb/recordio/pkg/config"
	"github.com/kvasirdb/recordio/pkg/logstore"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a set of record logs over HTTP",
	Long: `Start the RecordIO HTTP API. Logs live as files under the data
directory; the API offers append, scan and stats per named log, plus
health and Prometheus metrics endpoints.

Example:
  recordio serve --config recordio.yaml
  recordio serve --data-dir ./data --port 8080`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()

		if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}

		store, err := logstore.NewStore(logstore.StoreConfig{
			DataDir:       cfg.DataDir,
			FsyncInterval: cfg.Durability.FsyncInterval,
			BufferSize:    cfg.Durability.BufferSize,
		})
		if err != nil {
			fmt.Printf("Error creating store: %v\n", err)
			os.Exit(1)
		}
		if err := store.Open(); err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := api.StartServer(store, api.ServerConfig{Bind: cfg.Bind, Port: cfg.Port}); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("config", "", "Path to a YAML config file")
	serveCmd.Flags().String("data-dir", "./data", "Data directory for log files")
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
