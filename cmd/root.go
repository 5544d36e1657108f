package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "orc-book",
		Short: "Book cover scanner that builds a library from photos",
		Long: `orc-book turns photos of book covers into bibliographic records.

Each scan recognizes the cover text, extracts the title, author,
publisher, ISBN and price, reconciles the record against an online
catalog, and saves it to a local book list that can be exported as
CSV or Parquet.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML)")

	cmd.AddCommand(newScanCmd(&configPath))
	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newListCmd(&configPath))
	cmd.AddCommand(newExportCmd(&configPath))

	return cmd
}
