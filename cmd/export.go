package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jinhuihu/orc-book/internal/config"
	"github.com/jinhuihu/orc-book/internal/export"
	"github.com/jinhuihu/orc-book/internal/library"
)

func newExportCmd(configPath *string) *cobra.Command {
	var format string
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the book list to a tabular file",
		Example: `  # CSV into the configured export directory
  orc-book export

  # Parquet into a chosen directory
  orc-book export --format parquet --dir /tmp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.ExportDir
			}

			books, err := library.NewStore(cfg.LibraryPath).Load()
			if err != nil {
				return err
			}
			path, err := export.ToFile(outDir, format, books)
			if err != nil {
				return err
			}
			cmd.Printf("Exported %d books to %s\n", len(books), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or parquet")
	cmd.Flags().StringVarP(&outDir, "dir", "d", "", "Output directory (defaults to the configured export dir)")

	return cmd
}
