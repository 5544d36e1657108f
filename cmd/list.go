package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jinhuihu/orc-book/internal/config"
	"github.com/jinhuihu/orc-book/internal/library"
)

func newListCmd(configPath *string) *cobra.Command {
	var remove int
	var clear bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show or curate the saved book list",
		Example: `  # Show every saved book, newest first
  orc-book list

  # Remove the book at index 2
  orc-book list --remove 2

  # Delete the whole list
  orc-book list --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			store := library.NewStore(cfg.LibraryPath)

			if clear {
				if err := store.Clear(); err != nil {
					return err
				}
				cmd.Println("Book list cleared")
				return nil
			}
			if remove >= 0 {
				if err := store.Remove(remove); err != nil {
					return err
				}
				cmd.Printf("Removed book %d\n", remove)
				return nil
			}

			books, err := store.Load()
			if err != nil {
				return err
			}
			if len(books) == 0 {
				cmd.Println("No books saved yet")
				return nil
			}
			for i, b := range books {
				cmd.Printf("[%d] %s\n", i, b.Details())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&remove, "remove", -1, "Remove the book at this index")
	cmd.Flags().BoolVar(&clear, "clear", false, "Delete every saved book")

	return cmd
}
