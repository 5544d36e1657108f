package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinhuihu/orc-book/internal/config"
	"github.com/jinhuihu/orc-book/internal/extract"
	"github.com/jinhuihu/orc-book/internal/library"
	"github.com/jinhuihu/orc-book/internal/lookup"
	"github.com/jinhuihu/orc-book/internal/recognize"
	"github.com/jinhuihu/orc-book/internal/session"
)

func newScanCmd(configPath *string) *cobra.Command {
	var fillFromCatalog bool

	cmd := &cobra.Command{
		Use:   "scan IMAGE [IMAGE...]",
		Short: "Scan cover photos into a book record",
		Long: `Runs one scan session over the given cover photos.

Each image is one recognition pass: the first seeds the record from
the ISBN (reconciled online) or the title, later images fill the
field the session asks for next. Fields no image could supply are
skipped, except the title, which every record needs. The finished
record is appended to the book list.`,
		Example: `  # Single photo showing the whole cover
  orc-book scan cover.jpg

  # Back cover for the ISBN, then the front for the title
  orc-book scan back.jpg front.jpg

  # Fill missing fields from the first online title match
  orc-book scan cover.jpg --fill`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			recognizer := recognize.NewFromSettings(
				cfg.Recognizer.Engine,
				cfg.Recognizer.Languages,
				cfg.Recognizer.Model,
				cfg.Recognizer.OllamaHost,
			)
			ctrl := session.New(lookup.NewGoogleBooks(cfg.GoogleBooks.BaseURL, cfg.GoogleBooks.APIKey))
			ctx := cmd.Context()

			var outcome session.Outcome
			for _, path := range args {
				img, err := recognize.PrepareFile(path)
				if err != nil {
					return err
				}
				res, err := recognizer.Recognize(ctx, img)
				if err != nil {
					return fmt.Errorf("recognition failed for %s: %w", path, err)
				}
				outcome = ctrl.HandlePass(ctx, extract.Fields(res))
				if outcome.Book != nil {
					break
				}
				cmd.Printf("%s: %s\n", path, outcome.Prompt)
			}

			if outcome.Book == nil && fillFromCatalog {
				if candidates := ctrl.TitleCandidates(ctx); len(candidates) > 0 {
					outcome = ctrl.ApplyCandidate(candidates[0])
				}
			}

			// Out of images; skip whatever remains skippable.
			for outcome.Book == nil && ctrl.Step().Skippable() {
				outcome = ctrl.Skip()
			}
			if outcome.Book == nil {
				return fmt.Errorf("no readable title in the supplied images, %s", outcome.Prompt)
			}

			if err := library.NewStore(cfg.LibraryPath).Add(*outcome.Book); err != nil {
				return fmt.Errorf("failed to save book: %w", err)
			}
			cmd.Println("Saved:")
			cmd.Println(outcome.Book.Details())
			return nil
		},
	}

	cmd.Flags().BoolVar(&fillFromCatalog, "fill", false, "Fill missing fields from the first online title match")

	return cmd
}
