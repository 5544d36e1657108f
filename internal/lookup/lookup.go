// Package lookup reconciles recognized cover text against an online book
// catalog. Lookups are best-effort enrichment: callers always keep the
// OCR-only record as fallback, so a miss or a network failure is reported
// as a nil result, never as a condition that blocks the scanning flow.
package lookup

import (
	"context"

	"github.com/jinhuihu/orc-book/internal/book"
)

// Service is the online catalog collaborator.
type Service interface {
	// SearchByISBN returns the single best record for an ISBN, or nil
	// when the ISBN is malformed or unknown.
	SearchByISBN(ctx context.Context, isbn string) (*book.Info, error)
	// SearchByTitle returns up to five candidate records for a title.
	SearchByTitle(ctx context.Context, title string) ([]book.Info, error)
}
