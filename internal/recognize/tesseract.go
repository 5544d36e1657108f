package recognize

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text with a local Tesseract engine through
// gosseract. It is the only provider that reports block geometry, which
// the title extractor uses for its area and position scoring.
type Tesseract struct {
	language string
}

// NewTesseract creates a provider for one traineddata language,
// e.g. "chi_sim" or "eng". One provider per script keeps the chain's
// Chinese-first, Latin-fallback ordering explicit.
func NewTesseract(language string) *Tesseract {
	return &Tesseract{language: language}
}

func (t *Tesseract) Name() string { return "tesseract/" + t.language }

func (t *Tesseract) Recognize(ctx context.Context, img []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("failed to set tesseract language %s: %w", t.language, err)
	}
	if err := client.SetImageFromBytes(img); err != nil {
		return nil, fmt.Errorf("failed to load image into tesseract: %w", err)
	}

	fullText, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract recognition failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		// Geometry is an enhancement; text alone is still a usable pass.
		return FromText(fullText), nil
	}

	res := &Result{FullText: strings.TrimSpace(fullText)}
	for _, bb := range boxes {
		text := strings.TrimSpace(bb.Word)
		if text == "" {
			continue
		}
		var lines []Line
		for _, l := range strings.Split(text, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, Line{Text: l})
			}
		}
		res.Blocks = append(res.Blocks, Block{
			Lines: lines,
			Box: &Box{
				Left:   bb.Box.Min.X,
				Top:    bb.Box.Min.Y,
				Right:  bb.Box.Max.X,
				Bottom: bb.Box.Max.Y,
			},
		})
	}
	return res, nil
}
