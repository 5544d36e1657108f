// Package extract turns one recognition pass over a cover image into a
// partial bibliographic record.
//
// Cover layouts are too irregular for any single signal to be reliable, so
// the title picker scores every text block on size, position and content,
// and the remaining fields are matched by ordered rule lists over the
// recognized lines. Extraction is best effort: a field that matches
// nothing stays empty, it never errors.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jinhuihu/orc-book/internal/book"
	"github.com/jinhuihu/orc-book/internal/recognize"
)

// Fields extracts every recognizable field from one recognition pass.
func Fields(res *recognize.Result) book.Info {
	if res.Empty() {
		return book.Info{}
	}
	return book.Info{
		Title:     Title(res),
		Author:    Author(res.FullText),
		Publisher: Publisher(res.FullText),
		ISBN:      ISBN(res.FullText),
		Price:     Price(res.FullText),
	}
}

// Title picks the block most likely to be the book title. Titles are
// usually the visually largest, topmost, moderate-length block on the
// cover; each signal is scored and the best block wins.
func Title(res *recognize.Result) string {
	imageHeight := 1
	for _, b := range res.Blocks {
		if b.Box != nil && b.Box.Bottom > imageHeight {
			imageHeight = b.Box.Bottom
		}
	}

	var best *recognize.Block
	bestScore := 0.0
	for i := range res.Blocks {
		b := &res.Blocks[i]
		text := strings.TrimSpace(b.Text())
		runes := []rune(text)
		if len(runes) < 2 || allDigits(runes) {
			continue
		}
		score := scoreBlock(b, runes, imageHeight)
		if best == nil || score > bestScore {
			best, bestScore = b, score
		}
	}
	if best == nil {
		return ""
	}

	title := strings.TrimSpace(best.Text())
	// A very short winning block is often a fragment of a stacked title;
	// joining its first two lines recovers the rest.
	if len([]rune(title)) < 4 && len(best.Lines) > 1 {
		title = strings.TrimSpace(best.Lines[0].Text) + " " + strings.TrimSpace(best.Lines[1].Text)
	}
	return cleanTitle(title)
}

func scoreBlock(b *recognize.Block, runes []rune, imageHeight int) float64 {
	var score float64
	if b.Box != nil {
		score += float64(b.Box.Area()) * 0.5
		score += (1 - float64(b.Box.Top)/float64(imageHeight)) * 1000
		score += float64(b.Box.Width()) * 0.3
	}
	switch n := len(runes); {
	case n >= 2 && n <= 4:
		score += 500
	case n >= 5 && n <= 10:
		score += 1000
	case n >= 11 && n <= 20:
		score += 800
	default:
		score += 300
	}
	for _, r := range runes {
		if r >= 0x4e00 && r <= 0x9fff {
			score += 500
			break
		}
	}
	return score
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	verticalBars  = regexp.MustCompile(`[|｜]`)
)

// trimSet is punctuation stripped from title edges, full- and half-width.
const trimSet = ".。,，;；:：!！?？\"'`[]【】()（）<>《》“”‘’"

func cleanTitle(title string) string {
	title = whitespaceRun.ReplaceAllString(strings.TrimSpace(title), " ")
	title = verticalBars.ReplaceAllString(title, "")
	return strings.Trim(title, trimSet)
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(runes) > 0
}

// textLines splits recognized full text into trimmed, non-empty lines.
func textLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
