package extract

import (
	"testing"

	"github.com/jinhuihu/orc-book/internal/recognize"
)

func block(text string, box *recognize.Box) recognize.Block {
	b := recognize.Block{Box: box}
	for _, l := range splitLines(text) {
		b.Lines = append(b.Lines, recognize.Line{Text: l})
	}
	return b
}

func splitLines(text string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	return out
}

func TestTitlePrefersTopCJKBlock(t *testing.T) {
	res := &recognize.Result{
		Blocks: []recognize.Block{
			block("ACME PRESS", &recognize.Box{Left: 100, Top: 1800, Right: 400, Bottom: 1880}),
			block("深度学习入门指南", &recognize.Box{Left: 100, Top: 100, Right: 400, Bottom: 180}),
		},
	}
	res.FullText = "ACME PRESS\n深度学习入门指南"

	if got := Title(res); got != "深度学习入门指南" {
		t.Errorf("Title() = %q, want the top CJK block", got)
	}
}

func TestTitleScoringDeterministic(t *testing.T) {
	res := &recognize.Result{
		Blocks: []recognize.Block{
			block("小王子", &recognize.Box{Left: 50, Top: 50, Right: 900, Bottom: 400}),
			block("经典译丛", &recognize.Box{Left: 50, Top: 1500, Right: 300, Bottom: 1560}),
		},
	}
	for i := 0; i < 10; i++ {
		if got := Title(res); got != "小王子" {
			t.Fatalf("Title() = %q on run %d, want 小王子", got, i)
		}
	}
}

func TestTitleFiltersShortAndNumericBlocks(t *testing.T) {
	res := &recognize.Result{
		Blocks: []recognize.Block{
			block("9", nil),
			block("2024", nil),
			block("x", nil),
		},
	}
	if got := Title(res); got != "" {
		t.Errorf("Title() = %q, want empty for filtered-out blocks", got)
	}
}

func TestTitleJoinsLinesOfShortBlock(t *testing.T) {
	// The winning block's combined text is short but spans several lines:
	// take the first two.
	res := &recognize.Result{
		Blocks: []recognize.Block{
			{
				Lines: []recognize.Line{{Text: "活"}, {Text: "着"}},
				Box:   &recognize.Box{Left: 100, Top: 50, Right: 800, Bottom: 900},
			},
		},
	}
	if got := Title(res); got != "活 着" {
		t.Errorf("Title() = %q, want %q", got, "活 着")
	}
}

func TestTitleCleaning(t *testing.T) {
	res := &recognize.Result{
		Blocks: []recognize.Block{
			block("《深度  学习|》", nil),
		},
	}
	if got := Title(res); got != "深度 学习" {
		t.Errorf("Title() = %q, want %q", got, "深度 学习")
	}
}

func TestTitleNoBlocks(t *testing.T) {
	if got := Title(&recognize.Result{}); got != "" {
		t.Errorf("Title() = %q, want empty", got)
	}
}

func TestFields(t *testing.T) {
	res := recognize.FromText("深度学习\n[美] Ian Goodfellow 著\n人民邮电出版社\nISBN 978-7-115-46147-6\n定价：168.00元")
	info := Fields(res)

	if info.Title == "" {
		t.Error("Fields() should extract a title")
	}
	if info.Author != "Ian Goodfellow" {
		t.Errorf("Fields() author = %q", info.Author)
	}
	if info.Publisher != "人民邮电出版社" {
		t.Errorf("Fields() publisher = %q", info.Publisher)
	}
	if info.ISBN != "ISBN 9787115461476" {
		t.Errorf("Fields() isbn = %q", info.ISBN)
	}
	if info.Price != "¥168.00" {
		t.Errorf("Fields() price = %q", info.Price)
	}
}

func TestFieldsEmptyResult(t *testing.T) {
	if got := Fields(&recognize.Result{}); !got.IsEmpty() {
		t.Errorf("Fields() on empty result = %+v, want all fields absent", got)
	}
}
