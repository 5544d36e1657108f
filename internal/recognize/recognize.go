// Package recognize turns a captured cover image into positioned text.
//
// Recognition runs through an ordered chain of providers. Providers backed
// by a traditional OCR engine report block bounding boxes in image pixel
// coordinates; LLM-vision providers only return the transcribed text, in
// which case blocks carry no box and downstream scoring falls back to
// text-only signals.
package recognize

import (
	"context"
	"log/slog"
	"strings"
)

// Box is a block bounding region in image pixel coordinates.
type Box struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (b Box) Width() int  { return b.Right - b.Left }
func (b Box) Height() int { return b.Bottom - b.Top }
func (b Box) Area() int   { return b.Width() * b.Height() }

// Line is a single recognized line of text within a block.
type Line struct {
	Text string `json:"text"`
}

// Block is a group of lines the engine considers one visual unit.
// Box is nil when the provider cannot position its output.
type Block struct {
	Lines []Line `json:"lines"`
	Box   *Box   `json:"box,omitempty"`
}

// Text returns the block's lines joined with newlines.
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, "\n")
}

// Result is one recognition pass over one image.
type Result struct {
	FullText string  `json:"full_text"`
	Blocks   []Block `json:"blocks"`
}

// Empty reports whether the pass produced no usable text.
func (r *Result) Empty() bool {
	return r == nil || strings.TrimSpace(r.FullText) == ""
}

// FromText shapes plain transcribed text into a Result for providers that
// do not report geometry. Paragraphs separated by blank lines become
// blocks, lines within a paragraph become block lines.
func FromText(text string) *Result {
	res := &Result{FullText: strings.TrimSpace(text)}
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		var lines []Line
		for _, l := range strings.Split(para, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, Line{Text: l})
			}
		}
		if len(lines) > 0 {
			res.Blocks = append(res.Blocks, Block{Lines: lines})
		}
	}
	return res
}

// Provider is a single text-recognition engine.
type Provider interface {
	Name() string
	// Recognize extracts text from an encoded JPEG image.
	Recognize(ctx context.Context, img []byte) (*Result, error)
}

// Chain tries providers in order until one yields usable text.
// Provider errors are absorbed: a failed engine just means the next one
// gets a turn, and an exhausted chain returns an empty result rather
// than an error so callers can route it into the missing-field flow.
type Chain struct {
	providers []Provider
}

// NewChain builds a chain over the given providers in priority order.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Recognize(ctx context.Context, img []byte) (*Result, error) {
	for _, p := range c.providers {
		res, err := p.Recognize(ctx, img)
		if err != nil {
			slog.Warn("recognition provider failed, trying next", "provider", p.Name(), "err", err)
			continue
		}
		if !res.Empty() {
			slog.Debug("recognition succeeded", "provider", p.Name(), "blocks", len(res.Blocks))
			return res, nil
		}
		slog.Debug("recognition yielded no text, trying next", "provider", p.Name())
	}
	return &Result{}, nil
}
