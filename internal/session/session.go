// Package session drives one book scan from first recognition pass to a
// finished record. A session accumulates a partial record across passes
// and decides, after each one, which single field to request next.
package session

import (
	"context"
	"log/slog"

	"github.com/jinhuihu/orc-book/internal/book"
	"github.com/jinhuihu/orc-book/internal/lookup"
)

// Step identifies which field the controller wants next.
type Step int

const (
	StepNone Step = iota
	StepNeedISBN
	StepNeedTitle
	StepNeedAuthor
	StepNeedPublisher
)

func (s Step) String() string {
	switch s {
	case StepNeedISBN:
		return "need_isbn"
	case StepNeedTitle:
		return "need_title"
	case StepNeedAuthor:
		return "need_author"
	case StepNeedPublisher:
		return "need_publisher"
	default:
		return "none"
	}
}

// Prompt is the user-facing instruction for a step.
func (s Step) Prompt() string {
	switch s {
	case StepNeedISBN:
		return "scan the back cover so the ISBN barcode is readable"
	case StepNeedTitle:
		return "scan the front cover for the title"
	case StepNeedAuthor:
		return "scan the part of the cover showing the author, or skip"
	case StepNeedPublisher:
		return "scan the part of the cover showing the publisher, or skip"
	default:
		return ""
	}
}

// Skippable reports whether the user may skip the step. The title is
// mandatory: a record without one cannot be saved.
func (s Step) Skippable() bool {
	return s == StepNeedAuthor || s == StepNeedPublisher
}

// Outcome is the controller's decision after a pass or a skip.
type Outcome struct {
	// Step is the next field to request; StepNone when the session ended.
	Step Step `json:"step"`
	// Prompt is the instruction to show for Step.
	Prompt string `json:"prompt,omitempty"`
	// Book is the finished record when the session finalized.
	Book *book.Book `json:"book,omitempty"`
}

// Controller is the per-session state machine. It is not safe for
// concurrent use; the owner serializes passes (one recognition or lookup
// round trip outstanding at a time).
type Controller struct {
	lookup lookup.Service

	acc     book.Info
	step    Step
	started bool

	skippedAuthor    bool
	skippedPublisher bool
}

// New creates a controller for one scan session.
func New(svc lookup.Service) *Controller {
	return &Controller{lookup: svc}
}

// Step returns the field currently being requested.
func (c *Controller) Step() Step { return c.step }

// Accumulated returns the record gathered so far.
func (c *Controller) Accumulated() book.Info { return c.acc }

// HandlePass feeds one recognition pass into the session.
//
// The first usable pass seeds the record: an ISBN triggers a catalog
// lookup whose result, when available, takes precedence over the OCR
// fields; a title-only pass seeds from OCR alone; a pass with neither
// asks for the ISBN again. Later passes contribute only the field the
// current step requested.
func (c *Controller) HandlePass(ctx context.Context, info book.Info) Outcome {
	if !c.started {
		return c.firstPass(ctx, info)
	}

	switch c.step {
	case StepNeedTitle:
		if info.Title == "" {
			// Mandatory field, ask again.
			return c.outcomeFor(StepNeedTitle)
		}
		c.acc.Title = info.Title
	case StepNeedAuthor:
		if info.Author == "" {
			// Optional: an unreadable pass counts as a skip.
			c.skippedAuthor = true
		} else {
			c.acc.Author = info.Author
		}
	case StepNeedPublisher:
		if info.Publisher == "" {
			c.skippedPublisher = true
		} else {
			c.acc.Publisher = info.Publisher
		}
	}
	return c.evaluate()
}

func (c *Controller) firstPass(ctx context.Context, info book.Info) Outcome {
	switch {
	case info.ISBN != "":
		if found := c.reconcileByISBN(ctx, info.ISBN); found != nil {
			c.acc = found.Merge(info)
		} else {
			c.acc = info
		}
		c.started = true
		return c.evaluate()
	case info.Title != "":
		c.acc = info
		c.started = true
		return c.evaluate()
	default:
		return c.outcomeFor(StepNeedISBN)
	}
}

// reconcileByISBN is a best-effort catalog lookup; failures are absorbed
// and treated as "no result" so the flow continues on OCR data.
func (c *Controller) reconcileByISBN(ctx context.Context, isbn string) *book.Info {
	if c.lookup == nil {
		return nil
	}
	found, err := c.lookup.SearchByISBN(ctx, isbn)
	if err != nil {
		slog.Warn("catalog lookup failed, continuing with recognized fields", "err", err)
		return nil
	}
	return found
}

// TitleCandidates fetches catalog candidates for the accumulated title,
// for the user to pick from. Best effort: failures yield no candidates.
func (c *Controller) TitleCandidates(ctx context.Context) []book.Info {
	if c.lookup == nil || c.acc.Title == "" {
		return nil
	}
	results, err := c.lookup.SearchByTitle(ctx, c.acc.Title)
	if err != nil {
		slog.Warn("title search failed", "title", c.acc.Title, "err", err)
		return nil
	}
	return results
}

// ApplyCandidate merges a chosen catalog candidate into the session.
// Recognized fields keep precedence; the candidate fills the gaps.
func (c *Controller) ApplyCandidate(candidate book.Info) Outcome {
	c.acc = c.acc.Merge(candidate)
	return c.evaluate()
}

// Skip skips the current step. Skipping the author moves on to the
// publisher; skipping the publisher finalizes with whatever was
// gathered. The title cannot be skipped.
func (c *Controller) Skip() Outcome {
	switch c.step {
	case StepNeedAuthor:
		c.skippedAuthor = true
		return c.evaluate()
	case StepNeedPublisher:
		c.skippedPublisher = true
		return c.evaluate()
	default:
		return c.outcomeFor(c.step)
	}
}

// Cancel abandons the session, discarding the accumulated record.
func (c *Controller) Cancel() {
	c.reset()
}

// evaluate decides the next missing field in priority order, or
// finalizes when nothing more is needed.
func (c *Controller) evaluate() Outcome {
	switch {
	case c.acc.Title == "":
		return c.outcomeFor(StepNeedTitle)
	case c.acc.Author == "" && !c.skippedAuthor:
		return c.outcomeFor(StepNeedAuthor)
	case c.acc.Publisher == "" && !c.skippedPublisher:
		return c.outcomeFor(StepNeedPublisher)
	default:
		return c.finalize()
	}
}

func (c *Controller) finalize() Outcome {
	b, ok := c.acc.ToBook()
	if !ok {
		// Unreachable through evaluate, but the invariant stands: no
		// book without a title.
		return c.outcomeFor(StepNeedTitle)
	}
	c.reset()
	slog.Info("scan session finalized", "title", b.Title, "isbn", b.ISBN)
	return Outcome{Step: StepNone, Book: &b}
}

func (c *Controller) reset() {
	c.acc = book.Info{}
	c.step = StepNone
	c.started = false
	c.skippedAuthor = false
	c.skippedPublisher = false
}

func (c *Controller) outcomeFor(step Step) Outcome {
	c.step = step
	return Outcome{Step: step, Prompt: step.Prompt()}
}
