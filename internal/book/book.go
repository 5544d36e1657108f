package book

import (
	"strings"
	"time"
)

// TimeLayout is the format used for scan timestamps in listings and exports.
const TimeLayout = "2006-01-02 15:04:05"

// Info is a partial bibliographic record accumulated across scan passes.
// An empty string means the field has not been recognized yet.
type Info struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Price     string `json:"price,omitempty"`
}

// Merge combines two records field by field. The receiver takes precedence:
// a field from other is only used when the receiver's field is empty.
func (i Info) Merge(other Info) Info {
	return Info{
		Title:     firstNonEmpty(i.Title, other.Title),
		Author:    firstNonEmpty(i.Author, other.Author),
		Publisher: firstNonEmpty(i.Publisher, other.Publisher),
		ISBN:      firstNonEmpty(i.ISBN, other.ISBN),
		Price:     firstNonEmpty(i.Price, other.Price),
	}
}

// IsEmpty reports whether no field has been recognized.
func (i Info) IsEmpty() bool {
	return i == Info{}
}

// ToBook converts the partial record into a finished Book. A title is
// mandatory; without one the record cannot be saved and ok is false.
func (i Info) ToBook() (Book, bool) {
	if i.Title == "" {
		return Book{}, false
	}
	return Book{
		Title:     i.Title,
		Author:    i.Author,
		Publisher: i.Publisher,
		ISBN:      i.ISBN,
		Price:     i.Price,
		ScannedAt: time.Now(),
	}, true
}

// Book is a finalized bibliographic record. Title is never empty.
type Book struct {
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Publisher string    `json:"publisher"`
	ISBN      string    `json:"isbn"`
	Price     string    `json:"price"`
	ScannedAt time.Time `json:"scanned_at"`
}

// FormattedTime returns the scan timestamp as "2006-01-02 15:04:05".
func (b Book) FormattedTime() string {
	return b.ScannedAt.Format(TimeLayout)
}

// Details returns a one-line summary of the optional fields for display.
func (b Book) Details() string {
	var parts []string
	if b.Author != "" {
		parts = append(parts, "author: "+b.Author)
	}
	if b.Publisher != "" {
		parts = append(parts, "publisher: "+b.Publisher)
	}
	if b.ISBN != "" {
		parts = append(parts, b.ISBN)
	}
	if b.Price != "" {
		parts = append(parts, "price: "+b.Price)
	}
	if len(parts) == 0 {
		return "no details"
	}
	return strings.Join(parts, " | ")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
