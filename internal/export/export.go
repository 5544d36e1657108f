// Package export serializes the book list to tabular files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/jinhuihu/orc-book/internal/book"
)

// Row is one exported book with its position in the list.
type Row struct {
	Index       int64  `parquet:"index" json:"index"`
	Title       string `parquet:"title" json:"title"`
	Author      string `parquet:"author" json:"author"`
	Publisher   string `parquet:"publisher" json:"publisher"`
	ISBN        string `parquet:"isbn" json:"isbn"`
	Price       string `parquet:"price" json:"price"`
	ScannedTime string `parquet:"scanned_time" json:"scanned_time"`
}

// Header is the CSV column order, matching Row.
var Header = []string{"index", "title", "author", "publisher", "isbn", "price", "scanned_time"}

// Rows converts books to export rows, numbering them from 1.
func Rows(books []book.Book) []Row {
	rows := make([]Row, 0, len(books))
	for i, b := range books {
		rows = append(rows, Row{
			Index:       int64(i + 1),
			Title:       b.Title,
			Author:      b.Author,
			Publisher:   b.Publisher,
			ISBN:        b.ISBN,
			Price:       b.Price,
			ScannedTime: b.FormattedTime(),
		})
	}
	return rows
}

// WriteCSV writes the book list as CSV with a header row.
func WriteCSV(w io.Writer, books []book.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range Rows(books) {
		record := []string{
			strconv.FormatInt(r.Index, 10),
			r.Title, r.Author, r.Publisher, r.ISBN, r.Price, r.ScannedTime,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParquet writes the book list as a Parquet file.
func WriteParquet(w io.Writer, books []book.Book) error {
	pw := parquet.NewGenericWriter[Row](w)
	if _, err := pw.Write(Rows(books)); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ToFile exports the list into dir as a timestamped file in the given
// format ("csv" or "parquet") and returns the written path. An empty
// list is refused so the user is not handed a file with nothing in it.
func ToFile(dir, format string, books []book.Book) (string, error) {
	if len(books) == 0 {
		return "", fmt.Errorf("no books to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := "books_" + time.Now().Format("20060102_150405")
	var path string
	switch format {
	case "csv":
		path = filepath.Join(dir, name+".csv")
	case "parquet":
		path = filepath.Join(dir, name+".parquet")
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	switch format {
	case "csv":
		err = WriteCSV(f, books)
	case "parquet":
		err = WriteParquet(f, books)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
