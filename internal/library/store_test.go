package library

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jinhuihu/orc-book/internal/book"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "books.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	books, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(books) != 0 {
		t.Errorf("Load() = %d books, want empty list", len(books))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	scanned := time.Date(2026, 8, 28, 14, 30, 5, 0, time.UTC)
	want := []book.Book{
		{Title: "活着", Author: "余华", Publisher: "作家出版社", ISBN: "ISBN 9787506365437", Price: "¥28.00", ScannedAt: scanned},
		{Title: "深度学习", ScannedAt: scanned.Add(time.Minute)},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %d books, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i].Title || !got[i].ScannedAt.Equal(want[i].ScannedAt) {
			t.Errorf("book %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestAddPrepends(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add(book.Book{Title: "first", ScannedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(book.Book{Title: "second", ScannedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	books, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if books[0].Title != "second" || books[1].Title != "first" {
		t.Errorf("order = [%s, %s], want newest first", books[0].Title, books[1].Title)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	s.Save([]book.Book{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	books, _ := s.Load()
	if len(books) != 2 || books[0].Title != "a" || books[1].Title != "c" {
		t.Errorf("after remove: %+v", books)
	}

	if err := s.Remove(5); err == nil {
		t.Error("Remove() out of range should fail")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	s.Save([]book.Book{{Title: "a"}})
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	books, _ := s.Load()
	if len(books) != 0 {
		t.Errorf("after clear: %d books", len(books))
	}
}
