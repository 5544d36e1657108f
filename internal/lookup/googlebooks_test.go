package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const isbnResponse = `{
  "items": [
    {
      "volumeInfo": {
        "title": "深度学习",
        "subtitle": "典藏版",
        "authors": ["Ian Goodfellow", "Yoshua Bengio"],
        "publisher": "人民邮电出版社",
        "industryIdentifiers": [
          {"type": "ISBN_13", "identifier": "9787115461476"}
        ]
      },
      "saleInfo": {
        "listPrice": {"amount": 168, "currencyCode": "CNY"}
      }
    }
  ]
}`

const titleResponse = `{
  "items": [
    {"volumeInfo": {"title": "活着", "authors": ["余华"], "publisher": "作家出版社",
      "industryIdentifiers": [{"type": "ISBN_13", "identifier": "9787506365437"}]}},
    {"volumeInfo": {"title": ""}},
    {"volumeInfo": {"title": "活着 第二版"}},
    {"volumeInfo": {"title": "b1"}},
    {"volumeInfo": {"title": "b2"}},
    {"volumeInfo": {"title": "b3"}},
    {"volumeInfo": {"title": "b4"}},
    {"volumeInfo": {"title": "b5"}}
  ]
}`

func TestSearchByISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "isbn:9787115461476" {
			t.Errorf("query = %q", got)
		}
		w.Write([]byte(isbnResponse))
	}))
	defer srv.Close()

	g := NewGoogleBooks(srv.URL, "")
	info, err := g.SearchByISBN(context.Background(), "ISBN 978-7-115-46147-6")
	if err != nil {
		t.Fatalf("SearchByISBN() error = %v", err)
	}
	if info == nil {
		t.Fatal("SearchByISBN() = nil, want record")
	}
	if info.Title != "深度学习: 典藏版" {
		t.Errorf("title = %q, want subtitle joined with ': '", info.Title)
	}
	if info.Author != "Ian Goodfellow, Yoshua Bengio" {
		t.Errorf("author = %q", info.Author)
	}
	if info.Publisher != "人民邮电出版社" {
		t.Errorf("publisher = %q", info.Publisher)
	}
	if info.ISBN != "ISBN 9787115461476" {
		t.Errorf("isbn = %q", info.ISBN)
	}
	if info.Price != "¥168.00" {
		t.Errorf("price = %q", info.Price)
	}
}

func TestSearchByISBNRejectsMalformed(t *testing.T) {
	g := NewGoogleBooks("http://127.0.0.1:1", "") // would fail if contacted
	for _, isbn := range []string{"", "123", "12345678901234"} {
		info, err := g.SearchByISBN(context.Background(), isbn)
		if err != nil || info != nil {
			t.Errorf("SearchByISBN(%q) = %v, %v; want nil, nil", isbn, info, err)
		}
	}
}

func TestSearchByISBNNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewGoogleBooks(srv.URL, "")
	info, err := g.SearchByISBN(context.Background(), "9787115461476")
	if err != nil {
		t.Fatalf("SearchByISBN() error = %v", err)
	}
	if info != nil {
		t.Errorf("SearchByISBN() = %+v, want nil for empty response", info)
	}
}

func TestSearchByISBNServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGoogleBooks(srv.URL, "")
	if _, err := g.SearchByISBN(context.Background(), "9787115461476"); err == nil {
		t.Error("SearchByISBN() should surface a hard API error to the caller")
	}
}

func TestSearchByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(titleResponse))
	}))
	defer srv.Close()

	g := NewGoogleBooks(srv.URL, "")
	results, err := g.SearchByTitle(context.Background(), "活着")
	if err != nil {
		t.Fatalf("SearchByTitle() error = %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("SearchByTitle() returned %d results, want cap of 5", len(results))
	}
	if results[0].Title != "活着" || results[0].ISBN != "ISBN 9787506365437" {
		t.Errorf("first candidate = %+v", results[0])
	}
	for _, r := range results {
		if r.Price != "" {
			t.Errorf("title candidates should carry no price, got %q", r.Price)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{39.8, "CNY", "¥39.80"},
		{12.5, "USD", "$12.50"},
		{9.99, "EUR", "9.99 EUR"},
		{0, "CNY", ""},
		{-1, "USD", ""},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.amount, tt.currency); got != tt.want {
			t.Errorf("formatPrice(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
