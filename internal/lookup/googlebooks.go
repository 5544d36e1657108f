package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jinhuihu/orc-book/internal/book"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"
	maxCandidates  = 5
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// GoogleBooks queries the Google Books volumes API.
type GoogleBooks struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoogleBooks creates a client. baseURL and apiKey may be empty.
func NewGoogleBooks(baseURL, apiKey string) *GoogleBooks {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GoogleBooks{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type volumesResponse struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
	SaleInfo   saleInfo   `json:"saleInfo"`
}

type volumeInfo struct {
	Title               string       `json:"title"`
	Subtitle            string       `json:"subtitle"`
	Authors             []string     `json:"authors"`
	Publisher           string       `json:"publisher"`
	IndustryIdentifiers []identifier `json:"industryIdentifiers"`
}

type identifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type saleInfo struct {
	ListPrice struct {
		Amount       float64 `json:"amount"`
		CurrencyCode string  `json:"currencyCode"`
	} `json:"listPrice"`
}

// SearchByISBN looks up the single best record for an ISBN. The input is
// normalized to digits; anything outside 10-13 digits is rejected
// without a network call.
func (g *GoogleBooks) SearchByISBN(ctx context.Context, isbn string) (*book.Info, error) {
	digits := nonDigits.ReplaceAllString(isbn, "")
	if len(digits) < 10 || len(digits) > 13 {
		slog.Warn("rejecting malformed ISBN", "isbn", isbn)
		return nil, nil
	}

	resp, err := g.query(ctx, "isbn:"+digits, 1)
	if err != nil {
		return nil, fmt.Errorf("ISBN lookup failed: %w", err)
	}
	if len(resp.Items) == 0 {
		slog.Debug("no catalog record for ISBN", "isbn", digits)
		return nil, nil
	}

	item := resp.Items[0]
	info := infoFromVolume(item.VolumeInfo)
	info.ISBN = "ISBN " + digits
	info.Price = formatPrice(item.SaleInfo.ListPrice.Amount, item.SaleInfo.ListPrice.CurrencyCode)
	return &info, nil
}

// SearchByTitle returns up to five candidate records for a title.
func (g *GoogleBooks) SearchByTitle(ctx context.Context, title string) ([]book.Info, error) {
	resp, err := g.query(ctx, "intitle:"+title, maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("title lookup failed: %w", err)
	}

	var results []book.Info
	for _, item := range resp.Items {
		if len(results) == maxCandidates {
			break
		}
		if item.VolumeInfo.Title == "" {
			continue
		}
		info := infoFromVolume(item.VolumeInfo)
		for _, id := range item.VolumeInfo.IndustryIdentifiers {
			if strings.Contains(id.Type, "ISBN") {
				info.ISBN = "ISBN " + id.Identifier
				break
			}
		}
		results = append(results, info)
	}
	return results, nil
}

func (g *GoogleBooks) query(ctx context.Context, q string, maxResults int) (*volumesResponse, error) {
	searchURL := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d&langRestrict=zh-CN",
		g.baseURL, url.QueryEscape(q), maxResults)
	if g.apiKey != "" {
		searchURL += "&key=" + url.QueryEscape(g.apiKey)
	}

	var result volumesResponse
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := g.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				err := fmt.Errorf("catalog API returned status %d: %s", resp.StatusCode, string(body))
				if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return json.NewDecoder(resp.Body).Decode(&result)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("retrying catalog query", "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func infoFromVolume(v volumeInfo) book.Info {
	title := v.Title
	if v.Subtitle != "" {
		title = title + ": " + v.Subtitle
	}
	return book.Info{
		Title:     title,
		Author:    strings.Join(v.Authors, ", "),
		Publisher: v.Publisher,
	}
}

// formatPrice renders a currency-coded amount the way the scanner shows
// prices. Non-positive amounts mean the catalog has no price.
func formatPrice(amount float64, currency string) string {
	if amount <= 0 {
		return ""
	}
	switch currency {
	case "CNY":
		return fmt.Sprintf("¥%.2f", amount)
	case "USD":
		return fmt.Sprintf("$%.2f", amount)
	default:
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
}
