package names

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultQuoteURL = "https://tw.stock.yahoo.com/quote/"

// Lookup resolves a code to a company name.
type Lookup interface {
	Lookup(ctx context.Context, code string) (string, error)
}

// YahooResolver scrapes the company name from the Yahoo Taiwan quote page.
type YahooResolver struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooResolver creates a resolver against tw.stock.yahoo.com.
func NewYahooResolver(timeout time.Duration) *YahooResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &YahooResolver{
		BaseURL: defaultQuoteURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the quote page and reads the heading, falling back to the
// page title ("台積電(2330.TW) 走勢圖 - Yahoo奇摩股市").
func (y *YahooResolver) Lookup(ctx context.Context, code string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.BaseURL+url.PathEscape(code), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	resp, err := y.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("quote page %s: %w", code, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quote page %s: status %d", code, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse quote page %s: %w", code, err)
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1, nil
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if i := strings.IndexAny(title, "(（"); i > 0 {
		return strings.TrimSpace(title[:i]), nil
	}
	return "", fmt.Errorf("quote page %s: no name found", code)
}
