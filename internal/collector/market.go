package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

// DefaultSuffixes lists the Taiwan market suffixes tried in order: listed
// (TWSE) first, then OTC (TPEx).
var DefaultSuffixes = []string{".TW", ".TWO"}

// Symbols returns the provider tickers to try for a watchlist code. A code
// that already carries a suffix is used as-is.
func Symbols(code string, suffixes []string) []string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if strings.Contains(code, ".") || len(suffixes) == 0 {
		return []string{code}
	}
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		out = append(out, code+s)
	}
	return out
}

// FetchSeries fetches a code's daily bars, moving on to the next market
// suffix while a candidate returns fewer than enough bars. The longest
// series seen is returned; ErrNoBars when every candidate came back empty.
func FetchSeries(ctx context.Context, f Fetcher, code string, suffixes []string, days, enough int) (*model.PriceSeries, error) {
	var (
		best    *model.PriceSeries
		lastErr error
	)
	for _, sym := range Symbols(code, suffixes) {
		bars, err := f.FetchDailyBars(ctx, sym, days)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		if best == nil || len(bars) > len(best.Bars) {
			best = &model.PriceSeries{Code: code, Symbol: sym, Bars: bars, FetchedAt: time.Now()}
		}
		if len(bars) >= enough {
			break
		}
	}
	if best != nil && len(best.Bars) > 0 {
		return best, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", code, lastErr)
	}
	return nil, fmt.Errorf("fetch %s: %w", code, ErrNoBars)
}
