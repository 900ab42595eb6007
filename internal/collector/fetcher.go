package collector

import (
	"context"
	"errors"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

var (
	// ErrNoBars means the data source returned nothing for any market suffix.
	ErrNoBars = errors.New("no bars returned")
	// ErrInsufficientHistory means a series is shorter than the scan minimum.
	ErrInsufficientHistory = errors.New("insufficient history")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
