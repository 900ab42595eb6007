package collector

import (
	"context"
	"sync"
	"time"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// With Bars set, a symbol missing from the map yields no bars; otherwise a
// gently rising series around Price is generated for every symbol.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.OHLCV
	Errs  map[string]error

	mu    sync.Mutex
	calls []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.OHLCV, error) {
	m.mu.Lock()
	m.calls = append(m.calls, symbol)
	m.mu.Unlock()

	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if m.Bars != nil {
		return m.Bars[symbol], nil
	}
	return generateMockBars(m.Price, days*5/7), nil
}

// Calls lists the symbols requested so far, in order.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000 + float64(i%5)*50000,
		}
	}
	return bars
}
