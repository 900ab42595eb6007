package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// OBV returns the on-balance volume running total, starting at 0 on the
// first bar.
func OBV(closes, volumes []float64) []model.Value {
	out := make([]model.Value, len(closes))
	if len(closes) == 0 {
		return out
	}
	total := 0.0
	out[0] = model.Some(total)
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			total += volumes[i]
		case closes[i] < closes[i-1]:
			total -= volumes[i]
		}
		out[i] = model.Some(total)
	}
	return out
}
