package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// Bollinger returns the middle, upper and lower bands: MA(window) plus or
// minus multiplier sample standard deviations.
func Bollinger(closes []float64, window int, multiplier float64) (mid, upper, lower []model.Value) {
	values := model.Values(closes)
	mid = SMA(values, window)
	std := RollingStd(values, window)

	upper = make([]model.Value, len(closes))
	lower = make([]model.Value, len(closes))
	for i := range closes {
		m, okM := mid[i].Get()
		s, okS := std[i].Get()
		if !okM || !okS {
			continue
		}
		upper[i] = model.Some(m + multiplier*s)
		lower[i] = model.Some(m - multiplier*s)
	}
	return mid, upper, lower
}
