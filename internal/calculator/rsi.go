package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// RSI computes the relative strength index with simple-average gains and
// losses. The first price change exists at index 1, so RSI is first defined
// at index period. A window without losses reports 100.
func RSI(closes []float64, period int) []model.Value {
	gains := make([]model.Value, len(closes))
	losses := make([]model.Value, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		gains[i] = model.Some(gain)
		losses[i] = model.Some(loss)
	}

	avgGain := SMA(gains, period)
	avgLoss := SMA(losses, period)

	out := make([]model.Value, len(closes))
	for i := range closes {
		g, okG := avgGain[i].Get()
		l, okL := avgLoss[i].Get()
		if !okG || !okL {
			continue
		}
		if l == 0 {
			out[i] = model.Some(100)
			continue
		}
		rs := g / l
		out[i] = model.Some(100 - 100/(1+rs))
	}
	return out
}
