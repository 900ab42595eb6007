package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// MACD returns the MACD line, its signal line and the histogram. All three
// are defined from the first bar; early values are unstable.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist []model.Value) {
	values := model.Values(closes)
	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	line = make([]model.Value, len(closes))
	for i := range closes {
		line[i] = fastEMA[i].Sub(slowEMA[i])
	}
	sig = EMA(line, signal)
	hist = make([]model.Value, len(closes))
	for i := range closes {
		hist[i] = line[i].Sub(sig[i])
	}
	return line, sig, hist
}
