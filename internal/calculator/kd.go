package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// kdSeed is the bootstrap value of both K and D at the first bar.
const kdSeed = 50.0

// RSV returns the raw stochastic value over period bars. It is undefined
// while the window is short or when the high-low range is zero.
func RSV(highs, lows, closes []float64, period int) []model.Value {
	lowest := RollingMin(model.Values(lows), period)
	highest := RollingMax(model.Values(highs), period)

	out := make([]model.Value, len(closes))
	for i := range closes {
		lo, okL := lowest[i].Get()
		hi, okH := highest[i].Get()
		if !okL || !okH || hi == lo {
			continue
		}
		out[i] = model.Some((closes[i] - lo) / (hi - lo) * 100)
	}
	return out
}

// KD folds the RSV sequence into the recursive K and D lines. Both start at
// 50 and hold their previous value on bars where RSV is undefined:
//
//	K = RSV/3 + 2K'/3
//	D = K/3 + 2D'/3
func KD(rsv []model.Value) (k, d []model.Value) {
	k = make([]model.Value, len(rsv))
	d = make([]model.Value, len(rsv))
	prevK, prevD := kdSeed, kdSeed
	for i, r := range rsv {
		if v, ok := r.Get(); ok {
			curK := v/3 + 2*prevK/3
			curD := curK/3 + 2*prevD/3
			prevK, prevD = curK, curD
		}
		k[i] = model.Some(prevK)
		d[i] = model.Some(prevD)
	}
	return k, d
}
