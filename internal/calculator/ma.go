package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// SMA computes the simple moving average over a trailing window. Position i
// is undefined while i+1 < window, or when any value in its window is.
func SMA(xs []model.Value, window int) []model.Value {
	out := make([]model.Value, len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			v, defined := xs[j].Get()
			if !defined {
				ok = false
				break
			}
			sum += v
		}
		if ok {
			out[i] = model.Some(sum / float64(window))
		}
	}
	return out
}

// EMA computes the exponential moving average with alpha = 2/(span+1).
// The first defined input seeds the average; an undefined input after the
// seed carries the previous output forward.
func EMA(xs []model.Value, span int) []model.Value {
	out := make([]model.Value, len(xs))
	if span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	var prev float64
	seeded := false
	for i, x := range xs {
		v, ok := x.Get()
		switch {
		case !seeded && !ok:
			continue
		case !seeded:
			prev = v
			seeded = true
		case ok:
			// alpha*v + (1-alpha)*prev, arranged so a flat input stays exact
			prev += alpha * (v - prev)
		}
		out[i] = model.Some(prev)
	}
	return out
}
