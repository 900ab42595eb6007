package calculator

import (
	"math"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

// Extremum selects which end of a rolling window is reported.
type Extremum int

const (
	Min Extremum = iota
	Max
)

// RollingExtremum returns the windowed min or max, with the same undefined
// prefix rule as SMA.
func RollingExtremum(xs []model.Value, window int, kind Extremum) []model.Value {
	out := make([]model.Value, len(xs))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(xs); i++ {
		best := math.Inf(1)
		if kind == Max {
			best = math.Inf(-1)
		}
		ok := true
		for j := i - window + 1; j <= i; j++ {
			v, defined := xs[j].Get()
			if !defined {
				ok = false
				break
			}
			if (kind == Min && v < best) || (kind == Max && v > best) {
				best = v
			}
		}
		if ok {
			out[i] = model.Some(best)
		}
	}
	return out
}

// RollingMin is RollingExtremum(xs, window, Min).
func RollingMin(xs []model.Value, window int) []model.Value {
	return RollingExtremum(xs, window, Min)
}

// RollingMax is RollingExtremum(xs, window, Max).
func RollingMax(xs []model.Value, window int) []model.Value {
	return RollingExtremum(xs, window, Max)
}

// RollingStd returns the sample standard deviation (divide by window-1) of
// each trailing window. A window below 2 is always undefined.
func RollingStd(xs []model.Value, window int) []model.Value {
	out := make([]model.Value, len(xs))
	if window < 2 {
		return out
	}
	means := SMA(xs, window)
	for i := window - 1; i < len(xs); i++ {
		mean, ok := means[i].Get()
		if !ok {
			continue
		}
		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := xs[j].Or(0) - mean
			ss += d * d
		}
		out[i] = model.Some(math.Sqrt(ss / float64(window-1)))
	}
	return out
}
