package strategy

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// Context is the raw price and volume reading that accompanies the latest
// indicator bar.
type Context struct {
	Price       float64
	VolumeRatio float64
}

// basicRule is one entry of the ordered basic ruleset.
type basicRule struct {
	Signal model.Signal
	Match  func(ind model.Indicators, c Context) bool
}

// BasicRules is evaluated top to bottom; the first match wins.
var BasicRules = []basicRule{
	// trend up + volume expanding + RSI healthy
	{model.SignalBreakout, func(ind model.Indicators, c Context) bool {
		return ind.MA20.Below(c.Price) && c.VolumeRatio > 1.2 && ind.RSI.Between(50, 70)
	}},
	// volume burst + strong RSI
	{model.SignalStrongBuy, func(ind model.Indicators, c Context) bool {
		return c.VolumeRatio > 1.5 && ind.RSI.Between(60, 75)
	}},
	{model.SignalOverheated, func(ind model.Indicators, c Context) bool {
		return ind.RSI.Above(75)
	}},
	{model.SignalOversold, func(ind model.Indicators, c Context) bool {
		return ind.RSI.Below(30)
	}},
}

// compositeRule is one entry of the MACD/KD ruleset.
type compositeRule struct {
	Composite model.Composite
	Match     func(ind model.Indicators, c Context) bool
}

// CompositeRules is evaluated top to bottom; the first match wins.
var CompositeRules = []compositeRule{
	{model.CompositeAttack, func(ind model.Indicators, c Context) bool {
		k, okK := ind.K.Get()
		d, okD := ind.D.Get()
		return ind.Histogram.Above(0) && okK && okD && k > d && c.VolumeRatio > 1.0
	}},
	{model.CompositeRebound, func(ind model.Indicators, c Context) bool {
		return ind.RSI.Below(30) && ind.K.Below(20)
	}},
}

// VolumeRatio is today's volume over its trailing average, or 0 when the
// average is missing or not positive.
func VolumeRatio(volume float64, avg model.Value) float64 {
	a, ok := avg.Get()
	if !ok || a <= 0 {
		return 0
	}
	return volume / a
}

// TrendOf reports 多頭 when price is above MA20 and 弱勢 otherwise.
func TrendOf(price float64, ma20 model.Value) model.Trend {
	if ma20.Below(price) {
		return model.TrendBull
	}
	return model.TrendWeak
}
