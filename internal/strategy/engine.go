package strategy

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// ClassifyBasic maps the latest bar to a basic signal.
func ClassifyBasic(curr model.Indicators, c Context) model.Signal {
	for _, r := range BasicRules {
		if r.Match(curr, c) {
			return r.Signal
		}
	}
	return model.SignalWatch
}

// ClassifyComposite maps the latest bar to a MACD/KD composite signal.
func ClassifyComposite(curr model.Indicators, c Context) model.Composite {
	for _, r := range CompositeRules {
		if r.Match(curr, c) {
			return r.Composite
		}
	}
	return model.CompositeWatch
}

// DetectCross reports a golden or death cross of K over D. It fires only on
// the bar where the ordering flips; an ordering that already held on the
// previous bar yields CrossNone.
func DetectCross(prev, curr model.Indicators) model.Cross {
	pk, ok1 := prev.K.Get()
	pd, ok2 := prev.D.Get()
	ck, ok3 := curr.K.Get()
	cd, ok4 := curr.D.Get()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return model.CrossNone
	}
	switch {
	case pk < pd && ck > cd:
		return model.CrossGolden
	case pk > pd && ck < cd:
		return model.CrossDeath
	}
	return model.CrossNone
}

// MACDDirection is 偏多 for a positive histogram and 偏空 otherwise.
func MACDDirection(curr model.Indicators) model.Direction {
	if curr.Histogram.Above(0) {
		return model.DirectionBullish
	}
	return model.DirectionBearish
}

// Evaluate computes the full classification from the previous and current
// indicator bars.
func Evaluate(prev, curr model.Indicators, c Context) model.Classification {
	return model.Classification{
		Signal:    ClassifyBasic(curr, c),
		Composite: ClassifyComposite(curr, c),
		Cross:     DetectCross(prev, curr),
		Direction: MACDDirection(curr),
		Trend:     TrendOf(c.Price, curr.MA20),
	}
}

// EvaluateLatest classifies the last bar of a full indicator series. It
// returns false when fewer than two bars are available.
func EvaluateLatest(ind []model.Indicators, c Context) (model.Classification, bool) {
	if len(ind) < 2 {
		return model.Classification{}, false
	}
	return Evaluate(ind[len(ind)-2], ind[len(ind)-1], c), true
}
