package model

// Signal is the basic composite trading-signal label.
type Signal string

const (
	SignalBreakout   Signal = "買點浮現"
	SignalStrongBuy  Signal = "強勢買入"
	SignalOverheated Signal = "過熱警戒"
	SignalOversold   Signal = "超賣反彈"
	SignalWatch      Signal = "觀察"
)

// Composite is the MACD/KD extended signal label.
type Composite string

const (
	CompositeAttack  Composite = "積極進攻"
	CompositeRebound Composite = "超跌反彈"
	CompositeWatch   Composite = "觀察"
)

// Cross is a single-bar K/D crossover event.
type Cross string

const (
	CrossNone   Cross = ""
	CrossGolden Cross = "黃金交叉"
	CrossDeath  Cross = "死亡交叉"
)

// Direction is the MACD histogram bias.
type Direction string

const (
	DirectionBullish Direction = "偏多"
	DirectionBearish Direction = "偏空"
)

// Trend is the price-vs-MA20 regime.
type Trend string

const (
	TrendBull Trend = "多頭"
	TrendWeak Trend = "弱勢"
)

// Classification is the read of the latest two indicator bars. It is
// recomputed on every scan and never stored for reuse.
type Classification struct {
	Signal    Signal
	Composite Composite
	Cross     Cross
	Direction Direction
	Trend     Trend
}
