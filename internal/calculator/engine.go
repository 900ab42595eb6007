package calculator

import "github.com/jentichuang-afk/stock-watchlist/internal/model"

// Params holds the lookback settings of every indicator.
type Params struct {
	RSIPeriod      int     `yaml:"rsi_period"`
	MACDFast       int     `yaml:"macd_fast"`
	MACDSlow       int     `yaml:"macd_slow"`
	MACDSignal     int     `yaml:"macd_signal"`
	KDPeriod       int     `yaml:"kd_period"`
	BollWindow     int     `yaml:"boll_window"`
	BollMultiplier float64 `yaml:"boll_multiplier"`
	VolumeWindow   int     `yaml:"volume_window"`
}

// DefaultParams returns RSI(14), MACD(12,26,9), KD(9), Bollinger(20,2) and
// a 5-bar volume average.
func DefaultParams() Params {
	return Params{
		RSIPeriod:      14,
		MACDFast:       12,
		MACDSlow:       26,
		MACDSignal:     9,
		KDPeriod:       9,
		BollWindow:     20,
		BollMultiplier: 2,
		VolumeWindow:   5,
	}
}

// withDefaults fills unset fields from DefaultParams.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = d.RSIPeriod
	}
	if p.MACDFast <= 0 {
		p.MACDFast = d.MACDFast
	}
	if p.MACDSlow <= 0 {
		p.MACDSlow = d.MACDSlow
	}
	if p.MACDSignal <= 0 {
		p.MACDSignal = d.MACDSignal
	}
	if p.KDPeriod <= 0 {
		p.KDPeriod = d.KDPeriod
	}
	if p.BollWindow <= 0 {
		p.BollWindow = d.BollWindow
	}
	if p.BollMultiplier <= 0 {
		p.BollMultiplier = d.BollMultiplier
	}
	if p.VolumeWindow <= 0 {
		p.VolumeWindow = d.VolumeWindow
	}
	return p
}

// Compute derives the full indicator set for every bar. The result has the
// same length as bars. It never fails: indicators whose window is not yet
// filled are left undefined, while K and D are always defined.
func Compute(bars []model.OHLCV, p Params) []model.Indicators {
	p = p.withDefaults()
	closes := model.Closes(bars)
	highs := model.Highs(bars)
	lows := model.Lows(bars)
	volumes := model.Volumes(bars)
	closeValues := model.Values(closes)

	rsi := RSI(closes, p.RSIPeriod)
	macd, signal, hist := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	rsv := RSV(highs, lows, closes, p.KDPeriod)
	k, d := KD(rsv)
	obv := OBV(closes, volumes)
	ma5 := SMA(closeValues, 5)
	ma20 := SMA(closeValues, 20)
	ma60 := SMA(closeValues, 60)
	_, upper, lower := Bollinger(closes, p.BollWindow, p.BollMultiplier)
	volMA := SMA(model.Values(volumes), p.VolumeWindow)

	out := make([]model.Indicators, len(bars))
	for i := range bars {
		out[i] = model.Indicators{
			RSI:       rsi[i],
			MACD:      macd[i],
			Signal:    signal[i],
			Histogram: hist[i],
			RSV:       rsv[i],
			K:         k[i],
			D:         d[i],
			OBV:       obv[i],
			MA5:       ma5[i],
			MA20:      ma20[i],
			MA60:      ma60[i],
			BollUpper: upper[i],
			BollLower: lower[i],
			VolumeMA5: volMA[i],
		}
	}
	return out
}
