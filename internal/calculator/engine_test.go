package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

// barsFromCloses builds daily bars with a one-point high/low spread.
func barsFromCloses(closes []float64, volume float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: volume,
		}
	}
	return bars
}

func flatBars(n int, price float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: price, High: price, Low: price, Close: price, Volume: 1000}
	}
	return bars
}

func rising(n int, from float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)
	}
	return out
}

func zigzag(n int) []float64 {
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		switch i % 5 {
		case 0, 1, 3:
			p += float64(i%7) * 0.8
		default:
			p -= float64(i%4) * 1.3
		}
		out[i] = p
	}
	return out
}

func TestRSI_UndefinedUntilPeriodChanges(t *testing.T) {
	rsi := RSI(rising(20, 50), 14)
	for i := 0; i < 14; i++ {
		assert.False(t, rsi[i].Defined(), "index %d", i)
	}
	assert.True(t, rsi[14].Defined())
}

func TestRSI_ShortSeriesIsUndefined(t *testing.T) {
	for _, v := range RSI(rising(10, 50), 14) {
		assert.False(t, v.Defined())
	}
}

func TestRSI_NoLossesReportsHundred(t *testing.T) {
	rsi := RSI(rising(30, 10), 14)
	for i := 14; i < 30; i++ {
		assert.Equal(t, model.Some(100), rsi[i])
	}
}

func TestRSI_KnownValue(t *testing.T) {
	// changes: +2, -1, +3, -2 over period 4 -> gains 5/4, losses 3/4
	rsi := RSI([]float64{10, 12, 11, 14, 12}, 4)
	v, ok := rsi[4].Get()
	require.True(t, ok)
	assert.InDelta(t, 100-100/(1+5.0/3.0), v, 1e-9)
}

func TestRSI_Bounded(t *testing.T) {
	for _, v := range RSI(zigzag(120), 14) {
		if f, ok := v.Get(); ok {
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 100.0)
		}
	}
}

func TestMACD_FlatSeriesHasZeroHistogram(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 600
	}
	line, sig, hist := MACD(closes, 12, 26, 9)
	for i := range closes {
		assert.Equal(t, model.Some(0), line[i])
		assert.Equal(t, model.Some(0), sig[i])
		assert.Equal(t, model.Some(0), hist[i])
	}
}

func TestMACD_DefinedFromFirstBar(t *testing.T) {
	line, sig, hist := MACD([]float64{10, 11}, 12, 26, 9)
	assert.Equal(t, model.Some(0), line[0])
	assert.Equal(t, model.Some(0), sig[0])
	assert.Equal(t, model.Some(0), hist[0])
	assert.True(t, hist[1].Defined())
}

func TestKD_SeedHoldsUntilFirstRSV(t *testing.T) {
	closes := rising(12, 100)
	bars := barsFromCloses(closes, 1000)
	rsv := RSV(model.Highs(bars), model.Lows(bars), closes, 9)
	k, d := KD(rsv)

	for i := 0; i < 8; i++ {
		assert.False(t, rsv[i].Defined())
		assert.Equal(t, model.Some(50), k[i], "index %d", i)
		assert.Equal(t, model.Some(50), d[i], "index %d", i)
	}
	r, ok := rsv[8].Get()
	require.True(t, ok)
	assert.InDelta(t, 8.5/9*100, r, 1e-9)

	wantK := r/3 + 2*50.0/3
	wantD := wantK/3 + 2*50.0/3
	assert.InDelta(t, wantK, k[8].Or(math.NaN()), 1e-9)
	assert.InDelta(t, wantD, d[8].Or(math.NaN()), 1e-9)
}

func TestKD_CarriesForwardOnZeroRange(t *testing.T) {
	rsv := []model.Value{model.None(), model.Some(80), model.None(), model.None(), model.Some(20)}
	k, d := KD(rsv)

	k1 := 80.0/3 + 100.0/3
	d1 := k1/3 + 100.0/3
	assert.InDelta(t, k1, k[1].Or(0), 1e-9)
	assert.Equal(t, k[1], k[2])
	assert.Equal(t, k[1], k[3])
	assert.Equal(t, d[1], d[3])
	assert.InDelta(t, 20.0/3+2*k1/3, k[4].Or(0), 1e-9)
	assert.InDelta(t, d1, d[2].Or(0), 1e-9)
}

func TestKD_Bounded(t *testing.T) {
	closes := zigzag(150)
	bars := barsFromCloses(closes, 1000)
	k, d := KD(RSV(model.Highs(bars), model.Lows(bars), closes, 9))
	for i := range closes {
		for _, v := range []model.Value{k[i], d[i]} {
			f, ok := v.Get()
			require.True(t, ok)
			assert.GreaterOrEqual(t, f, 0.0)
			assert.LessOrEqual(t, f, 100.0)
		}
	}
}

func TestOBV_RunningTotal(t *testing.T) {
	closes := []float64{10, 11, 11, 9, 12}
	volumes := []float64{500, 100, 200, 300, 400}
	got := OBV(closes, volumes)
	assert.Equal(t, []interface{}{0.0, 100.0, 100.0, -200.0, 200.0}, floats(got))
}

func TestOBV_Empty(t *testing.T) {
	assert.Empty(t, OBV(nil, nil))
}

func TestBollinger_BandsAroundMean(t *testing.T) {
	closes := zigzag(30)
	mid, upper, lower := Bollinger(closes, 20, 2)
	std := RollingStd(model.Values(closes), 20)
	for i := 0; i < 19; i++ {
		assert.False(t, upper[i].Defined())
		assert.False(t, lower[i].Defined())
	}
	for i := 19; i < 30; i++ {
		m, s := mid[i].Or(0), std[i].Or(0)
		assert.InDelta(t, m+2*s, upper[i].Or(0), 1e-9)
		assert.InDelta(t, m-2*s, lower[i].Or(0), 1e-9)
	}
}

func TestCompute_FlatSeries(t *testing.T) {
	ind := Compute(flatBars(40, 100), DefaultParams())
	require.Len(t, ind, 40)

	last := ind[len(ind)-1]
	assert.Equal(t, model.Some(100), last.RSI)
	assert.Equal(t, model.Some(0), last.OBV)
	assert.Equal(t, model.Some(0), last.Histogram)
	assert.Equal(t, model.Some(50), last.K)
	assert.Equal(t, model.Some(50), last.D)
	assert.False(t, last.RSV.Defined())
	assert.Equal(t, model.Some(100), last.BollUpper)
	assert.Equal(t, model.Some(100), last.BollLower)
	assert.False(t, last.MA60.Defined())
	for i := 14; i < 40; i++ {
		assert.Equal(t, model.Some(100), ind[i].RSI, "index %d", i)
	}
}

func TestCompute_RisingSeries(t *testing.T) {
	ind := Compute(barsFromCloses(rising(40, 100), 1000), DefaultParams())

	for i := 14; i < 40; i++ {
		assert.Equal(t, model.Some(100), ind[i].RSI)
	}
	for i := 9; i < 40; i++ {
		assert.Greater(t, ind[i].K.Or(0), ind[i-1].K.Or(0), "K should rise at %d", i)
	}
	assert.Greater(t, ind[39].K.Or(0), 90.0)
	assert.Greater(t, ind[39].Histogram.Or(0), 0.0)
	assert.InDelta(t, 137.0, ind[39].MA5.Or(0), 1e-9)
	assert.InDelta(t, 129.5, ind[39].MA20.Or(0), 1e-9)
	assert.Equal(t, model.Some(39000), ind[39].OBV)
}

func TestCompute_ShortSeries(t *testing.T) {
	ind := Compute(barsFromCloses(rising(10, 100), 1000), DefaultParams())
	require.Len(t, ind, 10)
	for i, v := range ind {
		assert.False(t, v.RSI.Defined(), "index %d", i)
		assert.False(t, v.MA20.Defined())
		assert.False(t, v.MA60.Defined())
		assert.False(t, v.BollUpper.Defined())
		assert.False(t, v.BollLower.Defined())
		assert.True(t, v.K.Defined())
		assert.True(t, v.D.Defined())
	}
}

func TestCompute_Empty(t *testing.T) {
	assert.Empty(t, Compute(nil, DefaultParams()))
}

func TestCompute_Idempotent(t *testing.T) {
	bars := barsFromCloses(zigzag(90), 2500)
	first := Compute(bars, DefaultParams())
	second := Compute(bars, DefaultParams())
	assert.Equal(t, first, second)
}

func TestParams_ZeroFallsBackToDefaults(t *testing.T) {
	bars := barsFromCloses(zigzag(70), 1000)
	assert.Equal(t, Compute(bars, DefaultParams()), Compute(bars, Params{}))
}
