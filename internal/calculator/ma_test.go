package calculator

import (
	"testing"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
)

func floats(vs []model.Value) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		if f, ok := v.Get(); ok {
			out[i] = f
		} else {
			out[i] = nil
		}
	}
	return out
}

func TestSMA_WarmupAndValues(t *testing.T) {
	got := SMA(model.Values([]float64{1, 2, 3, 4, 5, 6}), 3)
	assert.Equal(t, []interface{}{nil, nil, 2.0, 3.0, 4.0, 5.0}, floats(got))
}

func TestSMA_WindowLongerThanSeries(t *testing.T) {
	got := SMA(model.Values([]float64{1, 2}), 5)
	require.Len(t, got, 2)
	for _, v := range got {
		assert.False(t, v.Defined())
	}
}

func TestSMA_UndefinedInputPropagates(t *testing.T) {
	xs := []model.Value{model.None(), model.Some(2), model.Some(4), model.Some(6)}
	got := SMA(xs, 2)
	assert.Equal(t, []interface{}{nil, nil, 3.0, 5.0}, floats(got))
}

func TestSMA_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -3} {
		got := SMA(model.Values([]float64{1, 2, 3}), w)
		assert.Equal(t, []interface{}{nil, nil, nil}, floats(got))
	}
}

func TestSMA_MatchesTechan(t *testing.T) {
	closes := []float64{
		581, 585, 590, 588, 579, 572, 575, 583, 597, 601,
		598, 605, 611, 609, 602, 596, 600, 607, 615, 620,
	}
	const window = 5

	series := techan.NewTimeSeries()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candle := techan.NewCandle(techan.NewTimePeriod(start.AddDate(0, 0, i), 24*time.Hour))
		candle.ClosePrice = big.NewDecimal(c)
		require.True(t, series.AddCandle(candle))
	}
	ref := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(series), window)

	got := SMA(model.Values(closes), window)
	for i := window - 1; i < len(closes); i++ {
		v, ok := got[i].Get()
		require.True(t, ok, "index %d", i)
		assert.InDelta(t, ref.Calculate(i).Float(), v, 1e-9, "index %d", i)
	}
}

func TestEMA_SeedAndRecurrence(t *testing.T) {
	// span 3 -> alpha 0.5
	got := EMA(model.Values([]float64{10, 20, 20, 40}), 3)
	assert.Equal(t, []interface{}{10.0, 15.0, 17.5, 28.75}, floats(got))
}

func TestEMA_SeedsAtFirstDefinedValue(t *testing.T) {
	xs := []model.Value{model.None(), model.None(), model.Some(8), model.Some(4), model.None(), model.Some(4)}
	got := EMA(xs, 3)
	assert.Equal(t, []interface{}{nil, nil, 8.0, 6.0, 6.0, 5.0}, floats(got))
}

func TestRollingExtremum(t *testing.T) {
	xs := model.Values([]float64{5, 3, 8, 1, 9, 2})

	assert.Equal(t, []interface{}{nil, nil, 3.0, 1.0, 1.0, 1.0}, floats(RollingMin(xs, 3)))
	assert.Equal(t, []interface{}{nil, nil, 8.0, 8.0, 9.0, 9.0}, floats(RollingMax(xs, 3)))
	assert.Equal(t, floats(RollingMax(xs, 3)), floats(RollingExtremum(xs, 3, Max)))
}

func TestRollingStd_IsSampleDeviation(t *testing.T) {
	got := RollingStd(model.Values([]float64{1, 2, 3, 4}), 4)
	require.False(t, got[2].Defined())
	v, ok := got[3].Get()
	require.True(t, ok)
	// mean 2.5, squared deviations sum to 5, divided by n-1 = 3
	assert.InDelta(t, 1.2909944487, v, 1e-9)
}

func TestRollingStd_WindowBelowTwo(t *testing.T) {
	got := RollingStd(model.Values([]float64{1, 2, 3}), 1)
	assert.Equal(t, []interface{}{nil, nil, nil}, floats(got))
}
