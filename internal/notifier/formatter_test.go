package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
)

func sampleRows() []model.Row {
	return []model.Row{
		{
			Code: "2330", Name: "台積電", Price: 1005, ChangePct: 1.2345, VolumeRatio: 1.456,
			RSI: model.Some(65.44), Histogram: model.Some(3.215), K: model.Some(81.25), D: model.Some(70.04),
			MACD: model.Some(12.5), MA5: model.Some(990), MA20: model.Some(960.5),
			Trend: model.TrendBull, Signal: model.SignalBreakout, Composite: model.CompositeAttack,
			Cross: model.CrossGolden, Direction: model.DirectionBullish,
		},
		{
			Code: "2027", Name: "大成鋼", Price: 38.1, ChangePct: -0.5, VolumeRatio: 0,
			K: model.Some(50), D: model.Some(50),
			Trend: model.TrendWeak, Signal: model.SignalWatch, Composite: model.CompositeWatch,
			Direction: model.DirectionBearish,
		},
	}
}

func TestFormatTable(t *testing.T) {
	want := "代號 | 名稱 | 現價 | 漲跌% | RSI | 量比 | MACD柱 | K | D | 趨勢 | 訊號 | 綜合 | 交叉\n" +
		"2330 | 台積電 | 1005.00 | 1.23 | 65.4 | 1.46 | 3.22 | 81.3 | 70.0 | 多頭 | 買點浮現 | 積極進攻 | 黃金交叉\n" +
		"2027 | 大成鋼 | 38.10 | -0.50 | - | 0.00 | - | 50.0 | 50.0 | 弱勢 | 觀察 | 觀察 | -\n"
	assert.Equal(t, want, FormatTable(sampleRows()))
	assert.Equal(t, FormatTable(sampleRows()), FormatTable(sampleRows()))
}

func TestFormatScanReport_NoData(t *testing.T) {
	assert.Contains(t, FormatScanReport(nil, 4), NoDataMessage)
	assert.Contains(t, FormatScanReport(&model.ScanResult{}, 4), NoDataMessage)
}

func TestFormatScanReport_CardLimit(t *testing.T) {
	rows := sampleRows()
	res := &model.ScanResult{
		Rows:       rows,
		Skipped:    []model.Skip{{Code: "9999", Reason: "no bars"}},
		FinishedAt: time.Date(2024, 5, 2, 14, 0, 0, 0, time.UTC),
	}

	out := FormatScanReport(res, 1)
	assert.Contains(t, out, "2024-05-02 14:00")
	assert.Contains(t, out, "🚀 <b>2330 台積電</b> 1005.00 (+1.23%)")
	assert.Contains(t, out, "👀 <b>2027 大成鋼</b> 38.10 (-0.50%)")
	assert.Equal(t, 1, strings.Count(out, "📊"))
	assert.Contains(t, out, "⚡黃金交叉")
	assert.Contains(t, out, "略過: 9999")

	assert.Equal(t, 2, strings.Count(FormatScanReport(res, 0), "📊"))
}

func TestFormatScanReport_EscapesHTML(t *testing.T) {
	rows := sampleRows()[:1]
	rows[0].Name = "A<B>&C"
	out := FormatScanReport(&model.ScanResult{Rows: rows}, 4)
	assert.Contains(t, out, "A&lt;B&gt;&amp;C")
}

func TestFormatNarrative(t *testing.T) {
	out := FormatNarrative([]narrative.Result{
		{Model: "m1", Commentary: narrative.Commentary{Summary: "偏多"}},
		{Model: "m2", Err: "AI 分析失敗: timeout"},
	})
	assert.Contains(t, out, "<b>m1</b>\n偏多")
	assert.Contains(t, out, "<b>m2</b>\nAI 分析失敗: timeout")
}

func TestFormatWatchlist(t *testing.T) {
	assert.Contains(t, FormatWatchlist(nil), "空的")
	assert.Contains(t, FormatWatchlist([]string{"2330", "2317"}), "(2)\n2330, 2317")
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))

	parts := splitMessage("aaaa\nbbbb\ncccc\n", 10)
	assert.Equal(t, []string{"aaaa\nbbbb\n", "cccc\n"}, parts)

	long := strings.Repeat("台", 10) // 30 bytes, no newline
	parts = splitMessage(long, 7)
	require.NotEmpty(t, parts)
	assert.Equal(t, long, strings.Join(parts, ""))
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 7)
		assert.True(t, strings.HasPrefix(p, "台"), "chunk %q splits a rune", p)
	}
}
