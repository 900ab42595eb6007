package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
)

// NoDataMessage is shown when a scan produced no rows.
const NoDataMessage = "找不到股票數據，請確認代號是否正確。"

// DefaultCardLimit is how many rows get a detail card.
const DefaultCardLimit = 4

var tableHeader = []string{"代號", "名稱", "現價", "漲跌%", "RSI", "量比", "MACD柱", "K", "D", "趨勢", "訊號", "綜合", "交叉"}

// fixed rounds half away from zero to places decimals.
func fixed(f float64, places int32) string {
	return decimal.NewFromFloat(f).Round(places).StringFixed(places)
}

func value(v model.Value, places int32) string {
	f, ok := v.Get()
	if !ok {
		return "-"
	}
	return fixed(f, places)
}

// FormatTable renders rows as pipe-separated text with a header line. The
// output only depends on the rows, so identical scans render identically.
func FormatTable(rows []model.Row) string {
	var b strings.Builder
	b.WriteString(strings.Join(tableHeader, " | "))
	b.WriteByte('\n')
	for _, r := range rows {
		cross := string(r.Cross)
		if cross == "" {
			cross = "-"
		}
		cols := []string{
			r.Code,
			r.Name,
			fixed(r.Price, 2),
			fixed(r.ChangePct, 2),
			value(r.RSI, 1),
			fixed(r.VolumeRatio, 2),
			value(r.Histogram, 2),
			value(r.K, 1),
			value(r.D, 1),
			string(r.Trend),
			string(r.Signal),
			string(r.Composite),
			cross,
		}
		b.WriteString(strings.Join(cols, " | "))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatScanReport formats a scan into a Telegram HTML message: a one-line
// summary per row, then detail cards for the first cardLimit rows.
func FormatScanReport(res *model.ScanResult, cardLimit int) string {
	if res == nil || len(res.Rows) == 0 {
		return "⚠️ " + NoDataMessage
	}
	if cardLimit <= 0 {
		cardLimit = DefaultCardLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📡 <b>AI 戰情雷達</b> | %s\n\n", res.FinishedAt.Format("2006-01-02 15:04"))

	for _, r := range res.Rows {
		fmt.Fprintf(&b, "%s <b>%s %s</b> %s (%s%%) RSI %s 量比 %s → %s\n",
			signalIcon(r.Signal), html.EscapeString(r.Code), html.EscapeString(r.Name),
			fixed(r.Price, 2), signed(r.ChangePct), value(r.RSI, 1), fixed(r.VolumeRatio, 2), r.Signal)
	}

	n := min(cardLimit, len(res.Rows))
	b.WriteString("\n")
	for _, r := range res.Rows[:n] {
		b.WriteString(formatCard(r))
		b.WriteString("\n")
	}

	if len(res.Skipped) > 0 {
		codes := make([]string, len(res.Skipped))
		for i, s := range res.Skipped {
			codes[i] = html.EscapeString(s.Code)
		}
		fmt.Fprintf(&b, "略過: %s\n", strings.Join(codes, ", "))
	}
	return b.String()
}

func formatCard(r model.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>%s %s</b> (%s)\n", html.EscapeString(r.Code), html.EscapeString(r.Name), r.Trend)
	fmt.Fprintf(&b, "  現價 %s | MA5 %s | MA20 %s | MA60 %s\n", fixed(r.Price, 2), value(r.MA5, 2), value(r.MA20, 2), value(r.MA60, 2))
	fmt.Fprintf(&b, "  布林 %s ~ %s\n", value(r.BollLower, 2), value(r.BollUpper, 2))
	fmt.Fprintf(&b, "  MACD %s 柱 %s (%s)\n", value(r.MACD, 2), value(r.Histogram, 2), r.Direction)
	fmt.Fprintf(&b, "  K %s D %s", value(r.K, 1), value(r.D, 1))
	if r.Cross != model.CrossNone {
		fmt.Fprintf(&b, " ⚡%s", r.Cross)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  綜合: %s\n", r.Composite)
	return b.String()
}

func signalIcon(s model.Signal) string {
	switch s {
	case model.SignalBreakout:
		return "🚀"
	case model.SignalStrongBuy:
		return "🔥"
	case model.SignalOverheated:
		return "⚠️"
	case model.SignalOversold:
		return "🧊"
	}
	return "👀"
}

func signed(f float64) string {
	s := fixed(f, 2)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

// FormatNarrative formats one or more model commentaries.
func FormatNarrative(results []narrative.Result) string {
	var b strings.Builder
	b.WriteString("🤖 <b>AI 盤勢解讀</b>\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\n<b>%s</b>\n%s\n", html.EscapeString(r.Model), html.EscapeString(r.Text()))
	}
	return b.String()
}

// FormatWatchlist lists the watchlist codes.
func FormatWatchlist(codes []string) string {
	if len(codes) == 0 {
		return "📋 自選股清單是空的"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>自選股</b> (%d)\n%s", len(codes), html.EscapeString(strings.Join(codes, ", ")))
	return b.String()
}
