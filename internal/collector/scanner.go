package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jentichuang-afk/stock-watchlist/internal/calculator"
	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/metrics"
	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/strategy"
)

// NameResolver turns a code into a display name. Implementations fall back
// to the code itself.
type NameResolver interface {
	Resolve(ctx context.Context, code string) string
}

// Progress is called after every code, including skipped ones.
type Progress func(done, total int, code string)

// Options tunes a Scanner.
type Options struct {
	LookbackDays int
	MinBars      int
	FallbackBars int // a suffix returning fewer bars triggers the next suffix
	Suffixes     []string
	Params       calculator.Params
}

// DefaultOptions returns a 3-month lookback, 30-bar minimum and the .TW then
// .TWO fallback below 20 bars.
func DefaultOptions() Options {
	return Options{
		LookbackDays: 90,
		MinBars:      30,
		FallbackBars: 20,
		Suffixes:     DefaultSuffixes,
		Params:       calculator.DefaultParams(),
	}
}

// Scanner runs the batch: fetch, compute and classify, one code at a time.
type Scanner struct {
	Fetcher Fetcher
	Names   NameResolver
	Opts    Options
}

// NewScanner creates a Scanner; zero option fields take their defaults.
func NewScanner(fetcher Fetcher, names NameResolver, opts Options) *Scanner {
	d := DefaultOptions()
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = d.LookbackDays
	}
	if opts.MinBars <= 0 {
		opts.MinBars = d.MinBars
	}
	if opts.MinBars < 2 {
		opts.MinBars = 2
	}
	if opts.FallbackBars <= 0 {
		opts.FallbackBars = d.FallbackBars
	}
	if opts.Suffixes == nil {
		opts.Suffixes = d.Suffixes
	}
	return &Scanner{Fetcher: fetcher, Names: names, Opts: opts}
}

// Scan processes codes sequentially in input order. A code that cannot be
// fetched or has too little history is recorded in Skipped and never aborts
// the batch. When no row is produced the result is returned together with
// model.ErrNoData. Only ctx cancellation stops the batch early.
func (s *Scanner) Scan(ctx context.Context, codes []string, progress Progress) (*model.ScanResult, error) {
	log := logger.WithContext(ctx)
	res := &model.ScanResult{StartedAt: time.Now()}

	for i, code := range codes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := s.scanOne(ctx, code)
		switch {
		case err == nil:
			res.Rows = append(res.Rows, *row)
			metrics.SymbolsTotal.WithLabelValues(metrics.ResultOK).Inc()
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			res.Skipped = append(res.Skipped, model.Skip{Code: code, Reason: err.Error()})
			result := metrics.ResultFetchError
			if errors.Is(err, ErrInsufficientHistory) {
				result = metrics.ResultInsufficient
			}
			metrics.SymbolsTotal.WithLabelValues(result).Inc()
			log.Warn("symbol skipped", logger.String("symbol", code), logger.ErrorField(err))
		}
		if progress != nil {
			progress(i+1, len(codes), code)
		}
	}

	res.FinishedAt = time.Now()
	log.Info("scan finished",
		logger.Int("rows", len(res.Rows)),
		logger.Int("skipped", len(res.Skipped)),
		logger.Duration("elapsed", res.FinishedAt.Sub(res.StartedAt)))

	if len(res.Rows) == 0 {
		return res, model.ErrNoData
	}
	return res, nil
}

func (s *Scanner) scanOne(ctx context.Context, code string) (*model.Row, error) {
	code = strings.TrimSpace(code)
	series, err := FetchSeries(ctx, s.Fetcher, code, s.Opts.Suffixes, s.Opts.LookbackDays, s.Opts.FallbackBars)
	if err != nil {
		return nil, err
	}
	if len(series.Bars) < s.Opts.MinBars {
		return nil, fmt.Errorf("%s has %d bars, need %d: %w",
			series.Symbol, len(series.Bars), s.Opts.MinBars, ErrInsufficientHistory)
	}

	ind := calculator.Compute(series.Bars, s.Opts.Params)
	name := code
	if s.Names != nil {
		name = s.Names.Resolve(ctx, code)
	}
	row := BuildRow(series, ind, name)
	return &row, nil
}

// BuildRow assembles the output row from a series and its indicators. The
// series must have at least two bars.
func BuildRow(series *model.PriceSeries, ind []model.Indicators, name string) model.Row {
	n := len(series.Bars)
	last, prev := series.Bars[n-1], series.Bars[n-2]
	curr := ind[n-1]

	ctx := strategy.Context{
		Price:       last.Close,
		VolumeRatio: strategy.VolumeRatio(last.Volume, curr.VolumeMA5),
	}
	cls, _ := strategy.EvaluateLatest(ind, ctx)

	var change float64
	if prev.Close != 0 {
		change = (last.Close - prev.Close) / prev.Close * 100
	}

	return model.Row{
		Code:        series.Code,
		Name:        name,
		Symbol:      series.Symbol,
		Price:       last.Close,
		PrevClose:   prev.Close,
		ChangePct:   change,
		Volume:      last.Volume,
		VolumeRatio: ctx.VolumeRatio,
		RSI:         curr.RSI,
		MACD:        curr.MACD,
		Histogram:   curr.Histogram,
		K:           curr.K,
		D:           curr.D,
		OBV:         curr.OBV,
		MA5:         curr.MA5,
		MA20:        curr.MA20,
		MA60:        curr.MA60,
		BollUpper:   curr.BollUpper,
		BollLower:   curr.BollLower,
		Trend:       cls.Trend,
		Signal:      cls.Signal,
		Composite:   cls.Composite,
		Cross:       cls.Cross,
		Direction:   cls.Direction,
	}
}
