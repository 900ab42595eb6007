package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
)

// Symbol outcomes for SymbolsTotal.
const (
	ResultOK           = "ok"
	ResultFetchError   = "fetch_error"
	ResultInsufficient = "insufficient"
)

var (
	ScanRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_scan_runs_total",
			Help: "Total number of watchlist scans",
		},
		[]string{"trigger"},
	)

	SymbolsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_scan_symbols_total",
			Help: "Symbols processed by scans, by outcome",
		},
		[]string{"result"},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "radar_scan_duration_seconds",
			Help:    "Wall time of a full watchlist scan",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
	)

	NameCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_name_cache_lookups_total",
			Help: "Company name cache lookups, by hit or miss",
		},
		[]string{"result"},
	)

	NarrativeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radar_narrative_requests_total",
			Help: "Narrative generation requests, by model and status",
		},
		[]string{"model", "status"},
	)
)

// ObserveScan records a finished scan.
func ObserveScan(trigger string, d time.Duration) {
	ScanRuns.WithLabelValues(trigger).Inc()
	ScanDuration.Observe(d.Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listening", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
