package main

import (
	"github.com/jentichuang-afk/stock-watchlist/internal/collector"
	"github.com/jentichuang-afk/stock-watchlist/internal/config"
	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/names"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
	"github.com/jentichuang-afk/stock-watchlist/internal/recorder"
	"github.com/jentichuang-afk/stock-watchlist/internal/watchlist"
)

// App wires the configured components for the subcommands.
type App struct {
	Cfg     *config.Config
	closers []func() error
}

// Close releases everything opened by the builders.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("close failed", logger.ErrorField(err))
		}
	}
	a.closers = nil
}

func (a *App) Watchlist() (*watchlist.Manager, error) {
	return watchlist.NewManager(a.Cfg.Watchlist.File, a.Cfg.Watchlist.Default)
}

func (a *App) nameCache() names.Cache {
	if a.Cfg.Names.Cache == "redis" {
		rc, err := names.NewRedisCache(a.Cfg.Names.RedisAddr, a.Cfg.Names.RedisPassword, a.Cfg.Names.RedisDB)
		if err == nil {
			a.closers = append(a.closers, rc.Close)
			return rc
		}
		logger.Warn("redis name cache unavailable, using memory", logger.ErrorField(err))
	}
	return names.NewMemoryCache(0)
}

func (a *App) Names() *names.CachedResolver {
	var lookup names.Lookup
	if a.Cfg.Names.Scrape != nil && *a.Cfg.Names.Scrape {
		lookup = names.NewYahooResolver(a.Cfg.DataSource.Timeout)
	}
	return names.NewCachedResolver(lookup, a.nameCache(), a.Cfg.Names.TTL)
}

func (a *App) Scanner() *collector.Scanner {
	cfg := a.Cfg
	fetcher := collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
	logger.Info("data source", logger.String("fetcher", fetcher.Name()))
	return collector.NewScanner(fetcher, a.Names(), collector.Options{
		LookbackDays: cfg.DataSource.LookbackDays,
		MinBars:      cfg.Scan.MinBars,
		FallbackBars: cfg.Scan.FallbackBars,
		Suffixes:     cfg.DataSource.Suffixes,
		Params:       cfg.Indicators,
	})
}

// Narrator returns nil when no API key is configured.
func (a *App) Narrator() *narrative.Narrator {
	cfg := a.Cfg
	if !cfg.NarrativeEnabled() {
		return nil
	}
	client := narrative.NewGeminiClient(cfg.Narrative.APIKey, cfg.Narrative.Timeout, logger.Get())
	if cfg.Narrative.BaseURL != "" {
		client.BaseURL = cfg.Narrative.BaseURL
	}
	return narrative.NewNarrator(client, cfg.Narrative.Models...)
}

func (a *App) Recorder() recorder.Recorder {
	if a.Cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.Cfg.Database.SQLitePath)
	if err != nil {
		logger.Warn("init sqlite recorder failed, using noop", logger.ErrorField(err))
		return recorder.NewNoopRecorder()
	}
	a.closers = append(a.closers, sr.Close)
	return sr
}
