package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/metrics"
	"github.com/jentichuang-afk/stock-watchlist/internal/notifier"
	"github.com/jentichuang-afk/stock-watchlist/internal/scheduler"
)

func newServeCmd(app *App) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot with the scheduled refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Cfg
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			if runOnStart || os.Getenv("RUN_ON_START") != "" {
				cfg.Schedule.RunOnStart = true
			}

			wl, err := app.Watchlist()
			if err != nil {
				return err
			}
			tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var nr scheduler.Narrator
			if n := app.Narrator(); n != nil {
				nr = n
			} else {
				logger.Info("GEMINI_API_KEY not set, /ai disabled")
			}

			sched := scheduler.NewScheduler(ctx, app.Scanner(), wl, nr, tn, app.Recorder())
			sched.CardLimit = cfg.Scan.CardLimit
			sched.NarrativeOnRefresh = cfg.Schedule.NarrativeOnRefresh
			if err := sched.RegisterAll(cfg.Schedule.RefreshCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go tn.StartPolling(ctx, sched.HandleCommand)
			go func() {
				if err := metrics.Serve(ctx, cfg.Metrics.Listen); err != nil {
					logger.Error("metrics server stopped", logger.ErrorField(err))
				}
			}()

			if cfg.Schedule.RunOnStart {
				logger.Info("RUN_ON_START set, refreshing now")
				go sched.RunRefreshNow()
			}

			logger.Info("radar started",
				logger.String("cron", cfg.Schedule.RefreshCron),
				logger.Strings("watchlist", wl.Codes()),
				logger.String("metrics", cfg.Metrics.Listen),
			)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			logger.Info("shutting down")
			cancel()
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "refresh once right after start")
	return cmd
}
