package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
	"github.com/jentichuang-afk/stock-watchlist/internal/metrics"
	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
	"github.com/jentichuang-afk/stock-watchlist/internal/notifier"
	"github.com/jentichuang-afk/stock-watchlist/internal/recorder"
	"github.com/jentichuang-afk/stock-watchlist/internal/watchlist"
)

func newScanCmd(app *App) *cobra.Command {
	var (
		tickers string
		asJSON  bool
		withAI  bool
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the watchlist once and print the indicator table",
		Example: `  radar scan
  radar scan --tickers "2330, 2317，6488"
  radar scan --json --ai`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var codes []string
			if tickers != "" {
				codes = watchlist.Parse(tickers)
			} else {
				wl, err := app.Watchlist()
				if err != nil {
					return err
				}
				codes = wl.Codes()
			}
			if len(codes) == 0 {
				return fmt.Errorf("watchlist is empty")
			}

			runID := recorder.NewRunID()
			ctx = logger.WithRunID(ctx, runID)
			errOut := cmd.ErrOrStderr()

			start := time.Now()
			res, err := app.Scanner().Scan(ctx, codes, func(done, total int, code string) {
				fmt.Fprintf(errOut, "\r[%d/%d] %s   ", done, total, code)
			})
			fmt.Fprintln(errOut)
			metrics.ObserveScan(recorder.TriggerCLI, time.Since(start))
			if err != nil && !errors.Is(err, model.ErrNoData) {
				return err
			}

			var rec recorder.Recorder = recorder.NewNoopRecorder()
			if save {
				rec = app.Recorder()
			}
			if recErr := rec.RecordScan(runID, recorder.TriggerCLI, res); recErr != nil {
				logger.Warn("record scan failed", logger.ErrorField(recErr))
			}

			if errors.Is(err, model.ErrNoData) {
				fmt.Fprintln(cmd.OutOrStdout(), notifier.NoDataMessage)
				return nil
			}

			var commentary []narrative.Result
			if withAI {
				nr := app.Narrator()
				if nr == nil {
					return fmt.Errorf("--ai needs GEMINI_API_KEY or narrative.api_key")
				}
				commentary = nr.Compare(ctx, notifier.FormatTable(res.Rows))
				if recErr := rec.RecordNarrative(runID, commentary); recErr != nil {
					logger.Warn("record narrative failed", logger.ErrorField(recErr))
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				payload := struct {
					RunID     string             `json:"run_id"`
					Result    *model.ScanResult  `json:"result"`
					Narrative []narrative.Result `json:"narrative,omitempty"`
				}{runID, res, commentary}
				data, err := json.Marshal(payload)
				if err != nil {
					return err
				}
				_, err = out.Write(pretty.Pretty(data))
				return err
			}

			fmt.Fprint(out, notifier.FormatTable(res.Rows))
			for _, s := range res.Skipped {
				fmt.Fprintf(out, "略過 %s: %s\n", s.Code, s.Reason)
			}
			for _, c := range commentary {
				fmt.Fprintf(out, "\n== %s ==\n%s\n", c.Model, c.Text())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tickers, "tickers", "t", "", "comma-separated codes instead of the saved watchlist")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&withAI, "ai", false, "add model commentary (dual-model when two models are configured)")
	cmd.Flags().BoolVar(&save, "save", true, "record the run in the scan history database")
	return cmd
}
