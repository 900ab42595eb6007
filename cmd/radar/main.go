package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jentichuang-afk/stock-watchlist/internal/config"
	"github.com/jentichuang-afk/stock-watchlist/internal/logger"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	app := &App{}
	root := newRootCmd(app)
	err := root.Execute()
	app.Close()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(app *App) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "radar",
		Short:         "AI 戰情雷達: technical-indicator radar for a Taiwan stock watchlist",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgPath == "" {
				cfgPath = "configs/config.yaml"
				if v := os.Getenv("CONFIG_PATH"); v != "" {
					cfgPath = v
				}
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logger.Init(cfg.Log.Level, cfg.Log.Environment); err != nil {
				return err
			}
			app.Cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default configs/config.yaml or $CONFIG_PATH)")

	root.AddCommand(newScanCmd(app))
	root.AddCommand(newServeCmd(app))
	root.AddCommand(newWatchlistCmd(app))
	return root
}
