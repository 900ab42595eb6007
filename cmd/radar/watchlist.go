package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jentichuang-afk/stock-watchlist/internal/notifier"
)

func newWatchlistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"wl"},
		Short:   "Show or edit the saved watchlist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List the watchlist codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := app.Watchlist()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatWatchlist(wl.Codes()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "add CODES",
		Short:   "Add codes to the watchlist",
		Example: `  radar watchlist add 2454,6488`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := app.Watchlist()
			if err != nil {
				return err
			}
			added, err := wl.Add(strings.Join(args, ","))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added: %s\nwatchlist: %s\n", strings.Join(added, ", "), wl.String())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm CODES",
		Aliases: []string{"remove"},
		Short:   "Remove codes from the watchlist",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := app.Watchlist()
			if err != nil {
				return err
			}
			removed, err := wl.Remove(strings.Join(args, ","))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\nwatchlist: %s\n", strings.Join(removed, ", "), wl.String())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set CODES",
		Short: "Replace the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wl, err := app.Watchlist()
			if err != nil {
				return err
			}
			if err := wl.Set(strings.Join(args, ",")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watchlist: %s\n", wl.String())
			return nil
		},
	})
	return cmd
}
