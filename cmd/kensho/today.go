package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/config"
	"github.com/SoarinFerret/kensho/internal/journal"
)

var clearJournal bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's check-ins from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		path := filepath.Join(cfg.DataDir, journal.FileName)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No journal yet.")
			return nil
		}

		store, err := journal.Open(path, clock.SystemSource{})
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if clearJournal {
			if err := store.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared.")
			return nil
		}
		return printToday(ctx, cmd.OutOrStdout(), store)
	},
}

func printToday(ctx context.Context, w io.Writer, store *journal.Store) error {
	total, err := store.TotalMinutesToday(ctx)
	if err != nil {
		return err
	}
	entries, err := store.Today(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Total today: %s\n", formatTotal(total))
	if len(entries) == 0 {
		fmt.Fprintln(w, "No sessions recorded today.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-20s %s\n", e.At.Local().Format("15:04"), e.ClockName, formatTotal(e.DurationMinutes))
	}
	return nil
}

// formatTotal renders minutes as "1h 05m" or "12m".
func formatTotal(minutes float64) string {
	m := int(math.Round(max(minutes, 0)))
	if m >= 60 {
		return fmt.Sprintf("%dh %02dm", m/60, m%60)
	}
	return fmt.Sprintf("%dm", m)
}

func init() {
	todayCmd.Flags().BoolVar(&clearJournal, "clear", false, "Delete every journal entry")
	rootCmd.AddCommand(todayCmd)
}
