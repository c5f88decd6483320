package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/kensho/internal/config"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the clocks without a terminal UI",
	Long: `Run the clocks in the background. Reminders still go to the desktop and
the clocks can be driven with kenshoctl.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		logFile, err := redirectLog(cfg.LogPath(), true)
		if err != nil {
			return err
		}
		defer logFile.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Start(ctx)
		log.Println("Kensho running with", len(a.engine.Snapshot().Clocks), "clocks")
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
