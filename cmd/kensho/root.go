package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SoarinFerret/kensho/internal/config"
	"github.com/SoarinFerret/kensho/internal/ui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kensho",
	Short: "Kensho keeps a few mindful check-in clocks running",
	Long: `Kensho runs up to four (six with the wide profile) independent interval
clocks. Each one reminds you when its interval is up and waits for you to
check in before starting over.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Using config file at:", configPath)
		return config.LoadConfigFromFile(configPath)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		logFile, err := redirectLog(cfg.LogPath(), false)
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

		model := ui.NewModel(a.engine, a.state, cfg.DataDir)
		defer model.Close()

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the config file (TOML or YAML)")
}
