package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"life-os/internal/app"
	"life-os/internal/config"
	"life-os/internal/services"
)

var (
	// Global flags
	configPath string
	dbPath     string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lifeos",
	Short: "Life OS - 28-week training calendar and daily pillar tracker",
	Long: `Life OS maps each date to a fixed 28-week training cycle, tracks six daily
life pillars and turns a week of training logs into flags, a status and a
recommendation.

Run "lifeos serve" to start the Telegram bot, the HTTP API and the scheduler.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if debug {
			cfg.Log.Debug = true
		}

		logger, err = newLogger(cfg.Log.Debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// withServices opens the database for a one-shot command and closes it after fn.
func withServices(fn func(ctx context.Context, sm *services.ServiceManager) error) error {
	db, sm, err := app.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(context.Background(), sm)
}

// dateArg parses the --date flag in the configured timezone; empty means today.
func dateArg(sm *services.ServiceManager, date string) (time.Time, error) {
	t, err := sm.Calendar.Parse(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", date)
	}
	return t, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
