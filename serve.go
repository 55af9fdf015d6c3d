package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"life-os/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot, HTTP API and scheduled jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return application.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
