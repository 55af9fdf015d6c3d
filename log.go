package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"life-os/internal/database"
	"life-os/internal/services"
)

var (
	logDate  string
	logEntry services.LogEntry
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record the training log for a day",
	Example: `  lifeos log --workout --protein --sleep 7.5
  lifeos log --sleep 5 --soreness --date 2026-10-18`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !database.ValidSleepHours(logEntry.SleepHours) {
			return fmt.Errorf("--sleep must be between 0 and 24 hours")
		}
		return withServices(func(ctx context.Context, sm *services.ServiceManager) error {
			t, err := dateArg(sm, logDate)
			if err != nil {
				return err
			}
			saved, err := sm.Logs.Record(ctx, t, logEntry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved log for %s (week %d)\n", saved.Date, saved.Week)
			return nil
		})
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "date as YYYY-MM-DD (default today)")
	logCmd.Flags().BoolVar(&logEntry.WorkoutDone, "workout", false, "workout done")
	logCmd.Flags().BoolVar(&logEntry.ProteinMet, "protein", false, "protein target met")
	logCmd.Flags().Float64Var(&logEntry.SleepHours, "sleep", 0, "hours slept")
	logCmd.Flags().BoolVar(&logEntry.Soreness72h, "soreness", false, "soreness lasting over 72h")
	_ = logCmd.MarkFlagRequired("sleep")
	rootCmd.AddCommand(logCmd)
}
