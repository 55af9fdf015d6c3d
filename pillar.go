package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"life-os/internal/pillars"
	"life-os/internal/services"
	"life-os/internal/utils"
)

var pillarDate string

var pillarCmd = &cobra.Command{
	Use:   "pillar",
	Short: "Read or update the daily pillar board",
}

var pillarGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the pillar board for a date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(ctx context.Context, sm *services.ServiceManager) error {
			t, err := dateArg(sm, pillarDate)
			if err != nil {
				return err
			}
			state, err := sm.Pillars.Get(ctx, sm.Calendar.Key(t))
			if err != nil {
				return err
			}
			printBoard(cmd, sm.Calendar.Key(t), state)
			return nil
		})
	},
}

var pillarSetCmd = &cobra.Command{
	Use:   "set <pillar> <true|false>",
	Short: "Mark a pillar complete or incomplete",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		completed, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("completed must be true or false, got %q", args[1])
		}
		return withServices(func(ctx context.Context, sm *services.ServiceManager) error {
			t, err := dateArg(sm, pillarDate)
			if err != nil {
				return err
			}
			state, err := sm.Pillars.Set(ctx, sm.Calendar.Key(t), pillars.Pillar(args[0]), completed)
			if err != nil {
				return err
			}
			printBoard(cmd, sm.Calendar.Key(t), state)
			return nil
		})
	},
}

func printBoard(cmd *cobra.Command, date string, state pillars.State) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %d/%d\n", date, state.Done(), len(pillars.List()))
	for _, p := range pillars.List() {
		fmt.Fprintf(out, "  %s %s %s\n", utils.DoneMark(state[p]), utils.GetPillarEmoji(string(p)), p)
	}
}

func init() {
	pillarCmd.PersistentFlags().StringVar(&pillarDate, "date", "", "date as YYYY-MM-DD (default today)")
	pillarCmd.AddCommand(pillarGetCmd, pillarSetCmd)
	rootCmd.AddCommand(pillarCmd)
}
