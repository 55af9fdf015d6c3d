package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"life-os/internal/calendar"
	"life-os/internal/database"
	"life-os/internal/services"
)

var calendarDate string

var phaseColors = map[calendar.Phase]lipgloss.Color{
	calendar.Focus:    lipgloss.Color("39"),
	calendar.Build:    lipgloss.Color("208"),
	calendar.Optimize: lipgloss.Color("42"),
	calendar.Rest:     lipgloss.Color("245"),
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the training week and phase for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(ctx context.Context, sm *services.ServiceManager) error {
			t, err := dateArg(sm, calendarDate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCalendarCard(t, sm.Calendar.Info(t)))
			return nil
		})
	},
}

func renderCalendarCard(date time.Time, info calendar.Info) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(phaseColors[info.Phase])
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	lines := []string{
		title.Render(fmt.Sprintf("Week %d · %s", info.Week, info.Phase)),
		muted.Render(date.Format(database.DateLayout)),
	}
	if info.IsDeload {
		lines = append(lines, "Deload week")
	}
	if badge := info.Badge(); badge != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Render(badge))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(phaseColors[info.Phase]).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func init() {
	calendarCmd.Flags().StringVar(&calendarDate, "date", "", "date as YYYY-MM-DD (default today)")
	rootCmd.AddCommand(calendarCmd)
}
