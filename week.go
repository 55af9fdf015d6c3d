package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"life-os/internal/rules"
	"life-os/internal/services"
)

var weekDate string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show weekly flags, pillar status and the recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(ctx context.Context, sm *services.ServiceManager) error {
			t, err := dateArg(sm, weekDate)
			if err != nil {
				return err
			}
			report, err := sm.Summary.Weekly(ctx, t)
			if err != nil {
				return err
			}
			printWeekly(cmd.OutOrStdout(), report)
			return nil
		})
	},
}

func statusColor(s rules.Status) func(a ...interface{}) string {
	switch s {
	case rules.Green:
		return color.New(color.FgGreen).SprintFunc()
	case rules.Yellow:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func printWeekly(w io.Writer, report *services.WeeklyReport) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "\n%s\n", cyan(fmt.Sprintf("=== %s ===", report.Calendar.Label())))
	fmt.Fprintf(w, "%s\n\n", gray(fmt.Sprintf("%d log(s) this week", len(report.Logs))))

	summary := report.Summary
	for _, p := range rules.Pillars {
		status := summary.PillarStatus[p]
		paint := statusColor(status)
		fmt.Fprintf(w, "  %s %-12s %s %s\n", status.Icon(), p, paint(status), gray(fmt.Sprintf("(%d flags)", summary.Flags[p])))
	}

	fmt.Fprintf(w, "\nOverall: %s\n", statusColor(summary.Overall)(summary.Overall))
	fmt.Fprintf(w, "%s\n", summary.Recommendation)

	d := report.Decision
	if d.Training != "" || d.Nutrition != "" || d.Optional != "" {
		fmt.Fprintf(w, "\nDecision: training=%q nutrition=%q optional=%q\n", d.Training, d.Nutrition, d.Optional)
	}
	fmt.Fprintln(w)
}

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "any date in the week, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(weekCmd)
}
