package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"life-os/internal/export"
	"life-os/internal/services"
)

var (
	exportDate    string
	exportPreview bool
	exportForce   bool
	exportFolder  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the weekly Markdown export, or preview it",
	Long: `Writes Week_NN_YYYY-MM-DD.md to the export folder. Without --force the
export is skipped when one already ran today.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportDate != "" && !exportPreview && !exportForce {
			return fmt.Errorf("--date needs --preview or --force; the daily export always covers today")
		}
		return withServices(func(ctx context.Context, sm *services.ServiceManager) error {
			t, err := dateArg(sm, exportDate)
			if err != nil {
				return err
			}

			if exportPreview {
				md, err := sm.Export.Preview(ctx, t)
				if err != nil {
					return err
				}
				out, err := renderMarkdown(md)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			if exportFolder != "" {
				if err := sm.Export.SetFolder(ctx, exportFolder); err != nil {
					return err
				}
			}

			var result export.Result
			if exportForce {
				result, err = sm.Export.RunNow(ctx, t)
			} else {
				result, err = sm.Export.RunScheduled(ctx)
			}
			if err != nil {
				return err
			}
			if !result.Exported {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %s\n", result.Reason)
				last, err := sm.Export.LastExport(ctx)
				if err != nil {
					return err
				}
				if last != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Last export: %s\n", last.Path)
				}
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", result.Record.Path)
			return nil
		})
	},
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}

func init() {
	exportCmd.Flags().StringVar(&exportDate, "date", "", "any date in the week, YYYY-MM-DD (default today)")
	exportCmd.Flags().BoolVar(&exportPreview, "preview", false, "render the Markdown in the terminal instead of writing it")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "export even if one already ran today")
	exportCmd.Flags().StringVar(&exportFolder, "folder", "", "set the export folder before exporting")
	rootCmd.AddCommand(exportCmd)
}
