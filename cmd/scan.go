package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"aspect/internal/filter"
	"aspect/internal/processor"
	"aspect/internal/tui"
)

var scanFlags filterFlags

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <input>",
	Short: "Show what crop would do to each image without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if err := requireDir(input); err != nil {
			return err
		}

		settings, err := scanFlags.settings(cmd)
		if err != nil {
			return err
		}
		cfg, err := settings.Filter()
		if err != nil {
			return err
		}

		reports, err := processor.Scan(cmd.Context(), input, cfg, settings.Exclude)
		if err != nil {
			return err
		}

		counts := map[string]int{}
		for i, report := range reports {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "%s\n", scanFileStyle.Render(report.Path))
			if report.Err != nil {
				counts["fail"]++
				fmt.Fprintf(os.Stdout, "  %s %s\n", scanBulletStyle.Render("-"), scanFailStyle.Render(report.Err.Error()))
				continue
			}
			counts[report.Decision.Action.String()]++

			scanLine("format", report.Kind.String())
			scanLine("size", report.Resolution.String())
			if report.Device != "" {
				scanLine("device", report.Device)
			}
			if report.Captured != "" {
				scanLine("captured", report.Captured)
			}
			action := report.Decision.Action.String()
			if report.Decision.Action == filter.CropTo {
				action += " to " + report.Decision.Crop.String()
			}
			fmt.Fprintf(os.Stdout, "  %s %s\n", scanCategoryStyle.Render("action:"), scanActionStyle.Render(action))
		}

		if len(reports) > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary([]tui.SummaryRow{
			{Label: "Files scanned", Value: fmt.Sprintf("%d", len(reports))},
			{Label: "Keep", Value: fmt.Sprintf("%d", counts[filter.Accept.String()])},
			{Label: "Crop", Value: fmt.Sprintf("%d", counts[filter.CropTo.String()])},
			{Label: "Reject", Value: fmt.Sprintf("%d", counts[filter.Reject.String()])},
			{Label: "Fail", Value: fmt.Sprintf("%d", counts["fail"])},
		}))
		return nil
	},
}

func scanLine(label, value string) {
	fmt.Fprintf(os.Stdout, "  %s %s\n", scanCategoryStyle.Render(label+":"), scanValueStyle.Render(value))
}

var (
	scanFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	scanValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanActionStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorSuccess)
	scanFailStyle     = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	scanBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	scanFlags.register(scanCmd.Flags())
	rootCmd.AddCommand(scanCmd)
}
