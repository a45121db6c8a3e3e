package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"aspect/internal/tui"
	"aspect/pkg/imgutil"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List common aspect ratios and resolutions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, presetHeaderStyle.Render("Ratios"))
		rows := make([]tui.SummaryRow, 0, len(imgutil.RatioPresets))
		for _, p := range imgutil.RatioPresets {
			rows = append(rows, tui.SummaryRow{Label: p.Ratio.String(), Value: p.Hint})
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))

		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, presetHeaderStyle.Render("Resolutions"))
		rows = rows[:0]
		for _, group := range imgutil.ResolutionPresets {
			sizes := make([]string, 0, len(group.Sizes))
			for _, size := range group.Sizes {
				sizes = append(sizes, size.String())
			}
			rows = append(rows, tui.SummaryRow{Label: group.Name, Value: strings.Join(sizes, "  ")})
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
	},
}

var presetHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)

func init() {
	rootCmd.AddCommand(presetsCmd)
}
