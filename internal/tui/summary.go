package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"aspect/internal/processor"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(row.Label))
		valueWidth = max(valueWidth, runewidth.StringWidth(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := runewidth.FillRight(row.Label, labelWidth)
		value := runewidth.FillRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderFailures lists failed files with their error, one per line. Long
// file names are truncated so the messages stay aligned.
func RenderFailures(failures []processor.Failure) string {
	if len(failures) == 0 {
		return ""
	}

	nameWidth := 0
	for _, f := range failures {
		nameWidth = max(nameWidth, runewidth.StringWidth(f.Name))
	}
	nameWidth = min(nameWidth, maxNameWidth)

	lines := []string{failHeaderStyle.Render(fmt.Sprintf("Failed (%d):", len(failures)))}
	for _, f := range failures {
		name := runewidth.Truncate(f.Name, nameWidth, "…")
		name = runewidth.FillRight(name, nameWidth)
		lines = append(lines, fmt.Sprintf("  %s  %s", failNameStyle.Render(name), dimStyle.Render(f.Message)))
	}
	return strings.Join(lines, "\n")
}

const maxNameWidth = 40

var (
	valueStyle      = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	failHeaderStyle = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)
	failNameStyle   = lipgloss.NewStyle().Foreground(ColorInk)
)
