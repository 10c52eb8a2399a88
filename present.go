package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	verdictStyles = map[verdict]lipgloss.Style{
		verdictCorrect:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		verdictAlreadySolved: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		verdictRateLimited:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		verdictTooLow:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		verdictTooHigh:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		verdictIncorrect:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// formatOutcomes renders submission outcomes as an aligned table: puzzle
// identity, then verdict, then timestamp. Pure formatting; callers decide
// the order of rows.
func formatOutcomes(outcomes []submissionOutcome) string {
	if len(outcomes) == 0 {
		return "no submissions recorded\n"
	}

	headers := []string{"PUZZLE", "VERDICT", "SUBMITTED"}
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, []string{
			fmt.Sprintf("%d day %d part %d", o.Year, o.Day, o.Part),
			string(o.Verdict),
			o.Timestamp.Format(time.DateTime),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	// Account for the one-cell padding on each side.
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(tableHeaderStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(strings.Repeat("-", total))
	sb.WriteString("\n")
	for ri, row := range rows {
		for i, cell := range row {
			style := tableCellStyle
			if i == 1 {
				if vs, ok := verdictStyles[outcomes[ri].Verdict]; ok {
					style = tableCellStyle.Inherit(vs)
				}
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
