package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-chaosfx/measure/analysis"
)

// RenderReports renders one box per analyzed channel of name.
func RenderReports(name string, reports []analysis.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")

	for ch, r := range reports {
		b.WriteString(renderReport(ch, r))
		b.WriteString("\n")
	}

	return b.String()
}

func renderReport(ch int, r analysis.Report) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1).
		Width(44)

	rows := [][2]string{
		{"Samples", fmt.Sprintf("%d @ %.0f Hz", r.Samples, r.SampleRate)},
		{"Peak", formatDB(r.PeakDB)},
		{"RMS", formatDB(r.RMSDB)},
		{"Crest", fmt.Sprintf("%6.1f dB", r.CrestDB)},
		{"DC", fmt.Sprintf("%+.5f", r.DC)},
		{"Centroid", fmt.Sprintf("%.0f Hz", r.Centroid)},
	}

	if r.Fundamental > 0 {
		rows = append(rows, [2]string{
			"THD", fmt.Sprintf("%.2f%% (%.1f dB) @ %.0f Hz", r.THD*100, r.THDDB, r.Fundamental),
		})
	}

	if r.NonFinite > 0 {
		warn := lipgloss.NewStyle().Foreground(accent).Render(fmt.Sprintf("%d", r.NonFinite))
		rows = append(rows, [2]string{"Non-finite", warn})
	}

	label := lipgloss.NewStyle().Foreground(muted).Width(11)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(fmt.Sprintf("Channel %d", ch+1)))

	for _, row := range rows {
		lines = append(lines, label.Render(row[0])+row[1])
	}

	return box.Render(strings.Join(lines, "\n"))
}
