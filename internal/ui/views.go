package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cwbudde/algo-chaosfx/dsp/core"
)

const (
	barWidth = 40

	// Meter scale floor and ceiling in dBFS.
	meterFloorDB = -60.0
	meterCeilDB  = 6.0
)

var (
	accent = lipgloss.Color("#A40000")
	muted  = lipgloss.Color("#888888")
	hot    = lipgloss.Color("#FFA500")
	cool   = lipgloss.Color("#00AA00")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle  = lipgloss.NewStyle().Foreground(muted)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(barWidth + 24)
)

func renderLiveView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("chaosfx"))

	if m.title != "" {
		b.WriteString(hintStyle.Render("  " + m.title))
	}

	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(renderParams(m)))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(renderMeter(m.Level, m.Hold)))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓ select  ←/→ adjust  r reset hold  q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderParams(m Model) string {
	params := m.host.Params().Params()
	lines := make([]string, len(params))

	for i, p := range params {
		cursor := "  "
		name := p.Name

		if i == m.Selected {
			cursor = lipgloss.NewStyle().Foreground(accent).Render("▸ ")
			name = lipgloss.NewStyle().Bold(true).Render(name)
		}

		lines[i] = fmt.Sprintf("%s%-8s %s %s", cursor, name, renderBar(p.Normalized(), barWidth/2), p.String())
	}

	return strings.Join(lines, "\n")
}

func renderMeter(level, hold float32) string {
	db := core.LinearToDB(float64(level))
	bar := renderBar(meterPosition(db), barWidth)

	color := cool
	if db > -6 {
		color = hot
	}

	if db > 0 {
		color = accent
	}

	return fmt.Sprintf("%s %s\nhold %s",
		lipgloss.NewStyle().Foreground(color).Render(bar),
		formatDB(db),
		formatDB(core.LinearToDB(float64(hold))))
}

// meterPosition maps dBFS onto [0, 1] of the meter scale.
func meterPosition(db float64) float64 {
	if math.IsInf(db, -1) || db <= meterFloorDB {
		return 0
	}

	return min((db-meterFloorDB)/(meterCeilDB-meterFloorDB), 1)
}

func renderBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) || db < meterFloorDB {
		return "  -inf dB"
	}

	return fmt.Sprintf("%6.1f dB", db)
}
