package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// HBar is one row of a horizontal bar chart.
type HBar struct {
	Label string
	Value float64
	Text  string // shown after the bar
}

// HBarChart renders labelled horizontal bars scaled to the largest value.
func HBarChart(rows []HBar, color lipgloss.Color, width int) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		textW = max(textW, lipgloss.Width(r.Text))
		peak = math.Max(peak, r.Value)
	}
	if peak == 0 {
		peak = 1
	}
	barW := width - labelW - textW - 2
	if barW < 4 {
		barW = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(rows))
	for i, r := range rows {
		n := int(math.Round(r.Value / peak * float64(barW)))
		if r.Value > 0 && n == 0 {
			n = 1
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.Label)) +
			space.Render(" ") +
			barStyle.Render(strings.Repeat("█", n)) +
			space.Render(strings.Repeat(" ", barW-n+1)) +
			textStyle.Render(strings.Repeat(" ", textW-lipgloss.Width(r.Text))+r.Text)
	}
	return strings.Join(lines, "\n")
}

// ColumnChart renders vertical bars, one column group per value, with
// labels underneath. Values are drawn with eighth-block precision.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 2 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	colW := 3
	for i, v := range values {
		peak = math.Max(peak, v)
		if i < len(labels) {
			colW = max(colW, lipgloss.Width(labels[i]))
		}
	}
	if peak == 0 {
		peak = 1
	}

	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)
	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		for i, v := range values {
			if i > 0 {
				b.WriteString(space.Render(" "))
			}
			// eighths of a row filled for this column at this height
			eighths := int(math.Round(v/peak*float64(height*8))) - (row-1)*8
			switch {
			case eighths >= 8:
				b.WriteString(barStyle.Render(strings.Repeat("█", colW)))
			case eighths > 0:
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[eighths]), colW)))
			default:
				b.WriteString(space.Render(strings.Repeat(" ", colW)))
			}
		}
		b.WriteString("\n")
	}

	axis := make([]string, len(values))
	for i := range values {
		lbl := ""
		if i < len(labels) {
			lbl = labels[i]
		}
		axis[i] = fmt.Sprintf("%-*s", colW, lbl)
	}
	b.WriteString(axisStyle.Render(strings.Join(axis, " ")))
	return b.String()
}
