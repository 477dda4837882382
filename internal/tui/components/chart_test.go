package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/scold/internal/tui/theme"
)

func TestSparklineScalesToPeak(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10}, theme.Active.Accent)
	assert.Contains(t, out, "▁▄█")
	assert.Empty(t, Sparkline(nil, theme.Active.Accent))
}

func TestHBarChart(t *testing.T) {
	out := HBarChart([]HBar{
		{Label: "Food", Value: 100, Text: "$100.00"},
		{Label: "Transport", Value: 25, Text: "$25.00"},
		{Label: "Zero", Value: 0, Text: "$0.00"},
	}, theme.Active.Accent, 40)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Greater(t, strings.Count(lines[0], "█"), strings.Count(lines[1], "█"))
	assert.Zero(t, strings.Count(lines[2], "█"))
	for _, l := range lines {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(l))
	}
}

func TestColumnChart(t *testing.T) {
	out := ColumnChart([]float64{10, 20}, []string{"Jan", "Feb"}, theme.Active.Accent, 4)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[4], "Jan")
	assert.Contains(t, lines[4], "Feb")
	// tallest column reaches the top row
	assert.Contains(t, lines[0], "███")
}

func TestBudgetBarShowsPercent(t *testing.T) {
	out := BudgetBar("Food", 1.25, "125.00 / 100.00", 10, 20)
	assert.Contains(t, out, "125%")
	assert.Contains(t, out, "125.00 / 100.00")
	assert.Equal(t, string(theme.Active.Red), ColorForPct(1.25))
	assert.Equal(t, string(theme.Active.Green), ColorForPct(0.2))
}
