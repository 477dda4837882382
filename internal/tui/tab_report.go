package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/tui/components"
	"github.com/theirongolddev/scold/internal/tui/theme"
)

// monthsShown caps the trend chart.
const monthsShown = 12

func (a App) renderReportTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.totals) == 0 {
		return components.ContentCard("Report", muted.Render("Nothing to report yet."), cw)
	}

	bars := make([]components.HBar, len(a.totals))
	for i, ct := range a.totals {
		bars[i] = components.HBar{
			Label: ct.Category,
			Value: ct.Total.Float64(),
			Text:  cli.FormatMoney(ct.Total, a.currency) + "  " + cli.FormatPercent(ct.SharePercent/100),
		}
	}
	byCategory := components.ContentCard("By category",
		components.HBarChart(bars, t.Accent, components.CardInnerWidth(cw)), cw)

	// ByMonth is newest first; charts read left to right
	n := min(len(a.months), monthsShown)
	values := make([]float64, n)
	labels := make([]string, n)
	for i := range n {
		m := a.months[n-1-i]
		values[i] = m.Total.Float64()
		labels[i] = m.Month.Format("Jan")
	}
	trend := components.ColumnChart(values, labels, t.Blue, 6) + "\n" +
		muted.Render("trend ") + components.Sparkline(values, t.AccentBright)

	return byCategory + "\n" + components.ContentCard("Monthly", trend, cw)
}
