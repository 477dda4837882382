package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/tui/components"
	"github.com/theirongolddev/scold/internal/tui/theme"
)

func (a App) renderAlertsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.alerts) == 0 {
		return components.ContentCard("Alerts",
			lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("All budgets are on track."), cw)
	}

	var b strings.Builder
	for i, al := range a.alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		tierStyle := lipgloss.NewStyle().
			Foreground(theme.TierColor(string(al.Tier))).
			Background(t.Surface).
			Bold(true)
		amount := cli.FormatMoney(al.Amount, a.currency)
		b.WriteString(tierStyle.Render(padRight(strings.ToUpper(string(al.Tier)), 9)))
		b.WriteString(muted.Render(" " + al.Category + " · " + amount))
		b.WriteString("\n")
		b.WriteString(muted.Render("  " + al.Message))
	}

	title := "Alerts"
	if !a.lastCheck.IsZero() {
		title += " (notified " + a.lastCheck.Format("15:04") + ")"
	}
	return components.ContentCard(title, b.String(), cw)
}
