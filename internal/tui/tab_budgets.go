package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/tui/components"
	"github.com/theirongolddev/scold/internal/tui/theme"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.usage) == 0 {
		return components.ContentCard("Budgets",
			muted.Render("No budgets set. Try `scold budget set Food 300`."), cw)
	}

	labelW := 8
	for _, u := range a.usage {
		labelW = max(labelW, lipgloss.Width(u.Category))
	}
	inner := components.CardInnerWidth(cw)
	barW := max(inner-labelW-50, 10)

	lines := make([]string, 0, len(a.usage))
	for _, u := range a.usage {
		detail := cli.FormatMoney(u.Spent, a.currency) + " / " + cli.FormatMoney(u.Limit, a.currency)
		if u.Over() {
			detail += "  over by " + cli.FormatMoney(u.Remaining.Neg(), a.currency)
		} else {
			detail += "  " + cli.FormatMoney(u.Remaining, a.currency) + " left"
		}
		lines = append(lines, components.BudgetBar(u.Category, u.UsedRatio, detail, labelW, barW))
	}
	return components.ContentCard("Budgets", strings.Join(lines, "\n"), cw)
}
