package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/cli"
	"github.com/theirongolddev/scold/internal/tui/components"
	"github.com/theirongolddev/scold/internal/tui/theme"
)

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active

	over := 0
	for _, u := range a.usage {
		if u.Over() {
			over++
		}
	}
	overColor := t.Green
	if over > 0 {
		overColor = t.Red
	}
	span := ""
	if a.summary.ExpenseCount > 0 {
		span = a.summary.First.String() + " → " + a.summary.Last.String()
	}

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Total spent", Value: cli.FormatMoney(a.summary.TotalSpent, a.currency), Note: span},
		{Label: "Expenses", Value: cli.FormatNumber(int64(a.summary.ExpenseCount))},
		{Label: "Categories", Value: cli.FormatNumber(int64(a.summary.Categories))},
		{Label: "Over budget", Value: fmt.Sprintf("%d / %d", over, len(a.usage)), Color: overColor},
	}, cw)

	rows := max(h-lipgloss.Height(cards)-4, 1)
	body := a.expenseRows(components.CardInnerWidth(cw), rows)

	title := "Expenses"
	if n := len(a.expenses); n > rows {
		title = fmt.Sprintf("Expenses %d-%d of %d", a.offset+1, min(a.offset+rows, n), n)
	}
	return cards + "\n" + components.ContentCard(title, body, cw)
}

func (a App) expenseRows(w, rows int) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	catStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	sp := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	if len(a.expenses) == 0 {
		return descStyle.Render("No expenses yet. Add one with `scold add`.")
	}

	const idW, dateW, catW, amtW = 6, 10, 14, 12
	descW := max(w-idW-dateW-catW-amtW-4, 8)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%*s", idW, "ID")) + sp +
		headStyle.Render(fmt.Sprintf("%-*s", dateW, "Date")) + sp +
		headStyle.Render(fmt.Sprintf("%-*s", catW, "Category")) + sp +
		headStyle.Render(fmt.Sprintf("%*s", amtW, "Amount")) + sp +
		headStyle.Render("Description"))

	end := min(a.offset+rows, len(a.expenses))
	for _, e := range a.expenses[a.offset:end] {
		amount := cli.FormatMoney(e.Amount, a.currency)
		b.WriteString("\n")
		b.WriteString(dateStyle.Render(fmt.Sprintf("%*d", idW, e.ID)) + sp +
			dateStyle.Render(e.Date.String()) + sp +
			catStyle.Render(padRight(cli.Truncate(e.Category, catW), catW)) + sp +
			amtStyle.Render(padLeft(amount, amtW)) + sp +
			descStyle.Render(cli.Truncate(e.Description, descW)))
	}
	return b.String()
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(w-lipgloss.Width(s), 0)) + s
}
