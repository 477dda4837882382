// Package tui provides the interactive Bubble Tea dashboard for scold.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/alert"
	"github.com/theirongolddev/scold/internal/budget"
	"github.com/theirongolddev/scold/internal/model"
	"github.com/theirongolddev/scold/internal/report"
	"github.com/theirongolddev/scold/internal/tracker"
	"github.com/theirongolddev/scold/internal/tui/components"
	"github.com/theirongolddev/scold/internal/tui/theme"
)

// DataLoadedMsg carries a fresh snapshot of the ledger.
type DataLoadedMsg struct {
	Expenses []model.Expense
	Usage    []model.BudgetUsage
	Alerts   []alert.Alert
	LoadTime time.Duration
	Err      error
}

// CheckDoneMsg is sent after an explicit budget check has notified.
type CheckDoneMsg struct {
	Alerts []alert.Alert
	Err    error
}

const (
	tabExpenses = iota
	tabBudgets
	tabReport
	tabAlerts
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5
)

// App is the root Bubble Tea model.
type App struct {
	tracker  *tracker.Tracker
	currency string

	// Data
	expenses []model.Expense
	usage    []model.BudgetUsage
	totals   []model.CategoryTotal
	months   []model.MonthTotal
	summary  model.Summary
	alerts   []alert.Alert
	loaded   bool
	loadTime time.Duration
	err      error

	lastCheck time.Time
	checking  bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	offset    int // first visible expense row

	spinner spinner.Model
}

// NewApp creates the dashboard over tr. Amounts are shown with currency.
func NewApp(tr *tracker.Tracker, currency string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		tracker:  tr,
		currency: currency,
		spinner:  sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.tracker),
		a.spinner.Tick,
	)
}

func (a *App) apply(msg DataLoadedMsg) {
	a.loaded = true
	a.err = msg.Err
	a.loadTime = msg.LoadTime
	if msg.Err != nil {
		return
	}
	a.expenses = msg.Expenses
	a.usage = msg.Usage
	a.alerts = msg.Alerts
	a.totals = report.ByCategory(msg.Expenses)
	a.months = report.ByMonth(msg.Expenses)
	a.summary = report.Summarize(msg.Expenses)
	a.clampOffset()
}

func (a *App) clampOffset() {
	if a.offset > len(a.expenses)-1 {
		a.offset = len(a.expenses) - 1
	}
	if a.offset < 0 {
		a.offset = 0
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DataLoadedMsg:
		a.apply(msg)
		return a, nil

	case CheckDoneMsg:
		a.checking = false
		a.lastCheck = time.Now()
		a.err = msg.Err
		if msg.Err == nil {
			a.alerts = msg.Alerts
			a.activeTab = tabAlerts
		}
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(-1)
		case tea.MouseButtonWheelDown:
			a.scroll(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 && msg.Action == tea.MouseActionPress {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// help overlay swallows the next key
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "c":
		if a.checking {
			return a, nil
		}
		a.checking = true
		return a, checkCmd(a.tracker)
	case "ctrl+r":
		return a, loadDataCmd(a.tracker)
	case "left", "h", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "j", "down":
		a.scroll(1)
		return a, nil
	case "k", "up":
		a.scroll(-1)
		return a, nil
	case "ctrl+d":
		a.scroll(a.pageSize() / 2)
		return a, nil
	case "ctrl+u":
		a.scroll(-a.pageSize() / 2)
		return a, nil
	case "g", "home":
		a.offset = 0
		return a, nil
	case "G", "end":
		a.offset = len(a.expenses) - 1
		a.clampOffset()
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a *App) scroll(n int) {
	if a.activeTab != tabExpenses {
		return
	}
	a.offset += n
	a.clampOffset()
}

func (a App) pageSize() int {
	return max(a.height-12, 2)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes mirror the widths RenderTabBar produces.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  scold needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	card := cardStyle.Render(a.spinner.View() + textStyle.Render(" Loading expenses..."))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"e b r a", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Scroll expenses"},
			{"^d ^u", "Half-page scroll"},
			{"g G", "First / Last expense"},
		}},
		{"Actions", [][2]string{
			{"c", "Check budgets and notify"},
			{"^r", "Reload data"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	info := fmt.Sprintf("%d expenses", len(a.expenses))
	if a.checking {
		info = "checking budgets..."
	} else if !a.lastCheck.IsZero() {
		info += " · checked " + a.lastCheck.Format("15:04:05")
	}
	right := fmt.Sprintf("loaded in %s", a.loadTime.Round(time.Millisecond))
	if a.err != nil {
		right = "error: " + a.err.Error()
	}
	statusBar := components.RenderStatusBar(w, info, right)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabReport:
		content = a.renderReportTab(cw)
	case tabAlerts:
		content = a.renderAlertsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func loadDataCmd(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx := context.Background()

		expenses, err := tr.Store().ListExpenses(ctx)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		usage, err := budget.Usage(ctx, tr.Store())
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		alerts, err := tr.Evaluate(ctx)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		return DataLoadedMsg{
			Expenses: expenses,
			Usage:    usage,
			Alerts:   alerts,
			LoadTime: time.Since(start),
		}
	}
}

func checkCmd(tr *tracker.Tracker) tea.Cmd {
	return func() tea.Msg {
		alerts, err := tr.Check(context.Background())
		return CheckDoneMsg{Alerts: alerts, Err: err}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		if lipgloss.Width(lines[i]) < w {
			lines[i] += style.Render(strings.Repeat(" ", w-lipgloss.Width(lines[i])))
		}
	}
	return strings.Join(lines, "\n")
}
