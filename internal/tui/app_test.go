package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/scold/internal/alert"
	"github.com/theirongolddev/scold/internal/model"
	"github.com/theirongolddev/scold/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			assert.Equal(t, i, a.tabAtX(x), "active=%d x=%d", active, x)
			pos += w + 1
		}
		assert.Equal(t, -1, a.tabAtX(pos+50))
	}
}

func loadedApp() App {
	a := NewApp(nil, "$")
	a.width, a.height = 100, 30
	a.apply(DataLoadedMsg{
		Expenses: []model.Expense{
			{ID: 2, Date: model.NewDate(2025, 3, 2), Amount: model.MustParseMoney("30"), Category: "Food", Description: "lunch"},
			{ID: 1, Date: model.NewDate(2025, 2, 1), Amount: model.MustParseMoney("45"), Category: "Bills"},
		},
		Usage: []model.BudgetUsage{{
			Category:  "Food",
			Limit:     model.MustParseMoney("20"),
			Spent:     model.MustParseMoney("30"),
			Remaining: model.MustParseMoney("-10"),
			UsedRatio: 1.5,
		}},
		Alerts: []alert.Alert{{Category: "Food", Tier: alert.Moderate, Amount: model.MustParseMoney("10"), Message: "Watch it"}},
	})
	return a
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabKeys(t *testing.T) {
	a := loadedApp()
	for k, want := range map[string]int{"b": tabBudgets, "r": tabReport, "a": tabAlerts, "e": tabExpenses} {
		m, _ := a.Update(key(k))
		assert.Equal(t, want, m.(App).activeTab, k)
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabAlerts, m.(App).activeTab)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabExpenses, m.(App).activeTab)
}

func TestKeysIgnoredUntilLoaded(t *testing.T) {
	a := NewApp(nil, "$")
	m, _ := a.Update(key("b"))
	assert.Equal(t, tabExpenses, m.(App).activeTab)
}

func TestHelpToggle(t *testing.T) {
	a := loadedApp()
	m, _ := a.Update(key("?"))
	require.True(t, m.(App).showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = m.Update(key("b"))
	assert.False(t, m.(App).showHelp)
	assert.Equal(t, tabExpenses, m.(App).activeTab)
}

func TestScrollIsClamped(t *testing.T) {
	a := loadedApp()
	m, _ := a.Update(key("k"))
	assert.Equal(t, 0, m.(App).offset)
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	assert.Equal(t, 1, m.(App).offset)
}

func TestCheckDoneSwitchesToAlerts(t *testing.T) {
	a := loadedApp()
	a.checking = true
	m, _ := a.Update(CheckDoneMsg{Alerts: nil})
	got := m.(App)
	assert.False(t, got.checking)
	assert.Equal(t, tabAlerts, got.activeTab)
	assert.Empty(t, got.alerts)
	assert.False(t, got.lastCheck.IsZero())

	m, _ = got.Update(CheckDoneMsg{Err: errors.New("db gone")})
	assert.EqualError(t, m.(App).err, "db gone")
}

func TestViewsRender(t *testing.T) {
	a := loadedApp()
	assert.Contains(t, a.View(), "lunch")

	a.activeTab = tabBudgets
	assert.Contains(t, a.View(), "over by $10.00")

	a.activeTab = tabReport
	assert.Contains(t, a.View(), "By category")

	a.activeTab = tabAlerts
	assert.Contains(t, a.View(), "Watch it")
}

func TestViewStates(t *testing.T) {
	a := NewApp(nil, "$")
	assert.Empty(t, a.View())

	a.width, a.height = 40, 10
	assert.Contains(t, a.View(), "too narrow")

	a.width = 100
	assert.Contains(t, a.View(), "Loading")
}

func TestLoadErrorIsShown(t *testing.T) {
	a := NewApp(nil, "$")
	a.width, a.height = 100, 20
	m, _ := a.Update(DataLoadedMsg{Err: errors.New("locked"), LoadTime: time.Millisecond})
	assert.Contains(t, m.View(), "error: locked")
}
