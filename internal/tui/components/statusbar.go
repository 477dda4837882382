package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/scold/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar. info sits next to the key
// hints, right is pinned to the right edge.
func RenderStatusBar(width int, info, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	left := keyStyle.Render(" [?]") + style.Render("help ") +
		keyStyle.Render("[c]") + style.Render("heck ") +
		keyStyle.Render("[q]") + style.Render("uit")
	if info != "" {
		left += style.Render("  " + info)
	}
	if right != "" {
		right = style.Render(right + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + style.Render(strings.Repeat(" ", padding)) + right
}
