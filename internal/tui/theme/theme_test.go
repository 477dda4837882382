package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByNameFallsBack(t *testing.T) {
	assert.Equal(t, "tokyo-night", ByName("tokyo-night").Name)
	assert.Equal(t, "flexoki-dark", ByName("nope").Name)
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { Active = FlexokiDark })
	SetActive("terminal")
	assert.Equal(t, Terminal.Red, TierColor("severe"))
	assert.Equal(t, Terminal.TextMuted, TierColor("other"))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}
