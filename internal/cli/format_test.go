package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/scold/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"0", "$", "$0.00"},
		{"12.5", "$", "$12.50"},
		{"1234.56", "€", "€1,234.56"},
		{"1000000", "£", "£1,000,000.00"},
		{"-3", "¥", "-¥3.00"},
	}
	for _, tt := range tests {
		got := FormatMoney(model.MustParseMoney(tt.amount), tt.currency)
		assert.Equal(t, tt.want, got, tt.amount)
	}
}

func TestFormatDeviation(t *testing.T) {
	assert.Equal(t, "+$5.00", FormatDeviation(model.MustParseMoney("5"), "$"))
	assert.Equal(t, "-$5.00", FormatDeviation(model.MustParseMoney("-5"), "$"))
	assert.Equal(t, "$0.00", FormatDeviation(model.Money{}, "$"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "café…", Truncate("café au lait", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestRenderTableLayout(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Spent"},
		Rows:    [][]string{{"Food", "€55.00"}, {"---"}, {"Total", "€55.00"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "€55.00")
}

func TestRenderUsageBar(t *testing.T) {
	assert.Empty(t, RenderUsageBar(0.5, 0))
	assert.Contains(t, RenderUsageBar(1.5, 10), "150.0%")
	assert.Contains(t, RenderUsageBar(0.25, 4), "25.0%")
}
