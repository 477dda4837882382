package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/scold/internal/model"
)

func exp(y, m, d int, amount, cat string) model.Expense {
	return model.Expense{
		Date:     model.NewDate(y, time.Month(m), d),
		Amount:   model.MustParseMoney(amount),
		Category: cat,
	}
}

var sample = []model.Expense{
	exp(2025, 3, 2, "30", "Food"),
	exp(2025, 3, 1, "25", "Food"),
	exp(2025, 2, 10, "45", "Bills"),
	exp(2025, 1, 5, "10", "Fun"),
	exp(2025, 1, 6, "45", "Aaa"),
}

func TestByCategory(t *testing.T) {
	got := ByCategory(sample)
	require.Len(t, got, 4)

	assert.Equal(t, "Food", got[0].Category)
	assert.Equal(t, "55.00", got[0].Total.String())
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 35.48, got[0].SharePercent, 0.01)

	// equal totals break ties by name
	assert.Equal(t, "Aaa", got[1].Category)
	assert.Equal(t, "Bills", got[2].Category)
	assert.Equal(t, "Fun", got[3].Category)

	assert.Empty(t, ByCategory(nil))
}

func TestByMonth(t *testing.T) {
	got := ByMonth(sample)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-03", got[0].Month.Format("2006-01"))
	assert.Equal(t, "55.00", got[0].Total.String())
	assert.Equal(t, "2025-01", got[2].Month.Format("2006-01"))
	assert.Equal(t, 2, got[2].Count)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample)
	assert.Equal(t, "155.00", s.TotalSpent.String())
	assert.Equal(t, 5, s.ExpenseCount)
	assert.Equal(t, 4, s.Categories)
	assert.Equal(t, "2025-01-05", s.First.String())
	assert.Equal(t, "2025-03-02", s.Last.String())
}

func TestFilter(t *testing.T) {
	got := Filter(sample, model.NewDate(2025, 2, 1), model.NewDate(2025, 3, 1))
	require.Len(t, got, 2)
	assert.Len(t, Filter(sample, model.Date{}, model.Date{}), len(sample))
}

var pngMagic = []byte("\x89PNG")

func TestPieChart(t *testing.T) {
	img, err := PieChart(ByCategory(sample), "$")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	img, err = PieChart(nil, "$")
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestTrendChart(t *testing.T) {
	img, err := TrendChart(ByMonth(sample), "€")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngMagic))

	img, err = TrendChart(ByMonth(sample[:1]), "€")
	require.NoError(t, err)
	assert.Nil(t, img)
}
