package budget

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/scold/internal/model"
)

type memSource struct {
	expenses []model.Expense
	budgets  map[string]model.Money
	reads    int
	err      error
}

func newMem() *memSource {
	return &memSource{budgets: make(map[string]model.Money)}
}

func (m *memSource) add(amount, category string) {
	m.expenses = append(m.expenses, model.Expense{
		ID:       int64(len(m.expenses) + 1),
		Date:     model.NewDate(2025, 1, 1),
		Amount:   model.MustParseMoney(amount),
		Category: category,
	})
}

func (m *memSource) ListExpenses(context.Context) ([]model.Expense, error) {
	m.reads++
	return m.expenses, m.err
}

func (m *memSource) GetBudget(_ context.Context, c string) (*model.Budget, error) {
	if m.err != nil {
		return nil, m.err
	}
	l, ok := m.budgets[c]
	if !ok {
		return nil, nil
	}
	return &model.Budget{Category: c, Limit: l}, nil
}

func (m *memSource) ListBudgets(context.Context) ([]model.Budget, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Budget
	for c, l := range m.budgets {
		out = append(out, model.Budget{Category: c, Limit: l})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func TestTotalSpent(t *testing.T) {
	exp := []model.Expense{
		{Amount: model.MustParseMoney("10.10"), Category: "Food"},
		{Amount: model.MustParseMoney("5"), Category: "food"},
		{Amount: model.MustParseMoney("0.20"), Category: "Food"},
		{Amount: model.MustParseMoney("7"), Category: "Bills"},
	}
	assert.Equal(t, "10.30", TotalSpent(exp, "Food").String())
	assert.Equal(t, "5.00", TotalSpent(exp, "food").String())
	assert.True(t, TotalSpent(exp, "Travel").IsZero())
	assert.True(t, TotalSpent(nil, "Food").IsZero())

	// order independent
	rev := make([]model.Expense, len(exp))
	for i, e := range exp {
		rev[len(exp)-1-i] = e
	}
	assert.True(t, TotalSpent(rev, "Food").Equal(TotalSpent(exp, "Food")))
}

func TestDeviationWithoutBudgetIsZero(t *testing.T) {
	src := newMem()
	src.add("500", "Food")

	d, err := Deviation(context.Background(), src, "Food")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestDeviation(t *testing.T) {
	src := newMem()
	src.budgets["Food"] = model.MustParseMoney("50")
	src.add("30", "Food")

	d, err := Deviation(context.Background(), src, "Food")
	require.NoError(t, err)
	assert.Equal(t, "-20.00", d.String())
}

func TestOverspendingReportScenario(t *testing.T) {
	ctx := context.Background()
	src := newMem()
	src.budgets["Food"] = model.MustParseMoney("50.00")

	src.add("30.00", "Food")
	r, err := OverspendingReport(ctx, src)
	require.NoError(t, err)
	assert.Empty(t, r)

	src.add("25.00", "Food")
	r, err = OverspendingReport(ctx, src)
	require.NoError(t, err)
	require.Len(t, r, 1)
	assert.Equal(t, "5.00", r["Food"].String())
}

func TestOverspendingReportExcludesNonPositive(t *testing.T) {
	src := newMem()
	src.budgets["Exact"] = model.MustParseMoney("20")
	src.budgets["Under"] = model.MustParseMoney("20")
	src.budgets["Over"] = model.MustParseMoney("20")
	src.budgets["Empty"] = model.MustParseMoney("0")
	src.add("20", "Exact")
	src.add("19.99", "Under")
	src.add("20.01", "Over")
	src.add("999", "Unbudgeted")

	r, err := OverspendingReport(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Over"}, r.Categories())
	assert.Equal(t, "0.01", r["Over"].String())
	for _, d := range r {
		assert.True(t, d.IsPositive())
	}
}

func TestOverspendingReportIdempotent(t *testing.T) {
	ctx := context.Background()
	src := newMem()
	src.budgets["Food"] = model.MustParseMoney("10")
	src.budgets["Bills"] = model.MustParseMoney("10")
	src.add("15", "Food")
	src.add("11", "Bills")

	a, err := OverspendingReport(ctx, src)
	require.NoError(t, err)
	b, err := OverspendingReport(ctx, src)
	require.NoError(t, err)

	require.Equal(t, a.Categories(), b.Categories())
	for c := range a {
		assert.True(t, a[c].Equal(b[c]), c)
	}
	assert.Equal(t, 2, src.reads, "each call reads the store")
}

func TestApproachingReport(t *testing.T) {
	src := newMem()
	src.budgets["Near"] = model.MustParseMoney("100")
	src.budgets["Far"] = model.MustParseMoney("100")
	src.budgets["Over"] = model.MustParseMoney("100")
	src.budgets["Zero"] = model.MustParseMoney("0")
	src.add("90", "Near")
	src.add("50", "Far")
	src.add("101", "Over")

	r, err := ApproachingReport(context.Background(), src, decimal.RequireFromString("0.9"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Near"}, r.Categories())
	assert.Equal(t, "10.00", r["Near"].String())
}

func TestUsage(t *testing.T) {
	src := newMem()
	src.budgets["Food"] = model.MustParseMoney("40")
	src.add("10", "Food")
	src.add("20", "Food")

	u, err := Usage(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, u, 1)
	assert.Equal(t, "30.00", u[0].Spent.String())
	assert.Equal(t, "10.00", u[0].Remaining.String())
	assert.InDelta(t, 0.75, u[0].UsedRatio, 1e-9)
	assert.False(t, u[0].Over())
}

func TestSourceErrorsPropagate(t *testing.T) {
	src := newMem()
	src.err = errors.New("disk gone")

	_, err := OverspendingReport(context.Background(), src)
	assert.ErrorIs(t, err, src.err)
	_, err = Deviation(context.Background(), src, "Food")
	assert.ErrorIs(t, err, src.err)
}
