package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/scold/internal/model"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "expenses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func expense(date, amount, category, desc string) model.Expense {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Expense{Date: d, Amount: model.MustParseMoney(amount), Category: category, Description: desc}
}

func TestAddAndListRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	in := expense("2025-02-03", "12.34", "Food", "lunch")
	id, err := s.AddExpense(ctx, in)
	require.NoError(t, err)
	assert.Positive(t, id)

	list, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "2025-02-03", got.Date.String())
	assert.Equal(t, "12.34", got.Amount.String())
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, "lunch", got.Description)
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	first, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", "old"))
	require.NoError(t, err)
	a, err := s.AddExpense(ctx, expense("2025-03-01", "2", "Food", "a"))
	require.NoError(t, err)
	b, err := s.AddExpense(ctx, expense("2025-03-01", "3", "Food", "b"))
	require.NoError(t, err)

	list, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{a, b, first}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestAddExpenseValidation(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	_, err := s.AddExpense(ctx, expense("2025-01-01", "5", "", ""))
	assert.ErrorIs(t, err, model.ErrValidation)

	n, err := s.ExpenseCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no partial write on validation failure")
}

func TestIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	id1, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", ""))
	require.NoError(t, err)
	require.NoError(t, s.DeleteExpense(ctx, id1))

	id2, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", ""))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	id, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", ""))
	require.NoError(t, err)

	upd := expense("2025-01-05", "9.99", "Bills", "power")
	upd.ID = id
	require.NoError(t, s.UpdateExpense(ctx, upd))

	got, err := s.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "9.99", got.Amount.String())
	assert.Equal(t, "Bills", got.Category)
	assert.Equal(t, "2025-01-05", got.Date.String())

	upd.ID = id + 100
	assert.ErrorIs(t, s.UpdateExpense(ctx, upd), model.ErrNotFound)
}

func TestDeleteMissingExpense(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	_, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", ""))
	require.NoError(t, err)
	before, err := s.ListExpenses(ctx)
	require.NoError(t, err)

	err = s.DeleteExpense(ctx, 999)
	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "expense", nf.Kind)

	after, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.True(t, before[0].Amount.Equal(after[0].Amount))
}

func TestRepeatedDeleteErrors(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	id, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", ""))
	require.NoError(t, err)
	require.NoError(t, s.DeleteExpense(ctx, id))
	assert.ErrorIs(t, s.DeleteExpense(ctx, id), model.ErrNotFound)

	_, err = s.GetExpense(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBudgetUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	b, err := s.GetBudget(ctx, "Food")
	require.NoError(t, err)
	assert.Nil(t, b)

	require.NoError(t, s.SetBudget(ctx, model.Budget{Category: "Food", Limit: model.MustParseMoney("50")}))
	require.NoError(t, s.SetBudget(ctx, model.Budget{Category: "Food", Limit: model.MustParseMoney("75.5")}))
	require.NoError(t, s.SetBudget(ctx, model.Budget{Category: "Bills", Limit: model.MustParseMoney("200")}))

	b, err = s.GetBudget(ctx, "Food")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "75.50", b.Limit.String())

	list, err := s.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bills", list[0].Category)
	assert.Equal(t, "Food", list[1].Category)

	assert.ErrorIs(t, s.SetBudget(ctx, model.Budget{Category: ""}), model.ErrValidation)

	require.NoError(t, s.DeleteBudget(ctx, "Bills"))
	assert.ErrorIs(t, s.DeleteBudget(ctx, "Bills"), model.ErrNotFound)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	_, err := s.AddExpense(ctx, expense("2025-01-01", "1", "Food", ""))
	require.NoError(t, err)
	require.NoError(t, s.SetBudget(ctx, model.Budget{Category: "Travel", Limit: model.MustParseMoney("10")}))

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food", "Travel"}, cats)
}

func TestReopenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.AddExpense(ctx, expense("2025-01-01", "4.20", "Food", ""))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.ExpenseCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
