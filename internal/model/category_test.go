package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySet(t *testing.T) {
	s := NewCategorySet("Food", "", "Food", "Bills")
	assert.Equal(t, []string{"Food", "Bills"}, s.Names())

	changed, err := s.Add("Travel")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.Add("Travel")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = s.Add("  ")
	assert.ErrorIs(t, err, ErrValidation)

	assert.True(t, s.Contains("Food"))
	assert.False(t, s.Contains("food"), "membership is case-sensitive")

	assert.True(t, s.Remove("Food"))
	assert.False(t, s.Remove("Food"))
	assert.Equal(t, []string{"Bills", "Travel"}, s.Names())
	assert.Equal(t, 2, s.Len())
}

func TestCategorySetNamesIsCopy(t *testing.T) {
	s := NewCategorySet(DefaultCategories...)
	names := s.Names()
	names[0] = "mutated"
	assert.True(t, s.Contains("Food"))
	assert.Equal(t, "Food", s.Names()[0])
}

func TestExpenseValidate(t *testing.T) {
	ok := Expense{Date: NewDate(2025, 1, 2), Amount: MustParseMoney("1"), Category: "Food"}
	require.NoError(t, ok.Validate())

	noCat := ok
	noCat.Category = ""
	assert.ErrorIs(t, noCat.Validate(), ErrValidation)

	noDate := ok
	noDate.Date = Date{}
	assert.ErrorIs(t, noDate.Validate(), ErrValidation)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-09", d.String())

	_, err = ParseDate("09/03/2025")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestErrorsUnwrap(t *testing.T) {
	nf := &NotFoundError{Kind: "expense", Key: "7"}
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, "expense 7 not found", nf.Error())

	se := &StoreError{Op: "insert", Err: assert.AnError}
	assert.ErrorIs(t, se, ErrStore)
	assert.ErrorIs(t, se, assert.AnError)
}
