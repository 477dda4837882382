package model

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.50", "12.50"},
		{"12", "12.00"},
		{" 7.5 ", "7.50"},
		{"12,50", "12.50"},
		{"-3.20", "-3.20"},
		{"0.005", "0.01"},
		{"1.234", "1.23"},
		{"1,000", "1000.00"},
		{"12,345", "12345.00"},
		{"1,234,567.89", "1234567.89"},
		{"-2,5", "-2.50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMoney(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestParseMoneyRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "NaN", "Inf", "-Inf", "1.2.3", "1e30",
		"1e-999999999", "2E5", "1,2345", "12,3456", "1,00,000", ",50", "1,234,5", "1,2,3"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseMoney(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "want validation error, got %v", err)
		})
	}
}

func TestMoneyFromFloatRejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := MoneyFromFloat(f)
		assert.ErrorIs(t, err, ErrValidation)
	}

	m, err := MoneyFromFloat(19.99)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), m.Cents())
}

func TestMoneySumHasNoDrift(t *testing.T) {
	var total Money
	tenth := MustParseMoney("0.10")
	for range 1000 {
		total = total.Add(tenth)
	}
	assert.True(t, total.Equal(MustParseMoney("100")), "sum = %s", total)
}

func TestMoneyCentsRoundTrip(t *testing.T) {
	for _, c := range []int64{0, 1, -1, 1999, 123456789} {
		assert.Equal(t, c, MoneyFromCents(c).Cents())
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustParseMoney("55")
	b := MustParseMoney("50")

	assert.Equal(t, "5.00", a.Sub(b).String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.True(t, a.Sub(b).IsPositive())
	assert.True(t, b.Sub(a).IsNegative())
	assert.True(t, a.Sub(a).IsZero())
	assert.Equal(t, "45.00", b.Mul(decimal.RequireFromString("0.9")).String())
	assert.InDelta(t, 1.1, a.Ratio(b), 1e-9)
	assert.Zero(t, a.Ratio(Money{}))
	assert.Equal(t, "105.00", SumMoney(a, b).String())
}

func TestMoneyText(t *testing.T) {
	var m Money
	require.NoError(t, m.UnmarshalText([]byte("3.5")))
	b, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "3.50", string(b))
}
