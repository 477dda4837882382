package model

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxMoney bounds amounts so their cent value always fits in an int64.
var maxMoney = decimal.New(90_000_000_000_000_000, -2)

// Money is a fixed-point currency amount with two decimal places.
// The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rounds d half away from zero to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

// MoneyFromCents builds a Money from an integer number of cents.
func MoneyFromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

// MoneyFromFloat converts a float64, rejecting NaN and infinities.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, &ValidationError{Field: "amount", Reason: "must be a finite number"}
	}
	return checkRange(NewMoney(decimal.NewFromFloat(f)))
}

var (
	decimalCommaRe = regexp.MustCompile(`^[+-]?\d+,\d{1,2}$`)
	groupedRe      = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// ParseMoney parses a decimal string such as "12.50", "-3", "12,50" or
// "1,234.50". A comma is either a decimal mark followed by one or two digits
// or a thousands separator; any other comma, and exponent notation, is a
// validation error.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, &ValidationError{Field: "amount", Reason: "is required"}
	}
	if strings.ContainsAny(s, "eE") {
		return Money{}, &ValidationError{Field: "amount", Reason: "must be a plain decimal number"}
	}
	if strings.Contains(s, ",") {
		switch {
		case decimalCommaRe.MatchString(s):
			s = strings.Replace(s, ",", ".", 1)
		case groupedRe.MatchString(s):
			s = strings.ReplaceAll(s, ",", "")
		default:
			return Money{}, &ValidationError{Field: "amount", Reason: "has a misplaced comma"}
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &ValidationError{Field: "amount", Reason: "must be a finite number"}
	}
	return checkRange(NewMoney(d))
}

// MustParseMoney is ParseMoney for constants and tests; it panics on bad input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func checkRange(m Money) (Money, error) {
	if m.amount.Abs().GreaterThan(maxMoney) {
		return Money{}, &ValidationError{Field: "amount", Reason: "is out of range"}
	}
	return m, nil
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.amount.Shift(2).IntPart()
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{amount: m.amount.Add(o.amount)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{amount: m.amount.Sub(o.amount)}
}

// Mul scales m by f and rounds back to cents.
func (m Money) Mul(f decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(f))
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Cmp compares m and o: -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.amount.Cmp(o.amount)
}

// Equal reports whether m and o are the same amount.
func (m Money) Equal(o Money) bool {
	return m.amount.Equal(o.amount)
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Ratio returns m / o as a float, or 0 when o is zero. Display only.
func (m Money) Ratio(o Money) float64 {
	if o.IsZero() {
		return 0
	}
	f, _ := m.amount.Div(o.amount).Float64()
	return f
}

// Float64 returns an approximate float value for charts. Never sum these.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalText implements encoding.TextMarshaler.
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Money) UnmarshalText(b []byte) error {
	parsed, err := ParseMoney(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SumMoney adds up a list of amounts exactly.
func SumMoney(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
