package model

import "time"

// CategoryTotal is the spend for one category over a set of expenses.
type CategoryTotal struct {
	Category     string
	Total        Money
	Count        int
	SharePercent float64
}

// MonthTotal holds spend for one calendar month.
type MonthTotal struct {
	Month time.Time // first day of the month, UTC
	Total Money
	Count int
}

// Summary is the top-level aggregate across all expenses.
type Summary struct {
	TotalSpent   Money
	ExpenseCount int
	Categories   int
	First        Date
	Last         Date
}
