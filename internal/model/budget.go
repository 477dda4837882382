package model

import "strings"

// Budget is the spend ceiling for one category. Category is the key.
type Budget struct {
	Category string
	Limit    Money
}

// Validate checks the budget before it is stored.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return &ValidationError{Field: "category", Reason: "cannot be empty"}
	}
	if _, err := checkRange(b.Limit); err != nil {
		return err
	}
	return nil
}

// BudgetUsage holds how much of a budget has been consumed.
type BudgetUsage struct {
	Category  string
	Limit     Money
	Spent     Money
	Remaining Money // negative when over budget
	UsedRatio float64
}

// Over reports whether spend strictly exceeds the limit.
func (u BudgetUsage) Over() bool {
	return u.Spent.Cmp(u.Limit) > 0
}
