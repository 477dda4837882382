// Package model defines the domain types shared across scold.
package model

import (
	"strings"
	"time"
)

// DateLayout is the on-disk and command-line date format.
const DateLayout = "2006-01-02"

// Date is a calendar date without time-of-day semantics.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Expense is a single recorded spend. ID is assigned by the store.
type Expense struct {
	ID          int64
	Date        Date
	Amount      Money
	Category    string
	Description string
}

// Validate checks the fields a write depends on.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Reason: "cannot be empty"}
	}
	if _, err := checkRange(e.Amount); err != nil {
		return err
	}
	return nil
}
