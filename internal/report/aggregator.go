// Package report summarizes stored expenses for tables and charts.
package report

import (
	"sort"
	"time"

	"github.com/theirongolddev/scold/internal/model"
)

// ByCategory totals expenses per category, largest first. Ties sort by name.
func ByCategory(expenses []model.Expense) []model.CategoryTotal {
	byCat := make(map[string]*model.CategoryTotal)
	var grand model.Money

	for _, e := range expenses {
		ct, ok := byCat[e.Category]
		if !ok {
			ct = &model.CategoryTotal{Category: e.Category}
			byCat[e.Category] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
		grand = grand.Add(e.Amount)
	}

	out := make([]model.CategoryTotal, 0, len(byCat))
	for _, ct := range byCat {
		ct.SharePercent = ct.Total.Ratio(grand) * 100
		out = append(out, *ct)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ByMonth totals expenses per calendar month, most recent first.
func ByMonth(expenses []model.Expense) []model.MonthTotal {
	byMonth := make(map[time.Time]*model.MonthTotal)
	for _, e := range expenses {
		key := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		mt, ok := byMonth[key]
		if !ok {
			mt = &model.MonthTotal{Month: key}
			byMonth[key] = mt
		}
		mt.Total = mt.Total.Add(e.Amount)
		mt.Count++
	}

	out := make([]model.MonthTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.After(out[j].Month)
	})
	return out
}

// Summarize computes headline numbers across expenses.
func Summarize(expenses []model.Expense) model.Summary {
	var s model.Summary
	cats := make(map[string]struct{})
	for _, e := range expenses {
		s.TotalSpent = s.TotalSpent.Add(e.Amount)
		s.ExpenseCount++
		cats[e.Category] = struct{}{}
		if s.First.IsZero() || e.Date.Before(s.First.Time) {
			s.First = e.Date
		}
		if s.Last.IsZero() || e.Date.After(s.Last.Time) {
			s.Last = e.Date
		}
	}
	s.Categories = len(cats)
	return s
}

// Filter returns expenses dated within [since, until]. Zero bounds are open.
func Filter(expenses []model.Expense, since, until model.Date) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if !since.IsZero() && e.Date.Before(since.Time) {
			continue
		}
		if !until.IsZero() && e.Date.After(until.Time) {
			continue
		}
		out = append(out, e)
	}
	return out
}
