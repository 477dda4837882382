// Package budget derives overspending state from stored expenses and budgets.
// Nothing here caches; every call reads the source afresh.
package budget

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/scold/internal/model"
)

// Source is the read side of the store the evaluator needs.
type Source interface {
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	GetBudget(ctx context.Context, category string) (*model.Budget, error)
	ListBudgets(ctx context.Context) ([]model.Budget, error)
}

// Report maps a category to a strictly positive amount.
type Report map[string]model.Money

// Categories returns the report's keys in sorted order.
func (r Report) Categories() []string {
	out := make([]string, 0, len(r))
	for c := range r {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// TotalSpent sums the amounts of expenses whose category is exactly category.
func TotalSpent(expenses []model.Expense, category string) model.Money {
	var total model.Money
	for _, e := range expenses {
		if e.Category == category {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Deviation returns spend minus limit for category. A category without a
// budget never overspends, so its deviation is zero.
func Deviation(ctx context.Context, src Source, category string) (model.Money, error) {
	b, err := src.GetBudget(ctx, category)
	if err != nil {
		return model.Money{}, fmt.Errorf("loading budget %q: %w", category, err)
	}
	if b == nil {
		return model.Money{}, nil
	}
	expenses, err := src.ListExpenses(ctx)
	if err != nil {
		return model.Money{}, fmt.Errorf("loading expenses: %w", err)
	}
	return TotalSpent(expenses, category).Sub(b.Limit), nil
}

// OverspendingReport returns every budgeted category whose spend strictly
// exceeds its limit, mapped to the overage.
func OverspendingReport(ctx context.Context, src Source) (Report, error) {
	usage, err := Usage(ctx, src)
	if err != nil {
		return nil, err
	}
	report := make(Report)
	for _, u := range usage {
		if d := u.Spent.Sub(u.Limit); d.IsPositive() {
			report[u.Category] = d
		}
	}
	return report, nil
}

// ApproachingReport returns budgeted categories whose spend has reached
// fraction of the limit without exceeding it, mapped to the remaining amount.
// Zero limits are skipped since they can only ever be over or exactly met.
func ApproachingReport(ctx context.Context, src Source, fraction decimal.Decimal) (Report, error) {
	usage, err := Usage(ctx, src)
	if err != nil {
		return nil, err
	}
	report := make(Report)
	for _, u := range usage {
		if !u.Limit.IsPositive() || u.Over() {
			continue
		}
		threshold := u.Limit.Mul(fraction)
		if u.Spent.Cmp(threshold) >= 0 {
			report[u.Category] = u.Remaining
		}
	}
	return report, nil
}

// Usage returns spend against every budget, in the source's budget order.
func Usage(ctx context.Context, src Source) ([]model.BudgetUsage, error) {
	budgets, err := src.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	expenses, err := src.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	spent := make(map[string]model.Money, len(budgets))
	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}

	out := make([]model.BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		s := spent[b.Category]
		out = append(out, model.BudgetUsage{
			Category:  b.Category,
			Limit:     b.Limit,
			Spent:     s,
			Remaining: b.Limit.Sub(s),
			UsedRatio: s.Ratio(b.Limit),
		})
	}
	return out, nil
}
