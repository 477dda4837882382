// Package tracker is the write path of scold: every change to expenses or
// budgets is followed, in the same call, by a fresh budget check whose alerts
// are dispatched before the call returns.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/theirongolddev/scold/internal/alert"
	"github.com/theirongolddev/scold/internal/budget"
	"github.com/theirongolddev/scold/internal/model"
	"github.com/theirongolddev/scold/internal/notify"
)

// Store is the persistence the tracker drives.
type Store interface {
	budget.Source
	AddExpense(ctx context.Context, e model.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (model.Expense, error)
	UpdateExpense(ctx context.Context, e model.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	SetBudget(ctx context.Context, b model.Budget) error
	DeleteBudget(ctx context.Context, category string) error
	Categories(ctx context.Context) ([]string, error)
}

// CategoryRegistry owns the known category set.
type CategoryRegistry interface {
	// Ensure adds name if it is unknown, reporting whether it was added.
	Ensure(name string) (bool, error)
	Remove(name string) error
	// Merge adds every unknown name, reporting how many were added.
	Merge(names []string) (int, error)
}

// Notifier delivers alerts. Delivery problems are its own concern.
type Notifier interface {
	Send(ctx context.Context, n notify.Notification)
}

// Options tune what Check reports.
type Options struct {
	// WarnApproaching also raises mild alerts for budgets near their limit.
	WarnApproaching bool
}

// Tracker coordinates writes, evaluation and alert delivery.
type Tracker struct {
	store      Store
	categories CategoryRegistry
	policy     *alert.Policy
	notifier   Notifier
	opts       Options
	log        *slog.Logger
}

// New returns a tracker. A nil policy uses alert.DefaultPolicy; a nil
// notifier drops alerts after they are computed.
func New(store Store, categories CategoryRegistry, policy *alert.Policy, notifier Notifier, opts Options) *Tracker {
	if policy == nil {
		policy = alert.DefaultPolicy()
	}
	return &Tracker{
		store:      store,
		categories: categories,
		policy:     policy,
		notifier:   notifier,
		opts:       opts,
		log:        slog.Default().With("component", "tracker"),
	}
}

// Store returns the underlying store for read-only callers.
func (t *Tracker) Store() Store { return t.store }

// Policy returns the alert policy in use.
func (t *Tracker) Policy() *alert.Policy { return t.policy }

// AddExpense records e and checks budgets.
func (t *Tracker) AddExpense(ctx context.Context, e model.Expense) (int64, []alert.Alert, error) {
	if err := e.Validate(); err != nil {
		return 0, nil, err
	}
	var id int64
	err := t.withCategory(e.Category, func() error {
		var err error
		id, err = t.store.AddExpense(ctx, e)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	alerts, err := t.Check(ctx)
	return id, alerts, err
}

// AddExpenses records a batch, such as an imported statement, and checks
// budgets once at the end. onAdded, if set, is called after each write.
// A failing expense stops the batch; the ones before it stay recorded, are
// still checked, and their ids and alerts are returned alongside the error.
func (t *Tracker) AddExpenses(ctx context.Context, es []model.Expense, onAdded func(model.Expense)) ([]int64, []alert.Alert, error) {
	ids := make([]int64, 0, len(es))
	batchErr := t.addEach(ctx, es, func(e model.Expense) {
		ids = append(ids, e.ID)
		if onAdded != nil {
			onAdded(e)
		}
	})
	if len(ids) == 0 {
		return ids, nil, batchErr
	}

	checkCtx := ctx
	if ctx.Err() != nil {
		// committed rows still get their check
		checkCtx = context.WithoutCancel(ctx)
	}
	alerts, err := t.Check(checkCtx)
	return ids, alerts, errors.Join(batchErr, err)
}

func (t *Tracker) addEach(ctx context.Context, es []model.Expense, added func(model.Expense)) error {
	for _, e := range es {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Validate(); err != nil {
			return err
		}
		err := t.withCategory(e.Category, func() error {
			id, err := t.store.AddExpense(ctx, e)
			if err == nil {
				e.ID = id
			}
			return err
		})
		if err != nil {
			return err
		}
		added(e)
	}
	return nil
}

// UpdateExpense replaces the stored expense with e.ID and checks budgets.
func (t *Tracker) UpdateExpense(ctx context.Context, e model.Expense) ([]alert.Alert, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	err := t.withCategory(e.Category, func() error {
		return t.store.UpdateExpense(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return t.Check(ctx)
}

// DeleteExpense removes an expense and checks budgets.
func (t *Tracker) DeleteExpense(ctx context.Context, id int64) ([]alert.Alert, error) {
	if err := t.store.DeleteExpense(ctx, id); err != nil {
		return nil, err
	}
	return t.Check(ctx)
}

// SetBudget stores b, replacing any budget for the category, and checks budgets.
func (t *Tracker) SetBudget(ctx context.Context, b model.Budget) ([]alert.Alert, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	err := t.withCategory(b.Category, func() error {
		return t.store.SetBudget(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return t.Check(ctx)
}

// DeleteBudget removes the budget for category and checks budgets.
func (t *Tracker) DeleteBudget(ctx context.Context, category string) ([]alert.Alert, error) {
	if err := t.store.DeleteBudget(ctx, category); err != nil {
		return nil, err
	}
	return t.Check(ctx)
}

// Check recomputes every budget from scratch, dispatches one alert per
// overspent category in category order, and returns what it dispatched.
func (t *Tracker) Check(ctx context.Context) ([]alert.Alert, error) {
	alerts, err := t.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range alerts {
		t.log.Info("budget alert", "category", a.Category, "tier", a.Tier, "amount", a.Amount.String())
		if t.notifier != nil {
			t.notifier.Send(ctx, notify.Notification{
				Title:    a.Title,
				Message:  a.Message,
				Category: a.Category,
				Tier:     string(a.Tier),
				Amount:   a.Amount.String(),
			})
		}
	}
	return alerts, nil
}

// RemoveCategory drops name from the category set. A category still
// referenced by an expense or budget cannot be removed.
func (t *Tracker) RemoveCategory(ctx context.Context, name string) error {
	used, err := t.store.Categories(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(used, name) {
		return &model.ValidationError{
			Field:  "category",
			Reason: fmt.Sprintf("%q is still used by recorded expenses or budgets", name),
		}
	}
	return t.categories.Remove(name)
}

// ReconcileCategories adds every category the store references but the
// set is missing, e.g. after the config file was edited by hand.
func (t *Tracker) ReconcileCategories(ctx context.Context) (int, error) {
	used, err := t.store.Categories(ctx)
	if err != nil {
		return 0, err
	}
	n, err := t.categories.Merge(used)
	if n > 0 {
		t.log.Info("restored categories in use", "count", n)
	}
	return n, err
}

// Evaluate computes the alerts Check would raise without dispatching them.
func (t *Tracker) Evaluate(ctx context.Context) ([]alert.Alert, error) {
	report, err := budget.OverspendingReport(ctx, t.store)
	if err != nil {
		return nil, fmt.Errorf("evaluating budgets: %w", err)
	}

	var alerts []alert.Alert
	for _, c := range report.Categories() {
		if a, ok := t.policy.Overspent(c, report[c]); ok {
			alerts = append(alerts, a)
		}
	}

	if t.opts.WarnApproaching {
		near, err := budget.ApproachingReport(ctx, t.store, t.policy.Proximity)
		if err != nil {
			return nil, fmt.Errorf("evaluating budgets: %w", err)
		}
		for _, c := range near.Categories() {
			alerts = append(alerts, t.policy.Approaching(c, near[c]))
		}
	}
	return alerts, nil
}

// withCategory makes sure category is known before write runs. A category
// added for a write that then fails is removed again.
func (t *Tracker) withCategory(category string, write func() error) error {
	if t.categories == nil {
		return write()
	}
	added, err := t.categories.Ensure(category)
	if err != nil {
		return fmt.Errorf("registering category %q: %w", category, err)
	}
	if err := write(); err != nil {
		if added {
			if rerr := t.categories.Remove(category); rerr != nil {
				t.log.Warn("reverting category failed", "category", category, "error", rerr)
			}
		}
		return err
	}
	if added {
		t.log.Info("category added", "category", category)
	}
	return nil
}
