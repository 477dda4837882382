// Package store persists expenses and budgets in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/theirongolddev/scold/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is the durable record of expenses and budgets. A Store serializes its
// writes; each mutating call commits or rolls back as a whole.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the database at dbPath and applies pending migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		return nil, &model.StoreError{Op: "migrate", Err: err}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(full)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &model.StoreError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &model.StoreError{Op: "open", Err: err}
	}

	return &Store{db: db, log: slog.Default().With("component", "store")}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddExpense validates and inserts e, returning the assigned id.
func (s *Store) AddExpense(ctx context.Context, e model.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.withTx(ctx, "add expense", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (date, amount_cents, category, description) VALUES (?, ?, ?, ?)`,
			e.Date.String(), e.Amount.Cents(), e.Category, e.Description)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug("expense added", "id", id, "category", e.Category, "amount", e.Amount.String())
	return id, nil
}

// ListExpenses returns every expense, newest date first. Expenses sharing a
// date come back in insertion order.
func (s *Store) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, amount_cents, category, description FROM expenses ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, &model.StoreError{Op: "list expenses", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, &model.StoreError{Op: "list expenses", Err: err}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StoreError{Op: "list expenses", Err: err}
	}
	return out, nil
}

// GetExpense loads one expense by id.
func (s *Store) GetExpense(ctx context.Context, id int64) (model.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date, amount_cents, category, description FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return model.Expense{}, &model.NotFoundError{Kind: "expense", Key: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return model.Expense{}, &model.StoreError{Op: "get expense", Err: err}
	}
	return e, nil
}

// UpdateExpense replaces every field of the expense with e.ID.
func (s *Store) UpdateExpense(ctx context.Context, e model.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.withTx(ctx, "update expense", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE expenses SET date = ?, amount_cents = ?, category = ?, description = ? WHERE id = ?`,
			e.Date.String(), e.Amount.Cents(), e.Category, e.Description, e.ID)
		if err != nil {
			return err
		}
		return requireRow(res, "expense", strconv.FormatInt(e.ID, 10))
	})
}

// DeleteExpense removes the expense with id. Deleting an absent id is an error.
func (s *Store) DeleteExpense(ctx context.Context, id int64) error {
	return s.withTx(ctx, "delete expense", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireRow(res, "expense", strconv.FormatInt(id, 10))
	})
}

// SetBudget inserts or replaces the budget for b.Category.
func (s *Store) SetBudget(ctx context.Context, b model.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	err := s.withTx(ctx, "set budget", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (category, limit_cents) VALUES (?, ?)
			 ON CONFLICT(category) DO UPDATE SET limit_cents = excluded.limit_cents`,
			b.Category, b.Limit.Cents())
		return err
	})
	if err != nil {
		return err
	}
	s.log.Debug("budget set", "category", b.Category, "limit", b.Limit.String())
	return nil
}

// GetBudget returns the budget for category, or nil if none is set.
func (s *Store) GetBudget(ctx context.Context, category string) (*model.Budget, error) {
	var cents int64
	err := s.db.QueryRowContext(ctx,
		`SELECT limit_cents FROM budgets WHERE category = ?`, category).Scan(&cents)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &model.StoreError{Op: "get budget", Err: err}
	}
	return &model.Budget{Category: category, Limit: model.MoneyFromCents(cents)}, nil
}

// ListBudgets returns all budgets ordered by category.
func (s *Store) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_cents FROM budgets ORDER BY category`)
	if err != nil {
		return nil, &model.StoreError{Op: "list budgets", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []model.Budget
	for rows.Next() {
		var b model.Budget
		var cents int64
		if err := rows.Scan(&b.Category, &cents); err != nil {
			return nil, &model.StoreError{Op: "list budgets", Err: err}
		}
		b.Limit = model.MoneyFromCents(cents)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StoreError{Op: "list budgets", Err: err}
	}
	return out, nil
}

// DeleteBudget removes the budget for category.
func (s *Store) DeleteBudget(ctx context.Context, category string) error {
	return s.withTx(ctx, "delete budget", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, category)
		if err != nil {
			return err
		}
		return requireRow(res, "budget", category)
	})
}

// Categories returns the distinct categories referenced by stored rows.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category FROM expenses UNION SELECT category FROM budgets ORDER BY 1`)
	if err != nil {
		return nil, &model.StoreError{Op: "categories", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, &model.StoreError{Op: "categories", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.StoreError{Op: "categories", Err: err}
	}
	return out, nil
}

// ExpenseCount returns the number of stored expenses.
func (s *Store) ExpenseCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&n); err != nil {
		return 0, &model.StoreError{Op: "count", Err: err}
	}
	return n, nil
}

// withTx runs fn in a transaction. Domain errors from fn pass through as-is;
// everything else is wrapped in a StoreError.
func (s *Store) withTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &model.StoreError{Op: op, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		if _, ok := err.(*model.NotFoundError); ok {
			return err
		}
		return &model.StoreError{Op: op, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &model.StoreError{Op: op, Err: err}
	}
	return nil
}

func requireRow(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &model.NotFoundError{Kind: kind, Key: key}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(r scanner) (model.Expense, error) {
	var e model.Expense
	var date string
	var cents int64
	if err := r.Scan(&e.ID, &date, &cents, &e.Category, &e.Description); err != nil {
		return model.Expense{}, err
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return model.Expense{}, fmt.Errorf("row %d: %w", e.ID, err)
	}
	e.Date = d
	e.Amount = model.MoneyFromCents(cents)
	return e, nil
}
