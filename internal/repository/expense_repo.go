package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expense_ledger/internal/models"

	"github.com/google/uuid"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

var _ Expenses = (*ExpenseRepository)(nil)

const (
	insertExpenseSQL = `
		INSERT INTO expenses (id, username, category, amount, week_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectExpenseByIDSQL = `
		SELECT id, username, category, amount, week_date, created_at
		FROM expenses WHERE id = ?
	`

	selectExpensesByUserSQL = `
		SELECT id, username, category, amount, week_date, created_at
		FROM expenses WHERE username = ?
		ORDER BY week_date DESC, created_at ASC
	`

	selectExpensesBetweenSQL = `
		SELECT id, username, category, amount, week_date, created_at
		FROM expenses WHERE username = ? AND week_date >= ? AND week_date <= ?
		ORDER BY week_date ASC, created_at ASC
	`

	updateExpenseSQL = `
		UPDATE expenses SET category = ?, amount = ?, week_date = ?
		WHERE id = ?
	`

	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ?`

	deleteExpensesBetweenSQL = `
		DELETE FROM expenses WHERE username = ? AND week_date >= ? AND week_date <= ?
	`
)

// Insert persists a new expense. Empty ID or zero CreatedAt are filled in.
func (r *ExpenseRepository) Insert(ctx context.Context, e models.Expense) error {
	e = withDefaults(e)
	_, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.ID,
		e.Username,
		e.Category,
		e.Amount,
		e.WeekDate,
		e.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("insert expense for %q: %w", e.Username, err)
	}
	return nil
}

// GetByID fetches one expense. Returns ErrNotFound when the id is unknown.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	var e models.Expense
	err := r.db.QueryRowContext(ctx, selectExpenseByIDSQL, id).
		Scan(&e.ID, &e.Username, &e.Category, &e.Amount, &e.WeekDate, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select expense %q: %w", id, err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

// ListByUser returns all expenses for a user, most recent week first.
func (r *ExpenseRepository) ListByUser(ctx context.Context, username string) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpensesByUserSQL, username)
	if err != nil {
		return nil, fmt.Errorf("list expenses for %q: %w", username, err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ListByUserBetween returns a user's expenses with week_date in [from, to].
func (r *ExpenseRepository) ListByUserBetween(ctx context.Context, username string, from, to models.Date) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpensesBetweenSQL, username, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses for %q between %s and %s: %w", username, from, to, err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// Update rewrites the mutable columns of an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, e models.Expense) error {
	res, err := r.db.ExecContext(ctx, updateExpenseSQL, e.Category, e.Amount, e.WeekDate, e.ID)
	if err != nil {
		return fmt.Errorf("update expense %q: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for expense %q: %w", e.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one expense. Returns ErrNotFound when the id is unknown.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteExpenseSQL, id)
	if err != nil {
		return fmt.Errorf("delete expense %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for expense %q: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceWeek deletes the user's expenses in [from, to] and inserts items,
// all-or-nothing. Any failure mid-sequence rolls the whole operation back.
func (r *ExpenseRepository) ReplaceWeek(ctx context.Context, username string, from, to models.Date, items []models.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace week for %q: %w", username, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteExpensesBetweenSQL, username, from, to); err != nil {
		return fmt.Errorf("delete week expenses for %q: %w", username, err)
	}

	for _, e := range items {
		e = withDefaults(e)
		if _, err := tx.ExecContext(ctx, insertExpenseSQL,
			e.ID,
			e.Username,
			e.Category,
			e.Amount,
			e.WeekDate,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		); err != nil {
			return fmt.Errorf("insert week expense for %q: %w", e.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace week for %q: %w", username, err)
	}
	return nil
}

func withDefaults(e models.Expense) models.Expense {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	} else {
		e.CreatedAt = e.CreatedAt.UTC()
	}
	return e
}

func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	out := make([]models.Expense, 0, 16)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Username, &e.Category, &e.Amount, &e.WeekDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
