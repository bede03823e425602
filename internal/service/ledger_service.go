package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expense_ledger/internal/apperr"
	"expense_ledger/internal/models"
	"expense_ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService implements expense CRUD and bulk week replacement.
type LedgerService struct {
	users    repository.Users
	expenses repository.Expenses
	now      func() time.Time
}

func NewLedgerService(users repository.Users, expenses repository.Expenses) *LedgerService {
	return &LedgerService{users: users, expenses: expenses, now: time.Now}
}

// Add validates and persists a new expense. An omitted week_date defaults
// to today.
func (s *LedgerService) Add(ctx context.Context, p AddExpenseParams) (*models.Expense, error) {
	username := strings.TrimSpace(p.Username)
	category := strings.TrimSpace(p.Category)
	if username == "" || category == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "username and category are required")
	}
	amount, err := normalizeAmount(p.Amount)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	weekDate := models.DateOf(now)
	if p.WeekDate != "" {
		weekDate, err = models.ParseDate(p.WeekDate)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidInput, err.Error())
		}
	}

	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	e := models.Expense{
		ID:        uuid.NewString(),
		Username:  username,
		Category:  category,
		Amount:    amount,
		WeekDate:  weekDate,
		CreatedAt: now,
	}
	if err := s.expenses.Insert(ctx, e); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "save expense", err)
	}
	return &e, nil
}

// List returns all of a user's expenses, most recent week first.
func (s *LedgerService) List(ctx context.Context, username string) ([]models.Expense, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	out, err := s.expenses.ListByUser(ctx, username)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list expenses", err)
	}
	return out, nil
}

// Update applies only the fields present in the patch, each validated
// under the same rules as Add.
func (s *LedgerService) Update(ctx context.Context, id string, p UpdateExpenseParams) (*models.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "expense not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load expense", err)
	}

	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if category == "" {
			return nil, apperr.New(apperr.KindInvalidInput, "category must not be empty")
		}
		e.Category = category
	}
	if p.Amount != nil {
		amount, err := normalizeAmount(p.Amount)
		if err != nil {
			return nil, err
		}
		e.Amount = amount
	}
	if p.WeekDate != nil {
		weekDate, err := models.ParseDate(*p.WeekDate)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidInput, err.Error())
		}
		e.WeekDate = weekDate
	}

	if err := s.expenses.Update(ctx, *e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "expense not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "update expense", err)
	}
	return e, nil
}

// Delete removes one expense by id. Deleting an already-deleted id fails
// with NotFound, it does not silently succeed.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	if err := s.expenses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "expense not found")
		}
		return apperr.Wrap(apperr.KindInternal, "delete expense", err)
	}
	return nil
}

// WeekExpenses lists the user's expenses inside the Jan-1 anchored bucket
// for weekNumber in the current year.
func (s *LedgerService) WeekExpenses(ctx context.Context, username string, weekNumber int) (*WeekExpenses, error) {
	rng, err := s.weekRange(weekNumber)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	out, err := s.expenses.ListByUserBetween(ctx, username, rng.Start, rng.End)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list week expenses", err)
	}
	return &WeekExpenses{WeekNumber: weekNumber, Range: rng, Expenses: out}, nil
}

// ReplaceWeek swaps all of the user's expenses in the given week bucket
// for the provided items, atomically. Every item is validated before any
// write, and the store operation runs in one transaction, so an invalid
// item leaves the week untouched.
func (s *LedgerService) ReplaceWeek(ctx context.Context, username string, weekNumber int, items []WeekItem) (*WeekRange, error) {
	rng, err := s.weekRange(weekNumber)
	if err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rows := make([]models.Expense, 0, len(items))
	for i, item := range items {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			return nil, apperr.New(apperr.KindInvalidInput, fmt.Sprintf("item %d: category is required", i+1))
		}
		amount, err := normalizeAmount(item.Amount)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidInput, fmt.Sprintf("item %d: %v", i+1, err))
		}
		rows = append(rows, models.Expense{
			ID:        uuid.NewString(),
			Username:  username,
			Category:  category,
			Amount:    amount,
			WeekDate:  rng.Start,
			CreatedAt: now,
		})
	}

	if err := s.expenses.ReplaceWeek(ctx, username, rng.Start, rng.End, rows); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "replace week expenses", err)
	}
	return &rng, nil
}

func (s *LedgerService) weekRange(weekNumber int) (WeekRange, error) {
	if weekNumber < 1 {
		return WeekRange{}, apperr.New(apperr.KindInvalidInput, "week number must be >= 1")
	}
	return NumberedWeek(s.now().UTC().Year(), weekNumber), nil
}

func (s *LedgerService) requireUser(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return apperr.New(apperr.KindInvalidInput, "username is required")
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
	if u == nil {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	return nil
}

// normalizeAmount enforces presence and non-negativity and rounds to
// cent precision so repeated updates cannot accumulate drift.
func normalizeAmount(amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Decimal{}, apperr.New(apperr.KindInvalidInput, "amount is required")
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, apperr.New(apperr.KindInvalidInput, "amount must be non-negative")
	}
	return amount.Round(2), nil
}
