package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"expense_ledger/internal/models"
)

// ErrNotFound is returned when a record id or username does not exist.
var ErrNotFound = errors.New("record not found")

type Users interface {
	Create(ctx context.Context, username, passwordHash string, createdAt time.Time) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Expenses interface {
	Insert(ctx context.Context, e models.Expense) error
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	ListByUser(ctx context.Context, username string) ([]models.Expense, error)
	ListByUserBetween(ctx context.Context, username string, from, to models.Date) ([]models.Expense, error)
	Update(ctx context.Context, e models.Expense) error
	Delete(ctx context.Context, id string) error
	// ReplaceWeek deletes every expense of username with week_date in
	// [from, to] and inserts items, all inside one transaction.
	ReplaceWeek(ctx context.Context, username string, from, to models.Date, items []models.Expense) error
}

type Repository struct {
	Users    Users
	Expenses Expenses
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Expenses: NewExpenseRepository(db),
	}
}
