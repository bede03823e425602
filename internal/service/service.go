package service

import (
	"context"

	"expense_ledger/internal/models"
	"expense_ledger/internal/repository"

	"github.com/shopspring/decimal"
)

type Accounts interface {
	SignUp(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// Ledger exposes expense CRUD plus the week-indexed read/replace pair.
type Ledger interface {
	Add(ctx context.Context, p AddExpenseParams) (*models.Expense, error)
	List(ctx context.Context, username string) ([]models.Expense, error)
	Update(ctx context.Context, id string, p UpdateExpenseParams) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
	WeekExpenses(ctx context.Context, username string, weekNumber int) (*WeekExpenses, error)
	ReplaceWeek(ctx context.Context, username string, weekNumber int, items []WeekItem) (*WeekRange, error)
}

// Summaries exposes the per-week aggregation reads.
type Summaries interface {
	Weekly(ctx context.Context, username string) (*models.Summary, error)
	WeeklyByNumber(ctx context.Context, username string, weekNumber int) (*models.Summary, error)
}

// AddExpenseParams carries a validated-later add request. Amount is a
// pointer so a missing field is distinguishable from zero.
type AddExpenseParams struct {
	Username string
	Category string
	Amount   *decimal.Decimal
	WeekDate string // YYYY-MM-DD; empty means today
}

// UpdateExpenseParams is a partial patch; nil fields stay unchanged.
type UpdateExpenseParams struct {
	Category *string
	Amount   *decimal.Decimal
	WeekDate *string
}

// WeekItem is one entry of a bulk week replace.
type WeekItem struct {
	Category string
	Amount   *decimal.Decimal
}

// WeekExpenses is the result of a week-indexed listing.
type WeekExpenses struct {
	WeekNumber int
	Range      WeekRange
	Expenses   []models.Expense
}

type Service struct {
	Accounts
	Ledger
	Summaries
}

func NewService(repos *repository.Repository, policy WeekPolicy) *Service {
	return &Service{
		Accounts:  NewAccountService(repos.Users),
		Ledger:    NewLedgerService(repos.Users, repos.Expenses),
		Summaries: NewSummaryService(repos.Users, repos.Expenses, policy),
	}
}
