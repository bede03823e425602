package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"expense_ledger/internal/apperr"
	"expense_ledger/internal/models"
	"expense_ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// SummaryService computes the per-week category aggregation.
type SummaryService struct {
	users    repository.Users
	expenses repository.Expenses
	policy   WeekPolicy
	now      func() time.Time
}

func NewSummaryService(users repository.Users, expenses repository.Expenses, policy WeekPolicy) *SummaryService {
	return &SummaryService{users: users, expenses: expenses, policy: policy, now: time.Now}
}

// Weekly summarizes the current week, with the window chosen by the
// configured policy.
func (s *SummaryService) Weekly(ctx context.Context, username string) (*models.Summary, error) {
	today := models.DateOf(s.now())
	return s.summarize(ctx, username, CurrentWeek(s.policy, today))
}

// WeeklyByNumber summarizes the Jan-1 anchored bucket for weekNumber in
// the current year, regardless of policy.
func (s *SummaryService) WeeklyByNumber(ctx context.Context, username string, weekNumber int) (*models.Summary, error) {
	if weekNumber < 1 {
		return nil, apperr.New(apperr.KindInvalidInput, "week number must be >= 1")
	}
	return s.summarize(ctx, username, NumberedWeek(s.now().UTC().Year(), weekNumber))
}

func (s *SummaryService) summarize(ctx context.Context, username string, rng WeekRange) (*models.Summary, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "username is required")
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
	if u == nil {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}

	expenses, err := s.expenses.ListByUserBetween(ctx, username, rng.Start, rng.End)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list week expenses", err)
	}

	return buildSummary(username, rng, expenses), nil
}

// buildSummary reduces the expenses of one week window: sum per category,
// overall total, and the single highest-spending category. Ties on the
// maximum are broken lexicographically so the result is deterministic.
func buildSummary(username string, rng WeekRange, expenses []models.Expense) *models.Summary {
	totals := make(map[string]decimal.Decimal, len(expenses))
	total := decimal.Zero
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	summary := &models.Summary{
		Username:       username,
		WeekStart:      rng.Start,
		WeekEnd:        rng.End,
		CategoryTotals: totals,
		TotalAmount:    total,
		ExpenseCount:   len(expenses),
	}

	if len(totals) == 0 {
		return summary
	}

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	top := categories[0]
	for _, c := range categories[1:] {
		if totals[c].GreaterThan(totals[top]) {
			top = c
		}
	}
	summary.HighestCategory = &models.CategoryTotal{Category: top, Amount: totals[top]}
	return summary
}
