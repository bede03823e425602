package service

import (
	"context"
	"testing"
	"time"

	"expense_ledger/internal/apperr"
	"expense_ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(category, amount string) models.Expense {
	return models.Expense{Category: category, Amount: decimal.RequireFromString(amount)}
}

func testRange() WeekRange {
	return WeekRange{
		Start: models.NewDate(2024, time.January, 8),
		End:   models.NewDate(2024, time.January, 14),
	}
}

func TestBuildSummary_TotalsAndHighestCategory(t *testing.T) {
	s := buildSummary("alice", testRange(), []models.Expense{
		expense("food", "10"),
		expense("rent", "50"),
	})

	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, "2024-01-08", s.WeekStart.String())
	assert.Equal(t, "2024-01-14", s.WeekEnd.String())
	assert.Equal(t, 2, s.ExpenseCount)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("60")))

	require.NotNil(t, s.HighestCategory)
	assert.Equal(t, "rent", s.HighestCategory.Category)
	assert.True(t, s.HighestCategory.Amount.Equal(decimal.RequireFromString("50")))
}

func TestBuildSummary_CategoryTotalsSumToTotal(t *testing.T) {
	s := buildSummary("alice", testRange(), []models.Expense{
		expense("food", "12.50"),
		expense("food", "7.49"),
		expense("rent", "800.01"),
		expense("fun", "0.99"),
	})

	sum := decimal.Zero
	for _, v := range s.CategoryTotals {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(s.TotalAmount), "per-category totals must sum exactly to total_amount")
	assert.True(t, s.CategoryTotals["food"].Equal(decimal.RequireFromString("19.99")))
}

func TestBuildSummary_HighestCategoryAmountIsMaximum(t *testing.T) {
	s := buildSummary("alice", testRange(), []models.Expense{
		expense("a", "3"),
		expense("b", "9"),
		expense("c", "7"),
	})

	require.NotNil(t, s.HighestCategory)
	for _, v := range s.CategoryTotals {
		assert.True(t, s.HighestCategory.Amount.GreaterThanOrEqual(v))
	}
}

func TestBuildSummary_TieBrokenLexicographically(t *testing.T) {
	s := buildSummary("alice", testRange(), []models.Expense{
		expense("zeta", "25"),
		expense("alpha", "25"),
		expense("mid", "10"),
	})

	require.NotNil(t, s.HighestCategory)
	assert.Equal(t, "alpha", s.HighestCategory.Category)
}

func TestBuildSummary_EmptyWeek(t *testing.T) {
	s := buildSummary("alice", testRange(), nil)

	assert.Nil(t, s.HighestCategory)
	assert.Zero(t, s.ExpenseCount)
	assert.True(t, s.TotalAmount.IsZero())
	assert.Empty(t, s.CategoryTotals)
}

func newSummaryForTest(policy WeekPolicy, expenses *mockExpenses) *SummaryService {
	svc := NewSummaryService(newMockUsers("alice"), expenses, policy)
	// 2024-01-10 is a Wednesday.
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSummaryService_Weekly_WindowFollowsPolicy(t *testing.T) {
	tests := []struct {
		policy    WeekPolicy
		wantStart string
		wantEnd   string
	}{
		{PolicyCalendar, "2024-01-08", "2024-01-14"},
		{PolicyTrailing, "2024-01-04", "2024-01-10"},
		{PolicyNumbered, "2024-01-08", "2024-01-14"},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			expenses := &mockExpenses{}
			svc := newSummaryForTest(tt.policy, expenses)

			s, err := svc.Weekly(context.Background(), "alice")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, s.WeekStart.String())
			assert.Equal(t, tt.wantEnd, s.WeekEnd.String())
			// The store query window matches the reported period.
			assert.Equal(t, tt.wantStart, expenses.lastFrom.String())
			assert.Equal(t, tt.wantEnd, expenses.lastTo.String())
		})
	}
}

func TestSummaryService_Weekly_UnknownUser(t *testing.T) {
	svc := newSummaryForTest(PolicyCalendar, &mockExpenses{})

	_, err := svc.Weekly(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSummaryService_WeeklyByNumber(t *testing.T) {
	expenses := &mockExpenses{betweenResp: []models.Expense{
		expense("food", "10"),
		expense("rent", "50"),
	}}
	svc := newSummaryForTest(PolicyTrailing, expenses)

	// The numbered variant always uses Jan-1 buckets, whatever the policy.
	s, err := svc.WeeklyByNumber(context.Background(), "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", s.WeekStart.String())
	assert.Equal(t, "2024-01-07", s.WeekEnd.String())
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("60")))
	assert.Equal(t, "rent", s.HighestCategory.Category)

	_, err = svc.WeeklyByNumber(context.Background(), "alice", 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}
