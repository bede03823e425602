package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts render as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Expense is a single categorized spending record. WeekDate identifies
// the week the expense belongs to (conventionally the week's start day).
type Expense struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	WeekDate  Date            `json:"week_date"`
	CreatedAt time.Time       `json:"created_at"`
}

// CategoryTotal names a category together with its summed amount.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary aggregates a user's expenses inside one week window.
type Summary struct {
	Username        string                     `json:"username"`
	WeekStart       Date                       `json:"week_start"`
	WeekEnd         Date                       `json:"week_end"`
	CategoryTotals  map[string]decimal.Decimal `json:"category_summary"`
	TotalAmount     decimal.Decimal            `json:"total_amount"`
	HighestCategory *CategoryTotal             `json:"highest_category,omitempty"`
	ExpenseCount    int                        `json:"expense_count"`
}
