package service

import (
	"fmt"
	"time"

	"expense_ledger/internal/models"
)

// WeekPolicy selects how the "current week" window of a summary is
// computed. The store groups expenses by week_date only; the policy is
// purely a read-side choice and is set once via configuration.
type WeekPolicy string

const (
	// PolicyCalendar is the Monday-aligned week containing today.
	PolicyCalendar WeekPolicy = "calendar"
	// PolicyTrailing is the 7-day window ending today.
	PolicyTrailing WeekPolicy = "trailing"
	// PolicyNumbered is the Jan-1 anchored bucket containing today.
	PolicyNumbered WeekPolicy = "numbered"
)

func ParseWeekPolicy(s string) (WeekPolicy, error) {
	switch WeekPolicy(s) {
	case PolicyCalendar, PolicyTrailing, PolicyNumbered:
		return WeekPolicy(s), nil
	case "":
		return PolicyCalendar, nil
	default:
		return "", fmt.Errorf("unknown week policy %q, expected calendar, trailing or numbered", s)
	}
}

// WeekRange is an inclusive [Start, End] window of calendar days.
type WeekRange struct {
	Start models.Date
	End   models.Date
}

// NumberedWeek maps a 1-based week number onto fixed 7-day buckets
// anchored at January 1 of the given year. This is deliberately NOT the
// ISO calendar week: there is no Monday alignment, and a late week
// spills past December 31 into the next year.
func NumberedWeek(year, week int) WeekRange {
	start := models.NewDate(year, time.January, 1).AddDays((week - 1) * 7)
	return WeekRange{Start: start, End: start.AddDays(6)}
}

// weekNumberOf returns the 1-based Jan-1 bucket that contains day.
func weekNumberOf(day models.Date) int {
	jan1 := models.NewDate(day.Year(), time.January, 1)
	days := int(day.Time().Sub(jan1.Time()).Hours() / 24)
	return days/7 + 1
}

// CurrentWeek computes the summary window for today under the policy.
func CurrentWeek(policy WeekPolicy, today models.Date) WeekRange {
	switch policy {
	case PolicyTrailing:
		return WeekRange{Start: today.AddDays(-6), End: today}
	case PolicyNumbered:
		return NumberedWeek(today.Year(), weekNumberOf(today))
	default:
		// Monday-aligned: Monday is weekday 1, Sunday is 0.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDays(-offset)
		return WeekRange{Start: start, End: start.AddDays(6)}
	}
}
