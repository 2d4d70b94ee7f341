package report

import (
	"time"

	"trendly/internal/core"
)

// TimeFilter selects a window of expenses relative to a reference instant.
type TimeFilter string

const (
	FilterAll   TimeFilter = "all"
	FilterMonth TimeFilter = "month"
	FilterWeek  TimeFilter = "week"
)

// Valid reports whether f is a recognized filter.
func (f TimeFilter) Valid() bool {
	switch f {
	case FilterAll, FilterMonth, FilterWeek:
		return true
	}
	return false
}

// Filter returns the expenses matching the window: "week" keeps dates within
// the seven days before now, "month" keeps the current calendar month, and
// "all" keeps everything. Input order is preserved; the input is not mutated.
func Filter(expenses []core.Expense, f TimeFilter, now time.Time) []core.Expense {
	switch f {
	case FilterMonth:
		out := make([]core.Expense, 0, len(expenses))
		for _, e := range expenses {
			if e.Date.Month() == int(now.Month()) && e.Date.Year() == now.Year() {
				out = append(out, e)
			}
		}
		return out
	case FilterWeek:
		cutoff := now.AddDate(0, 0, -7)
		out := make([]core.Expense, 0, len(expenses))
		for _, e := range expenses {
			if !e.Date.Time.Before(cutoff) {
				out = append(out, e)
			}
		}
		return out
	default:
		return append([]core.Expense(nil), expenses...)
	}
}
