// Package report derives summary views from store snapshots.
//
// Every function here is pure: inputs are never mutated and no state is kept.
// Months are 0-indexed throughout this package (January = 0), matching the
// month picker the presentation layer renders.
package report

import (
	"sort"
	"time"

	"trendly/internal/core"
)

// CategoryTotal is an amount aggregated under one category.
type CategoryTotal struct {
	Name  string
	Total core.Money
	Color string
}

// MonthWindow identifies one month in a trend series. Month0 is 0-indexed.
type MonthWindow struct {
	Month0 int
	Year   int
	Label  string // short human-readable form, e.g. "May 2025"
}

// TotalOf sums the amounts of the given expenses. Empty input yields zero.
func TotalOf(expenses []core.Expense) core.Money {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return core.Money{Cents: cents}
}

// MonthlyTotal sums the expenses whose date falls in the given 0-indexed
// month and year. Empty result yields zero.
func MonthlyTotal(expenses []core.Expense, month0, year int) core.Money {
	var cents int64
	for _, e := range expenses {
		if e.Date.Month()-1 == month0 && e.Date.Year() == year {
			cents += e.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// ByCategory groups the given expenses by resolved category and returns one
// entry per category referenced by at least one expense, ordered descending
// by total. Expenses whose category id does not resolve are excluded; the
// store's referential integrity should make that impossible, but a stale
// snapshot must not crash the report.
func ByCategory(expenses []core.Expense, categories []core.Category) []CategoryTotal {
	byID := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	index := make(map[string]int)
	var result []CategoryTotal
	for _, e := range expenses {
		cat, ok := byID[e.Category]
		if !ok {
			continue
		}
		if i, seen := index[cat.ID]; seen {
			result[i].Total.Cents += e.Amount.Cents
			continue
		}
		index[cat.ID] = len(result)
		result = append(result, CategoryTotal{
			Name:  cat.Name,
			Total: e.Amount,
			Color: cat.Color,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.Cents > result[j].Total.Cents
	})
	return result
}

// LastSixMonths returns exactly six windows covering the reference month and
// the five preceding ones, oldest first, rolling over year boundaries.
func LastSixMonths(ref time.Time) []MonthWindow {
	windows := make([]MonthWindow, 6)
	year, month := ref.Year(), int(ref.Month()) // 1-12
	for i := 5; i >= 0; i-- {
		t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		windows[i] = MonthWindow{
			Month0: int(t.Month()) - 1,
			Year:   t.Year(),
			Label:  t.Format("Jan 2006"),
		}
		month--
		if month < 1 {
			month = 12
			year--
		}
	}
	return windows
}

// AveragePerDay divides a monthly total by the number of days in the
// 0-indexed month, rounding half-up to the cent.
func AveragePerDay(total core.Money, month0, year int) core.Money {
	days := int64(core.DaysInMonth(month0, year))
	if days == 0 {
		return core.Money{}
	}
	return core.Money{Cents: (total.Cents + days/2) / days}
}
