package core

import "time"

// FormatDate renders a date in short US style, e.g. "May 1, 2025".
func FormatDate(d Date) string {
	return d.Time.Format("Jan 2, 2006")
}

// MonthName returns the full month name for a 0-indexed month (January = 0).
// Out-of-range input returns an empty string.
func MonthName(month0 int) string {
	if month0 < 0 || month0 > 11 {
		return ""
	}
	return time.Month(month0 + 1).String()
}

// DaysInMonth returns the number of days in a 0-indexed month of the given
// year, accounting for leap years.
func DaysInMonth(month0, year int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
