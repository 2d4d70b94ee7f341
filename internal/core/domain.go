package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date; time-of-day carries no meaning and is
	// normalized to midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense references its category by id. The store guarantees the id
	// resolves against the category collection at every mutation.
	Expense struct {
		ID       string
		Amount   Money
		Category string
		Date     Date
		Note     string // optional free text
	}

	// Category carries Color and Icon as opaque display tokens; the core
	// never interprets them.
	Category struct {
		ID    string
		Name  string
		Color string
		Icon  string
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrEmptyCategoryName = errors.New("empty category name")
	ErrDuplicateCategory = errors.New("duplicate category name")
)

// NewDate creates a Date from year, month (1-12), day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Equal compares two dates by calendar day, ignoring time-of-day.
func (d Date) Equal(other Date) bool {
	y1, m1, d1 := d.Time.Date()
	y2, m2, d2 := other.Time.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dateLayout is the serialized form of a Date. Snapshots must round-trip
// dates as reconstructible calendar dates, not raw strings.
const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrUnknownCategory
	}
	if len(e.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	return nil
}
