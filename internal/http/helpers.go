package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"trendly/internal/core"
	"trendly/internal/report"
	"trendly/internal/store"
)

// monthOverview is the cached per-month dashboard summary.
type monthOverview struct {
	Year          int                    `json:"year"`
	Month         int                    `json:"month"`
	MonthName     string                 `json:"month_name"`
	Total         string                 `json:"total"`
	TotalCents    int64                  `json:"total_cents"`
	AveragePerDay string                 `json:"average_per_day"`
	ByCategory    []categoryTotalPayload `json:"by_category"`
}

type categoryTotalPayload struct {
	Name       string `json:"name"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
	Color      string `json:"color"`
}

// trendPoint is one month in the six-month spending series.
type trendPoint struct {
	Label      string `json:"label"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
}

type expensePayload struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	AmountCents  int64  `json:"amount_cents"`
	Category     string `json:"category"`
	CategoryName string `json:"category_name"`
	Date         string `json:"date"`
	DateLabel    string `json:"date_label"`
	Note         string `json:"note,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// writeStoreError maps store error types onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *store.ValidationError
		conflictErr   *store.ConflictError
		notFoundErr   *store.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &conflictErr):
		http.Error(w, conflictErr.Error(), http.StatusConflict)
	case errors.As(err, &notFoundErr):
		http.Error(w, notFoundErr.Error(), http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "Unexpected store error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// parseMonthQuery reads optional month/year query params, defaulting to the
// current calendar month. Months are zero-based (January = 0).
func parseMonthQuery(r *http.Request, now time.Time) (month0, year int, err error) {
	month0 = int(now.Month()) - 1
	year = now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		m, convErr := strconv.Atoi(v)
		if convErr != nil || m < 0 || m > 11 {
			return 0, 0, errors.New("month must be between 0 and 11")
		}
		month0 = m
	}
	if v := r.URL.Query().Get("year"); v != "" {
		y, convErr := strconv.Atoi(v)
		if convErr != nil || y < 1970 || y > 9999 {
			return 0, 0, errors.New("year must be a four digit year")
		}
		year = y
	}
	return month0, year, nil
}

// parseDateField parses an ISO date form value into a calendar Date.
func parseDateField(value string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return core.Date{}, errors.New("date must be in YYYY-MM-DD format")
	}
	return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
}

func toCategoryPayloads(totals []report.CategoryTotal) []categoryTotalPayload {
	out := make([]categoryTotalPayload, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalPayload{
			Name:       ct.Name,
			Total:      ct.Total.Format(),
			TotalCents: ct.Total.Cents,
			Color:      ct.Color,
		})
	}
	return out
}

func (s *Server) toExpensePayload(e core.Expense) expensePayload {
	name := ""
	if cat, ok := s.store.CategoryByID(e.Category); ok {
		name = cat.Name
	}
	return expensePayload{
		ID:           e.ID,
		Amount:       e.Amount.Format(),
		AmountCents:  e.Amount.Cents,
		Category:     e.Category,
		CategoryName: name,
		Date:         e.Date.Format("2006-01-02"),
		DateLabel:    core.FormatDate(e.Date),
		Note:         e.Note,
	}
}
