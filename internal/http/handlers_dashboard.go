package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"trendly/internal/core"
	"trendly/internal/report"
)

type dashboardData struct {
	Title      string
	Overview   monthOverview
	Trend      []trendPoint
	Expenses   []expensePayload
	Categories []categoryPayload
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := s.now()
	overview := s.monthOverviewFor(int(now.Month())-1, now.Year())

	expenses := s.store.Expenses()
	expensePayloads := make([]expensePayload, 0, len(expenses))
	for _, e := range expenses {
		expensePayloads = append(expensePayloads, s.toExpensePayload(e))
	}

	categories := s.store.Categories()
	categoryPayloads := make([]categoryPayload, 0, len(categories))
	for _, c := range categories {
		categoryPayloads = append(categoryPayloads, categoryPayload{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon})
	}

	data := dashboardData{
		Title:      "Trendly",
		Overview:   overview,
		Trend:      s.trendFor(now),
		Expenses:   expensePayloads,
		Categories: categoryPayloads,
	}

	if s.templates == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render dashboard", "error", err)
	}
}

// handleMonthOverview returns the summary for one month as JSON. Month is
// 0-indexed; both month and year default to the current calendar month.
func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	month0, year, err := parseMonthQuery(r, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, s.monthOverviewFor(month0, year))
}

// handleByCategory returns per-category totals over a time filter.
func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := report.TimeFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = report.FilterAll
	}
	if !filter.Valid() {
		http.Error(w, "filter must be one of all, month, week", http.StatusBadRequest)
		return
	}

	expenses := report.Filter(s.store.Expenses(), filter, s.now())
	groups := report.ByCategory(expenses, s.store.Categories())
	writeJSON(w, http.StatusOK, toCategoryPayloads(groups))
}

// handleTrend returns spending totals for the last six months, oldest first.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.trendFor(s.now()))
}

// monthOverviewFor computes (or serves from cache) the dashboard summary for
// one 0-indexed month. Cache keys carry the store revision, so stale entries
// are simply never looked up again after a mutation.
func (s *Server) monthOverviewFor(month0, year int) monthOverview {
	key := fmt.Sprintf("overview:%d:%d:%d", s.store.Revision(), year, month0)
	if cached, ok := s.overviewCache.Get(key); ok {
		s.appMetrics.cacheHits.Add(1)
		return cached
	}
	s.appMetrics.cacheMisses.Add(1)

	expenses := s.store.Expenses()
	monthly := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.Month()-1 == month0 && e.Date.Year() == year {
			monthly = append(monthly, e)
		}
	}

	total := report.MonthlyTotal(expenses, month0, year)
	overview := monthOverview{
		Year:          year,
		Month:         month0,
		MonthName:     core.MonthName(month0),
		Total:         total.Format(),
		TotalCents:    total.Cents,
		AveragePerDay: report.AveragePerDay(total, month0, year).Format(),
		ByCategory:    toCategoryPayloads(report.ByCategory(monthly, s.store.Categories())),
	}

	s.overviewCache.Set(key, overview)
	return overview
}

func (s *Server) trendFor(ref time.Time) []trendPoint {
	key := fmt.Sprintf("trend:%d:%d:%d", s.store.Revision(), ref.Year(), int(ref.Month()))
	if cached, ok := s.trendCache.Get(key); ok {
		s.appMetrics.cacheHits.Add(1)
		return cached
	}
	s.appMetrics.cacheMisses.Add(1)

	expenses := s.store.Expenses()
	windows := report.LastSixMonths(ref)
	points := make([]trendPoint, 0, len(windows))
	for _, win := range windows {
		total := report.MonthlyTotal(expenses, win.Month0, win.Year)
		points = append(points, trendPoint{
			Label:      win.Label,
			Month:      win.Month0,
			Year:       win.Year,
			Total:      total.Format(),
			TotalCents: total.Cents,
		})
	}

	s.trendCache.Set(key, points)
	return points
}
