package http

import (
	"log/slog"
	"net/http"
	"strings"

	"trendly/internal/core"
	"trendly/internal/report"
	"trendly/internal/store"
)

// handleCreateExpense accepts an HTML form post and records a new expense.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	in, err := s.expenseInputFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	exp, err := s.store.AddExpense(r.Context(), in)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense created", "id", exp.ID, "amount_cents", exp.Amount.Cents, "category", exp.Category)
	writeJSON(w, http.StatusCreated, s.toExpensePayload(exp))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		http.Error(w, "missing expense id", http.StatusBadRequest)
		return
	}

	in, err := s.expenseInputFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	exp, err := s.store.UpdateExpense(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense updated", "id", exp.ID)
	writeJSON(w, http.StatusOK, s.toExpensePayload(exp))
}

// handleDeleteExpense removes an expense. Deleting an unknown id succeeds.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.FormValue("id"))
	if id == "" {
		id = strings.TrimSpace(r.URL.Query().Get("id"))
	}
	if id == "" {
		http.Error(w, "missing expense id", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Expense deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleListExpenses returns expenses as JSON, optionally narrowed by a time
// filter ("all", "month", "week").
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
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
	payload := make([]expensePayload, 0, len(expenses))
	for _, e := range expenses {
		payload = append(payload, s.toExpensePayload(e))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) expenseInputFromForm(r *http.Request) (store.ExpenseInput, error) {
	cents, err := core.ParseDecimalToCents(r.FormValue("amount"))
	if err != nil {
		return store.ExpenseInput{}, err
	}

	date, err := parseDateField(r.FormValue("date"))
	if err != nil {
		return store.ExpenseInput{}, err
	}

	return store.ExpenseInput{
		AmountCents: cents,
		Category:    strings.TrimSpace(r.FormValue("category")),
		Date:        date,
		Note:        strings.TrimSpace(r.FormValue("note")),
	}, nil
}
