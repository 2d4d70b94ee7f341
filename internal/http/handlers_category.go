package http

import (
	"log/slog"
	"net/http"
	"strings"
)

type categoryPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories := s.store.Categories()
		payload := make([]categoryPayload, 0, len(categories))
		for _, c := range categories {
			payload = append(payload, categoryPayload{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon})
		}
		writeJSON(w, http.StatusOK, payload)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form data", http.StatusBadRequest)
			return
		}

		cat, err := s.store.AddCategory(r.Context(), r.FormValue("name"), r.FormValue("color"), r.FormValue("icon"))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}

		slog.InfoContext(r.Context(), "Category created", "id", cat.ID, "name", cat.Name)
		writeJSON(w, http.StatusCreated, categoryPayload{ID: cat.ID, Name: cat.Name, Color: cat.Color, Icon: cat.Icon})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDeleteCategory removes a category unless expenses still reference it.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "missing category id", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteCategory(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Category deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
