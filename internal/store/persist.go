package store

import (
	"encoding/json"
	"fmt"

	"trendly/internal/core"
)

// Slot keys in the durable store. Both collections are serialized in full
// after every successful mutation.
const (
	slotExpenses   = "expenses"
	slotCategories = "categories"
)

type expenseRecord struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Date        core.Date `json:"date"`
	Note        string    `json:"note,omitempty"`
}

type categoryRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func encodeExpenses(expenses []core.Expense) (string, error) {
	records := make([]expenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = expenseRecord{
			ID:          e.ID,
			AmountCents: e.Amount.Cents,
			Category:    e.Category,
			Date:        e.Date,
			Note:        e.Note,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode expenses: %w", err)
	}
	return string(data), nil
}

func decodeExpenses(data string) ([]core.Expense, error) {
	var records []expenseRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}
	expenses := make([]core.Expense, len(records))
	for i, r := range records {
		expenses[i] = core.Expense{
			ID:       r.ID,
			Amount:   core.Money{Cents: r.AmountCents},
			Category: r.Category,
			Date:     r.Date,
			Note:     r.Note,
		}
	}
	return expenses, nil
}

func encodeCategories(categories []core.Category) (string, error) {
	records := make([]categoryRecord, len(categories))
	for i, c := range categories {
		records[i] = categoryRecord{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode categories: %w", err)
	}
	return string(data), nil
}

func decodeCategories(data string) ([]core.Category, error) {
	var records []categoryRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	categories := make([]core.Category, len(records))
	for i, r := range records {
		categories[i] = core.Category{ID: r.ID, Name: r.Name, Color: r.Color, Icon: r.Icon}
	}
	return categories, nil
}
