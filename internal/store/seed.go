package store

import (
	"github.com/google/uuid"

	"trendly/internal/core"
)

// seedCategories returns the default taxonomy used when the categories slot
// is absent or unreadable. Ids are stable so seed expenses can reference them.
func seedCategories() []core.Category {
	return []core.Category{
		{ID: "1", Name: "Food", Color: "#F2FCE2", Icon: "utensils"},
		{ID: "2", Name: "Transportation", Color: "#D3E4FD", Icon: "car"},
		{ID: "3", Name: "Entertainment", Color: "#FFDEE2", Icon: "film"},
		{ID: "4", Name: "Bills", Color: "#FEF7CD", Icon: "file-invoice-dollar"},
		{ID: "5", Name: "Shopping", Color: "#FEC6A1", Icon: "shopping-bag"},
		{ID: "6", Name: "Health", Color: "#E5DEFF", Icon: "heartbeat"},
		{ID: "7", Name: "Other", Color: "#C8C8C9", Icon: "ellipsis-h"},
	}
}

// seedExpenses returns sample expenses for a fresh install.
func seedExpenses() []core.Expense {
	return []core.Expense{
		{ID: uuid.NewString(), Amount: core.Money{Cents: 2550}, Category: "1", Date: core.NewDate(2025, 5, 1), Note: "Grocery shopping"},
		{ID: uuid.NewString(), Amount: core.Money{Cents: 3500}, Category: "2", Date: core.NewDate(2025, 5, 2), Note: "Uber ride"},
		{ID: uuid.NewString(), Amount: core.Money{Cents: 1599}, Category: "3", Date: core.NewDate(2025, 5, 3), Note: "Movie ticket"},
		{ID: uuid.NewString(), Amount: core.Money{Cents: 12000}, Category: "4", Date: core.NewDate(2025, 5, 4), Note: "Electricity bill"},
		{ID: uuid.NewString(), Amount: core.Money{Cents: 6789}, Category: "5", Date: core.NewDate(2025, 5, 5), Note: "New t-shirt"},
	}
}
