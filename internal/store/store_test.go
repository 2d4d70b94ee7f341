package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trendly/internal/core"
	"trendly/internal/kv/memory"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(context.Background(), memory.New(), nil)
}

func TestSeedFallback(t *testing.T) {
	s := newTestStore(t)

	if got := len(s.Expenses()); got != 5 {
		t.Fatalf("expected 5 seed expenses, got %d", got)
	}
	if got := len(s.Categories()); got != 7 {
		t.Fatalf("expected 7 seed categories, got %d", got)
	}

	var total int64
	for _, e := range s.Expenses() {
		total += e.Amount.Cents
	}
	if total != 26438 {
		t.Fatalf("seed total expected 26438 cents, got %d", total)
	}
}

func TestAddExpense(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	before := len(s.Expenses())

	e, err := s.AddExpense(ctx, ExpenseInput{
		AmountCents: 1234,
		Category:    "6",
		Date:        core.NewDate(2025, 6, 10),
		Note:        "Pharmacy",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if got := len(s.Expenses()); got != before+1 {
		t.Fatalf("expected count %d, got %d", before+1, got)
	}

	// The new record is retrievable with the submitted fields.
	var found *core.Expense
	for _, x := range s.Expenses() {
		if x.ID == e.ID {
			found = &x
			break
		}
	}
	if found == nil {
		t.Fatalf("new expense not retrievable")
	}
	if found.Amount.Cents != 1234 || found.Category != "6" || found.Note != "Pharmacy" {
		t.Fatalf("fields not preserved: %+v", found)
	}
	if !found.Date.Equal(core.NewDate(2025, 6, 10)) {
		t.Fatalf("date not preserved: %v", found.Date)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	before := len(s.Expenses())

	cases := []struct {
		name string
		in   ExpenseInput
		want error
	}{
		{"zero amount", ExpenseInput{AmountCents: 0, Category: "1", Date: core.NewDate(2025, 5, 1)}, core.ErrInvalidAmount},
		{"negative amount", ExpenseInput{AmountCents: -500, Category: "1", Date: core.NewDate(2025, 5, 1)}, core.ErrInvalidAmount},
		{"zero date", ExpenseInput{AmountCents: 100, Category: "1"}, core.ErrInvalidDate},
		{"unknown category", ExpenseInput{AmountCents: 100, Category: "nope", Date: core.NewDate(2025, 5, 1)}, core.ErrUnknownCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddExpense(ctx, tc.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// Failed mutations leave the collection unchanged.
	if got := len(s.Expenses()); got != before {
		t.Fatalf("collection changed on failed add: %d != %d", got, before)
	}
}

func TestAddExpenseNoteLength(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	before := len(s.Expenses())

	long := strings.Repeat("x", 10000)
	_, err := s.AddExpense(ctx, ExpenseInput{
		AmountCents: 100,
		Category:    "1",
		Date:        core.NewDate(2025, 5, 1),
		Note:        long,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for oversized note, got %v", err)
	}
	if got := len(s.Expenses()); got != before {
		t.Fatalf("collection changed on failed add: %d != %d", got, before)
	}

	// A note at the cap is fine.
	e, err := s.AddExpense(ctx, ExpenseInput{
		AmountCents: 100,
		Category:    "1",
		Date:        core.NewDate(2025, 5, 1),
		Note:        strings.Repeat("y", 200),
	})
	if err != nil {
		t.Fatalf("200-char note should be accepted: %v", err)
	}

	// Updates enforce the same cap.
	if _, err := s.UpdateExpense(ctx, e.ID, ExpenseInput{
		AmountCents: 100,
		Category:    "1",
		Date:        core.NewDate(2025, 5, 1),
		Note:        long,
	}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError on update with oversized note, got %v", err)
	}
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	target := s.Expenses()[2]
	updated, err := s.UpdateExpense(ctx, target.ID, ExpenseInput{
		AmountCents: 9999,
		Category:    "7",
		Date:        core.NewDate(2025, 5, 20),
		Note:        "changed",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != target.ID {
		t.Fatalf("id must be preserved: %s != %s", updated.ID, target.ID)
	}

	// Position in the ordered sequence is preserved.
	got := s.Expenses()[2]
	if got.ID != target.ID || got.Amount.Cents != 9999 || got.Note != "changed" {
		t.Fatalf("record not replaced in place: %+v", got)
	}
}

func TestUpdateExpenseNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpdateExpense(ctx, "missing", ExpenseInput{
		AmountCents: 100,
		Category:    "1",
		Date:        core.NewDate(2025, 5, 1),
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteExpenseIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	target := s.Expenses()[0]

	if err := s.DeleteExpense(ctx, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := len(s.Expenses()); got != 4 {
		t.Fatalf("expected 4 expenses, got %d", got)
	}

	// Absent id is a no-op, not an error.
	if err := s.DeleteExpense(ctx, target.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.DeleteExpense(ctx, "never-existed"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestAddCategory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	c, err := s.AddCategory(ctx, "  Travel  ", "#ABCDEF", "plane")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Name != "Travel" {
		t.Fatalf("name not trimmed: %q", c.Name)
	}
	if c.Color != "#ABCDEF" || c.Icon != "plane" {
		t.Fatalf("display tokens not carried through: %+v", c)
	}

	cases := []struct {
		name string
		want error
	}{
		{"", core.ErrEmptyCategoryName},
		{"   ", core.ErrEmptyCategoryName},
		{"food", core.ErrDuplicateCategory},   // case-insensitive collision with seed "Food"
		{"TRAVEL", core.ErrDuplicateCategory}, // collision with category just added
	}
	for _, tc := range cases {
		_, err := s.AddCategory(ctx, tc.name, "", "")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q expected ValidationError, got %v", tc.name, err)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestDeleteCategoryConflict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Seed category "1" (Food) is referenced by the May 1 seed expense.
	err := s.DeleteCategory(ctx, "1")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	// Remove the referencing expense; delete must then succeed.
	for _, e := range s.Expenses() {
		if e.Category == "1" {
			if err := s.DeleteExpense(ctx, e.ID); err != nil {
				t.Fatalf("delete expense: %v", err)
			}
		}
	}
	if err := s.DeleteCategory(ctx, "1"); err != nil {
		t.Fatalf("delete category after clearing expenses: %v", err)
	}
	if _, ok := s.CategoryByID("1"); ok {
		t.Fatalf("category still present after delete")
	}

	// Unreferenced category deletes cleanly; unknown id is a no-op.
	if err := s.DeleteCategory(ctx, "7"); err != nil {
		t.Fatalf("delete unused category: %v", err)
	}
	if err := s.DeleteCategory(ctx, "7"); err != nil {
		t.Fatalf("delete already-deleted category: %v", err)
	}
}

func TestCategoryByID(t *testing.T) {
	s := newTestStore(t)

	c, ok := s.CategoryByID("4")
	if !ok || c.Name != "Bills" {
		t.Fatalf("expected Bills, got %+v ok=%v", c, ok)
	}
	if _, ok := s.CategoryByID("does-not-exist"); ok {
		t.Fatalf("expected not found")
	}
}

func TestRevisionAdvancesOnMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	r0 := s.Revision()
	if _, err := s.AddCategory(ctx, "Pets", "#FFF", "paw"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Revision() != r0+1 {
		t.Fatalf("revision not bumped: %d -> %d", r0, s.Revision())
	}

	// Failed mutations leave the revision alone.
	if _, err := s.AddCategory(ctx, "", "", ""); err == nil {
		t.Fatalf("expected validation error")
	}
	if s.Revision() != r0+1 {
		t.Fatalf("revision changed on failed mutation")
	}
}
