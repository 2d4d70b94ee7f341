package store

import (
	"context"
	"errors"
	"testing"

	"trendly/internal/core"
	"trendly/internal/kv/memory"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := memory.New()

	s1 := New(ctx, slots, nil)
	added, err := s1.AddExpense(ctx, ExpenseInput{
		AmountCents: 4200,
		Category:    "6",
		Date:        core.NewDate(2024, 2, 29), // leap day must survive serialization
		Note:        "Dentist",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// A second store over the same slots must see an equal snapshot.
	s2 := New(ctx, slots, nil)

	e1, e2 := s1.Expenses(), s2.Expenses()
	if len(e1) != len(e2) {
		t.Fatalf("expense count mismatch: %d != %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i].ID != e2[i].ID || e1[i].Amount != e2[i].Amount ||
			e1[i].Category != e2[i].Category || e1[i].Note != e2[i].Note {
			t.Fatalf("expense %d mismatch: %+v != %+v", i, e1[i], e2[i])
		}
		// Dates must come back as calendar dates, not strings.
		if !e1[i].Date.Equal(e2[i].Date) {
			t.Fatalf("expense %d date mismatch: %v != %v", i, e1[i].Date, e2[i].Date)
		}
	}

	var reloaded *core.Expense
	for _, e := range e2 {
		if e.ID == added.ID {
			reloaded = &e
			break
		}
	}
	if reloaded == nil {
		t.Fatalf("added expense missing after reload")
	}
	if reloaded.Date.Year() != 2024 || reloaded.Date.Month() != 2 || reloaded.Date.Day() != 29 {
		t.Fatalf("leap day mangled: %v", reloaded.Date)
	}

	c1, c2 := s1.Categories(), s2.Categories()
	if len(c1) != len(c2) {
		t.Fatalf("category count mismatch: %d != %d", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("category %d mismatch: %+v != %+v", i, c1[i], c2[i])
		}
	}
}

func TestCorruptSlotFallsBackToSeeds(t *testing.T) {
	ctx := context.Background()
	slots := memory.New()
	if err := slots.Set(ctx, "expenses", `{not json`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := slots.Set(ctx, "categories", `[{"id":"9","name":"Solo","color":"","icon":""}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	s := New(ctx, slots, nil)

	// Each slot falls back independently.
	if got := len(s.Expenses()); got != 5 {
		t.Fatalf("expected seed expenses for corrupt slot, got %d", got)
	}
	cats := s.Categories()
	if len(cats) != 1 || cats[0].Name != "Solo" {
		t.Fatalf("valid categories slot should load as-is: %+v", cats)
	}
}

type failingKV struct {
	sets int
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (f *failingKV) Set(context.Context, string, string) error {
	f.sets++
	return errors.New("disk full")
}
func (f *failingKV) Close() error { return nil }

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, &failingKV{}, nil)

	e, err := s.AddExpense(ctx, ExpenseInput{
		AmountCents: 100,
		Category:    "1",
		Date:        core.NewDate(2025, 5, 1),
	})
	if err != nil {
		t.Fatalf("mutation must not fail on persist error: %v", err)
	}

	// In-memory state remains authoritative, and the failure is surfaced.
	found := false
	for _, x := range s.Expenses() {
		if x.ID == e.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expense lost after persist failure")
	}
	if s.LastPersistErr() == nil {
		t.Fatalf("persist failure not reported")
	}
}

type recordingSink struct {
	events []Event
}

func (r *recordingSink) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return nil
}

func TestEventSinkReceivesMutations(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	s := New(ctx, memory.New(), sink)

	e, _ := s.AddExpense(ctx, ExpenseInput{AmountCents: 100, Category: "1", Date: core.NewDate(2025, 5, 1)})
	_ = s.DeleteExpense(ctx, e.ID)
	_, _ = s.AddCategory(ctx, "Pets", "", "")

	want := []Event{
		{Entity: "expense", Action: "created", ID: e.ID},
		{Entity: "expense", Action: "deleted", ID: e.ID},
	}
	if len(sink.events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(sink.events), sink.events)
	}
	for i, w := range want {
		if sink.events[i] != w {
			t.Fatalf("event %d: expected %+v, got %+v", i, w, sink.events[i])
		}
	}
	if sink.events[2].Entity != "category" || sink.events[2].Action != "created" {
		t.Fatalf("unexpected category event: %+v", sink.events[2])
	}
}
