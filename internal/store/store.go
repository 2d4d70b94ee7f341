// Package store is the single source of truth for expenses and categories.
//
// The Store holds both collections in memory, validates every mutation, and
// writes the full snapshot through a kv.Store after each successful change.
// Initial state comes from the durable slots, falling back per slot to seed
// data when a slot is absent or unreadable.
package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"trendly/internal/core"
	"trendly/internal/kv"
)

// Event describes a successful mutation, for optional downstream consumers.
type Event struct {
	Entity string // "expense" or "category"
	Action string // "created", "updated", "deleted"
	ID     string
}

// EventSink receives change events after successful mutations. Publish
// failures are logged and never fail the mutation.
type EventSink interface {
	Publish(ctx context.Context, e Event) error
}

// ExpenseInput carries caller-supplied fields for add and update operations.
type ExpenseInput struct {
	AmountCents int64
	Category    string
	Date        core.Date
	Note        string
}

type Store struct {
	mu         sync.RWMutex
	slots      kv.Store
	sink       EventSink // optional, nil disables events
	expenses   []core.Expense
	categories []core.Category
	rev        uint64
	persistErr error
}

// New loads both slots and returns a ready store. sink may be nil.
func New(ctx context.Context, slots kv.Store, sink EventSink) *Store {
	s := &Store{slots: slots, sink: sink}
	s.expenses = s.loadExpenses(ctx)
	s.categories = s.loadCategories(ctx)
	return s
}

func (s *Store) loadExpenses(ctx context.Context) []core.Expense {
	data, ok, err := s.slots.Get(ctx, slotExpenses)
	if err != nil {
		slog.WarnContext(ctx, "Failed reading expenses slot, using seed data", "error", err)
		return seedExpenses()
	}
	if !ok {
		return seedExpenses()
	}
	expenses, err := decodeExpenses(data)
	if err != nil {
		slog.WarnContext(ctx, "Failed decoding expenses slot, using seed data", "error", err)
		return seedExpenses()
	}
	return expenses
}

func (s *Store) loadCategories(ctx context.Context) []core.Category {
	data, ok, err := s.slots.Get(ctx, slotCategories)
	if err != nil {
		slog.WarnContext(ctx, "Failed reading categories slot, using seed data", "error", err)
		return seedCategories()
	}
	if !ok {
		return seedCategories()
	}
	categories, err := decodeCategories(data)
	if err != nil {
		slog.WarnContext(ctx, "Failed decoding categories slot, using seed data", "error", err)
		return seedCategories()
	}
	return categories
}

// AddExpense validates the input, assigns a fresh id, appends the expense,
// and persists the snapshot.
func (s *Store) AddExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateExpenseInput(in); err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:       uuid.NewString(),
		Amount:   core.Money{Cents: in.AmountCents},
		Category: in.Category,
		Date:     in.Date,
		Note:     in.Note,
	}
	s.expenses = append(s.expenses, e)
	s.afterMutation(ctx, Event{Entity: "expense", Action: "created", ID: e.ID})

	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e, nil
}

// UpdateExpense replaces the expense with the given id in place, preserving
// its position in the collection. An unknown id is surfaced as a
// NotFoundError rather than silently ignored.
func (s *Store) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.Expense{}, &NotFoundError{Entity: "expense", ID: id}
	}

	if err := s.validateExpenseInput(in); err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:       id,
		Amount:   core.Money{Cents: in.AmountCents},
		Category: in.Category,
		Date:     in.Date,
		Note:     in.Note,
	}
	s.expenses[idx] = e
	s.afterMutation(ctx, Event{Entity: "expense", Action: "updated", ID: id})

	slog.InfoContext(ctx, "Expense updated", "id", id)
	return e, nil
}

// DeleteExpense removes the expense with the given id. Deleting an id that
// does not exist is a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	s.expenses = append(s.expenses[:idx], s.expenses[idx+1:]...)
	s.afterMutation(ctx, Event{Entity: "expense", Action: "deleted", ID: id})

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// AddCategory creates a category with a trimmed, case-insensitively unique
// name. Color and icon are carried through untouched.
func (s *Store) AddCategory(ctx context.Context, name, color, icon string) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	c := core.Category{ID: uuid.NewString(), Name: name, Color: color, Icon: icon}
	if err := c.Validate(); err != nil {
		return core.Category{}, &ValidationError{Field: "name", Err: err}
	}
	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, name) {
			return core.Category{}, &ValidationError{Field: "name", Err: core.ErrDuplicateCategory}
		}
	}

	s.categories = append(s.categories, c)
	s.afterMutation(ctx, Event{Entity: "category", Action: "created", ID: c.ID})

	slog.InfoContext(ctx, "Category added", "id", c.ID, "name", c.Name)
	return c, nil
}

// DeleteCategory removes the category with the given id. It fails with a
// ConflictError while any expense still references the id; an unknown id is
// a no-op.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.expenses {
		if e.Category == id {
			name := id
			for _, c := range s.categories {
				if c.ID == id {
					name = c.Name
					break
				}
			}
			return &ConflictError{CategoryID: id, Name: name}
		}
	}

	idx := -1
	for i := range s.categories {
		if s.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)
	s.afterMutation(ctx, Event{Entity: "category", Action: "deleted", ID: id})

	slog.InfoContext(ctx, "Category deleted", "id", id)
	return nil
}

// CategoryByID returns the category with the given id, if present.
func (s *Store) CategoryByID(id string) (core.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// Expenses returns a copy of the current expense collection.
func (s *Store) Expenses() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expense(nil), s.expenses...)
}

// Categories returns a copy of the current category collection.
func (s *Store) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

// Revision is a monotonic counter incremented on every successful mutation.
// Consumers use it to key derived-view caches.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// LastPersistErr reports the most recent snapshot write failure, or nil. The
// in-memory snapshot stays authoritative for the session either way.
func (s *Store) LastPersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// validateExpenseInput checks the add/update preconditions by validating the
// assembled record, then resolving the category id against the current
// collection. Callers hold the write lock.
func (s *Store) validateExpenseInput(in ExpenseInput) error {
	e := core.Expense{
		Amount:   core.Money{Cents: in.AmountCents},
		Category: in.Category,
		Date:     in.Date,
		Note:     in.Note,
	}
	if err := e.Validate(); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidAmount):
			return &ValidationError{Field: "amount", Err: err}
		case errors.Is(err, core.ErrInvalidDate):
			return &ValidationError{Field: "date", Err: err}
		case errors.Is(err, core.ErrUnknownCategory):
			return &ValidationError{Field: "category", Err: err}
		default:
			return &ValidationError{Field: "note", Err: err}
		}
	}
	for _, c := range s.categories {
		if c.ID == in.Category {
			return nil
		}
	}
	return &ValidationError{Field: "category", Err: core.ErrUnknownCategory}
}

// afterMutation bumps the revision, persists the snapshot, and emits the
// change event. Callers hold the write lock. Persistence and publish failures
// are logged, never returned: the in-memory mutation stands.
func (s *Store) afterMutation(ctx context.Context, ev Event) {
	s.rev++
	s.persistErr = s.persistLocked(ctx)
	if s.persistErr != nil {
		slog.WarnContext(ctx, "Snapshot persist failed, in-memory state remains authoritative",
			"error", s.persistErr,
			"entity", ev.Entity,
			"action", ev.Action)
	}

	if s.sink == nil {
		return
	}
	if err := s.sink.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish change event",
			"error", err,
			"entity", ev.Entity,
			"action", ev.Action,
			"id", ev.ID)
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	expenses, err := encodeExpenses(s.expenses)
	if err != nil {
		return err
	}
	categories, err := encodeCategories(s.categories)
	if err != nil {
		return err
	}
	if err := s.slots.Set(ctx, slotExpenses, expenses); err != nil {
		return err
	}
	return s.slots.Set(ctx, slotCategories, categories)
}
