// Package memory is the in-memory ledger store, used as the default
// backend and in tests. All methods copy on the way out so callers can
// hand slices to the analytics engine without aliasing store state.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"carteira/internal/core"
	"carteira/internal/store"
)

type Store struct {
	mu        sync.Mutex
	expenses  []core.Expense
	incomes   []core.Income
	goals     []core.Goal
	reminders []core.Reminder
}

var _ store.Ledger = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AddExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	if strings.TrimSpace(e.Category) == "" {
		e.Category = core.DefaultCategory
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return e, nil
}

func (s *Store) ListExpenses(context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *Store) RemoveExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ClearExpenses(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = nil
	return nil
}

func (s *Store) AddIncome(_ context.Context, in core.Income) (core.Income, error) {
	if strings.TrimSpace(in.Category) == "" {
		in.Category = core.DefaultCategory
	}
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	in.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incomes = append(s.incomes, in)
	return in, nil
}

func (s *Store) ListIncomes(context.Context) ([]core.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Income, len(s.incomes))
	copy(out, s.incomes)
	return out, nil
}

func (s *Store) RemoveIncome(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, in := range s.incomes {
		if in.ID == id {
			s.incomes = append(s.incomes[:i], s.incomes[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) AddGoal(_ context.Context, g core.Goal) (core.Goal, error) {
	g.Active = true
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *Store) ListGoals(context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

func (s *Store) UpdateGoal(_ context.Context, id string, patch store.GoalPatch) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID != id {
			continue
		}
		if patch.Category != nil {
			g.Category = *patch.Category
		}
		if patch.Limit != nil {
			g.Limit = *patch.Limit
		}
		if patch.Period != nil {
			g.Period = *patch.Period
		}
		if patch.Active != nil {
			g.Active = *patch.Active
		}
		if patch.Color != nil {
			g.Color = *patch.Color
		}
		if err := g.Validate(); err != nil {
			return core.Goal{}, err
		}
		s.goals[i] = g
		return g, nil
	}
	return core.Goal{}, store.ErrNotFound
}

func (s *Store) ToggleGoalActive(_ context.Context, id string) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals[i].Active = !g.Active
			return s.goals[i], nil
		}
	}
	return core.Goal{}, store.ErrNotFound
}

func (s *Store) RemoveGoal(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) AddReminder(_ context.Context, r core.Reminder) (core.Reminder, error) {
	if strings.TrimSpace(r.Category) == "" {
		r.Category = core.DefaultCategory
	}
	if err := r.Validate(); err != nil {
		return core.Reminder{}, err
	}
	r.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, r)
	return r, nil
}

func (s *Store) ListReminders(context.Context) ([]core.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out, nil
}

func (s *Store) ToggleReminderDone(_ context.Context, id string) (core.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders[i].Done = !r.Done
			return s.reminders[i], nil
		}
	}
	return core.Reminder{}, store.ErrNotFound
}

func (s *Store) RemoveReminder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
