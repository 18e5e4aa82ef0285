// Package store defines the ports for ledger persistence. The analytics
// engine never sees these interfaces; callers load snapshots from a store
// and hand plain slices to the engine.
package store

import (
	"context"
	"errors"

	"carteira/internal/core"
)

// ErrNotFound is returned when an id does not exist in the store.
var ErrNotFound = errors.New("not found")

// GoalPatch carries a partial goal edit; nil fields are left untouched.
// The id is never part of a patch.
type GoalPatch struct {
	Category *string          `json:"category,omitempty"`
	Limit    *core.Money      `json:"limit,omitempty"`
	Period   *core.GoalPeriod `json:"period,omitempty"`
	Active   *bool            `json:"active,omitempty"`
	Color    *string          `json:"color,omitempty"`
}

type (
	ExpenseStore interface {
		// AddExpense assigns a fresh id and stores the entry.
		AddExpense(ctx context.Context, e core.Expense) (core.Expense, error)
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		RemoveExpense(ctx context.Context, id string) error
		ClearExpenses(ctx context.Context) error
	}

	IncomeStore interface {
		AddIncome(ctx context.Context, in core.Income) (core.Income, error)
		ListIncomes(ctx context.Context) ([]core.Income, error)
		RemoveIncome(ctx context.Context, id string) error
	}

	GoalStore interface {
		// AddGoal assigns a fresh id; Active defaults to true.
		AddGoal(ctx context.Context, g core.Goal) (core.Goal, error)
		ListGoals(ctx context.Context) ([]core.Goal, error)
		// UpdateGoal applies a partial edit, preserving omitted fields.
		UpdateGoal(ctx context.Context, id string, patch GoalPatch) (core.Goal, error)
		// ToggleGoalActive flips the active flag.
		ToggleGoalActive(ctx context.Context, id string) (core.Goal, error)
		RemoveGoal(ctx context.Context, id string) error
	}

	ReminderStore interface {
		AddReminder(ctx context.Context, r core.Reminder) (core.Reminder, error)
		ListReminders(ctx context.Context) ([]core.Reminder, error)
		// ToggleReminderDone flips completion without touching DueDate.
		ToggleReminderDone(ctx context.Context, id string) (core.Reminder, error)
		RemoveReminder(ctx context.Context, id string) error
	}

	// Ledger is the full persistence surface used by the HTTP server and
	// workers.
	Ledger interface {
		ExpenseStore
		IncomeStore
		GoalStore
		ReminderStore
	}
)
