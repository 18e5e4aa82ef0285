// Package storage is the SQLite-backed ledger store. It mirrors the
// store.Ledger port so the HTTP server and workers can swap it for the
// in-memory backend without code changes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"carteira/internal/core"
	"carteira/internal/store"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.Ledger = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if strings.TrimSpace(e.Category) == "" {
		e.Category = core.DefaultCategory
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount_cents, description, category, date_unix, origin)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount.Cents, e.Description, e.Category, e.Date.Unix(), string(e.Origin))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, description, category, date_unix, origin
		 FROM expenses ORDER BY date_unix DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		var unix int64
		var origin string
		if err := rows.Scan(&e.ID, &e.Amount.Cents, &e.Description, &e.Category, &unix, &origin); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = time.Unix(unix, 0)
		e.Origin = core.ExpenseOrigin(origin)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) RemoveExpense(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "expenses", id)
}

func (r *SQLiteRepository) ClearExpenses(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AddIncome(ctx context.Context, in core.Income) (core.Income, error) {
	if strings.TrimSpace(in.Category) == "" {
		in.Category = core.DefaultCategory
	}
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	in.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO incomes (id, amount_cents, description, category, date_unix, origin)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Amount.Cents, in.Description, in.Category, in.Date.Unix(), string(in.Origin))
	if err != nil {
		return core.Income{}, fmt.Errorf("insert income: %w", err)
	}
	return in, nil
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, description, category, date_unix, origin
		 FROM incomes ORDER BY date_unix DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var in core.Income
		var unix int64
		var origin string
		if err := rows.Scan(&in.ID, &in.Amount.Cents, &in.Description, &in.Category, &unix, &origin); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		in.Date = time.Unix(unix, 0)
		in.Origin = core.IncomeOrigin(origin)
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) RemoveIncome(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "incomes", id)
}

func (r *SQLiteRepository) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	g.Active = true
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, category, limit_cents, period, active, color)
		 VALUES (?, ?, ?, ?, 1, ?)`,
		g.ID, g.Category, g.Limit.Cents, string(g.Period), g.Color)
	if err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, limit_cents, period, active, color
		 FROM goals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var period string
		if err := rows.Scan(&g.ID, &g.Category, &g.Limit.Cents, &period, &g.Active, &g.Color); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Period = core.GoalPeriod(period)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, id string, patch store.GoalPatch) (core.Goal, error) {
	g, err := r.getGoal(ctx, id)
	if err != nil {
		return core.Goal{}, err
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

	_, err = r.db.ExecContext(ctx,
		`UPDATE goals SET category = ?, limit_cents = ?, period = ?, active = ?, color = ? WHERE id = ?`,
		g.Category, g.Limit.Cents, string(g.Period), g.Active, g.Color, id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) ToggleGoalActive(ctx context.Context, id string) (core.Goal, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE goals SET active = NOT active WHERE id = ?`, id)
	if err != nil {
		return core.Goal{}, fmt.Errorf("toggle goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Goal{}, store.ErrNotFound
	}
	return r.getGoal(ctx, id)
}

func (r *SQLiteRepository) RemoveGoal(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "goals", id)
}

func (r *SQLiteRepository) getGoal(ctx context.Context, id string) (core.Goal, error) {
	var g core.Goal
	var period string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, category, limit_cents, period, active, color FROM goals WHERE id = ?`, id).
		Scan(&g.ID, &g.Category, &g.Limit.Cents, &period, &g.Active, &g.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, store.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	g.Period = core.GoalPeriod(period)
	return g, nil
}

func (r *SQLiteRepository) AddReminder(ctx context.Context, rem core.Reminder) (core.Reminder, error) {
	if strings.TrimSpace(rem.Category) == "" {
		rem.Category = core.DefaultCategory
	}
	if err := rem.Validate(); err != nil {
		return core.Reminder{}, err
	}
	rem.ID = uuid.NewString()

	var amount sql.NullInt64
	if rem.Amount != nil {
		amount = sql.NullInt64{Int64: rem.Amount.Cents, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (id, title, description, amount_cents, due_unix, recurrence, done, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rem.ID, rem.Title, rem.Description, amount, rem.DueDate.Unix(), string(rem.Recurrence), rem.Done, rem.Category)
	if err != nil {
		return core.Reminder{}, fmt.Errorf("insert reminder: %w", err)
	}
	return rem, nil
}

func (r *SQLiteRepository) ListReminders(ctx context.Context) ([]core.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, amount_cents, due_unix, recurrence, done, category
		 FROM reminders ORDER BY due_unix`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []core.Reminder
	for rows.Next() {
		var rem core.Reminder
		var amount sql.NullInt64
		var unix int64
		var recurrence string
		if err := rows.Scan(&rem.ID, &rem.Title, &rem.Description, &amount, &unix, &recurrence, &rem.Done, &rem.Category); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		if amount.Valid {
			rem.Amount = &core.Money{Cents: amount.Int64}
		}
		rem.DueDate = time.Unix(unix, 0)
		rem.Recurrence = core.Recurrence(recurrence)
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ToggleReminderDone(ctx context.Context, id string) (core.Reminder, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE reminders SET done = NOT done WHERE id = ?`, id)
	if err != nil {
		return core.Reminder{}, fmt.Errorf("toggle reminder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.Reminder{}, store.ErrNotFound
	}

	var rem core.Reminder
	var amount sql.NullInt64
	var unix int64
	var recurrence string
	err = r.db.QueryRowContext(ctx,
		`SELECT id, title, description, amount_cents, due_unix, recurrence, done, category
		 FROM reminders WHERE id = ?`, id).
		Scan(&rem.ID, &rem.Title, &rem.Description, &amount, &unix, &recurrence, &rem.Done, &rem.Category)
	if err != nil {
		return core.Reminder{}, fmt.Errorf("get reminder: %w", err)
	}
	if amount.Valid {
		rem.Amount = &core.Money{Cents: amount.Int64}
	}
	rem.DueDate = time.Unix(unix, 0)
	rem.Recurrence = core.Recurrence(recurrence)
	return rem, nil
}

func (r *SQLiteRepository) RemoveReminder(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "reminders", id)
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
