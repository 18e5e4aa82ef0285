package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"carteira/internal/amqp"
	"carteira/internal/core"
)

type fakeExpenseStore struct {
	added  []core.Expense
	addErr error
}

func (f *fakeExpenseStore) AddExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	if f.addErr != nil {
		return core.Expense{}, f.addErr
	}
	e.ID = "exp-1"
	f.added = append(f.added, e)
	return e, nil
}

func (f *fakeExpenseStore) ListExpenses(context.Context) ([]core.Expense, error) {
	return f.added, nil
}

func (f *fakeExpenseStore) RemoveExpense(context.Context, string) error { return nil }
func (f *fakeExpenseStore) ClearExpenses(context.Context) error         { return nil }

func TestTranscriptWorker_HandleTranscript(t *testing.T) {
	ctx := context.Background()

	t.Run("creates expense from parsable transcript", func(t *testing.T) {
		store := &fakeExpenseStore{}
		w := NewTranscriptWorker(store)

		capturedAt := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
		msg := &amqp.TranscriptMessage{
			ID:         "t1",
			Text:       "gastei 25 reais com lanche",
			Source:     "voice",
			CapturedAt: capturedAt,
		}

		if err := w.HandleTranscript(ctx, msg); err != nil {
			t.Fatalf("HandleTranscript() error = %v", err)
		}
		if len(store.added) != 1 {
			t.Fatalf("added %d expenses, want 1", len(store.added))
		}
		exp := store.added[0]
		if exp.Amount.Cents != 2500 {
			t.Errorf("Amount = %d, want 2500", exp.Amount.Cents)
		}
		if exp.Category != "Alimentação" {
			t.Errorf("Category = %q, want Alimentação", exp.Category)
		}
		if exp.Origin != core.OriginVoice {
			t.Errorf("Origin = %s, want voice", exp.Origin)
		}
		if !exp.Date.Equal(capturedAt) {
			t.Errorf("Date = %v, want %v", exp.Date, capturedAt)
		}
	})

	t.Run("photo source maps to photo origin", func(t *testing.T) {
		store := &fakeExpenseStore{}
		w := NewTranscriptWorker(store)

		msg := &amqp.TranscriptMessage{ID: "t2", Text: "mercado 80 reais", Source: "photo", CapturedAt: time.Now()}
		if err := w.HandleTranscript(ctx, msg); err != nil {
			t.Fatalf("HandleTranscript() error = %v", err)
		}
		if store.added[0].Origin != core.OriginPhoto {
			t.Errorf("Origin = %s, want photo", store.added[0].Origin)
		}
	})

	t.Run("unparsable amount is dropped without error", func(t *testing.T) {
		store := &fakeExpenseStore{}
		w := NewTranscriptWorker(store)

		msg := &amqp.TranscriptMessage{ID: "t3", Text: "gastei vinte reais com lanche", Source: "voice"}
		if err := w.HandleTranscript(ctx, msg); err != nil {
			t.Fatalf("HandleTranscript() error = %v, want nil for drop", err)
		}
		if len(store.added) != 0 {
			t.Errorf("added %d expenses, want 0", len(store.added))
		}
	})

	t.Run("zero capture time falls back to now", func(t *testing.T) {
		store := &fakeExpenseStore{}
		w := NewTranscriptWorker(store)

		msg := &amqp.TranscriptMessage{ID: "t4", Text: "uber 18 reais", Source: "voice"}
		if err := w.HandleTranscript(ctx, msg); err != nil {
			t.Fatalf("HandleTranscript() error = %v", err)
		}
		if store.added[0].Date.IsZero() {
			t.Error("Date should default to the current time")
		}
	})

	t.Run("store failure propagates for requeue", func(t *testing.T) {
		store := &fakeExpenseStore{addErr: errors.New("db locked")}
		w := NewTranscriptWorker(store)

		msg := &amqp.TranscriptMessage{ID: "t5", Text: "almoço 30 reais", Source: "voice"}
		if err := w.HandleTranscript(ctx, msg); err == nil {
			t.Error("HandleTranscript() error = nil, want store error")
		}
	})
}
