// Package worker consumes captured transcripts from the queue and turns
// them into ledger entries via the voice parser.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"carteira/internal/amqp"
	"carteira/internal/core"
	"carteira/internal/store"
	"carteira/internal/voice"
)

type TranscriptWorker struct {
	ledger store.ExpenseStore
}

func NewTranscriptWorker(ledger store.ExpenseStore) *TranscriptWorker {
	return &TranscriptWorker{ledger: ledger}
}

// HandleTranscript parses one utterance and appends the resulting
// expense. A transcript without a parsable amount is logged and dropped
// rather than requeued: reprocessing the same text cannot succeed, and
// the capture UI prompts the user to fill gaps manually.
func (w *TranscriptWorker) HandleTranscript(ctx context.Context, msg *amqp.TranscriptMessage) error {
	cmd := voice.Parse(msg.Text)
	if cmd.Amount == nil {
		slog.WarnContext(ctx, "Transcript carries no parsable amount, skipping",
			"id", msg.ID, "text", msg.Text)
		return nil
	}

	origin := core.OriginVoice
	if msg.Source == string(core.OriginPhoto) {
		origin = core.OriginPhoto
	}

	date := msg.CapturedAt
	if date.IsZero() {
		date = time.Now()
	}
	expense := core.Expense{
		Amount:      *cmd.Amount,
		Description: cmd.Description,
		Category:    cmd.Category,
		Date:        date,
		Origin:      origin,
	}

	saved, err := w.ledger.AddExpense(ctx, expense)
	if err != nil {
		return fmt.Errorf("append expense from transcript %s: %w", msg.ID, err)
	}

	slog.InfoContext(ctx, "Expense created from transcript",
		"transcript_id", msg.ID,
		"expense_id", saved.ID,
		"amount_cents", saved.Amount.Cents,
		"category", saved.Category)
	return nil
}
