package http

import (
	"net/http"
	"time"

	"carteira/internal/analytics"
	"carteira/internal/core"
)

type createReminderRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	DueDate     string `json:"due_date"`
	Recurrence  string `json:"recurrence"`
	Category    string `json:"category"`
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dueDate, err := parseEntryDate(req.DueDate)
	if err != nil || req.DueDate == "" {
		writeError(w, http.StatusUnprocessableEntity, "invalid due date")
		return
	}

	var amount *core.Money
	if req.Amount != "" {
		parsed, err := core.ParseAmount(req.Amount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		amount = &parsed
	}

	rem := core.Reminder{
		Title:       sanitizeInput(req.Title),
		Description: sanitizeInput(req.Description),
		Amount:      amount,
		DueDate:     dueDate,
		Recurrence:  core.Recurrence(req.Recurrence),
		Category:    sanitizeInput(req.Category),
	}
	if err := rem.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}

	saved, err := s.ledger.AddReminder(r.Context(), rem)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

type reminderListResponse struct {
	Reminders []core.ReminderUrgency `json:"reminders"`
	Overdue   int                    `json:"overdue"`
	Urgent    int                    `json:"urgent"`
}

// handleListReminders returns reminders in display order, each classified
// against the current time, plus pending counters.
func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.ledger.ListReminders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	now := time.Now()
	sorted := analytics.SortForDisplay(reminders)
	classified := make([]core.ReminderUrgency, 0, len(sorted))
	for _, rem := range sorted {
		classified = append(classified, analytics.ClassifyReminder(rem, now))
	}
	overdue, urgent := analytics.PendingCounts(reminders, now)

	writeJSON(w, http.StatusOK, reminderListResponse{
		Reminders: classified,
		Overdue:   overdue,
		Urgent:    urgent,
	})
}

func (s *Server) handleToggleReminder(w http.ResponseWriter, r *http.Request) {
	updated, err := s.ledger.ToggleReminderDone(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveReminder(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
