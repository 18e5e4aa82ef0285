package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"carteira/internal/amqp"
	"carteira/internal/core"
	"carteira/internal/voice"
)

type voiceCommandRequest struct {
	Text string `json:"text"`
	Save bool   `json:"save"`
}

type voiceCommandResponse struct {
	Command voice.Command `json:"command"`
	Expense *core.Expense `json:"expense,omitempty"`
}

// handleVoiceCommand parses a spoken utterance into an expense draft.
// With save=true the draft is written to the ledger; a draft without a
// recognizable amount is never saved.
func (s *Server) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req voiceCommandRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty transcript")
		return
	}

	cmd := voice.Parse(req.Text)
	resp := voiceCommandResponse{Command: cmd}

	if req.Save {
		if cmd.Amount == nil {
			writeError(w, http.StatusUnprocessableEntity, "no amount recognized in transcript")
			return
		}
		exp := core.Expense{
			Amount:      *cmd.Amount,
			Description: cmd.Description,
			Category:    cmd.Category,
			Date:        time.Now(),
			Origin:      core.OriginVoice,
		}
		saved, err := s.ledger.AddExpense(r.Context(), exp)
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to save voice expense",
				"error", err, "transcript", req.Text)
			writeStoreError(w, err)
			return
		}
		s.invalidate()
		resp.Expense = &saved
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type queueTranscriptRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// handleQueueTranscript hands a raw utterance to the capture queue for
// asynchronous parsing by the worker.
func (s *Server) handleQueueTranscript(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "capture queue is not configured")
		return
	}

	var req queueTranscriptRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty transcript")
		return
	}
	source := req.Source
	if source == "" {
		source = "voice"
	}

	msg := amqp.NewTranscriptMessage(uuid.NewString(), req.Text, source)
	if err := s.publisher.PublishTranscript(r.Context(), msg); err != nil {
		slog.ErrorContext(r.Context(), "Failed to publish transcript",
			"error", err, "transcript_id", msg.ID)
		writeError(w, http.StatusBadGateway, "failed to enqueue transcript")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"id": msg.ID})
}

type simulateReceiptRequest struct {
	Save bool `json:"save"`
}

type simulateReceiptResponse struct {
	Scan    voice.ReceiptScan `json:"scan"`
	Expense *core.Expense     `json:"expense,omitempty"`
}

// handleSimulateReceipt runs the receipt scanner and optionally records
// the result as a photo-origin expense.
func (s *Server) handleSimulateReceipt(w http.ResponseWriter, r *http.Request) {
	var req simulateReceiptRequest
	if !decodeBody(w, r, &req) {
		return
	}

	scan, err := s.ocr.Scan(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "receipt scan failed")
		return
	}
	resp := simulateReceiptResponse{Scan: scan}

	if req.Save {
		exp := core.Expense{
			Amount:      scan.Amount,
			Description: scan.Merchant,
			Category:    scan.Category,
			Date:        time.Now(),
			Origin:      core.OriginPhoto,
		}
		saved, err := s.ledger.AddExpense(r.Context(), exp)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		s.invalidate()
		resp.Expense = &saved
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
