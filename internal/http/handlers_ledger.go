package http

import (
	"log/slog"
	"net/http"

	"carteira/internal/core"
)

type createExpenseRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Origin      string `json:"origin"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := parseEntryDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	origin := core.ExpenseOrigin(req.Origin)
	if req.Origin == "" {
		origin = core.OriginManual
	}

	exp := core.Expense{
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Date:        date,
		Origin:      origin,
	}
	if err := exp.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}

	saved, err := s.ledger.AddExpense(r.Context(), exp)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save expense",
			"error", err,
			"description", exp.Description,
			"amount_cents", exp.Amount.Cents)
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveExpense(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.ClearExpenses(r.Context()); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	slog.InfoContext(r.Context(), "Cleared all expenses")
	writeJSON(w, http.StatusNoContent, nil)
}

type createIncomeRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Origin      string `json:"origin"`
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req createIncomeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}
	date, err := parseEntryDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}

	origin := core.IncomeOrigin(req.Origin)
	if req.Origin == "" {
		origin = core.OriginOther
	}

	in := core.Income{
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Date:        date,
		Origin:      origin,
	}
	if err := in.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}

	saved, err := s.ledger.AddIncome(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := s.ledger.ListIncomes(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveIncome(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusNoContent, nil)
}
