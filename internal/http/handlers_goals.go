package http

import (
	"net/http"
	"time"

	"carteira/internal/analytics"
	"carteira/internal/core"
	"carteira/internal/store"
)

type createGoalRequest struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Period   string `json:"period"`
	Color    string `json:"color"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	limit, err := core.ParseAmount(req.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit")
		return
	}

	goal := core.Goal{
		Category: sanitizeInput(req.Category),
		Limit:    limit,
		Period:   core.GoalPeriod(req.Period),
		Color:    sanitizeInput(req.Color),
	}
	if err := goal.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}

	saved, err := s.ledger.AddGoal(r.Context(), goal)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusCreated, saved)
}

// handleListGoals returns every goal annotated with its spend progress
// inside the current window. Inactive goals report progress too; clients
// decide whether to show them.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.ledger.ListGoals(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	progress, err := analytics.GoalProgressAll(goals, expenses, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

type updateGoalRequest struct {
	Category *string `json:"category"`
	Limit    *string `json:"limit"`
	Period   *string `json:"period"`
	Active   *bool   `json:"active"`
	Color    *string `json:"color"`
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var patch store.GoalPatch
	if req.Category != nil {
		category := sanitizeInput(*req.Category)
		patch.Category = &category
	}
	if req.Limit != nil {
		limit, err := core.ParseAmount(*req.Limit)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid limit")
			return
		}
		patch.Limit = &limit
	}
	if req.Period != nil {
		period := core.GoalPeriod(*req.Period)
		if !period.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "invalid goal period")
			return
		}
		patch.Period = &period
	}
	patch.Active = req.Active
	patch.Color = req.Color

	updated, err := s.ledger.UpdateGoal(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	updated, err := s.ledger.ToggleGoalActive(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveGoal(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusNoContent, nil)
}
