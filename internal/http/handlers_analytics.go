package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"carteira/internal/analytics"
	"carteira/internal/core"
)

type breakdownResponse struct {
	Items []core.CategoryBreakdown `json:"items"`
	Total core.Money               `json:"total"`
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	items, total := analytics.ByCategory(expenses)
	writeJSON(w, http.StatusOK, breakdownResponse{Items: items, Total: total})
}

func (s *Server) handleWeekdayBreakdown(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.ByWeekday(expenses))
}

func (s *Server) handleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	months := 6
	if v := r.URL.Query().Get("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 24 {
			writeError(w, http.StatusBadRequest, "months must be between 1 and 24")
			return
		}
		months = parsed
	}

	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.MonthlyTrend(expenses, months, time.Now()))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(expenses, time.Now()))
}

func (s *Server) composeReport(r *http.Request) (core.ReportView, int, string) {
	window := core.ReportWindow(r.PathValue("window"))
	if !window.Valid() {
		return core.ReportView{}, http.StatusBadRequest, "unknown report window"
	}

	if view, ok := s.reportCache.Get(string(window)); ok {
		return view, http.StatusOK, ""
	}

	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		return core.ReportView{}, http.StatusInternalServerError, "internal error"
	}
	incomes, err := s.ledger.ListIncomes(r.Context())
	if err != nil {
		return core.ReportView{}, http.StatusInternalServerError, "internal error"
	}

	view, err := analytics.ComposeReport(expenses, incomes, window, time.Now())
	if err != nil {
		return core.ReportView{}, http.StatusInternalServerError, "internal error"
	}
	s.reportCache.Set(string(window), view)
	return view, http.StatusOK, ""
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	view, status, errMsg := s.composeReport(r)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "report export is not configured")
		return
	}

	view, status, errMsg := s.composeReport(r)
	if errMsg != "" {
		writeError(w, status, errMsg)
		return
	}

	if err := s.exporter.ExportReport(r.Context(), view); err != nil {
		slog.ErrorContext(r.Context(), "Failed to export report",
			"error", err, "window", view.Window)
		writeError(w, http.StatusBadGateway, "export failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exported": true,
		"window":   view.Window,
	})
}
