package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carteira/internal/amqp"
	"carteira/internal/core"
	"carteira/internal/store/memory"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	srv := NewServer(":0", memory.New(), opts)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doJSON(t, srv.Handler, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestExpenseEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	t.Run("create and list", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/expenses", map[string]any{
			"amount":      "25,50",
			"description": "almoço",
			"category":    "Alimentação",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /expenses = %d, body %s", rec.Code, rec.Body.String())
		}
		created := decodeJSON[core.Expense](t, rec)
		if created.ID == "" {
			t.Error("created expense has no id")
		}
		if created.Amount.Cents != 2550 {
			t.Errorf("Amount = %d, want 2550", created.Amount.Cents)
		}
		if created.Origin != core.OriginManual {
			t.Errorf("Origin = %s, want manual default", created.Origin)
		}

		rec = doJSON(t, srv.Handler, http.MethodGet, "/expenses", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /expenses = %d", rec.Code)
		}
		list := decodeJSON[[]core.Expense](t, rec)
		if len(list) != 1 {
			t.Errorf("len(list) = %d, want 1", len(list))
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/expenses", map[string]any{
			"amount":      "-5",
			"description": "x",
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("POST /expenses = %d, want 422", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST /expenses = %d, want 400", rec.Code)
		}
	})

	t.Run("delete unknown id", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodDelete, "/expenses/nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("DELETE /expenses/nope = %d, want 404", rec.Code)
		}
	})

	t.Run("clear", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodDelete, "/expenses", nil)
		if rec.Code != http.StatusNoContent {
			t.Errorf("DELETE /expenses = %d, want 204", rec.Code)
		}
		rec = doJSON(t, srv.Handler, http.MethodGet, "/expenses", nil)
		list := decodeJSON[[]core.Expense](t, rec)
		if len(list) != 0 {
			t.Errorf("len(list) after clear = %d, want 0", len(list))
		}
	})
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doJSON(t, srv.Handler, http.MethodPost, "/goals", map[string]any{
		"category": "Alimentação",
		"limit":    "500",
		"period":   "monthly",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /goals = %d, body %s", rec.Code, rec.Body.String())
	}
	goal := decodeJSON[core.Goal](t, rec)
	if !goal.Active {
		t.Error("new goal should be active")
	}

	// Spend against the goal this month.
	rec = doJSON(t, srv.Handler, http.MethodPost, "/expenses", map[string]any{
		"amount":      "450",
		"description": "mercado do mês",
		"category":    "Alimentação",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /expenses = %d", rec.Code)
	}

	t.Run("list reports progress", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/goals", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /goals = %d", rec.Code)
		}
		progress := decodeJSON[[]core.GoalProgress](t, rec)
		if len(progress) != 1 {
			t.Fatalf("len(progress) = %d, want 1", len(progress))
		}
		p := progress[0]
		if p.Spent.Cents != 45000 {
			t.Errorf("Spent = %d, want 45000", p.Spent.Cents)
		}
		if p.Status != core.GoalStatusWarning {
			t.Errorf("Status = %s, want warning at 90%%", p.Status)
		}
	})

	t.Run("patch limit only", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPatch, "/goals/"+goal.ID, map[string]any{
			"limit": "1000",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("PATCH /goals = %d, body %s", rec.Code, rec.Body.String())
		}
		updated := decodeJSON[core.Goal](t, rec)
		if updated.Limit.Cents != 100000 {
			t.Errorf("Limit = %d, want 100000", updated.Limit.Cents)
		}
		if updated.Category != "Alimentação" {
			t.Errorf("Category clobbered: %q", updated.Category)
		}
	})

	t.Run("toggle", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/goals/"+goal.ID+"/toggle", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("POST toggle = %d", rec.Code)
		}
		toggled := decodeJSON[core.Goal](t, rec)
		if toggled.Active {
			t.Error("Active = true after toggle, want false")
		}
	})

	t.Run("invalid period on patch", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPatch, "/goals/"+goal.ID, map[string]any{
			"period": "daily",
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("PATCH /goals = %d, want 422", rec.Code)
		}
	})
}

func TestReminderEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	mkReminder := func(title, due string) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/reminders", map[string]any{
			"title":    title,
			"due_date": due,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /reminders = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	now := time.Now()
	mkReminder("overdue", now.AddDate(0, 0, -2).Format("2006-01-02"))
	mkReminder("urgent", now.AddDate(0, 0, 1).Format("2006-01-02"))
	mkReminder("normal", now.AddDate(0, 0, 20).Format("2006-01-02"))

	rec := doJSON(t, srv.Handler, http.MethodGet, "/reminders", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /reminders = %d", rec.Code)
	}
	resp := decodeJSON[reminderListResponse](t, rec)
	if len(resp.Reminders) != 3 {
		t.Fatalf("len(reminders) = %d, want 3", len(resp.Reminders))
	}
	if resp.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", resp.Overdue)
	}
	if resp.Urgent != 1 {
		t.Errorf("Urgent = %d, want 1", resp.Urgent)
	}
	if resp.Reminders[0].Reminder.Title != "overdue" {
		t.Errorf("first reminder = %s, want the earliest due", resp.Reminders[0].Reminder.Title)
	}

	t.Run("missing due date", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/reminders", map[string]any{"title": "x"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("POST /reminders = %d, want 422", rec.Code)
		}
	})
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	seed := func(amount, category string) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/expenses", map[string]any{
			"amount":      amount,
			"description": "entry",
			"category":    category,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed expense = %d", rec.Code)
		}
	}
	seed("150", "Alimentação")
	seed("50", "Transporte")

	t.Run("category breakdown", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/analytics/categories", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /analytics/categories = %d", rec.Code)
		}
		resp := decodeJSON[breakdownResponse](t, rec)
		if resp.Total.Cents != 20000 {
			t.Errorf("Total = %d, want 20000", resp.Total.Cents)
		}
		if len(resp.Items) != 2 || resp.Items[0].Name != "Alimentação" || resp.Items[0].PercentOfTotal != 75 {
			t.Errorf("Items = %+v", resp.Items)
		}
	})

	t.Run("weekday buckets", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/analytics/weekdays", nil)
		buckets := decodeJSON[[]core.PeriodBucket](t, rec)
		if len(buckets) != 7 {
			t.Errorf("len(buckets) = %d, want 7", len(buckets))
		}
	})

	t.Run("trend months bounds", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/analytics/trend?months=3", nil)
		buckets := decodeJSON[[]core.PeriodBucket](t, rec)
		if len(buckets) != 3 {
			t.Errorf("len(buckets) = %d, want 3", len(buckets))
		}

		rec = doJSON(t, srv.Handler, http.MethodGet, "/analytics/trend?months=0", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("months=0 = %d, want 400", rec.Code)
		}
	})

	t.Run("summary", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/summary", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /summary = %d", rec.Code)
		}
	})

	t.Run("report and cache invalidation", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/reports/month", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /reports/month = %d", rec.Code)
		}
		view := decodeJSON[core.ReportView](t, rec)
		if view.ExpenseTotal.Cents != 20000 {
			t.Errorf("ExpenseTotal = %d, want 20000", view.ExpenseTotal.Cents)
		}

		// A write purges the cached view.
		seed("100", "Lazer")
		rec = doJSON(t, srv.Handler, http.MethodGet, "/reports/month", nil)
		view = decodeJSON[core.ReportView](t, rec)
		if view.ExpenseTotal.Cents != 30000 {
			t.Errorf("ExpenseTotal after write = %d, want 30000", view.ExpenseTotal.Cents)
		}
	})

	t.Run("unknown window", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodGet, "/reports/fortnight", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET /reports/fortnight = %d, want 400", rec.Code)
		}
	})

	t.Run("export without exporter", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/reports/month/export", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("POST export = %d, want 503", rec.Code)
		}
	})
}

type fakeExporter struct {
	exported []core.ReportView
}

func (f *fakeExporter) ExportReport(_ context.Context, view core.ReportView) error {
	f.exported = append(f.exported, view)
	return nil
}

func TestExportReport(t *testing.T) {
	exporter := &fakeExporter{}
	srv := newTestServer(t, Options{Exporter: exporter})

	rec := doJSON(t, srv.Handler, http.MethodPost, "/reports/week/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST export = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(exporter.exported) != 1 {
		t.Fatalf("exported %d views, want 1", len(exporter.exported))
	}
	if exporter.exported[0].Window != core.WindowWeek {
		t.Errorf("exported window = %s, want week", exporter.exported[0].Window)
	}
}

func TestVoiceEndpoints(t *testing.T) {
	srv := newTestServer(t, Options{})

	t.Run("parse without save", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/voice", map[string]any{
			"text": "gastei 25 reais com lanche",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("POST /voice = %d, body %s", rec.Code, rec.Body.String())
		}
		resp := decodeJSON[voiceCommandResponse](t, rec)
		if resp.Command.Amount == nil || resp.Command.Amount.Cents != 2500 {
			t.Errorf("Command.Amount = %v, want 2500 cents", resp.Command.Amount)
		}
		if resp.Command.Category != "Alimentação" {
			t.Errorf("Category = %q, want Alimentação", resp.Command.Category)
		}
		if resp.Expense != nil {
			t.Error("Expense should be nil without save")
		}
	})

	t.Run("save creates voice expense", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/voice", map[string]any{
			"text": "paguei 12,50 reais de uber",
			"save": true,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /voice save = %d, body %s", rec.Code, rec.Body.String())
		}
		resp := decodeJSON[voiceCommandResponse](t, rec)
		if resp.Expense == nil {
			t.Fatal("Expense = nil, want saved entry")
		}
		if resp.Expense.Origin != core.OriginVoice {
			t.Errorf("Origin = %s, want voice", resp.Expense.Origin)
		}
	})

	t.Run("save without amount is rejected", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/voice", map[string]any{
			"text": "gastei vinte reais",
			"save": true,
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("POST /voice = %d, want 422", rec.Code)
		}
	})

	t.Run("empty transcript", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/voice", map[string]any{"text": "  "})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("POST /voice = %d, want 422", rec.Code)
		}
	})

	t.Run("queue without publisher", func(t *testing.T) {
		rec := doJSON(t, srv.Handler, http.MethodPost, "/voice/queue", map[string]any{"text": "x 10 reais"})
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("POST /voice/queue = %d, want 503", rec.Code)
		}
	})
}

type fakePublisher struct {
	published []*amqp.TranscriptMessage
}

func (f *fakePublisher) PublishTranscript(_ context.Context, msg *amqp.TranscriptMessage) error {
	f.published = append(f.published, msg)
	return nil
}

func TestQueueTranscript(t *testing.T) {
	publisher := &fakePublisher{}
	srv := newTestServer(t, Options{Publisher: publisher})

	rec := doJSON(t, srv.Handler, http.MethodPost, "/voice/queue", map[string]any{
		"text": "gastei 25 reais com lanche",
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("POST /voice/queue = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(publisher.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.published))
	}
	msg := publisher.published[0]
	if msg.ID == "" {
		t.Error("message has no id")
	}
	if msg.Source != "voice" {
		t.Errorf("Source = %q, want voice default", msg.Source)
	}
}

func TestSimulateReceipt(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doJSON(t, srv.Handler, http.MethodPost, "/receipts/simulate", map[string]any{"save": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /receipts/simulate = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeJSON[simulateReceiptResponse](t, rec)
	if resp.Scan.Merchant == "" {
		t.Error("Scan.Merchant is empty")
	}
	if resp.Scan.Amount.Cents <= 0 {
		t.Errorf("Scan.Amount = %d, want positive", resp.Scan.Amount.Cents)
	}
	if resp.Expense == nil || resp.Expense.Origin != core.OriginPhoto {
		t.Errorf("Expense = %+v, want photo origin", resp.Expense)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < writeRequestsPerMinute; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other clients are unaffected")
	}
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		want       string
	}{
		{name: "direct", remoteAddr: "203.0.113.9:1234", want: "203.0.113.9"},
		{name: "trusted proxy honors xff", remoteAddr: "10.0.0.1:1234", xff: "203.0.113.9", want: "203.0.113.9"},
		{name: "untrusted peer ignores xff", remoteAddr: "203.0.113.50:1234", xff: "1.1.1.1", want: "203.0.113.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateRequestID(t *testing.T) {
	a, b := generateRequestID(), generateRequestID()
	if a == b {
		t.Error("request ids should differ")
	}
	if fmt.Sprintf("%.4s", a) != "req_" {
		t.Errorf("id %q should carry the req_ prefix", a)
	}
}
