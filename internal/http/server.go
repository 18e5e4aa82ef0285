// Package http exposes the ledger and its analytics as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"carteira/internal/amqp"
	"carteira/internal/cache"
	"carteira/internal/core"
	"carteira/internal/store"
	"carteira/internal/voice"
)

// TranscriptPublisher enqueues raw utterances for asynchronous parsing.
type TranscriptPublisher interface {
	PublishTranscript(ctx context.Context, msg *amqp.TranscriptMessage) error
}

// ReportExporter pushes a composed report to an external destination.
type ReportExporter interface {
	ExportReport(ctx context.Context, view core.ReportView) error
}

type Options struct {
	Publisher TranscriptPublisher
	Exporter  ReportExporter
	OCR       voice.ReceiptOCRProvider
	CacheTTL  time.Duration
	CacheSize int
}

type Server struct {
	http.Server
	ledger    store.Ledger
	publisher TranscriptPublisher
	exporter  ReportExporter
	ocr       voice.ReceiptOCRProvider

	rateLimiter *rateLimiter
	reportCache *cache.LRU[core.ReportView]

	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
// Publisher and exporter are optional; the matching endpoints answer
// 503 when they are absent.
func NewServer(addr string, ledger store.Ledger, opts Options) *Server {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	size := opts.CacheSize
	if size <= 0 {
		size = 64
	}
	ocr := opts.OCR
	if ocr == nil {
		ocr = voice.NewSimulatedReceiptOCR(time.Now().UnixNano())
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:      ledger,
		publisher:   opts.Publisher,
		exporter:    opts.Exporter,
		ocr:         ocr,
		rateLimiter: newRateLimiter(),
		reportCache: cache.NewLRU[core.ReportView](size, ttl),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /expenses", s.guard(s.handleCreateExpense))
	mux.HandleFunc("GET /expenses", s.guard(s.handleListExpenses))
	mux.HandleFunc("DELETE /expenses", s.guard(s.handleClearExpenses))
	mux.HandleFunc("DELETE /expenses/{id}", s.guard(s.handleDeleteExpense))

	mux.HandleFunc("POST /incomes", s.guard(s.handleCreateIncome))
	mux.HandleFunc("GET /incomes", s.guard(s.handleListIncomes))
	mux.HandleFunc("DELETE /incomes/{id}", s.guard(s.handleDeleteIncome))

	mux.HandleFunc("POST /goals", s.guard(s.handleCreateGoal))
	mux.HandleFunc("GET /goals", s.guard(s.handleListGoals))
	mux.HandleFunc("PATCH /goals/{id}", s.guard(s.handleUpdateGoal))
	mux.HandleFunc("POST /goals/{id}/toggle", s.guard(s.handleToggleGoal))
	mux.HandleFunc("DELETE /goals/{id}", s.guard(s.handleDeleteGoal))

	mux.HandleFunc("POST /reminders", s.guard(s.handleCreateReminder))
	mux.HandleFunc("GET /reminders", s.guard(s.handleListReminders))
	mux.HandleFunc("POST /reminders/{id}/toggle", s.guard(s.handleToggleReminder))
	mux.HandleFunc("DELETE /reminders/{id}", s.guard(s.handleDeleteReminder))

	mux.HandleFunc("GET /analytics/categories", s.guard(s.handleCategoryBreakdown))
	mux.HandleFunc("GET /analytics/weekdays", s.guard(s.handleWeekdayBreakdown))
	mux.HandleFunc("GET /analytics/trend", s.guard(s.handleMonthlyTrend))
	mux.HandleFunc("GET /summary", s.guard(s.handleSummary))
	mux.HandleFunc("GET /reports/{window}", s.guard(s.handleReport))
	mux.HandleFunc("POST /reports/{window}/export", s.guard(s.handleExportReport))

	mux.HandleFunc("POST /voice", s.guard(s.handleVoiceCommand))
	mux.HandleFunc("POST /voice/queue", s.guard(s.handleQueueTranscript))
	mux.HandleFunc("POST /receipts/simulate", s.guard(s.handleSimulateReceipt))

	return s
}

// invalidate drops cached report views after a ledger write.
func (s *Server) invalidate() {
	s.reportCache.Purge()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// guard adds security headers, rate limiting, and request logging.
func (s *Server) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
