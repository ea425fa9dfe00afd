package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/potledger/potledger/internal/service"
)

// NewRouter creates a chi router with all routes registered, request logging,
// and Content-Type validation middleware.
func NewRouter(
	sessionSvc *service.SessionService,
	settlementSvc *service.SettlementService,
	exportSvc *service.ExportService,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	sessionH := NewSessionHandler(sessionSvc)
	settlementH := NewSettlementHandler(sessionSvc, settlementSvc, exportSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Session routes.
	r.Post("/sessions", sessionH.CreateSession)
	r.Get("/sessions/{session_id}", sessionH.GetSession)
	r.Post("/sessions/{session_id}/players", sessionH.AddPlayer)
	r.Get("/sessions/{session_id}/players", sessionH.ListPlayers)

	// Ledger routes.
	r.Post("/sessions/{session_id}/transactions", sessionH.RecordTransaction)
	r.Get("/sessions/{session_id}/transactions", sessionH.ListTransactions)
	r.Delete("/sessions/{session_id}/transactions/{transaction_id}", sessionH.VoidTransaction)

	// Settlement routes.
	r.Post("/sessions/{session_id}/positions", settlementH.Positions)
	r.Post("/sessions/{session_id}/players/{player_id}/cashout", settlementH.EarlyCashOut)
	r.Post("/sessions/{session_id}/settlement", settlementH.Settle)
	r.Post("/sessions/{session_id}/settlement/export", settlementH.Export)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
