package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/potledger/potledger/internal/domain"
	"github.com/potledger/potledger/internal/service"
)

// SessionHandler handles HTTP requests for session and ledger endpoints.
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// createSessionRequest is the JSON request body for POST /sessions.
type createSessionRequest struct {
	Name string `json:"name"`
}

// sessionResponse is the JSON representation of a session.
type sessionResponse struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// sessionSummaryResponse is the JSON response for GET /sessions/{session_id}.
type sessionSummaryResponse struct {
	SessionID        string           `json:"session_id"`
	Name             string           `json:"name"`
	CreatedAt        string           `json:"created_at"`
	Players          []playerResponse `json:"players"`
	BankBalance      float64          `json:"bank_balance"`
	TotalBuyIns      float64          `json:"total_buy_ins"`
	TotalCashOuts    float64          `json:"total_cash_outs"`
	TransactionCount int              `json:"transaction_count"`
}

// playerResponse is the JSON representation of a player.
type playerResponse struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	JoinedAt string `json:"joined_at"`
}

// addPlayerRequest is the JSON request body for POST /sessions/{session_id}/players.
type addPlayerRequest struct {
	Name string `json:"name"`
}

// recordTransactionRequest is the JSON request body for
// POST /sessions/{session_id}/transactions.
type recordTransactionRequest struct {
	PlayerID string  `json:"player_id"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
}

// transactionResponse is the JSON representation of a ledger transaction.
type transactionResponse struct {
	TransactionID string  `json:"transaction_id"`
	PlayerID      string  `json:"player_id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	CreatedAt     string  `json:"created_at"`
	VoidedAt      *string `json:"voided_at"`
}

func toPlayerResponse(p *domain.Player) playerResponse {
	return playerResponse{
		PlayerID: p.PlayerID,
		Name:     p.Name,
		JoinedAt: p.JoinedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(tx *domain.Transaction) transactionResponse {
	resp := transactionResponse{
		TransactionID: tx.TransactionID,
		PlayerID:      tx.PlayerID,
		Type:          string(tx.Type),
		Amount:        domain.CentsToAmount(tx.AmountCents),
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.VoidedAt != nil {
		s := tx.VoidedAt.Format(time.RFC3339)
		resp.VoidedAt = &s
	}
	return resp
}

// CreateSession handles POST /sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sess, err := h.sessionSvc.CreateSession(service.CreateSessionRequest{Name: req.Name})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, sessionResponse{
		SessionID: sess.SessionID,
		Name:      sess.Name,
		CreatedAt: sess.CreatedAt.Format(time.RFC3339),
	})
}

// GetSession handles GET /sessions/{session_id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	summary, err := h.sessionSvc.GetSummary(sessionID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	players := make([]playerResponse, len(summary.Players))
	for i, p := range summary.Players {
		players[i] = toPlayerResponse(p)
	}

	WriteJSON(w, http.StatusOK, sessionSummaryResponse{
		SessionID:        summary.Session.SessionID,
		Name:             summary.Session.Name,
		CreatedAt:        summary.Session.CreatedAt.Format(time.RFC3339),
		Players:          players,
		BankBalance:      domain.CentsToAmount(summary.BankBalanceCents),
		TotalBuyIns:      domain.CentsToAmount(summary.TotalBuyInsCents),
		TotalCashOuts:    domain.CentsToAmount(summary.TotalCashOutCents),
		TransactionCount: summary.TransactionCount,
	})
}

// AddPlayer handles POST /sessions/{session_id}/players.
func (h *SessionHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req addPlayerRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	player, err := h.sessionSvc.AddPlayer(sessionID, service.AddPlayerRequest{Name: req.Name})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toPlayerResponse(player))
}

// ListPlayers handles GET /sessions/{session_id}/players.
func (h *SessionHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	players, err := h.sessionSvc.ListPlayers(sessionID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	resp := make([]playerResponse, len(players))
	for i, p := range players {
		resp[i] = toPlayerResponse(p)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// RecordTransaction handles POST /sessions/{session_id}/transactions.
func (h *SessionHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req recordTransactionRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	tx, err := h.sessionSvc.RecordTransaction(sessionID, service.RecordTransactionRequest{
		PlayerID: req.PlayerID,
		Type:     req.Type,
		Amount:   req.Amount,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// ListTransactions handles GET /sessions/{session_id}/transactions.
func (h *SessionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	txs, err := h.sessionSvc.ListTransactions(sessionID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// VoidTransaction handles DELETE /sessions/{session_id}/transactions/{transaction_id}.
func (h *SessionHandler) VoidTransaction(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	transactionID := chi.URLParam(r, "transaction_id")

	tx, err := h.sessionSvc.VoidTransaction(sessionID, transactionID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTransactionResponse(tx))
}
