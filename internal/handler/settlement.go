package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/potledger/potledger/internal/domain"
	"github.com/potledger/potledger/internal/service"
)

// SettlementHandler handles HTTP requests for position, cash-out, and
// settlement endpoints.
type SettlementHandler struct {
	sessionSvc    *service.SessionService
	settlementSvc *service.SettlementService
	exportSvc     *service.ExportService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(
	sessionSvc *service.SessionService,
	settlementSvc *service.SettlementService,
	exportSvc *service.ExportService,
) *SettlementHandler {
	return &SettlementHandler{
		sessionSvc:    sessionSvc,
		settlementSvc: settlementSvc,
		exportSvc:     exportSvc,
	}
}

// chipCountsRequest is the JSON request body for the positions, settlement,
// and export endpoints: current chip values per player id, in dollars.
type chipCountsRequest struct {
	ChipCounts map[string]float64 `json:"chip_counts"`
}

// earlyCashOutRequest is the JSON request body for the early cash-out quote.
type earlyCashOutRequest struct {
	CurrentChips float64 `json:"current_chips"`
}

// positionResponse is the JSON representation of a player position.
type positionResponse struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TotalBuyIns   float64 `json:"total_buy_ins"`
	TotalCashOuts float64 `json:"total_cash_outs"`
	CurrentChips  float64 `json:"current_chips"`
	NetPosition   float64 `json:"net_position"`
}

// earlyCashOutResponse is the JSON response for the early cash-out quote.
type earlyCashOutResponse struct {
	PlayerID          string  `json:"player_id"`
	NetPosition       float64 `json:"net_position"`
	SettlementAmount  float64 `json:"settlement_amount"`
	Direction         string  `json:"direction"`
	CanPayout         bool    `json:"can_payout"`
	BankBalanceBefore float64 `json:"bank_balance_before"`
	BankBalanceAfter  float64 `json:"bank_balance_after"`
	CalculatedAt      string  `json:"calculated_at"`
}

// paymentResponse is one instructed transfer in the settlement response.
type paymentResponse struct {
	FromPlayerID string  `json:"from_player_id"`
	ToPlayerID   string  `json:"to_player_id"`
	Amount       float64 `json:"amount"`
}

// settlementErrorResponse is one validation finding.
type settlementErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// validationResponse is the JSON representation of a settlement validation.
type validationResponse struct {
	IsValid    bool                      `json:"is_valid"`
	Errors     []settlementErrorResponse `json:"errors"`
	Warnings   []string                  `json:"warnings"`
	AuditTrail []string                  `json:"audit_trail"`
}

// settlementResponse is the JSON response for the settlement endpoint.
type settlementResponse struct {
	SessionID              string             `json:"session_id"`
	Payments               []paymentResponse  `json:"payments"`
	TransactionCount       int                `json:"transaction_count"`
	DirectTransactionCount int                `json:"direct_transaction_count"`
	ReductionPercentage    float64            `json:"reduction_percentage"`
	IsBalanced             bool               `json:"is_balanced"`
	CalculatedAt           string             `json:"calculated_at"`
	FromCache              bool               `json:"from_cache"`
	Validation             validationResponse `json:"validation"`
}

func toPositionResponses(positions []domain.PlayerPosition) []positionResponse {
	resp := make([]positionResponse, len(positions))
	for i, pos := range positions {
		resp[i] = positionResponse{
			PlayerID:      pos.PlayerID,
			PlayerName:    pos.PlayerName,
			TotalBuyIns:   domain.CentsToAmount(pos.TotalBuyInsCents),
			TotalCashOuts: domain.CentsToAmount(pos.TotalCashOutsCents),
			CurrentChips:  domain.CentsToAmount(pos.CurrentChipsCents),
			NetPosition:   domain.CentsToAmount(pos.NetCents),
		}
	}
	return resp
}

func toValidationResponse(v domain.SettlementValidation) validationResponse {
	errs := make([]settlementErrorResponse, len(v.Errors))
	for i, e := range v.Errors {
		errs[i] = settlementErrorResponse{
			Code:     e.Code,
			Message:  e.Message,
			Severity: string(e.Severity),
		}
	}
	return validationResponse{
		IsValid:    v.IsValid,
		Errors:     errs,
		Warnings:   v.Warnings,
		AuditTrail: v.AuditTrail,
	}
}

func toSettlementResponse(result *service.SettlementResult) settlementResponse {
	payments := make([]paymentResponse, len(result.Settlement.Payments))
	for i, p := range result.Settlement.Payments {
		payments[i] = paymentResponse{
			FromPlayerID: p.FromPlayerID,
			ToPlayerID:   p.ToPlayerID,
			Amount:       domain.CentsToAmount(p.AmountCents),
		}
	}
	return settlementResponse{
		SessionID:              result.Settlement.SessionID,
		Payments:               payments,
		TransactionCount:       result.Settlement.TransactionCount,
		DirectTransactionCount: result.Settlement.DirectTransactionCount,
		ReductionPercentage:    result.Settlement.ReductionPercent,
		IsBalanced:             result.Settlement.IsBalanced,
		CalculatedAt:           result.Settlement.CalculatedAt.Format(time.RFC3339),
		FromCache:              result.FromCache,
		Validation:             toValidationResponse(result.Validation),
	}
}

// Positions handles POST /sessions/{session_id}/positions.
func (h *SettlementHandler) Positions(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req chipCountsRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	positions, err := h.settlementSvc.Positions(sessionID, req.ChipCounts)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toPositionResponses(positions))
}

// EarlyCashOut handles POST /sessions/{session_id}/players/{player_id}/cashout.
func (h *SettlementHandler) EarlyCashOut(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	playerID := chi.URLParam(r, "player_id")

	var req earlyCashOutRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.settlementSvc.EarlyCashOut(sessionID, playerID, req.CurrentChips)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, earlyCashOutResponse{
		PlayerID:          result.PlayerID,
		NetPosition:       domain.CentsToAmount(result.NetCents),
		SettlementAmount:  domain.CentsToAmount(result.SettlementCents),
		Direction:         string(result.Direction),
		CanPayout:         result.CanPayout,
		BankBalanceBefore: domain.CentsToAmount(result.BankBeforeCents),
		BankBalanceAfter:  domain.CentsToAmount(result.BankAfterCents),
		CalculatedAt:      result.CalculatedAt.Format(time.RFC3339),
	})
}

// Settle handles POST /sessions/{session_id}/settlement.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req chipCountsRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.settlementSvc.Settle(sessionID, req.ChipCounts)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toSettlementResponse(result))
}

// Export handles POST /sessions/{session_id}/settlement/export. It responds
// with text/plain — the shareable summary, not an API object.
func (h *SettlementHandler) Export(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req chipCountsRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	summary, err := h.sessionSvc.GetSummary(sessionID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	positions, err := h.settlementSvc.Positions(sessionID, req.ChipCounts)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	result, err := h.settlementSvc.Settle(sessionID, req.ChipCounts)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	text := h.exportSvc.RenderSettlement(summary.Session, summary.Players, result, positions)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
